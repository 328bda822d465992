// Package hash provides the symmetric primitives consumed by the KEM:
// two fixed-output hashes, an extendable-output function for matrix
// generation, a PRF for noise and a KDF for the final shared secret.
package hash

import "io"

const (
	// SeedSize is the size of every seed, hash output and message.
	SeedSize = 32
)

// XOF is one absorb-then-squeeze stream. A fresh XOF is created for every
// matrix entry; nothing is carried from one entry to the next.
type XOF interface {
	io.Reader
	// BlockSize is the number of bytes produced per squeeze.
	BlockSize() int
}

// Suite bundles the symmetric functions used by one parameter set.
type Suite interface {
	// Name identifies the suite ("shake" or "aes").
	Name() string
	// H is the 256-bit hash used for public-key and ciphertext hashing.
	H(in ...[]byte) [32]byte
	// G is the 512-bit hash used for seed expansion and coin derivation.
	G(in ...[]byte) [64]byte
	// XOF absorbs seed || x || y.
	XOF(seed []byte, x, y byte) XOF
	// PRF fills out from (key, nonce).
	PRF(out, key []byte, nonce byte)
	// KDF fills out from the concatenation of in.
	KDF(out []byte, in ...[]byte)
}

// SuiteByName returns the named suite, or nil.
func SuiteByName(name string) Suite {
	switch name {
	case "shake":
		return SHAKE
	case "aes":
		return AES
	default:
		return nil
	}
}
