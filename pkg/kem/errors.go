package kem

import "github.com/pkg/errors"

var (
	ErrInvalidPublicKeySize  = errors.New("kem: invalid public key size")
	ErrInvalidSecretKeySize  = errors.New("kem: invalid secret key size")
	ErrInvalidCiphertextSize = errors.New("kem: invalid ciphertext size")
	ErrInvalidSeedSize       = errors.New("kem: invalid seed size")
	ErrMalformedPublicKey    = errors.New("kem: malformed public key")
	ErrMalformedSecretKey    = errors.New("kem: malformed secret key")
	ErrUnknownParams         = errors.New("kem: unknown parameter set")
)
