// Package kem implements an IND-CCA2 key encapsulation mechanism over
// module lattices.
//
// Key generation, encapsulation and decapsulation are pure functions of
// their inputs and the injected random source. A Scheme holds no mutable
// state; it is safe for concurrent use when its random source is.
package kem

import (
	"bytes"
	"crypto/rand"
	"crypto/subtle"
	"io"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"latticekem/pkg/hash"
)

// Option configures a Scheme.
type Option func(*Scheme)

// WithRand replaces crypto/rand as the source of d, z and m.
func WithRand(r io.Reader) Option {
	return func(s *Scheme) {
		s.rand = r
	}
}

// WithLogger sets the logger used for debug events.
func WithLogger(log *zerolog.Logger) Option {
	return func(s *Scheme) {
		s.log = log
	}
}

// Scheme runs the KEM for one parameter set.
type Scheme struct {
	params Params
	rand   io.Reader
	log    *zerolog.Logger
}

// New returns a Scheme for p.
func New(p Params, opts ...Option) (*Scheme, error) {
	if err := p.Validate(); err != nil {
		return nil, errors.Wrapf(err, "parameter set %q", p.Name)
	}
	nop := zerolog.Nop()
	s := &Scheme{
		params: p,
		rand:   rand.Reader,
		log:    &nop,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Params returns the parameter set of s.
func (s *Scheme) Params() Params {
	return s.params
}

// KeyPair is an immutable encoded key pair.
type KeyPair struct {
	params Params
	pk     []byte
	sk     []byte
}

// PublicKey returns a copy of the encoded public key.
func (kp *KeyPair) PublicKey() []byte { return bytes.Clone(kp.pk) }

// SecretKey returns a copy of the encoded secret key.
func (kp *KeyPair) SecretKey() []byte { return bytes.Clone(kp.sk) }

func (kp *KeyPair) Params() Params { return kp.params }

// GenerateKey draws d and z from the random source and derives a key pair.
func (s *Scheme) GenerateKey() (*KeyPair, error) {
	var seed [2 * hash.SeedSize]byte
	if _, err := io.ReadFull(s.rand, seed[:]); err != nil {
		return nil, errors.Wrap(err, "kem: reading key generation randomness")
	}
	defer clear(seed[:])
	return s.NewKeyFromSeed(seed[:hash.SeedSize], seed[hash.SeedSize:])
}

// NewKeyFromSeed derives a key pair from the 32-byte seeds d and z.
// The secret key is ŝ || pk || H(pk) || z.
func (s *Scheme) NewKeyFromSeed(d, z []byte) (*KeyPair, error) {
	if len(d) != hash.SeedSize || len(z) != hash.SeedSize {
		return nil, ErrInvalidSeedSize
	}
	p := s.params
	pk, skCPA := cpaKeyGen(p, d)
	hpk := p.Suite.H(pk)

	sk := make([]byte, 0, p.SecretKeySize())
	sk = append(sk, skCPA...)
	sk = append(sk, pk...)
	sk = append(sk, hpk[:]...)
	sk = append(sk, z...)
	clear(skCPA)

	s.log.Debug().
		Str("params", p.Name).
		Int("publicKeySize", len(pk)).
		Int("secretKeySize", len(sk)).
		Msg("generated key pair")
	return &KeyPair{params: p, pk: pk, sk: sk}, nil
}

// Encapsulate draws a fresh message and encapsulates it to pk.
func (s *Scheme) Encapsulate(pk []byte) (ct, ss []byte, err error) {
	if len(pk) != s.params.PublicKeySize() {
		return nil, nil, ErrInvalidPublicKeySize
	}
	var m [hash.SeedSize]byte
	if _, err := io.ReadFull(s.rand, m[:]); err != nil {
		return nil, nil, errors.Wrap(err, "kem: reading encapsulation randomness")
	}
	defer clear(m[:])
	return s.EncapsulateDeterministic(pk, m[:])
}

// EncapsulateDeterministic encapsulates with caller-supplied randomness m.
// m is hashed before use, so the same m under two public keys gives
// unrelated ciphertexts.
func (s *Scheme) EncapsulateDeterministic(pk, m []byte) (ct, ss []byte, err error) {
	p := s.params
	if len(pk) != p.PublicKeySize() {
		return nil, nil, ErrInvalidPublicKeySize
	}
	if len(m) != hash.SeedSize {
		return nil, nil, ErrInvalidSeedSize
	}
	pub, err := p.decodePublicKey(pk)
	if err != nil {
		return nil, nil, errors.Wrap(ErrMalformedPublicKey, err.Error())
	}

	mh := p.Suite.H(m)
	hpk := p.Suite.H(pk)
	kr := p.Suite.G(mh[:], hpk[:])
	defer clear(kr[:])

	ct = cpaEncrypt(p, pub, mh[:], kr[hash.SeedSize:])
	hct := p.Suite.H(ct)
	ss = make([]byte, SharedSecretSize)
	p.Suite.KDF(ss, kr[:hash.SeedSize], hct[:])

	s.log.Debug().
		Str("params", p.Name).
		Int("ciphertextSize", len(ct)).
		Msg("encapsulated")
	return ct, ss, nil
}

// Decapsulate recovers the shared secret from ct. A ciphertext that does
// not re-encrypt to itself yields KDF(z || H(ct)) instead of an error; the
// two outcomes are selected without branching. Errors are returned only for
// wrong input sizes and for secret keys that fail to decode.
func (s *Scheme) Decapsulate(sk, ct []byte) (ss []byte, err error) {
	p := s.params
	if len(sk) != p.SecretKeySize() {
		return nil, ErrInvalidSecretKeySize
	}
	if len(ct) != p.CiphertextSize() {
		return nil, ErrInvalidCiphertextSize
	}

	off := p.IndCPASecretKeySize()
	pk := sk[off : off+p.PublicKeySize()]
	off += p.PublicKeySize()
	hpk := sk[off : off+hash.SeedSize]
	z := sk[off+hash.SeedSize:]

	sVec, err := decodeSecretVec(p, sk)
	if err != nil {
		return nil, errors.Wrap(ErrMalformedSecretKey, err.Error())
	}
	pub, err := p.decodePublicKey(pk)
	if err != nil {
		return nil, errors.Wrap(ErrMalformedSecretKey, "embedded public key: "+err.Error())
	}
	if h := p.Suite.H(pk); !bytes.Equal(h[:], hpk) {
		return nil, errors.Wrap(ErrMalformedSecretKey, "public key hash mismatch")
	}

	m := cpaDecrypt(p, sVec, ct)
	kr := p.Suite.G(m[:], hpk)
	ct2 := cpaEncrypt(p, pub, m[:], kr[hash.SeedSize:])

	// Replace K̄ with z unless ct2 == ct.
	kbar := kr[:hash.SeedSize]
	equal := subtle.ConstantTimeCompare(ct, ct2)
	subtle.ConstantTimeCopy(1-equal, kbar, z)

	hct := p.Suite.H(ct)
	ss = make([]byte, SharedSecretSize)
	p.Suite.KDF(ss, kbar, hct[:])

	clear(m[:])
	clear(kr[:])
	s.log.Debug().
		Str("params", p.Name).
		Msg("decapsulated")
	return ss, nil
}
