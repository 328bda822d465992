package hash

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"crypto/sha512"
)

// aesBlockBytes is the squeeze size of the AES-CTR XOF.
const aesBlockBytes = 64

// AES is the "90s" suite: SHA-256, SHA-512 and AES-256-CTR keystreams in
// place of the Keccak functions. Its KDF output is limited to 32 bytes.
var AES Suite = aesSuite{}

type aesSuite struct{}

func (aesSuite) Name() string { return "aes" }

func (aesSuite) H(in ...[]byte) (out [32]byte) {
	h := sha256.New()
	for _, b := range in {
		h.Write(b)
	}
	h.Sum(out[:0])
	return out
}

func (aesSuite) G(in ...[]byte) (out [64]byte) {
	h := sha512.New()
	for _, b := range in {
		h.Write(b)
	}
	h.Sum(out[:0])
	return out
}

// XOF keys AES-256 with seed and runs CTR mode from IV x || y || 0...0.
func (aesSuite) XOF(seed []byte, x, y byte) XOF {
	return &ctrStream{s: newCTR(seed, x, y)}
}

// PRF keys AES-256 with key and runs CTR mode from IV nonce || 0...0.
func (aesSuite) PRF(out, key []byte, nonce byte) {
	clear(out)
	newCTR(key, nonce, 0).XORKeyStream(out, out)
}

func (aesSuite) KDF(out []byte, in ...[]byte) {
	if len(out) > sha256.Size {
		panic("hash: aes suite KDF output longer than 32 bytes")
	}
	h := sha256.New()
	for _, b := range in {
		h.Write(b)
	}
	copy(out, h.Sum(nil))
}

func newCTR(key []byte, n0, n1 byte) cipher.Stream {
	block, err := aes.NewCipher(key)
	if err != nil {
		// key is always a 32-byte seed
		panic("hash: " + err.Error())
	}
	var iv [aes.BlockSize]byte
	iv[0], iv[1] = n0, n1
	return cipher.NewCTR(block, iv[:])
}

type ctrStream struct {
	s cipher.Stream
}

func (c *ctrStream) Read(p []byte) (int, error) {
	clear(p)
	c.s.XORKeyStream(p, p)
	return len(p), nil
}

func (c *ctrStream) BlockSize() int { return aesBlockBytes }
