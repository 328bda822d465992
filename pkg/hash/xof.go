package hash

import (
	"io"

	"golang.org/x/crypto/sha3"
)

// shake128Rate is the SHAKE-128 block size in bytes.
const shake128Rate = 168

// maxBlockSize bounds the block size of every XOF in this package.
const maxBlockSize = shake128Rate

// SHAKE is the FIPS 202 suite: SHA3-256, SHA3-512, SHAKE-128 and SHAKE-256.
var SHAKE Suite = shakeSuite{}

type shakeSuite struct{}

func (shakeSuite) Name() string { return "shake" }

func (shakeSuite) H(in ...[]byte) (out [32]byte) {
	h := sha3.New256()
	for _, b := range in {
		h.Write(b)
	}
	h.Sum(out[:0])
	return out
}

func (shakeSuite) G(in ...[]byte) (out [64]byte) {
	h := sha3.New512()
	for _, b := range in {
		h.Write(b)
	}
	h.Sum(out[:0])
	return out
}

func (shakeSuite) XOF(seed []byte, x, y byte) XOF {
	h := sha3.NewShake128()
	h.Write(seed)
	h.Write([]byte{x, y})
	return shakeXOF{h}
}

func (shakeSuite) PRF(out, key []byte, nonce byte) {
	h := sha3.NewShake256()
	h.Write(key)
	h.Write([]byte{nonce})
	h.Read(out)
}

func (shakeSuite) KDF(out []byte, in ...[]byte) {
	h := sha3.NewShake256()
	for _, b := range in {
		h.Write(b)
	}
	h.Read(out)
}

type shakeXOF struct {
	sha3.ShakeHash
}

func (shakeXOF) BlockSize() int { return shake128Rate }

// Stream serves an XOF three bytes at a time, squeezing one whole block
// whenever the buffer runs dry.
type Stream struct {
	x   XOF
	buf [maxBlockSize + 2]byte
	pos int
	end int
}

// NewStream wraps a freshly absorbed XOF.
func NewStream(x XOF) *Stream {
	if x.BlockSize() > maxBlockSize {
		panic("hash: XOF block size too large")
	}
	return &Stream{x: x}
}

// Read3 returns the next 3 bytes from the XOF.
func (s *Stream) Read3() (b0, b1, b2 byte) {
	if s.pos+3 > s.end {
		// Copy leftover bytes to beginning
		leftover := s.end - s.pos
		if leftover > 0 {
			copy(s.buf[:leftover], s.buf[s.pos:s.end])
		}
		// Squeeze exactly one block behind them
		n, _ := io.ReadFull(s.x, s.buf[leftover:leftover+s.x.BlockSize()])
		s.pos = 0
		s.end = leftover + n
	}
	b0, b1, b2 = s.buf[s.pos], s.buf[s.pos+1], s.buf[s.pos+2]
	s.pos += 3
	return
}

// NewDeterministicReader returns an endless SHAKE-256 stream keyed by seed.
// It stands in for the system RNG when reproducible output is wanted; it
// must never be used to generate production keys.
func NewDeterministicReader(seed []byte) io.Reader {
	h := sha3.NewShake256()
	h.Write(seed)
	return h
}
