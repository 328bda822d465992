// Package sampling derives the public matrix and the secret and error
// polynomials from seeds.
package sampling

import (
	"latticekem/pkg/field"
	"latticekem/pkg/hash"
	"latticekem/pkg/poly"
)

// MaxEta is the largest supported centered binomial parameter.
const MaxEta = 8

// SampleUniform fills a transform-domain polynomial by rejection sampling
// 12-bit candidates from the stream. Every 3 bytes yield two candidates;
// those >= Q are discarded.
func SampleUniform(s *hash.Stream) poly.NTTPoly {
	var cs poly.NTTPoly
	i := 0
	for i < field.N {
		b0, b1, b2 := s.Read3()
		d1 := uint16(b0) | uint16(b1&0x0F)<<8
		d2 := uint16(b1>>4) | uint16(b2)<<4
		if d1 < field.Q {
			cs[i] = d1
			i++
		}
		if d2 < field.Q && i < field.N {
			cs[i] = d2
			i++
		}
	}
	return cs
}

// SampleMatrixEntry samples the polynomial for XOF(seed || x || y).
func SampleMatrixEntry(suite hash.Suite, seed []byte, x, y byte) poly.NTTPoly {
	return SampleUniform(hash.NewStream(suite.XOF(seed, x, y)))
}

// SampleMatrix expands seed into the k×k matrix Â. Entry (i, j) absorbs
// (j, i); the transposed matrix absorbs (i, j). Each entry uses its own
// freshly absorbed XOF.
func SampleMatrix(suite hash.Suite, seed []byte, k int, transposed bool) poly.Matrix {
	m := poly.NewMatrix(k)
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			if transposed {
				m[i][j] = SampleMatrixEntry(suite, seed, byte(i), byte(j))
			} else {
				m[i][j] = SampleMatrixEntry(suite, seed, byte(j), byte(i))
			}
		}
	}
	return m
}

// CBD maps eta*N/4 bytes to a polynomial with centered binomial
// coefficients in [-eta, eta]. Each coefficient consumes 2*eta bits in
// little-endian bit order: the popcount of the first eta bits minus the
// popcount of the next eta bits.
func CBD(buf []byte, eta int) poly.Poly {
	if eta < 1 || eta > MaxEta {
		panic("sampling: eta out of range")
	}
	if len(buf) != eta*field.N/4 {
		panic("sampling: wrong CBD input length")
	}
	var cs poly.Poly
	bit := 0
	for i := 0; i < field.N; i++ {
		var a, b uint16
		for j := 0; j < eta; j++ {
			a += uint16(buf[bit>>3]>>(bit&7)) & 1
			bit++
		}
		for j := 0; j < eta; j++ {
			b += uint16(buf[bit>>3]>>(bit&7)) & 1
			bit++
		}
		cs[i] = field.Sub(a, b)
	}
	return cs
}

// SampleNoise derives one noise polynomial from PRF(seed, nonce).
func SampleNoise(suite hash.Suite, seed []byte, nonce byte, eta int) poly.Poly {
	buf := make([]byte, eta*field.N/4)
	suite.PRF(buf, seed, nonce)
	return CBD(buf, eta)
}

// SampleNoiseVec derives k noise polynomials using nonces nonce..nonce+k-1.
func SampleNoiseVec(suite hash.Suite, seed []byte, eta, k int, nonce byte) poly.Vec {
	v := make(poly.Vec, k)
	for i := range v {
		v[i] = SampleNoise(suite, seed, nonce+byte(i), eta)
	}
	return v
}
