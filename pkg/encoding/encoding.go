// Package encoding provides byte serialization for polynomials, vectors
// and messages.
//
// All packing is little-endian at the bit level: coefficient i occupies
// bits [i*d, (i+1)*d) of the output, least significant bit first.
package encoding

import (
	"github.com/pkg/errors"

	"latticekem/pkg/field"
	"latticekem/pkg/poly"
)

const (
	// CoeffBits is the width of an uncompressed coefficient.
	CoeffBits = 12
	// PolyBytes is the size of an uncompressed polynomial.
	PolyBytes = field.N * CoeffBits / 8
	// MessageBytes is the size of a message (one bit per coefficient).
	MessageBytes = field.N / 8
)

// ErrNonCanonical reports a 12-bit coefficient that is not below Q.
var ErrNonCanonical = errors.New("encoding: coefficient out of range")

// PolySize returns the packed size of one polynomial at d bits.
func PolySize(d int) int {
	return field.N * d / 8
}

// Pack writes the low d bits of each coefficient into out.
func Pack(out []byte, cs *[field.N]uint16, d int) {
	if len(out) < PolySize(d) {
		panic("encoding: output too short")
	}
	var acc uint32
	nbits := 0
	o := 0
	for _, c := range cs {
		acc |= uint32(c) << nbits
		nbits += d
		for nbits >= 8 {
			out[o] = byte(acc)
			o++
			acc >>= 8
			nbits -= 8
		}
	}
}

// Unpack reads N coefficients of d bits each from in.
func Unpack(in []byte, d int) (cs [field.N]uint16) {
	if len(in) < PolySize(d) {
		panic("encoding: input too short")
	}
	mask := uint32(1)<<d - 1
	var acc uint32
	nbits := 0
	o := 0
	for i := range cs {
		for nbits < d {
			acc |= uint32(in[o]) << nbits
			o++
			nbits += 8
		}
		cs[i] = uint16(acc & mask)
		acc >>= d
		nbits -= d
	}
	return cs
}

// EncodePoly writes f uncompressed.
func EncodePoly(out []byte, f *poly.NTTPoly) {
	Pack(out, (*[field.N]uint16)(f), CoeffBits)
}

// DecodePoly reads an uncompressed polynomial and rejects any coefficient
// that is not reduced.
func DecodePoly(in []byte) (poly.NTTPoly, error) {
	f := poly.NTTPoly(Unpack(in, CoeffBits))
	var bad uint16
	for _, c := range f {
		bad |= ^(c - field.Q) >> 15 // set iff c >= Q
	}
	if bad != 0 {
		return poly.NTTPoly{}, ErrNonCanonical
	}
	return f, nil
}

// EncodeVec writes each component of v uncompressed, in order.
func EncodeVec(out []byte, v poly.NTTVec) {
	for i := range v {
		EncodePoly(out[i*PolyBytes:], &v[i])
	}
}

// DecodeVec reads k uncompressed polynomials.
func DecodeVec(in []byte, k int) (poly.NTTVec, error) {
	v := make(poly.NTTVec, k)
	for i := range v {
		f, err := DecodePoly(in[i*PolyBytes:])
		if err != nil {
			return nil, errors.Wrapf(err, "component %d", i)
		}
		v[i] = f
	}
	return v, nil
}

// CompressPoly writes p compressed to d bits per coefficient.
func CompressPoly(out []byte, p *poly.Poly, d int) {
	var cs [field.N]uint16
	for i, c := range p {
		cs[i] = field.Compress(c, d)
	}
	Pack(out, &cs, d)
}

// DecompressPoly reads a polynomial compressed to d bits.
func DecompressPoly(in []byte, d int) poly.Poly {
	cs := Unpack(in, d)
	var p poly.Poly
	for i, c := range cs {
		p[i] = field.Decompress(c, d)
	}
	return p
}

// CompressVec writes each component of v compressed to d bits.
func CompressVec(out []byte, v poly.Vec, d int) {
	n := PolySize(d)
	for i := range v {
		CompressPoly(out[i*n:], &v[i], d)
	}
}

// DecompressVec reads k polynomials compressed to d bits.
func DecompressVec(in []byte, k, d int) poly.Vec {
	n := PolySize(d)
	v := make(poly.Vec, k)
	for i := range v {
		v[i] = DecompressPoly(in[i*n:], d)
	}
	return v
}

// MessageToPoly maps each message bit to 0 or round(Q/2).
func MessageToPoly(m []byte) poly.Poly {
	if len(m) != MessageBytes {
		panic("encoding: message must be 32 bytes")
	}
	return DecompressPoly(m, 1)
}

// PolyToMessage rounds each coefficient to the nearer of 0 and Q/2.
func PolyToMessage(p *poly.Poly) (m [MessageBytes]byte) {
	CompressPoly(m[:], p, 1)
	return m
}
