// Package poly provides polynomials over Z_Q[x]/<x^256+1> in both domains.
//
// Poly holds standard-domain coefficients and NTTPoly holds transform-domain
// residues. They share a layout but are distinct types, so a product can only
// be formed from two NTTPoly values and a standard-domain addition can only
// see Poly values. Conversions go through NTT and InvNTT.
package poly

import (
	"latticekem/pkg/field"
	"latticekem/pkg/ntt"
)

// Poly is a polynomial in the standard (coefficient) domain.
type Poly [field.N]uint16

// NTTPoly is a polynomial in the transform domain.
type NTTPoly [field.N]uint16

// Add computes a + b componentwise.
func Add(a, b *Poly, result *Poly) {
	for i := 0; i < field.N; i++ {
		result[i] = field.Add(a[i], b[i])
	}
}

// Sub computes a - b componentwise.
func Sub(a, b *Poly, result *Poly) {
	for i := 0; i < field.N; i++ {
		result[i] = field.Sub(a[i], b[i])
	}
}

// AddNTT computes a + b componentwise in the transform domain.
func AddNTT(a, b *NTTPoly, result *NTTPoly) {
	for i := 0; i < field.N; i++ {
		result[i] = field.Add(a[i], b[i])
	}
}

// NTT returns the transform of p.
func (p *Poly) NTT() NTTPoly {
	f := NTTPoly(*p)
	ntt.NTT((*[field.N]uint16)(&f))
	return f
}

// InvNTT returns the inverse transform of f, normalized.
func (f *NTTPoly) InvNTT() Poly {
	p := Poly(*f)
	ntt.InvNTT((*[field.N]uint16)(&p))
	return p
}

// MulNTT computes the transform-domain product a ⊙ b.
func MulNTT(a, b *NTTPoly, result *NTTPoly) {
	ntt.MulNTT((*[field.N]uint16)(a), (*[field.N]uint16)(b), (*[field.N]uint16)(result))
}

// SchoolbookMul computes a * b in the negacyclic ring by direct convolution.
// Quadratic; used as a reference for the transform-domain product.
func SchoolbookMul(a, b *Poly) (r Poly) {
	var s [2 * field.N]int64
	for i := 0; i < field.N; i++ {
		for j := 0; j < field.N; j++ {
			s[i+j] += int64(a[i]) * int64(b[j])
		}
	}

	// x^256 = -1
	for i := 0; i < field.N; i++ {
		r[i] = field.Mod(s[i] - s[field.N+i])
	}
	return r
}

// Equal returns true if two polynomials are equal.
func Equal(a, b *Poly) bool {
	for i := 0; i < field.N; i++ {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Norm returns the infinity norm (max absolute coefficient).
// Values above Q/2 are treated as negative.
func (p *Poly) Norm() uint16 {
	var n uint16
	for _, c := range p {
		absC := c
		if c > field.HalfQ {
			absC = field.Q - c
		}
		if absC > n {
			n = absC
		}
	}
	return n
}
