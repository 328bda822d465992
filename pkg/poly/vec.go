package poly

import (
	"latticekem/pkg/field"
	"latticekem/pkg/ntt"
)

// Vec is a length-k vector of standard-domain polynomials.
type Vec []Poly

// NTTVec is a length-k vector of transform-domain polynomials.
type NTTVec []NTTPoly

// Matrix is a k×k matrix of transform-domain polynomials, indexed [row][col].
type Matrix [][]NTTPoly

// NewMatrix allocates a zero k×k matrix.
func NewMatrix(k int) Matrix {
	m := make(Matrix, k)
	for i := range m {
		m[i] = make([]NTTPoly, k)
	}
	return m
}

// NTT lifts every component into the transform domain.
func (v Vec) NTT() NTTVec {
	out := make(NTTVec, len(v))
	for i := range v {
		out[i] = v[i].NTT()
	}
	return out
}

// InvNTT brings every component back to the standard domain.
func (v NTTVec) InvNTT() Vec {
	out := make(Vec, len(v))
	for i := range v {
		out[i] = v[i].InvNTT()
	}
	return out
}

// Add computes v += b componentwise.
func (v Vec) Add(b Vec) {
	mustSameLen(len(v), len(b))
	for i := range v {
		Add(&v[i], &b[i], &v[i])
	}
}

// Clone returns an independent copy of v.
func (v NTTVec) Clone() NTTVec {
	return append(NTTVec(nil), v...)
}

// accumulator sums reduced transform-domain products in 32-bit lanes.
type accumulator [field.N]uint32

func (acc *accumulator) load(p *NTTPoly) {
	for i := range acc {
		acc[i] = uint32(p[i])
	}
}

func (acc *accumulator) mulAcc(a, b *NTTPoly) {
	ntt.MulAcc((*[field.N]uint32)(acc), (*[field.N]uint16)(a), (*[field.N]uint16)(b))
}

// reduce writes the canonical value of the sum into p.
func (acc *accumulator) reduce(p *NTTPoly) {
	ntt.ReduceAcc((*[field.N]uint32)(acc), (*[field.N]uint16)(p))
}

// MatVecMulAcc computes dst[i] += Σ_j m[i][j] ⊙ s[j] for every row, entirely
// in the transform domain. Each row is reduced once after the sum.
func MatVecMulAcc(dst NTTVec, m Matrix, s NTTVec) {
	mustSameLen(len(dst), len(m))
	var acc accumulator
	for i := range m {
		mustSameLen(len(m[i]), len(s))
		acc.load(&dst[i])
		for j := range s {
			acc.mulAcc(&m[i][j], &s[j])
		}
		acc.reduce(&dst[i])
	}
}

// InnerProductAcc computes dst += Σ_j a[j] ⊙ b[j].
func InnerProductAcc(dst *NTTPoly, a, b NTTVec) {
	mustSameLen(len(a), len(b))
	var acc accumulator
	acc.load(dst)
	for j := range a {
		acc.mulAcc(&a[j], &b[j])
	}
	acc.reduce(dst)
}

func mustSameLen(a, b int) {
	if a != b {
		panic("poly: vector length mismatch")
	}
}
