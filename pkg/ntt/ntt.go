// Package ntt provides the Number Theoretic Transform over Z_Q[x]/<x^256+1>.
//
// Q = 3329 only has 256th roots of unity, so the forward transform runs seven
// layers and leaves 128 residues modulo (x^2 - Root^(2*brv7(i)+1)).
// Multiplication in the transform domain is a degree-2 base multiplication
// per residue rather than a plain coefficient product.
package ntt

import "latticekem/pkg/field"

// Zetas[i] = Root^brv7(i) mod Q.
var Zetas [128]uint16

// InvZetas[i] = Root^(-brv7(i)) mod Q.
var InvZetas [128]uint16

// BaseRoots[i] = Root^(2*brv7(i)+1) mod Q, the modulus of the i-th residue.
var BaseRoots [128]uint16

// The tables are pure functions of Q and N. They are written once here and
// only read afterwards, so concurrent transforms need no locking.
func init() {
	invRoot := field.Inv(field.Root)
	for i := 0; i < 128; i++ {
		r := uint32(field.Brv7(uint8(i)))
		Zetas[i] = field.Exp(field.Root, r)
		InvZetas[i] = field.Exp(invRoot, r)
		BaseRoots[i] = field.Exp(field.Root, 2*r+1)
	}
}

// NTT computes the forward transform in place.
// Input: coefficients in standard order.
// Output: coefficients in NTT domain (bit-reversed residue order).
func NTT(cs *[field.N]uint16) {
	k := 1
	for layer := field.N / 2; layer >= 2; layer /= 2 {
		for offset := 0; offset < field.N; offset += 2 * layer {
			z := uint32(Zetas[k])
			k++

			for j := offset; j < offset+layer; j++ {
				t := field.Reduce(z * uint32(cs[j+layer]))
				cs[j+layer] = field.Sub(cs[j], t)
				cs[j] = field.Add(cs[j], t)
			}
		}
	}
}

// InvNTT computes the inverse transform in place, including the final
// multiplication by 128^(-1) that undoes the scaling of the butterflies.
func InvNTT(cs *[field.N]uint16) {
	for layer := 2; layer < field.N; layer *= 2 {
		k := field.N / (2 * layer)
		for offset := 0; offset < field.N; offset += 2 * layer {
			z := uint32(InvZetas[k])
			k++

			for j := offset; j < offset+layer; j++ {
				t := cs[j]
				cs[j] = field.Add(t, cs[j+layer])
				cs[j+layer] = field.Reduce(z * uint32(field.Sub(t, cs[j+layer])))
			}
		}
	}
	for i := range cs {
		cs[i] = field.Reduce(uint32(cs[i]) * field.InverseDegree)
	}
}

// BaseMul multiplies (a0 + a1*x)(b0 + b1*x) modulo (x^2 - root).
func BaseMul(a0, a1, b0, b1, root uint16) (c0, c1 uint16) {
	a1b1 := field.Reduce(uint32(a1) * uint32(b1))
	c0 = field.Reduce(uint32(a0)*uint32(b0) + uint32(a1b1)*uint32(root))
	c1 = field.Reduce(uint32(a0)*uint32(b1) + uint32(a1)*uint32(b0))
	return
}

// MulNTT computes the transform-domain product of a and b.
func MulNTT(a, b *[field.N]uint16, result *[field.N]uint16) {
	for i := 0; i < field.N/2; i++ {
		result[2*i], result[2*i+1] = BaseMul(a[2*i], a[2*i+1], b[2*i], b[2*i+1], BaseRoots[i])
	}
}

// MulAcc adds the transform-domain product of a and b into acc without
// reducing the sum. Each product term is below Q, so acc stays far inside
// the range of field.Reduce as long as fewer than 2*Q terms are summed.
func MulAcc(acc *[field.N]uint32, a, b *[field.N]uint16) {
	for i := 0; i < field.N/2; i++ {
		c0, c1 := BaseMul(a[2*i], a[2*i+1], b[2*i], b[2*i+1], BaseRoots[i])
		acc[2*i] += uint32(c0)
		acc[2*i+1] += uint32(c1)
	}
}

// ReduceAcc folds a lazy accumulator back into canonical coefficients.
func ReduceAcc(acc *[field.N]uint32, result *[field.N]uint16) {
	for i := range acc {
		result[i] = field.Reduce(acc[i])
	}
}
