// Package field provides arithmetic modulo the prime Q = 3329.
//
// Coefficients are kept canonical, in [0, Q), after every operation. None of
// the functions below branch on their inputs: coefficient values are
// influenced by attacker-chosen ciphertexts during decapsulation.
package field

const (
	// Q is the prime modulus: 13*2^8 + 1
	Q = 3329

	// N is the polynomial degree (ring is Z_Q[x]/<x^256+1>)
	N = 256

	// Root is a primitive 256th root of unity in Z_Q.
	// Q-1 is divisible by 256 but not by 512, so the NTT stops one layer
	// short and leaves degree-2 residues.
	Root = 17

	// InverseDegree is 128^(-1) mod Q, the scale the inverse NTT must undo.
	InverseDegree = 3303

	// HalfQ is (Q-1)/2, the rounding threshold for compression.
	HalfQ = (Q - 1) / 2

	// Barrett parameters: barrettMultiplier = floor(2^24 / Q).
	barrettMultiplier = 5039
	barrettShift      = 24
)

// ReduceOnce maps x in [0, 2Q) to [0, Q) with a masked conditional subtraction.
func ReduceOnce(x uint16) uint16 {
	subtracted := x - Q
	mask := 0 - (subtracted >> 15)
	return (mask & x) | (^mask & subtracted)
}

// Reduce returns x mod Q using Barrett reduction.
// x must be less than Q + 2*Q*Q.
func Reduce(x uint32) uint16 {
	product := uint64(x) * barrettMultiplier
	quotient := uint32(product >> barrettShift)
	remainder := x - quotient*Q
	return ReduceOnce(uint16(remainder))
}

// Add returns (a + b) mod Q.
func Add(a, b uint16) uint16 {
	return ReduceOnce(a + b)
}

// Sub returns (a - b) mod Q.
func Sub(a, b uint16) uint16 {
	return ReduceOnce(a - b + Q)
}

// Mul returns (a * b) mod Q.
func Mul(a, b uint16) uint16 {
	return Reduce(uint32(a) * uint32(b))
}

// Neg returns (-a) mod Q.
func Neg(a uint16) uint16 {
	return Sub(0, a)
}

// Mod returns x mod Q, handling negative values correctly.
// Only used on public values (table setup, tests).
func Mod(x int64) uint16 {
	x %= Q
	if x < 0 {
		x += Q
	}
	return uint16(x)
}

// Exp returns a^e mod Q using binary exponentiation.
// Variable time; only used to build the public NTT tables.
func Exp(a uint16, e uint32) uint16 {
	result := uint32(1)
	base := uint32(a) % Q
	for e > 0 {
		if e&1 == 1 {
			result = (result * base) % Q
		}
		base = (base * base) % Q
		e >>= 1
	}
	return uint16(result)
}

// Inv returns the modular inverse of a using Fermat's little theorem.
func Inv(a uint16) uint16 {
	return Exp(a, Q-2)
}

// Brv reverses an 8-bit number.
func Brv(x uint8) uint8 {
	x = (x&0xF0)>>4 | (x&0x0F)<<4
	x = (x&0xCC)>>2 | (x&0x33)<<2
	x = (x&0xAA)>>1 | (x&0x55)<<1
	return x
}

// Brv7 reverses the low 7 bits of x (x < 128).
func Brv7(x uint8) uint8 {
	return Brv(x) >> 1
}

// lt returns 0xffffffff if a < b and 0 otherwise.
func lt(a, b uint32) uint32 {
	return uint32(0 - int32(a^((a^b)|((a-b)^a)))>>31)
}

// Compress maps x in [0, Q) to round(2^d / Q * x) mod 2^d.
// Barrett is done by hand because both the quotient and the remainder are
// needed for rounding. d must be in [1, 11].
func Compress(x uint16, d int) uint16 {
	product := uint32(x) << d
	quotient := uint32((uint64(product) * barrettMultiplier) >> barrettShift)
	remainder := product - quotient*Q

	// 0 <= remainder <= HalfQ rounds down, the next Q values round up once,
	// anything past Q + HalfQ rounds up twice.
	quotient += 1 & lt(HalfQ, remainder)
	quotient += 1 & lt(Q+HalfQ, remainder)
	return uint16(quotient) & ((1 << d) - 1)
}

// Decompress maps y in [0, 2^d) to round(Q / 2^d * y).
func Decompress(y uint16, d int) uint16 {
	product := uint32(y) * Q
	power := uint32(1) << d
	remainder := product & (power - 1)
	lower := product >> d
	return uint16(lower + (remainder >> (d - 1)))
}
