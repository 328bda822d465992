package sampling

import (
	"bytes"
	"testing"

	"latticekem/pkg/field"
	"latticekem/pkg/hash"
)

// cycleXOF repeats a fixed byte pattern forever.
type cycleXOF struct {
	pattern []byte
	pos     int
}

func (c *cycleXOF) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = c.pattern[c.pos%len(c.pattern)]
		c.pos++
	}
	return len(p), nil
}

func (c *cycleXOF) BlockSize() int { return 64 }

func TestSampleUniformRejects(t *testing.T) {
	// 0xFFFFFF gives two 4095 candidates, both rejected; 01 20 03 gives 1 and 50.
	x := &cycleXOF{pattern: []byte{0xFF, 0xFF, 0xFF, 0x01, 0x20, 0x03}}
	p := SampleUniform(hash.NewStream(x))
	for i, c := range p {
		want := uint16(1)
		if i%2 == 1 {
			want = 50
		}
		if c != want {
			t.Fatalf("SampleUniform[%d] = %d, want %d", i, c, want)
		}
	}
}

// Test SampleMatrixEntry first values from Python
func TestSampleMatrixEntryKnownAnswer(t *testing.T) {
	p := SampleMatrixEntry(hash.SHAKE, make([]byte, 32), 0, 0)
	first := []uint16{2944, 3017, 340, 1184, 3243, 1708, 2458, 2285}
	for i, want := range first {
		if p[i] != want {
			t.Errorf("entry[%d] = %d, want %d", i, p[i], want)
		}
	}
	last := []uint16{3223, 2753, 355, 2067}
	for i, want := range last {
		if p[field.N-4+i] != want {
			t.Errorf("entry[%d] = %d, want %d", field.N-4+i, p[field.N-4+i], want)
		}
	}
}

func TestSampleMatrixIndexOrder(t *testing.T) {
	seed := make([]byte, 32)
	m := SampleMatrix(hash.SHAKE, seed, 2, false)
	mt := SampleMatrix(hash.SHAKE, seed, 2, true)

	// A[0][1] absorbs (1, 0)
	if m[0][1][0] != 1389 || m[0][1][1] != 3170 {
		t.Errorf("A[0][1] starts %d, %d; want 1389, 3170", m[0][1][0], m[0][1][1])
	}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if m[i][j] != mt[j][i] {
				t.Errorf("transposed matrix mismatch at (%d, %d)", i, j)
			}
		}
	}
}

func TestSampleMatrixAES(t *testing.T) {
	m := SampleMatrix(hash.AES, bytes.Repeat([]byte{1}, 32), 3, false)
	if len(m) != 3 || len(m[2]) != 3 {
		t.Fatalf("matrix shape %dx%d", len(m), len(m[2]))
	}
	for i := range m {
		for j := range m[i] {
			for _, c := range m[i][j] {
				if c >= field.Q {
					t.Fatalf("coefficient %d not reduced", c)
				}
			}
		}
	}
	if m[0][0] == m[0][1] {
		t.Error("distinct entries are equal")
	}
}

func TestCBDPatterns(t *testing.T) {
	cases := []struct {
		fill byte
		eta  int
		even uint16
		odd  uint16
	}{
		{0x03, 2, 2, 0},
		{0x0F, 2, 0, 0},
		{0x0C, 2, field.Q - 2, 0},
		{0x00, 3, 0, 0},
		{0xFF, 3, 0, 0},
		{0x01, 1, 1, 0},
		{0x02, 1, field.Q - 1, 0},
	}
	for _, c := range cases {
		buf := bytes.Repeat([]byte{c.fill}, c.eta*field.N/4)
		p := CBD(buf, c.eta)
		if c.eta == 1 {
			// Four coefficients per byte; only the first sees the set bits.
			if p[0] != c.even || p[1] != 0 || p[4] != c.even {
				t.Errorf("CBD(%#x, 1) starts %v", c.fill, p[:5])
			}
			continue
		}
		if p[0] != c.even || p[1] != c.odd || p[2] != c.even {
			t.Errorf("CBD(%#x, %d) starts %v", c.fill, c.eta, p[:3])
		}
	}
}

// Test SampleNoise first 16 values from Python
func TestSampleNoiseKnownAnswer(t *testing.T) {
	seed := make([]byte, 32)

	p := SampleNoise(hash.SHAKE, seed, 0, 2)
	want2 := []uint16{0, 3327, 0, 2, 3327, 3327, 1, 3328, 1, 3328, 0, 2, 0, 0, 1, 3328}
	for i, w := range want2 {
		if p[i] != w {
			t.Errorf("eta=2 noise[%d] = %d, want %d", i, p[i], w)
		}
	}

	p = SampleNoise(hash.SHAKE, seed, 3, 3)
	want3 := []uint16{3328, 3328, 3327, 1, 3328, 1, 1, 3328, 0, 3327, 1, 3327, 1, 1, 2, 1}
	for i, w := range want3 {
		if p[i] != w {
			t.Errorf("eta=3 noise[%d] = %d, want %d", i, p[i], w)
		}
	}
}

func TestSampleNoiseBounds(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, 32)
	for eta := 1; eta <= MaxEta; eta++ {
		for _, s := range []hash.Suite{hash.SHAKE, hash.AES} {
			p := SampleNoise(s, seed, byte(eta), eta)
			if p.Norm() > uint16(eta) {
				t.Errorf("%s eta=%d: norm %d", s.Name(), eta, p.Norm())
			}
		}
	}
}

func TestSampleNoiseVecNonces(t *testing.T) {
	seed := make([]byte, 32)
	v := SampleNoiseVec(hash.SHAKE, seed, 2, 3, 2)
	for i := range v {
		want := SampleNoise(hash.SHAKE, seed, byte(2+i), 2)
		if v[i] != want {
			t.Errorf("component %d does not use nonce %d", i, 2+i)
		}
	}
}

func TestCBDPanicsOnBadInput(t *testing.T) {
	for _, tc := range []struct {
		n, eta int
	}{{128, 3}, {0, 0}, {9 * 64, 9}} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("CBD(len %d, eta %d) did not panic", tc.n, tc.eta)
				}
			}()
			CBD(make([]byte, tc.n), tc.eta)
		}()
	}
}
