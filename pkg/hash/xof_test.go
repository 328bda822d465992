package hash

import (
	"bytes"
	"encoding/hex"
	"io"
	"testing"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

// Known values from Python hashlib
func TestShakeSuiteKnownAnswers(t *testing.T) {
	h := SHAKE.H()
	if !bytes.Equal(h[:], mustHex(t, "a7ffc6f8bf1ed76651c14756a061d662f580ff4de43b49fa82d80a4b80f8434a")) {
		t.Errorf("H('') = %x", h)
	}

	g := SHAKE.G()
	want := "a69f73cca23a9ac5c8b567dc185a756e97c982164fe25859e0d1dcc1475c80a6" +
		"15b2123af1f5f94c11e3e9402c3ac558f500199d95b6d3e301758586281dcd26"
	if !bytes.Equal(g[:], mustHex(t, want)) {
		t.Errorf("G('') = %x", g)
	}

	kdf := make([]byte, 32)
	SHAKE.KDF(kdf)
	if !bytes.Equal(kdf, mustHex(t, "46b9dd2b0ba88d13233b3feb743eeb243fcd52ea62b81b82b50c27646ed5762f")) {
		t.Errorf("KDF('') = %x", kdf)
	}
}

func TestShakeXOFAbsorbsIndices(t *testing.T) {
	got := make([]byte, 16)
	io.ReadFull(SHAKE.XOF(make([]byte, 32), 1, 2), got)
	if !bytes.Equal(got, mustHex(t, "8a40e60709b88a0880a5e6fbe481d567")) {
		t.Errorf("XOF(0^32, 1, 2) = %x", got)
	}
}

func TestShakePRF(t *testing.T) {
	got := make([]byte, 16)
	SHAKE.PRF(got, make([]byte, 32), 5)
	if !bytes.Equal(got, mustHex(t, "16e01773a87b138bb80b4f7dfaee5353")) {
		t.Errorf("PRF(0^32, 5) = %x", got)
	}
}

// Multi-argument hashing is concatenation
func TestHashConcatenation(t *testing.T) {
	for _, s := range []Suite{SHAKE, AES} {
		a := s.H([]byte("ab"), []byte("c"))
		b := s.H([]byte("abc"))
		if a != b {
			t.Errorf("%s: H(ab, c) != H(abc)", s.Name())
		}
		var x, y [32]byte
		s.KDF(x[:], []byte("a"), []byte("bc"))
		s.KDF(y[:], []byte("abc"))
		if x != y {
			t.Errorf("%s: KDF(a, bc) != KDF(abc)", s.Name())
		}
	}
}

func TestAESSuiteKnownAnswers(t *testing.T) {
	h := AES.H()
	if !bytes.Equal(h[:], mustHex(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855")) {
		t.Errorf("H('') = %x", h)
	}
	g := AES.G([]byte("abc"))
	if !bytes.Equal(g[:16], mustHex(t, "ddaf35a193617abacc417349ae204131")) {
		t.Errorf("G('abc')[:16] = %x", g[:16])
	}

	// First CTR block is AES-256(0^32, 0^16)
	got := make([]byte, 16)
	io.ReadFull(AES.XOF(make([]byte, 32), 0, 0), got)
	if !bytes.Equal(got, mustHex(t, "dc95c078a2408989ad48a21492842087")) {
		t.Errorf("XOF(0^32, 0, 0) = %x", got)
	}
}

// PRF with nonce n and XOF with (n, 0) share an IV.
func TestAESPRFMatchesXOF(t *testing.T) {
	key := bytes.Repeat([]byte{0x42}, 32)
	prf := make([]byte, 200)
	AES.PRF(prf, key, 7)
	xof := make([]byte, 200)
	io.ReadFull(AES.XOF(key, 7, 0), xof)
	if !bytes.Equal(prf, xof) {
		t.Error("PRF and XOF keystreams differ")
	}
}

func TestAESKDFTooLongPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for 33-byte KDF output")
		}
	}()
	AES.KDF(make([]byte, 33), []byte("x"))
}

func TestXOFDistinctIndices(t *testing.T) {
	seed := bytes.Repeat([]byte{9}, 32)
	for _, s := range []Suite{SHAKE, AES} {
		a := make([]byte, 32)
		b := make([]byte, 32)
		io.ReadFull(s.XOF(seed, 0, 1), a)
		io.ReadFull(s.XOF(seed, 1, 0), b)
		if bytes.Equal(a, b) {
			t.Errorf("%s: XOF(0,1) == XOF(1,0)", s.Name())
		}
	}
}

// Read3 must yield the same byte sequence as squeezing the XOF directly,
// including across block boundaries that are not multiples of three.
func TestStreamMatchesDirectSqueeze(t *testing.T) {
	seed := bytes.Repeat([]byte{3}, 32)
	for _, s := range []Suite{SHAKE, AES} {
		want := make([]byte, 3*400)
		io.ReadFull(s.XOF(seed, 4, 5), want)

		st := NewStream(s.XOF(seed, 4, 5))
		got := make([]byte, 0, len(want))
		for i := 0; i < 400; i++ {
			b0, b1, b2 := st.Read3()
			got = append(got, b0, b1, b2)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("%s: Stream output differs from direct squeeze", s.Name())
		}
	}
}

func TestSuiteByName(t *testing.T) {
	if SuiteByName("shake") != SHAKE {
		t.Error("shake lookup failed")
	}
	if SuiteByName("aes") != AES {
		t.Error("aes lookup failed")
	}
	if SuiteByName("md5") != nil {
		t.Error("unknown suite should be nil")
	}
}

func TestDeterministicReader(t *testing.T) {
	a := make([]byte, 100)
	b := make([]byte, 100)
	io.ReadFull(NewDeterministicReader([]byte("seed")), a)
	io.ReadFull(NewDeterministicReader([]byte("seed")), b)
	if !bytes.Equal(a, b) {
		t.Error("same seed produced different streams")
	}
	io.ReadFull(NewDeterministicReader([]byte("other")), b)
	if bytes.Equal(a, b) {
		t.Error("different seeds produced the same stream")
	}
}
