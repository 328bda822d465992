package kem

import (
	"sort"

	"github.com/pkg/errors"

	"latticekem/pkg/encoding"
	"latticekem/pkg/hash"
	"latticekem/pkg/sampling"
)

// SharedSecretSize is the size of every shared secret.
const SharedSecretSize = 32

// Params describes one parameter set. Byte sizes and key offsets are derived
// from these fields; nothing else varies between sets.
type Params struct {
	Name string
	// K is the module rank.
	K int
	// Eta1 is the CBD width of the secret and ephemeral secret vectors.
	Eta1 int
	// Eta2 is the CBD width of the error terms.
	Eta2 int
	// Du and Dv are the ciphertext compression widths.
	Du, Dv int
	// Suite supplies H, G, XOF, PRF and KDF.
	Suite hash.Suite
}

var (
	Kyber512  = Params{Name: "kyber512", K: 2, Eta1: 2, Eta2: 2, Du: 10, Dv: 3, Suite: hash.SHAKE}
	Kyber768  = Params{Name: "kyber768", K: 3, Eta1: 2, Eta2: 2, Du: 10, Dv: 4, Suite: hash.SHAKE}
	Kyber1024 = Params{Name: "kyber1024", K: 4, Eta1: 2, Eta2: 2, Du: 11, Dv: 5, Suite: hash.SHAKE}

	Kyber512AES  = Params{Name: "kyber512-90s", K: 2, Eta1: 2, Eta2: 2, Du: 10, Dv: 3, Suite: hash.AES}
	Kyber768AES  = Params{Name: "kyber768-90s", K: 3, Eta1: 2, Eta2: 2, Du: 10, Dv: 4, Suite: hash.AES}
	Kyber1024AES = Params{Name: "kyber1024-90s", K: 4, Eta1: 2, Eta2: 2, Du: 11, Dv: 5, Suite: hash.AES}
)

var registry = map[string]Params{}

func init() {
	for _, p := range []Params{Kyber512, Kyber768, Kyber1024, Kyber512AES, Kyber768AES, Kyber1024AES} {
		registry[p.Name] = p
	}
}

// ParamsByName looks up a named parameter set.
func ParamsByName(name string) (Params, error) {
	p, ok := registry[name]
	if !ok {
		return Params{}, errors.Wrapf(ErrUnknownParams, "%q", name)
	}
	return p, nil
}

// Names lists the registered parameter sets in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks that p describes a usable parameter set.
func (p Params) Validate() error {
	switch {
	case p.K < 1 || p.K > 8:
		return errors.Errorf("k = %d out of range [1, 8]", p.K)
	case p.Eta1 < 1 || p.Eta1 > sampling.MaxEta:
		return errors.Errorf("eta1 = %d out of range [1, %d]", p.Eta1, sampling.MaxEta)
	case p.Eta2 < 1 || p.Eta2 > sampling.MaxEta:
		return errors.Errorf("eta2 = %d out of range [1, %d]", p.Eta2, sampling.MaxEta)
	case p.Du < 1 || p.Du > 11:
		return errors.Errorf("du = %d out of range [1, 11]", p.Du)
	case p.Dv < 1 || p.Dv > 11:
		return errors.Errorf("dv = %d out of range [1, 11]", p.Dv)
	case p.Suite == nil:
		return errors.New("no hash suite")
	}
	return nil
}

// IndCPASecretKeySize is the size of the encoded secret vector.
func (p Params) IndCPASecretKeySize() int { return p.K * encoding.PolyBytes }

// PublicKeySize is the size of encoded t̂ followed by the 32-byte matrix seed.
func (p Params) PublicKeySize() int { return p.K*encoding.PolyBytes + hash.SeedSize }

// SecretKeySize is the size of ŝ || pk || H(pk) || z.
func (p Params) SecretKeySize() int {
	return p.IndCPASecretKeySize() + p.PublicKeySize() + 2*hash.SeedSize
}

// CiphertextSize is the size of compressed u followed by compressed v.
func (p Params) CiphertextSize() int {
	return p.K*encoding.PolySize(p.Du) + encoding.PolySize(p.Dv)
}

func (p Params) uSize() int { return p.K * encoding.PolySize(p.Du) }
