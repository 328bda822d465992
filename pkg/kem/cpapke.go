package kem

import (
	"github.com/pkg/errors"

	"latticekem/pkg/encoding"
	"latticekem/pkg/hash"
	"latticekem/pkg/poly"
	"latticekem/pkg/sampling"
)

// publicKey is a decoded public key: t̂ in the transform domain and the
// seed of the public matrix.
type publicKey struct {
	t   poly.NTTVec
	rho []byte
}

func (p Params) decodePublicKey(pk []byte) (*publicKey, error) {
	n := p.K * encoding.PolyBytes
	t, err := encoding.DecodeVec(pk[:n], p.K)
	if err != nil {
		return nil, err
	}
	return &publicKey{t: t, rho: pk[n : n+hash.SeedSize]}, nil
}

// cpaKeyGen derives the inner key pair from d. The public key is
// encode(t̂) || rho and the secret key is encode(ŝ).
func cpaKeyGen(p Params, d []byte) (pk, sk []byte) {
	g := p.Suite.G(d)
	rho, sigma := g[:hash.SeedSize], g[hash.SeedSize:]

	a := sampling.SampleMatrix(p.Suite, rho, p.K, false)

	// s takes nonces [0, k) and e takes [k, 2k)
	s := sampling.SampleNoiseVec(p.Suite, sigma, p.Eta1, p.K, 0).NTT()
	t := sampling.SampleNoiseVec(p.Suite, sigma, p.Eta1, p.K, byte(p.K)).NTT()

	// t̂ = Â∘ŝ + ê
	poly.MatVecMulAcc(t, a, s)

	n := p.K * encoding.PolyBytes
	pk = make([]byte, p.PublicKeySize())
	encoding.EncodeVec(pk[:n], t)
	copy(pk[n:], rho)

	sk = make([]byte, p.IndCPASecretKeySize())
	encoding.EncodeVec(sk, s)
	clear(sigma)
	return pk, sk
}

// cpaEncrypt encrypts the 32-byte message m under pub with the given coins.
func cpaEncrypt(p Params, pub *publicKey, m, coins []byte) []byte {
	at := sampling.SampleMatrix(p.Suite, pub.rho, p.K, true)

	// r takes nonces [0, k), e1 takes [k, 2k) and e2 takes 2k
	r := sampling.SampleNoiseVec(p.Suite, coins, p.Eta1, p.K, 0).NTT()
	e1 := sampling.SampleNoiseVec(p.Suite, coins, p.Eta2, p.K, byte(p.K))
	e2 := sampling.SampleNoise(p.Suite, coins, byte(2*p.K), p.Eta2)

	// u = NTT⁻¹(Âᵀ∘r̂ + ê1)
	uHat := e1.NTT()
	poly.MatVecMulAcc(uHat, at, r)
	u := uHat.InvNTT()

	// v = NTT⁻¹(t̂∘r̂ + NTT(e2 + m))
	msg := encoding.MessageToPoly(m)
	poly.Add(&e2, &msg, &e2)
	vHat := e2.NTT()
	poly.InnerProductAcc(&vHat, pub.t, r)
	v := vHat.InvNTT()

	ct := make([]byte, p.CiphertextSize())
	encoding.CompressVec(ct[:p.uSize()], u, p.Du)
	encoding.CompressPoly(ct[p.uSize():], &v, p.Dv)
	return ct
}

// cpaDecrypt recovers m' = Compress1(v - NTT⁻¹(ŝ∘NTT(u))).
func cpaDecrypt(p Params, s poly.NTTVec, ct []byte) [encoding.MessageBytes]byte {
	u := encoding.DecompressVec(ct[:p.uSize()], p.K, p.Du).NTT()
	v := encoding.DecompressPoly(ct[p.uSize():], p.Dv)

	var w poly.NTTPoly
	poly.InnerProductAcc(&w, s, u)
	su := w.InvNTT()

	var mp poly.Poly
	poly.Sub(&v, &su, &mp)
	return encoding.PolyToMessage(&mp)
}

func decodeSecretVec(p Params, sk []byte) (poly.NTTVec, error) {
	s, err := encoding.DecodeVec(sk[:p.IndCPASecretKeySize()], p.K)
	return s, errors.Wrap(err, "secret vector")
}
