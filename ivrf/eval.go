package ivrf

import (
	"crypto/sha256"

	"github.com/accept-labs/ivrf-falcon/falcon"
)

// Evaluation is the bundle eval() hands back: the chain-head hash v, the
// opened ladder value y, the Merkle authentication path, the one-time
// public key, and the Falcon signature over mu2.
type Evaluation struct {
	V, Y      []byte
	AuthPath  [][]byte
	PublicKey []byte
	Signature []byte
}

// Eval implements component I. st must be positioned at the start of step
// iIn (the caller advances it with Advance, iIn times, from the state
// KeyGen returned); st itself is never mutated — eval() clones (s, s') so
// the caller's cursor is undisturbed (spec 9, "copy-then-advance").
func Eval(p Params, tree *Tree, st *SecretState, iIn, jIn int, mu1, mu2, entropy []byte) (*Evaluation, error) {
	sIn := st.S.Clone()
	sPrimeIn := st.SPrime.Clone()

	y := make([]byte, p.HashLen)
	sIn.Generate(y)
	r := make([]byte, p.SeedLen)
	sPrimeIn.Generate(r)

	for j := 0; j < p.T-1-jIn; j++ {
		sum := sha256.Sum256(y)
		y = sum[:]
	}

	vh := sha256.New()
	vh.Write(y)
	vh.Write(mu1)
	v := vh.Sum(nil)

	sk, err := falcon.KeyGen(r)
	if err != nil {
		return nil, err
	}
	pkBytes := sk.Public().Bytes()

	sig, err := sk.Sign(entropy, mu2)
	if err != nil {
		return nil, err
	}

	return &Evaluation{
		V:         v,
		Y:         y,
		AuthPath:  tree.AuthPath(iIn),
		PublicKey: pkBytes,
		Signature: sig,
	}, nil
}
