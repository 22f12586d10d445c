package ivrf

import (
	"crypto/sha256"

	"github.com/accept-labs/ivrf-falcon/falcon"
	"github.com/accept-labs/ivrf-falcon/internal/drbg"
)

// SecretState is the pair (s, s') of CTR-DRBG instances whose position
// encodes the current time index i (spec 3: "iVRF secret state").
type SecretState struct {
	S, SPrime *drbg.CtrDRBG
}

// KeyGen implements component H: it derives N one-time Falcon keys and
// per-leaf hash ladders of length T, then builds the 2N-node Merkle tree,
// following original_source/ivrf/ivrf.c's keygen() loop exactly (advance s
// for x_{i,0}, chain SHA-256 T-1 times, advance s' for r_i, Falcon.KeyGen(r_i),
// fold pk_i into the chain head to get the leaf digest).
func KeyGen(p Params, sSeed, sPrimeSeed [drbg.SeedLength]byte) (*Tree, *SecretState, error) {
	n := p.N()
	s := drbg.New(sSeed, nil)
	sPrime := drbg.New(sPrimeSeed, nil)
	origS := s.Clone()
	origSPrime := sPrime.Clone()

	tree := newTree(n)
	for i := 0; i < n; i++ {
		x := make([]byte, p.HashLen)
		s.Generate(x)
		for k := 0; k < p.T-1; k++ {
			sum := sha256.Sum256(x)
			x = sum[:]
		}

		r := make([]byte, p.SeedLen)
		sPrime.Generate(r)

		sk, err := falcon.KeyGen(r)
		if err != nil {
			return nil, nil, err
		}
		pkBytes := sk.Public().Bytes()

		h := sha256.New()
		h.Write(x)
		h.Write(pkBytes)
		tree.setLeaf(i, h.Sum(nil))
	}

	tree.buildInternal()
	return tree, &SecretState{S: origS, SPrime: origSPrime}, nil
}

// Advance implements keyupd(): (s, s') <- (G.Next(s), G.Next(s')), moving
// the cursor one time step forward by drawing and discarding exactly the
// bytes the next KeyGen-derived leaf would have consumed.
func Advance(p Params, st *SecretState) {
	buf := make([]byte, p.HashLen)
	st.S.Generate(buf)
	rbuf := make([]byte, p.SeedLen)
	st.SPrime.Generate(rbuf)
}
