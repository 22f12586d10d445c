package ivrf

import (
	"bytes"
	"crypto/sha256"

	"github.com/accept-labs/ivrf-falcon/falcon"
)

// Verify implements component J: it recomputes v from y and mu1, checks the
// Falcon signature over mu2, climbs the Merkle path from the opened leaf to
// a candidate root, and accepts only if every check matches. All failures
// collapse to a plain "false" (spec 7: "All verification-level failures
// collapse to a single binary outcome").
func Verify(p Params, root []byte, eval *Evaluation, iIn, jIn int, mu1, mu2 []byte) (bool, error) {
	vh := sha256.New()
	vh.Write(eval.Y)
	vh.Write(mu1)
	vNew := vh.Sum(nil)
	if !bytes.Equal(vNew, eval.V) {
		return false, nil
	}

	pub, err := falcon.ParsePublicKey(eval.PublicKey)
	if err != nil {
		return false, nil
	}
	ok, err := falcon.Verify(pub, eval.Signature, mu2)
	if err != nil {
		return false, nil
	}
	if !ok {
		return false, nil
	}

	leaf := eval.Y
	for j := 0; j < jIn; j++ {
		sum := sha256.Sum256(leaf)
		leaf = sum[:]
	}
	lh := sha256.New()
	lh.Write(leaf)
	lh.Write(eval.PublicKey)
	leaf = lh.Sum(nil)

	if len(eval.AuthPath) != int(p.LogN) {
		return false, nil
	}
	candidate := ClimbPath(iIn, leaf, eval.AuthPath)
	return bytes.Equal(candidate, root), nil
}
