package falcon

// Verify checks a Falcon-512 signature against a public key and message,
// reconstructing s1 from s2, h and hm per the key relation (see S6:
// s1 = hm - s2*h mod q mod X^N+1) and rejecting unless the combined norm
// ||s1||^2+||s2||^2 is within the logn-dependent bound.
//
// Return convention (spec 9, "Open question... do not guess: wire tests
// against known good signatures before integrating"): this implementation
// returns (true, nil) for a valid signature and (false, nil) for a
// cleanly-rejected one, never conflating "invalid signature" with a usage
// error. A non-nil error means the input was malformed (wrong size, bad
// header byte), not that the signature failed to verify — callers that want
// the enclosing CLI's "0 on success, non-zero on any failure" convention
// (spec 6) should treat both false and a non-nil error as "reject".
func Verify(pub *PublicKey, sig []byte, msg []byte) (bool, error) {
	nonce, s2, err := decodeSignature(sig)
	if err != nil {
		return false, err
	}
	if len(pub.H) != N {
		return false, ErrBadPublicKey
	}

	hm := hashToPoint(nonce, msg)

	s2h := nttMul(s2, pub.H)
	s1 := make([]int32, N)
	var sqn uint64
	for i := 0; i < N; i++ {
		v := centerMod(hm[i] - s2h[i])
		s1[i] = v
		sqn += uint64(v) * uint64(v)
		if sqn > sigNormBound {
			return false, nil
		}
	}
	for _, v := range s2 {
		sqn += uint64(v) * uint64(v)
		if sqn > sigNormBound {
			return false, nil
		}
	}
	return sqn <= sigNormBound, nil
}
