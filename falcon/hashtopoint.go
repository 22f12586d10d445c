package falcon

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"
)

// hashToPoint derives hm, "the polynomial obtained by hashing the message to
// Z_q^N" (glossary), from a nonce and a message. It is grounded on the
// teacher's habit of deriving deterministic challenge material from a
// SHAKE-256 stream (falconDeriveChallenge/falconHashToChallenge in
// pkg/crypto/pqc/falcon_signer.go) but implements the actual Falcon
// HashToPoint rejection-sampling construction: read 16-bit big-endian words
// from the stream and keep each word mod Q, rejecting words >= 5*Q so the
// reduction is unbiased.
func hashToPoint(nonce, msg []byte) []int32 {
	h := sha3.NewShake256()
	h.Write(nonce)
	h.Write(msg)

	const fiveQ = 5 * Q
	out := make([]int32, N)
	var buf [2]byte
	for i := 0; i < N; {
		h.Read(buf[:])
		v := int32(binary.BigEndian.Uint16(buf[:]))
		if v >= fiveQ {
			continue
		}
		out[i] = v % Q
		i++
	}
	return out
}
