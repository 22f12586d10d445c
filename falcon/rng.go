package falcon

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"

	"github.com/accept-labs/ivrf-falcon/internal/gauss"
)

// shakeSource adapts a SHAKE-256 stream to internal/gauss.RandomSource, the
// production backing for the sampler (tests in internal/gauss and
// internal/sampling use a math/rand-backed stand-in instead; here we need
// the real, seedable PRNG Falcon signing is specified against).
type shakeSource struct {
	h sha3.ShakeHash
}

var _ gauss.RandomSource = (*shakeSource)(nil)

func newShakeSource(seed ...[]byte) *shakeSource {
	h := sha3.NewShake256()
	for _, s := range seed {
		h.Write(s)
	}
	return &shakeSource{h: h}
}

func (s *shakeSource) Uint64() uint64 {
	var b [8]byte
	s.h.Read(b[:])
	return binary.BigEndian.Uint64(b[:])
}

func (s *shakeSource) Bit() uint32 {
	var b [1]byte
	s.h.Read(b[:])
	return uint32(b[0] & 1)
}

func (s *shakeSource) Bytes(p []byte) {
	s.h.Read(p)
}
