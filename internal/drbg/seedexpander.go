package drbg

import "crypto/aes"

// maxLenLimit is the largest maxlen seedexpander_init accepts: the
// reference stores the remaining budget packed into 4 bytes of the counter,
// so anything at or above 2^32 is rejected outright (spec error kind
// BadMaxLen).
const maxLenLimit = 1 << 32

// SeedExpander is a fixed-budget deterministic byte stream keyed by a 32-
// byte seed and an 8-byte diversifier, grounded on
// original_source/ivrf/drbg_rng.c's seedexpander_init/seedexpander. Unlike
// CtrDRBG it never reseeds itself (no Update call) and enforces a hard
// lifetime budget (maxlen) so a caller cannot silently over-read.
type SeedExpander struct {
	key             [32]byte
	ctr             [16]byte
	buffer          [16]byte
	bufferPos       int
	lengthRemaining uint64
	block           interface{ Encrypt(dst, src []byte) }
}

// NewSeedExpander mirrors seedexpander_init: maxlen >= 2^32 is rejected with
// ErrBadMaxLen, matching the reference's explicit RNG_BAD_MAXLEN path.
func NewSeedExpander(seed [32]byte, diversifier [8]byte, maxlen uint64) (*SeedExpander, error) {
	if maxlen >= maxLenLimit {
		return nil, ErrBadMaxLen
	}
	e := &SeedExpander{key: seed, lengthRemaining: maxlen, bufferPos: 16}
	copy(e.ctr[:8], diversifier[:])
	m := maxlen
	e.ctr[11] = byte(m)
	m >>= 8
	e.ctr[10] = byte(m)
	m >>= 8
	e.ctr[9] = byte(m)
	m >>= 8
	e.ctr[8] = byte(m)
	e.block, _ = aes.NewCipher(e.key[:])
	return e, nil
}

// Read mirrors seedexpander: it rejects a nil destination (ErrBadOutBuf) and
// a request whose length is equal to or greater than the remaining budget
// (ErrBadRequestLen),
// otherwise draining the internal 16-byte buffer and refilling it by
// encrypting successive counter values as needed.
func (e *SeedExpander) Read(x []byte) error {
	if x == nil {
		return ErrBadOutBuf
	}
	xlen := uint64(len(x))
	if xlen >= e.lengthRemaining {
		return ErrBadRequestLen
	}
	e.lengthRemaining -= xlen

	offset := 0
	for xlen > 0 {
		avail := 16 - e.bufferPos
		if int(xlen) <= avail {
			copy(x[offset:], e.buffer[e.bufferPos:e.bufferPos+int(xlen)])
			e.bufferPos += int(xlen)
			return nil
		}
		copy(x[offset:], e.buffer[e.bufferPos:16])
		xlen -= uint64(avail)
		offset += avail

		e.block.Encrypt(e.buffer[:], e.ctr[:])
		e.bufferPos = 0

		for i := 15; i >= 12; i-- {
			if e.ctr[i] == 0xff {
				e.ctr[i] = 0x00
			} else {
				e.ctr[i]++
				break
			}
		}
	}
	return nil
}
