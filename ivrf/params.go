// Package ivrf implements the incremental verifiable random function: a
// Merkle-committed array of per-leaf hash ladders and one-time Falcon
// signing keys, keyed off two lockstep CTR-DRBG streams (internal/drbg) and
// signed/verified with the Falcon engine (package falcon). Grounded on
// original_source/ivrf/ivrf.c's keygen/eval/verify.
package ivrf

import "github.com/accept-labs/ivrf-falcon/falcon"

// Params bundles the compile-time constants spec 6 lists (LOGN=18, N=2^18,
// T=100, lambda=16, HASH_LEN=MU_LEN=32, SEED_LEN=48, FALCON_LOGN=9). The
// spec permits parameterizing them ("these are compile-time constants but
// an implementation may parameterize them"); tests exercise small instances
// (the S1-S6 scenarios use LOGN=3) while DefaultParams reproduces the
// production sizing.
type Params struct {
	LogN       uint
	T          int
	Lambda     int
	HashLen    int
	MuLen      int
	SeedLen    int
	FalconLogN uint
}

// DefaultParams matches spec 6 exactly.
func DefaultParams() Params {
	return Params{
		LogN:       18,
		T:          100,
		Lambda:     16,
		HashLen:    32,
		MuLen:      32,
		SeedLen:    48,
		FalconLogN: falcon.LogN,
	}
}

func (p Params) N() int { return 1 << p.LogN }
