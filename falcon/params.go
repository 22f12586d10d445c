// Package falcon implements the Falcon-512 signature engine: NTRU key
// generation, the fast-Fourier-sampling signer (do_sign_dyn), and
// verification. The lattice sampler itself lives in internal/fpr,
// internal/gauss, internal/ldl and internal/sampling; this package wires
// them into the hash-then-sign driver and the wire-format codec.
package falcon

import "errors"

// LogN is the Falcon degree parameter used throughout the iVRF: N=2^LogN=512,
// the "Falcon-512" parameter set.
const LogN = 9

// N is the ring dimension, Z[X]/(X^N+1).
const N = 1 << LogN

// Q is the NTRU modulus.
const Q = 12289

// Wire-format sizes for Falcon-512, matching the reference encoding exactly
// so that keys and signatures produced here round-trip with any compliant
// implementation's byte layout (see spec "Falcon on-wire formats").
const (
	PubKeySize = 897
	SecKeySize = 1281
	SigSize    = 690

	pubKeyHeader = 0x00<<4 | LogN
	secKeyHeader = 0x50 | LogN
	sigHeader    = 0x30 | LogN

	nonceSize = 40
)

// sigNormBound is the squared-norm acceptance threshold for is_short_half at
// LogN=9, taken from the Falcon-512 parameter table (standard deviation
// 165.7366171829776, bound = floor((1.1*sigma)^2 * 2N)).
const sigNormBound = 34034726

var (
	ErrKeyGenFailed  = errors.New("falcon: key generation failed, no invertible f with an NTRU solution found")
	ErrBadPublicKey  = errors.New("falcon: malformed public key")
	ErrBadPrivateKey = errors.New("falcon: malformed private key")
	ErrBadSignature  = errors.New("falcon: malformed signature")
	ErrSignRetry     = errors.New("falcon: sampler rejected candidate, retry")
	ErrEncodeOverflow = errors.New("falcon: signature does not fit compact encoding, retry")
)
