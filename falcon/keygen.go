package falcon

import (
	"github.com/accept-labs/ivrf-falcon/internal/fpr"
	"github.com/accept-labs/ivrf-falcon/internal/gauss"
)

// PrivateKey holds the expanded Falcon secret basis: the short polynomials
// f, g, F, G in coefficient form and h = g*f^-1 mod q, the public key
// polynomial. Signing reconstructs the FFT-domain basis (b00,b01,b10,b11)
// from (f,g,F,G) on every call, matching do_sign_dyn in the spec rather
// than the tree-cached do_sign_tree variant.
type PrivateKey struct {
	F, G, f, g []int32
	H          []int32
}

type PublicKey struct {
	H []int32
}

// keygenSigma is the standard deviation used to sample f and g: the
// reciprocal of fpr.InvSigma[LogN], the constant the LDL leaves are
// normalized with.
var keygenSigma = 1 / fpr.InvSigma[LogN]

// KeyGen deterministically derives a Falcon-512 key pair from a seed, per
// spec 4.H's "(pk_i, sk_i) := Falcon.KeyGen(r)". f and g are drawn from the
// same discrete Gaussian sampler the signer uses (internal/gauss), and each
// candidate pair is retried (incrementing the SHAKE attempt counter) until
// f is invertible mod Q and ntruSolveExact finds (F, G) satisfying the NTRU
// equation f*G - g*F = q exactly over Z[X]/(X^N+1) — the same trapdoor
// condition the reference Falcon's dedicated keygen establishes via
// recursive field-norm reduction (ntrusolve.go). h = g*f^-1 mod Q is then
// computed via NTT, grounded on the teacher's falconGenKeyInternal.
func KeyGen(seed []byte) (*PrivateKey, error) {
	var f, g, capF, capG []int32
	for attempt := 0; ; attempt++ {
		rng := newShakeSource(seed, []byte{byte(attempt)}, []byte("falcon-keygen"))
		f = sampleShort(rng)
		g = sampleShort(rng)
		if !isInvertibleModQ(f) {
			if attempt > 255 {
				return nil, ErrKeyGenFailed
			}
			continue
		}
		var ok bool
		capF, capG, ok = ntruSolveExact(f, g, N)
		if ok {
			break
		}
		if attempt > 255 {
			return nil, ErrKeyGenFailed
		}
	}

	fNTT := nttForward(f)
	fInvNTT := make([]int32, N)
	for i := range fNTT {
		fInvNTT[i] = modInverse(fNTT[i], Q)
	}
	gNTT := nttForward(g)
	hNTT := make([]int32, N)
	for i := range hNTT {
		hNTT[i] = mulMod(gNTT[i], fInvNTT[i])
	}
	h := nttInverse(hNTT)
	for i := range h {
		h[i] = modQ(h[i])
	}

	return &PrivateKey{F: capF, G: capG, f: f, g: g, H: h}, nil
}

func (pk *PrivateKey) Public() *PublicKey {
	return &PublicKey{H: append([]int32(nil), pk.H...)}
}

// Bytes encodes pub to the Falcon-512 public-key wire format (897 bytes).
func (pub *PublicKey) Bytes() []byte { return encodePublicKey(pub.H) }

// ParsePublicKey decodes a Falcon-512 public-key wire format.
func ParsePublicKey(b []byte) (*PublicKey, error) { return decodePublicKey(b) }

// Bytes encodes pk to the Falcon-512 private-key wire format (1281 bytes).
func (pk *PrivateKey) Bytes() []byte { return encodePrivateKey(pk) }

// ParsePrivateKey decodes a Falcon-512 private-key wire format.
func ParsePrivateKey(b []byte) (*PrivateKey, error) { return decodePrivateKey(b) }

// sampleShort draws an N-coefficient polynomial with small integer
// coefficients from the discrete Gaussian sampler, reusing the exact
// machinery (internal/gauss.SampleZ) the signer's rejection sampling uses,
// rather than a separate ad hoc generator.
func sampleShort(rng gauss.RandomSource) []int32 {
	isigma := 1 / keygenSigma
	sigmaMin := fpr.SigmaMin[LogN]
	out := make([]int32, N)
	for i := range out {
		out[i] = int32(gauss.SampleZ(rng, 0, isigma, sigmaMin))
	}
	return out
}

func isInvertibleModQ(f []int32) bool {
	fNTT := nttForward(f)
	for _, v := range fNTT {
		if v == 0 {
			return false
		}
	}
	return true
}

