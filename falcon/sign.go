package falcon

import (
	"math"

	"github.com/accept-labs/ivrf-falcon/internal/fpr"
	"github.com/accept-labs/ivrf-falcon/internal/sampling"
)

// maxSignAttempts bounds the retry loop; the spec's retry probability per
// attempt is small enough that the expected number of attempts is close to
// one, so a generous cap only guards against an unreachable pathological
// seed rather than shaping ordinary behavior.
const maxSignAttempts = 4096

// Sign implements do_sign_dyn (spec 4.G): it rebuilds the FFT-domain basis
// and Gram matrix from (f,g,F,G) on every call (rather than caching an LDL
// tree, which is what distinguishes do_sign_dyn from do_sign_tree), samples
// with internal/sampling.FFSamplingDynTree, recovers the lattice point, and
// retries with a fresh nonce when is_short_half rejects the candidate or
// when s2 does not fit the compact encoding (ErrEncodeOverflow).
//
// entropy is fresh randomness from the caller (spec: "fresh SHAKE source
// from system entropy; signature is randomized"); Sign never reuses it
// across attempts without mixing in the attempt counter, so a retry never
// repeats a nonce.
func (pk *PrivateKey) Sign(entropy []byte, msg []byte) ([]byte, error) {
	logn := uint(LogN)

	for attempt := 0; attempt < maxSignAttempts; attempt++ {
		attemptTag := []byte{byte(attempt), byte(attempt >> 8)}
		var nonce [nonceSize]byte
		newShakeSource(entropy, attemptTag, []byte("falcon-nonce")).Bytes(nonce[:])

		hm := hashToPoint(nonce[:], msg)

		b00 := fpr.FFT(toFPR(pk.g), logn)
		b01 := fpr.FFT(toFPR(pk.f), logn)
		fpr.Neg(b01)
		b10 := fpr.FFT(toFPR(pk.G), logn)
		b11 := fpr.FFT(toFPR(pk.F), logn)
		fpr.Neg(b11)

		g00 := append(fpr.Poly(nil), b00...)
		fpr.MulSelfAdjFFT(g00, logn)
		tmp := append(fpr.Poly(nil), b01...)
		fpr.MulSelfAdjFFT(tmp, logn)
		fpr.Add(g00, tmp)

		g11 := append(fpr.Poly(nil), b10...)
		fpr.MulSelfAdjFFT(g11, logn)
		tmp2 := append(fpr.Poly(nil), b11...)
		fpr.MulSelfAdjFFT(tmp2, logn)
		fpr.Add(g11, tmp2)

		cross1 := append(fpr.Poly(nil), b00...)
		fpr.MulAdjFFT(cross1, b10, logn)
		cross2 := append(fpr.Poly(nil), b01...)
		fpr.MulAdjFFT(cross2, b11, logn)
		g01 := cross1
		fpr.Add(g01, cross2)

		hmFPR := toFPR(hm)
		hmFFT := fpr.FFT(hmFPR, logn)
		const ni = 1.0 / Q

		t1 := append(fpr.Poly(nil), hmFFT...)
		fpr.MulFFT(t1, b01, logn)
		fpr.MulConst(t1, -ni)
		t0 := append(fpr.Poly(nil), hmFFT...)
		fpr.MulFFT(t0, b11, logn)
		fpr.MulConst(t0, ni)

		gaussRNG := newShakeSource(entropy, attemptTag, []byte("falcon-sampler"))
		sampling.FFSamplingDynTree(gaussRNG, t0, t1, g00, g01, g11, logn, logn)

		// Recover the lattice point: (tx,ty) <- (tx*b00+ty*b10, tx*b01+ty*b11).
		tx, ty := t0, t1
		newT0 := append(fpr.Poly(nil), tx...)
		fpr.MulFFT(newT0, b00, logn)
		tmp3 := append(fpr.Poly(nil), ty...)
		fpr.MulFFT(tmp3, b10, logn)
		fpr.Add(newT0, tmp3)

		newT1 := append(fpr.Poly(nil), tx...)
		fpr.MulFFT(newT1, b01, logn)
		tmp4 := append(fpr.Poly(nil), ty...)
		fpr.MulFFT(tmp4, b11, logn)
		fpr.Add(newT1, tmp4)

		t0c := fpr.IFFT(newT0, logn)
		t1c := fpr.IFFT(newT1, logn)

		s2 := make([]int32, N)
		var sqn uint32
		overflow := false
		for i := 0; i < N; i++ {
			z := hm[i] - int32(math.Round(t0c[i]))
			s2[i] = -int32(math.Round(t1c[i]))
			add := uint32(z) * uint32(z)
			if sqn+add < sqn {
				overflow = true
			}
			sqn += add
		}
		if overflow {
			sqn = math.MaxUint32
		}

		if isShortHalf(sqn, s2) {
			sig, err := encodeSignature(nonce[:], s2)
			if err == ErrEncodeOverflow {
				continue
			}
			return sig, err
		}
	}
	return nil, ErrSignRetry
}

// isShortHalf implements the norm acceptance test from do_sign_tree/dyn step
// 8: sqn already carries ||s1||^2 (saturating); this adds ||s2||^2 the same
// way and compares against the logn-dependent bound. s2 is secret (derived
// from the sampled lattice point), so the accumulation runs unconditionally
// over every coefficient and only the final comparison branches; an
// early-return inside the loop would make iteration count depend on s2
// itself, leaking timing information about the signature in progress.
func isShortHalf(sqn uint32, s2 []int32) bool {
	total := uint64(sqn)
	for _, v := range s2 {
		total += uint64(v) * uint64(v)
	}
	return total <= sigNormBound
}

func toFPR(coeffs []int32) fpr.Poly {
	out := make(fpr.Poly, len(coeffs))
	for i, v := range coeffs {
		out[i] = float64(v)
	}
	return out
}
