package gauss

import "math"

// Inv2SqrSigma0 is 1/(2*sigma0^2), sigma0 = 1.8205.
const Inv2SqrSigma0 = 0.150865048187620768379812998719603664602498487301424354

// SampleZ draws an integer distributed as a discrete Gaussian centered on
// mu with standard deviation 1/isigma, given the per-degree sigmaMin used
// to scale BerExp's acceptance constant. Expected iteration count is a
// small constant independent of mu.
func SampleZ(rng RandomSource, mu, isigma, sigmaMin float64) int64 {
	s := int64(math.RoundToEven(mu))
	r := mu - float64(s)
	dss := isigma * isigma * 0.5
	ccs := isigma * sigmaMin

	for {
		yPlus := int64(Sample0(rng))
		b := rng.Bit()
		// y = yPlus if b else -yPlus, computed via masking rather than a
		// branch on the secret bit b.
		mask := int64(b) - 1 // 0 -> -1 (all ones), 1 -> 0
		y := (yPlus ^ mask) - mask

		fy := float64(y)
		x := (fy-r)*(fy-r)*dss - float64(yPlus*yPlus-yPlus)*Inv2SqrSigma0
		if BerExp(rng, x, ccs) {
			return s + y
		}
	}
}
