// Package sampling implements the fast Fourier sampler: a randomized
// nearest-plane algorithm over the ffLDL tree (or, in the "dyn" variant,
// over a Gram matrix decomposed on the fly) that produces a lattice point
// close to a target pair (t0, t1).
package sampling

import (
	"math"

	"github.com/accept-labs/ivrf-falcon/internal/fpr"
	"github.com/accept-labs/ivrf-falcon/internal/gauss"
	"github.com/accept-labs/ivrf-falcon/internal/ldl"
)

func sampleLeaf(rng gauss.RandomSource, target float64, leafSigma, sigmaMin float64) float64 {
	isigma := 1 / leafSigma
	return float64(gauss.SampleZ(rng, target, isigma, sigmaMin))
}

// FFSampling runs the fast Fourier sampler over a pre-built, normalized
// ffLDL tree. z0, z1, t0, t1 all have length 1<<logn; tree has length
// ldl.TreeSize(logn). This implementation always uses the general
// recursive case, skipping the base-case inlining some implementations
// apply at logn 1 and 2 — the spec permits this as long as the same
// rotation constants are used at the last level, which SplitFFT/MergeFFT
// already guarantee since they are shared code paths.
func FFSampling(rng gauss.RandomSource, z0, z1 fpr.Poly, tree fpr.Poly, t0, t1 fpr.Poly, origLogn, logn uint) {
	n := 1 << logn
	if n == 1 {
		leafSigma := tree[0]
		sigmaMin := fpr.SigmaMin[origLogn]
		z0[0] = sampleLeaf(rng, t0[0], leafSigma, sigmaMin)
		z1[0] = sampleLeaf(rng, t1[0], leafSigma, sigmaMin)
		return
	}
	hn := n / 2
	ts := ldl.TreeSize(logn - 1)
	l10 := tree[:n]
	tree0 := tree[n : n+ts]
	tree1 := tree[n+ts:]

	t1a := make(fpr.Poly, hn)
	t1b := make(fpr.Poly, hn)
	fpr.SplitFFT(t1a, t1b, t1, logn)
	z1a := make(fpr.Poly, hn)
	z1b := make(fpr.Poly, hn)
	FFSampling(rng, z1a, z1b, tree1, t1a, t1b, origLogn, logn-1)
	fpr.MergeFFT(z1, z1a, z1b, logn)

	diff := make(fpr.Poly, n)
	copy(diff, t1)
	fpr.Sub(diff, z1)
	fpr.MulFFT(diff, l10, logn)
	tb0 := make(fpr.Poly, n)
	copy(tb0, t0)
	fpr.Add(tb0, diff)

	t0a := make(fpr.Poly, hn)
	t0b := make(fpr.Poly, hn)
	fpr.SplitFFT(t0a, t0b, tb0, logn)
	z0a := make(fpr.Poly, hn)
	z0b := make(fpr.Poly, hn)
	FFSampling(rng, z0a, z0b, tree0, t0a, t0b, origLogn, logn-1)
	fpr.MergeFFT(z0, z0a, z0b, logn)
}

// FFSamplingDynTree performs the same randomized nearest-plane sampling as
// FFSampling but decomposes the Gram matrix on the fly instead of reading
// a pre-built tree. g00, g01, g11 are read but not modified (each level
// decomposes into fresh buffers); t0, t1 are overwritten in place with the
// sampled output. origLogn is the degree
// of the original sign call, used to index the per-degree sigma table;
// logn is the degree at the current level of recursion.
func FFSamplingDynTree(rng gauss.RandomSource, t0, t1, g00, g01, g11 fpr.Poly, origLogn, logn uint) {
	n := 1 << logn
	if n == 1 {
		leafSigma := fpr.InvSigma[origLogn] / math.Sqrt(g00[0])
		sigmaMin := fpr.SigmaMin[origLogn]
		s0 := sampleLeaf(rng, t0[0], leafSigma, sigmaMin)
		s1 := sampleLeaf(rng, t1[0], leafSigma, sigmaMin)
		t0[0] = s0
		t1[0] = s1
		return
	}
	hn := n / 2

	d00 := make(fpr.Poly, n)
	copy(d00, g00)
	d11 := make(fpr.Poly, n)
	l10 := make(fpr.Poly, n)
	fpr.LDLmv(d11, l10, g00, g01, g11, logn)

	d00Even := make(fpr.Poly, hn)
	d00Odd := make(fpr.Poly, hn)
	fpr.SplitFFT(d00Even, d00Odd, d00, logn)
	d11Even := make(fpr.Poly, hn)
	d11Odd := make(fpr.Poly, hn)
	fpr.SplitFFT(d11Even, d11Odd, d11, logn)

	t1a := make(fpr.Poly, hn)
	t1b := make(fpr.Poly, hn)
	fpr.SplitFFT(t1a, t1b, t1, logn)
	ffSamplingDynInner(rng, t1a, t1b, d11Even, d11Odd, origLogn, logn-1)
	z1 := make(fpr.Poly, n)
	fpr.MergeFFT(z1, t1a, t1b, logn)

	diff := make(fpr.Poly, n)
	copy(diff, t1)
	fpr.Sub(diff, z1)
	fpr.MulFFT(diff, l10, logn)
	tb0 := make(fpr.Poly, n)
	copy(tb0, t0)
	fpr.Add(tb0, diff)

	t0a := make(fpr.Poly, hn)
	t0b := make(fpr.Poly, hn)
	fpr.SplitFFT(t0a, t0b, tb0, logn)
	ffSamplingDynInner(rng, t0a, t0b, d00Even, d00Odd, origLogn, logn-1)
	z0 := make(fpr.Poly, n)
	fpr.MergeFFT(z0, t0a, t0b, logn)

	copy(t0, z0)
	copy(t1, z1)
}

// ffSamplingDynInner handles every recursion level below the top. Below
// the top level the Gram matrix is always quasi-cyclic (g11 == g0), the
// same structural fact ldl.buildInner relies on.
func ffSamplingDynInner(rng gauss.RandomSource, t0, t1, g0, g1 fpr.Poly, origLogn, logn uint) {
	n := 1 << logn
	if n == 1 {
		leafSigma := fpr.InvSigma[origLogn] / math.Sqrt(g0[0])
		sigmaMin := fpr.SigmaMin[origLogn]
		s0 := sampleLeaf(rng, t0[0], leafSigma, sigmaMin)
		s1 := sampleLeaf(rng, t1[0], leafSigma, sigmaMin)
		t0[0] = s0
		t1[0] = s1
		return
	}
	hn := n / 2

	d11 := make(fpr.Poly, n)
	copy(d11, g0)
	l10 := make(fpr.Poly, n)
	copy(l10, g1)
	fpr.LDL(g0, l10, d11, logn)
	// g0 is still d00; l10 now holds the node's l10; d11 now holds d11.

	g0Even := make(fpr.Poly, hn)
	g0Odd := make(fpr.Poly, hn)
	fpr.SplitFFT(g0Even, g0Odd, g0, logn)
	d11Even := make(fpr.Poly, hn)
	d11Odd := make(fpr.Poly, hn)
	fpr.SplitFFT(d11Even, d11Odd, d11, logn)

	t1a := make(fpr.Poly, hn)
	t1b := make(fpr.Poly, hn)
	fpr.SplitFFT(t1a, t1b, t1, logn)
	ffSamplingDynInner(rng, t1a, t1b, d11Even, d11Odd, origLogn, logn-1)
	z1 := make(fpr.Poly, n)
	fpr.MergeFFT(z1, t1a, t1b, logn)

	diff := make(fpr.Poly, n)
	copy(diff, t1)
	fpr.Sub(diff, z1)
	fpr.MulFFT(diff, l10, logn)
	tb0 := make(fpr.Poly, n)
	copy(tb0, t0)
	fpr.Add(tb0, diff)

	t0a := make(fpr.Poly, hn)
	t0b := make(fpr.Poly, hn)
	fpr.SplitFFT(t0a, t0b, tb0, logn)
	ffSamplingDynInner(rng, t0a, t0b, g0Even, g0Odd, origLogn, logn-1)
	z0 := make(fpr.Poly, n)
	fpr.MergeFFT(z0, t0a, t0b, logn)

	copy(t0, z0)
	copy(t1, z1)
}
