// Package ldl builds and normalizes the ffLDL tree: the recursive LDL
// factorization of the Gram matrix of a Falcon secret basis, laid out as a
// flat arena so the fast Fourier sampler can walk it without pointer
// chasing.
package ldl

import (
	"math"

	"github.com/accept-labs/ivrf-falcon/internal/fpr"
)

// TreeSize returns the number of fpr elements an ffLDL tree for degree
// N=1<<logn occupies: s(0)=1, s(logn) = 2^logn + 2*s(logn-1).
func TreeSize(logn uint) int {
	return int(logn+1) << logn
}

// Build computes the ffLDL tree of the self-adjoint Gram matrix
// {{g00,g01},{adj(g01),g11}} given in FFT representation. g00, g01, g11 are
// read but not modified.
func Build(g00, g01, g11 fpr.Poly, logn uint) fpr.Poly {
	tree := make(fpr.Poly, TreeSize(logn))
	n := 1 << logn
	if n == 1 {
		tree[0] = g00[0]
		return tree
	}
	hn := n / 2

	d00 := make(fpr.Poly, n)
	copy(d00, g00)
	d11 := make(fpr.Poly, n)
	fpr.LDLmv(d11, tree[:n], g00, g01, g11, logn)

	d00Even := make(fpr.Poly, hn)
	d00Odd := make(fpr.Poly, hn)
	fpr.SplitFFT(d00Even, d00Odd, d00, logn)

	d11Even := make(fpr.Poly, hn)
	d11Odd := make(fpr.Poly, hn)
	fpr.SplitFFT(d11Even, d11Odd, d11, logn)

	ts := TreeSize(logn - 1)
	buildInner(tree[n:n+ts], d00Even, d00Odd, logn-1)
	buildInner(tree[n+ts:], d11Even, d11Odd, logn-1)
	return tree
}

// buildInner handles every level below the root. Below the root the Gram
// matrix is always quasi-cyclic: splitting a self-adjoint polynomial g into
// its even and odd halves (g0, g1) yields the matrix {{g0,g1},{adj(g1),g0}}
// — note g11 equals g00 at every such level, which is what makes the
// recursion self-similar.
func buildInner(tree, g0, g1 fpr.Poly, logn uint) {
	n := 1 << logn
	if n == 1 {
		tree[0] = g0[0]
		return
	}
	hn := n / 2

	d11 := make(fpr.Poly, n)
	fpr.LDLmv(d11, tree[:n], g0, g1, g0, logn)

	g0Even := make(fpr.Poly, hn)
	g0Odd := make(fpr.Poly, hn)
	fpr.SplitFFT(g0Even, g0Odd, g0, logn)

	d11Even := make(fpr.Poly, hn)
	d11Odd := make(fpr.Poly, hn)
	fpr.SplitFFT(d11Even, d11Odd, d11, logn)

	ts := TreeSize(logn - 1)
	buildInner(tree[n:n+ts], g0Even, g0Odd, logn-1)
	buildInner(tree[n+ts:], d11Even, d11Odd, logn-1)
}

// Normalize walks the tree in post order and replaces each leaf value x
// (a variance) with sigma/sqrt(x), sigma drawn from fpr.InvSigma[origLogn].
// Leaves are visited in a fixed, deterministic order so rebuilding from the
// same Gram input reproduces every leaf bit-identically.
func Normalize(tree fpr.Poly, origLogn, logn uint) {
	n := 1 << logn
	if n == 1 {
		tree[0] = fpr.InvSigma[origLogn] / math.Sqrt(tree[0])
		return
	}
	ts := TreeSize(logn - 1)
	Normalize(tree[n:n+ts], origLogn, logn-1)
	Normalize(tree[n+ts:], origLogn, logn-1)
}
