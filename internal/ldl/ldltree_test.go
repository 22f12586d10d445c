package ldl

import (
	"math/rand"
	"testing"

	"github.com/accept-labs/ivrf-falcon/internal/fpr"
)

func randSelfAdjoint(logn uint, r *rand.Rand) fpr.Poly {
	n := 1 << logn
	p := fpr.FFT(make(fpr.Poly, n), logn)
	half := n / 2
	for k := 0; k < half; k++ {
		p[k] = 1 + r.Float64()*4 // keep strictly positive (variance-like)
		p[k+half] = 0
	}
	return p
}

func TestBuildDeterministic(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	logn := uint(4)
	n := 1 << logn
	g00 := randSelfAdjoint(logn, r)
	b01 := fpr.FFT(make(fpr.Poly, n), logn)
	for i := range b01 {
		b01[i] = r.NormFloat64()
	}
	g01 := make(fpr.Poly, n)
	copy(g01, g00)
	fpr.MulAdjFFT(g01, b01, logn)
	g11 := make(fpr.Poly, n)
	copy(g11, b01)
	fpr.MulSelfAdjFFT(g11, logn)
	// Ensure g11 strictly dominates so LDL stays well-conditioned.
	half := n / 2
	for k := 0; k < half; k++ {
		g11[k] += 10
	}

	t1 := Build(g00, g01, g11, logn)
	t2 := Build(g00, g01, g11, logn)

	if len(t1) != TreeSize(logn) {
		t.Fatalf("tree size = %d, want %d", len(t1), TreeSize(logn))
	}
	for i := range t1 {
		if t1[i] != t2[i] {
			t.Fatalf("rebuild not bit-identical at %d: %v vs %v", i, t1[i], t2[i])
		}
	}
}

func TestNormalizeProducesPositiveLeaves(t *testing.T) {
	r := rand.New(rand.NewSource(8))
	logn := uint(3)
	n := 1 << logn
	g00 := randSelfAdjoint(logn, r)
	g01 := make(fpr.Poly, n)
	g11 := randSelfAdjoint(logn, r)
	half := n / 2
	for k := 0; k < half; k++ {
		g11[k] += 10
	}

	tree := Build(g00, g01, g11, logn)
	Normalize(tree, logn, logn)

	// Walk to every leaf and check positivity.
	var walk func(sub fpr.Poly, l uint)
	walk = func(sub fpr.Poly, l uint) {
		n := 1 << l
		if n == 1 {
			if sub[0] <= 0 {
				t.Fatalf("leaf <= 0: %v", sub[0])
			}
			return
		}
		ts := TreeSize(l - 1)
		walk(sub[n:n+ts], l-1)
		walk(sub[n+ts:], l-1)
	}
	walk(tree, logn)
}
