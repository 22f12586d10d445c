package sampling

import (
	"encoding/binary"
	"math"
	"math/rand"
	"testing"

	"github.com/accept-labs/ivrf-falcon/internal/fpr"
	"github.com/accept-labs/ivrf-falcon/internal/ldl"
)

type mathRandSource struct{ r *rand.Rand }

func newMathRandSource(seed int64) *mathRandSource {
	return &mathRandSource{r: rand.New(rand.NewSource(seed))}
}
func (m *mathRandSource) Uint64() uint64 {
	var b [8]byte
	m.r.Read(b[:])
	return binary.BigEndian.Uint64(b[:])
}
func (m *mathRandSource) Bit() uint32 { return uint32(m.r.Intn(2)) }
func (m *mathRandSource) Bytes(p []byte) {
	m.r.Read(p)
}

func TestFFSamplingOutputsIntegers(t *testing.T) {
	rng := newMathRandSource(42)
	logn := uint(4)
	n := 1 << logn

	// A well-conditioned diagonal-dominant Gram matrix; the sampled point,
	// returned in FFT representation, must be free of NaNs and have integer
	// coefficients once converted back with IFFT.
	r := rand.New(rand.NewSource(1))
	g00 := fpr.FFT(make(fpr.Poly, n), logn)
	g01 := fpr.FFT(make(fpr.Poly, n), logn)
	g11 := fpr.FFT(make(fpr.Poly, n), logn)
	half := n / 2
	for k := 0; k < half; k++ {
		g00[k] = 4 + r.Float64()
		g11[k] = 4 + r.Float64()
	}

	tree := ldl.Build(g00, g01, g11, logn)
	ldl.Normalize(tree, logn, logn)

	t0 := make(fpr.Poly, n)
	t1 := make(fpr.Poly, n)
	for i := range t0 {
		t0[i] = r.NormFloat64() * 3
		t1[i] = r.NormFloat64() * 3
	}

	z0 := make(fpr.Poly, n)
	z1 := make(fpr.Poly, n)
	FFSampling(rng, z0, z1, tree, t0, t1, logn, logn)

	c0 := fpr.IFFT(z0, logn)
	c1 := fpr.IFFT(z1, logn)
	for i := range z0 {
		if math.IsNaN(z0[i]) || math.IsNaN(z1[i]) {
			t.Fatalf("sampler produced NaN at %d", i)
		}
		if math.Abs(c0[i]-math.Round(c0[i])) > 1e-6 || math.Abs(c1[i]-math.Round(c1[i])) > 1e-6 {
			t.Fatalf("sampler output not integer-valued at %d: %v %v", i, c0[i], c1[i])
		}
	}
}

func TestFFSamplingDynTreeOutputsIntegers(t *testing.T) {
	logn := uint(3)
	n := 1 << logn

	g00 := fpr.FFT(make(fpr.Poly, n), logn)
	g01 := fpr.FFT(make(fpr.Poly, n), logn)
	g11 := fpr.FFT(make(fpr.Poly, n), logn)
	half := n / 2
	for k := 0; k < half; k++ {
		g00[k] = 5
		g11[k] = 5
	}

	t0 := make(fpr.Poly, n)
	t1 := make(fpr.Poly, n)

	rngDyn := newMathRandSource(7)
	g00c := append(fpr.Poly(nil), g00...)
	g01c := append(fpr.Poly(nil), g01...)
	g11c := append(fpr.Poly(nil), g11...)
	t0c := append(fpr.Poly(nil), t0...)
	t1c := append(fpr.Poly(nil), t1...)
	FFSamplingDynTree(rngDyn, t0c, t1c, g00c, g01c, g11c, logn, logn)

	c0 := fpr.IFFT(t0c, logn)
	for i := range c0 {
		if math.Abs(c0[i]-math.Round(c0[i])) > 1e-6 {
			t.Fatalf("dyn sampler not integer-valued at %d", i)
		}
	}
}
