package falcon

// Number-theoretic transform over Z_Q[X]/(X^N+1), grounded on the teacher
// repo's FalconNTT/FalconINTT (pkg/crypto/pqc/falcon_signer.go), adapted to
// this package's N/Q constants and renamed to the ntrugen/codec call sites
// that use it: computing h = g*f^-1 mod q at key generation time and, at
// verify time, recovering s1 = hm - s2*h mod q.

// zetas holds bit-reversed powers of a primitive 2N-th root of unity mod Q,
// used by the iterative Cooley-Tukey butterfly below.
var zetas [N]int32

func init() {
	// Q-1 = 12288 = 2^12 * 3; 11 is a primitive root mod Q (order 12288), so
	// psi = 11^(12288/2N) is a primitive 2N-th root of unity.
	psi := powMod(11, int32(12288/(2*N)), Q)
	zetas[0] = 1
	for i := 1; i < N; i++ {
		br := bitReverse(i, LogN)
		zetas[i] = powMod(psi, int32(br), Q)
	}
}

// nttForward converts poly from coefficient representation to NTT evaluation
// representation, in place on a copy of the input.
func nttForward(poly []int32) []int32 {
	out := make([]int32, N)
	copy(out, poly)
	k := 1
	for length := N / 2; length >= 1; length /= 2 {
		for start := 0; start < N; start += 2 * length {
			zeta := zetas[k]
			k++
			for j := start; j < start+length; j++ {
				t := mulMod(zeta, out[j+length])
				out[j+length] = modQ(out[j] - t)
				out[j] = modQ(out[j] + t)
			}
		}
	}
	return out
}

// nttInverse converts poly from NTT evaluation representation back to
// coefficient representation, including the 1/N scaling.
func nttInverse(poly []int32) []int32 {
	out := make([]int32, N)
	copy(out, poly)
	k := N - 1
	for length := 1; length <= N/2; length *= 2 {
		for start := 0; start < N; start += 2 * length {
			zeta := zetas[k]
			k--
			for j := start; j < start+length; j++ {
				t := out[j]
				out[j] = modQ(t + out[j+length])
				out[j+length] = mulMod(zeta, modQ(out[j+length]-t))
			}
		}
	}
	nInv := modInverse(int32(N), Q)
	for i := range out {
		out[i] = mulMod(out[i], nInv)
	}
	return out
}

// nttMul multiplies two coefficient-domain polynomials mod (Q, X^N+1).
func nttMul(a, b []int32) []int32 {
	an := nttForward(a)
	bn := nttForward(b)
	cn := make([]int32, N)
	for i := range cn {
		cn[i] = mulMod(an[i], bn[i])
	}
	return nttInverse(cn)
}

func modQ(x int32) int32 {
	r := x % Q
	if r < 0 {
		r += Q
	}
	return r
}

func mulMod(a, b int32) int32 {
	r := (int64(a) * int64(b)) % int64(Q)
	if r < 0 {
		r += int64(Q)
	}
	return int32(r)
}

// centerMod reduces x to the centered range (-Q/2, Q/2].
func centerMod(x int32) int32 {
	r := modQ(x)
	if r > Q/2 {
		r -= Q
	}
	return r
}

func modInverse(a, m int32) int32 {
	a0 := a % m
	if a0 < 0 {
		a0 += m
	}
	t, newT := int64(0), int64(1)
	r, newR := int64(m), int64(a0)
	for newR != 0 {
		q := r / newR
		t, newT = newT, t-q*newT
		r, newR = newR, r-q*newR
	}
	if t < 0 {
		t += int64(m)
	}
	return int32(t)
}

func powMod(base, exp, m int32) int32 {
	result := int64(1)
	b := int64(base) % int64(m)
	if b < 0 {
		b += int64(m)
	}
	for e := exp; e > 0; e >>= 1 {
		if e&1 == 1 {
			result = (result * b) % int64(m)
		}
		b = (b * b) % int64(m)
	}
	return int32(result)
}

func bitReverse(x, bits int) int {
	var r int
	for i := 0; i < bits; i++ {
		r = (r << 1) | (x & 1)
		x >>= 1
	}
	return r
}
