package falcon

import (
	"math"
	"math/big"
)

// This file implements the NTRU-equation solve that Falcon keygen needs:
// given short f, g, find F, G with
//
//	f*G - g*F = q   (exactly, over Z[X]/(X^N+1))
//
// The real Falcon reference solves this with the recursive field-norm
// technique: reduce the ring by a factor of two via the norm map down to a
// degree-1 base case, solve that exactly with the integer extended
// Euclidean algorithm, then lift the solution back up one doubling at a
// time, size-reducing (F, G) against (f, g) after every lift so
// coefficients stay bounded instead of growing without limit. That is the
// structure implemented here.
//
// Every step is carried out in exact big.Rat arithmetic rather than the
// reference's scaled fixed-point/float53 budget: intermediate field norms
// and freshly lifted candidates can run to thousands of bits even though
// the final F, G fit comfortably in int32, and exact rational arithmetic
// makes that unconditionally correct rather than dependent on a precision
// budget tracked by hand. The tradeoff is speed: ntruSolveExact runs its
// big.Rat arithmetic at N=512 on every KeyGen attempt that reaches it and
// on every ParsePrivateKey call.

// ringPoly is a ring element of Z[X]/(X^N+1) (or, transiently during size
// reduction, Q[X]/(X^N+1)) held as exact big.Rat coefficients.
type ringPoly []*big.Rat

func ringFromInt32(a []int32, n int) ringPoly {
	p := make(ringPoly, n)
	for i := range p {
		if i < len(a) {
			p[i] = new(big.Rat).SetInt64(int64(a[i]))
		} else {
			p[i] = new(big.Rat)
		}
	}
	return p
}

func ringAdd(a, b ringPoly) ringPoly {
	res := make(ringPoly, len(a))
	for i := range res {
		res[i] = new(big.Rat).Add(a[i], b[i])
	}
	return res
}

func ringSub(a, b ringPoly) ringPoly {
	res := make(ringPoly, len(a))
	for i := range res {
		res[i] = new(big.Rat).Sub(a[i], b[i])
	}
	return res
}

func ringIsZero(a ringPoly) bool {
	for _, v := range a {
		if v.Sign() != 0 {
			return false
		}
	}
	return true
}

// ringMulMod computes a*b mod (X^n+1), n = len(a) = len(b).
func ringMulMod(a, b ringPoly) ringPoly {
	n := len(a)
	res := make(ringPoly, n)
	for i := range res {
		res[i] = new(big.Rat)
	}
	for i := 0; i < n; i++ {
		if a[i].Sign() == 0 {
			continue
		}
		for j := 0; j < n; j++ {
			if b[j].Sign() == 0 {
				continue
			}
			k := i + j
			term := new(big.Rat).Mul(a[i], b[j])
			if k >= n {
				k -= n
				term.Neg(term)
			}
			res[k].Add(res[k], term)
		}
	}
	return res
}

// ringAdjoint computes p*(X), the Hermitian adjoint of p under the
// evaluation-at-roots-of-unity inner product: since X^-1 = -X^(n-1) mod
// (X^n+1), p*(X) = p(X^-1) reduces to p*_0 = p_0, p*_i = -p_(n-i).
func ringAdjoint(a ringPoly) ringPoly {
	n := len(a)
	res := make(ringPoly, n)
	res[0] = new(big.Rat).Set(a[0])
	for i := 1; i < n; i++ {
		res[i] = new(big.Rat).Neg(a[n-i])
	}
	return res
}

// ringSplitEvenOdd splits a(X) of degree n into a0, a1 of degree n/2 such
// that a(X) = a0(X^2) + X*a1(X^2).
func ringSplitEvenOdd(a ringPoly) (a0, a1 ringPoly) {
	h := len(a) / 2
	a0, a1 = make(ringPoly, h), make(ringPoly, h)
	for k := 0; k < h; k++ {
		a0[k] = new(big.Rat).Set(a[2*k])
		a1[k] = new(big.Rat).Set(a[2*k+1])
	}
	return a0, a1
}

// ringStretch computes a(X^2) from a(X), doubling the degree.
func ringStretch(a ringPoly) ringPoly {
	m := len(a)
	res := make(ringPoly, 2*m)
	for i := range res {
		res[i] = new(big.Rat)
	}
	for k := 0; k < m; k++ {
		res[2*k] = new(big.Rat).Set(a[k])
	}
	return res
}

// ringNegateOddX computes a(-X) mod (X^n+1).
func ringNegateOddX(a ringPoly) ringPoly {
	n := len(a)
	res := make(ringPoly, n)
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			res[i] = new(big.Rat).Set(a[i])
		} else {
			res[i] = new(big.Rat).Neg(a[i])
		}
	}
	return res
}

// ringMulByX computes X*a(X) mod (X^n+1).
func ringMulByX(a ringPoly) ringPoly {
	n := len(a)
	res := make(ringPoly, n)
	res[0] = new(big.Rat).Neg(a[n-1])
	for i := 1; i < n; i++ {
		res[i] = new(big.Rat).Set(a[i-1])
	}
	return res
}

// ringFieldNorm computes N(a), the degree-n/2 polynomial satisfying
// N(a)(X^2) = a(X)*a(-X) mod (X^n+1): with a = a0(X^2) + X*a1(X^2),
// N(a)(Y) = a0(Y)^2 - Y*a1(Y)^2.
func ringFieldNorm(a ringPoly) ringPoly {
	a0, a1 := ringSplitEvenOdd(a)
	sq0 := ringMulMod(a0, a0)
	sq1 := ringMulMod(a1, a1)
	return ringSub(sq0, ringMulByX(sq1))
}

func ringIsInteger(a ringPoly) bool {
	one := big.NewInt(1)
	for _, v := range a {
		if v.Denom().Cmp(one) != 0 {
			return false
		}
	}
	return true
}

func ringToInt32(a ringPoly) ([]int32, bool) {
	if !ringIsInteger(a) {
		return nil, false
	}
	res := make([]int32, len(a))
	for i, v := range a {
		n := v.Num()
		if !n.IsInt64() {
			return nil, false
		}
		iv := n.Int64()
		if iv < math.MinInt32 || iv > math.MaxInt32 {
			return nil, false
		}
		res[i] = int32(iv)
	}
	return res, true
}

func ringIsConstant(a ringPoly, c int64) bool {
	if a[0].Cmp(big.NewRat(c, 1)) != 0 {
		return false
	}
	for i := 1; i < len(a); i++ {
		if a[i].Sign() != 0 {
			return false
		}
	}
	return true
}

// plainPoly is a variable-length polynomial over Q with coefficient i the
// coefficient of X^i, used only for the extended Euclidean algorithm
// against (X^n+1) inside ringInverseModPhi; unlike ringPoly it is not
// reduced modulo anything.
type plainPoly []*big.Rat

func plainTrim(p plainPoly) plainPoly {
	n := len(p)
	for n > 0 && p[n-1].Sign() == 0 {
		n--
	}
	return p[:n]
}

func plainDeg(p plainPoly) int { return len(plainTrim(p)) - 1 }

func plainMul(a, b plainPoly) plainPoly {
	a, b = plainTrim(a), plainTrim(b)
	if len(a) == 0 || len(b) == 0 {
		return plainPoly{}
	}
	res := make(plainPoly, len(a)+len(b)-1)
	for i := range res {
		res[i] = new(big.Rat)
	}
	for i, ai := range a {
		if ai.Sign() == 0 {
			continue
		}
		for j, bj := range b {
			res[i+j].Add(res[i+j], new(big.Rat).Mul(ai, bj))
		}
	}
	return plainTrim(res)
}

func plainSub(a, b plainPoly) plainPoly {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	res := make(plainPoly, n)
	for i := 0; i < n; i++ {
		res[i] = new(big.Rat)
		if i < len(a) {
			res[i].Add(res[i], a[i])
		}
		if i < len(b) {
			res[i].Sub(res[i], b[i])
		}
	}
	return plainTrim(res)
}

func plainScale(a plainPoly, c *big.Rat) plainPoly {
	res := make(plainPoly, len(a))
	for i, v := range a {
		res[i] = new(big.Rat).Mul(v, c)
	}
	return plainTrim(res)
}

// plainDivMod divides a by b over Q[X], returning quotient and remainder
// with deg(r) < deg(b). b must be nonzero.
func plainDivMod(a, b plainPoly) (q, r plainPoly) {
	a, b = plainTrim(a), plainTrim(b)
	db := plainDeg(b)
	lead := b[db]
	r = append(plainPoly{}, a...)
	qlen := plainDeg(a) - db + 1
	if qlen < 1 {
		qlen = 1
	}
	q = make(plainPoly, qlen)
	for i := range q {
		q[i] = new(big.Rat)
	}
	for {
		r = plainTrim(r)
		dr := plainDeg(r)
		if dr < db {
			break
		}
		coef := new(big.Rat).Quo(r[dr], lead)
		shift := dr - db
		q[shift].Set(coef)
		for i, bv := range b {
			idx := i + shift
			r[idx] = new(big.Rat).Sub(r[idx], new(big.Rat).Mul(coef, bv))
		}
	}
	return plainTrim(q), plainTrim(r)
}

func plainOne() plainPoly { return plainPoly{big.NewRat(1, 1)} }

// plainExtendedEuclid finds u, v, d with u*a + v*b = d, d = gcd(a, b) up
// to a scalar unit, via the standard polynomial extended Euclidean
// algorithm over Q[X].
func plainExtendedEuclid(a, b plainPoly) (u, v, d plainPoly) {
	r0, r1 := plainTrim(a), plainTrim(b)
	u0, u1 := plainOne(), plainPoly{}
	v0, v1 := plainPoly{}, plainOne()
	for len(plainTrim(r1)) > 0 {
		q, r2 := plainDivMod(r0, r1)
		r0, r1 = r1, r2
		u0, u1 = u1, plainSub(u0, plainMul(q, u1))
		v0, v1 = v1, plainSub(v0, plainMul(q, v1))
	}
	return u0, v0, r0
}

// ringInverseModPhi computes the inverse of den in Q[X]/(X^n+1), returning
// ok=false if den shares a root with X^n+1 (should not happen for den of
// the form f*adj(f)+g*adj(g) with f, g not both zero, since such a den is
// strictly positive at every root of X^n+1).
func ringInverseModPhi(den ringPoly, n int) (ringPoly, bool) {
	phi := make(plainPoly, n+1)
	for i := range phi {
		phi[i] = new(big.Rat)
	}
	phi[0].SetInt64(1)
	phi[n].SetInt64(1)

	denPlain := make(plainPoly, n)
	for i, v := range den {
		denPlain[i] = new(big.Rat).Set(v)
	}

	_, v, d := plainExtendedEuclid(phi, denPlain) // u*phi + v*den = d
	dTrim := plainTrim(d)
	if len(dTrim) != 1 || dTrim[0].Sign() == 0 {
		return nil, false
	}
	inv := new(big.Rat).Inv(dTrim[0])
	vScaled := plainScale(v, inv) // v*den ~ d (mod phi) => (v/d)*den ~ 1 (mod phi)
	if len(vScaled) > n {
		return nil, false
	}
	res := make(ringPoly, n)
	for i := 0; i < n; i++ {
		if i < len(vScaled) {
			res[i] = new(big.Rat).Set(vScaled[i])
		} else {
			res[i] = new(big.Rat)
		}
	}
	return res, true
}

// roundRatToInt rounds r to the nearest integer, half away from zero.
func roundRatToInt(r *big.Rat) *big.Int {
	num := new(big.Int).Set(r.Num())
	den := new(big.Int).Set(r.Denom())
	neg := num.Sign() < 0
	if neg {
		num.Neg(num)
	}
	q, rem := new(big.Int).QuoRem(num, den, new(big.Int))
	twice := new(big.Int).Lsh(rem, 1)
	if twice.CmpAbs(den) >= 0 {
		q.Add(q, big.NewInt(1))
	}
	if neg {
		q.Neg(q)
	}
	return q
}

func ringRound(a ringPoly) ringPoly {
	res := make(ringPoly, len(a))
	for i, v := range a {
		res[i] = new(big.Rat).SetInt(roundRatToInt(v))
	}
	return res
}

// maxReduceIters bounds the Babai-style size-reduction loop at each
// recursion level. One pass is enough in theory (it is a direct nearest-
// point projection against the rank-one lattice spanned by (f, g)); the
// small cap just guards against a degenerate rounding sequence that
// oscillates instead of reaching a fixed point.
const maxReduceIters = 8

// reduceFG replaces (F, G) with (F - k*f, G - k*g) for an integer
// polynomial k chosen to shrink (F, G) against the lattice generated by
// (f, g), iterating until k rounds to zero. This never changes whether
// f*G - g*F = q holds, since for any integer polynomial k,
//
//	f*(G-k*g) - g*(F-k*f) = f*G - g*F - k*f*g + k*g*f = f*G - g*F.
//
// It only changes the size of the representative, which is what keeps
// coefficients from growing without bound across the recursive lift.
func reduceFG(f, g, F, G ringPoly) (ringPoly, ringPoly) {
	adjF, adjG := ringAdjoint(f), ringAdjoint(g)
	den := ringAdd(ringMulMod(f, adjF), ringMulMod(g, adjG))
	inv, ok := ringInverseModPhi(den, len(f))
	if !ok {
		return F, G
	}
	for iter := 0; iter < maxReduceIters; iter++ {
		num := ringAdd(ringMulMod(F, adjF), ringMulMod(G, adjG))
		k := ringRound(ringMulMod(num, inv))
		if ringIsZero(k) {
			break
		}
		F = ringSub(F, ringMulMod(k, f))
		G = ringSub(G, ringMulMod(k, g))
	}
	return F, G
}

// ntruSolveExact finds F, G of degree < n with f*G - g*F = q exactly,
// using the recursive field-norm reduction: descend to a degree-1 base
// case via repeated field norms, solve that case with the integer
// extended Euclidean algorithm, then lift and size-reduce back up one
// doubling at a time. ok is false when the chosen (f, g) is unsuitable
// (the base-case gcd isn't 1, or a later step fails to land back in
// int32), in which case the caller should resample f, g and retry.
func ntruSolveExact(f, g []int32, n int) (capF, capG []int32, ok bool) {
	fLevels := []ringPoly{ringFromInt32(f, n)}
	gLevels := []ringPoly{ringFromInt32(g, n)}
	for m := n; m > 1; m /= 2 {
		fLevels = append(fLevels, ringFieldNorm(fLevels[len(fLevels)-1]))
		gLevels = append(gLevels, ringFieldNorm(gLevels[len(gLevels)-1]))
	}

	base := len(fLevels) - 1
	if !ringIsInteger(fLevels[base]) || !ringIsInteger(gLevels[base]) {
		return nil, nil, false
	}
	f0 := fLevels[base][0].Num()
	g0 := gLevels[base][0].Num()

	var u, v big.Int
	d := new(big.Int).GCD(&u, &v, f0, g0)
	if d.Cmp(big.NewInt(1)) != 0 {
		return nil, nil, false
	}
	qBig := big.NewInt(Q)
	curG := ringPoly{new(big.Rat).SetInt(new(big.Int).Mul(qBig, &u))}
	curF := ringPoly{new(big.Rat).SetInt(new(big.Int).Neg(new(big.Int).Mul(qBig, &v)))}

	for level := base - 1; level >= 0; level-- {
		fl, gl := fLevels[level], gLevels[level]
		fExt := ringStretch(curF)
		gExt := ringStretch(curG)
		gMinus := ringNegateOddX(gl)
		fMinus := ringNegateOddX(fl)
		liftedF := ringMulMod(fExt, gMinus)
		liftedG := ringMulMod(gExt, fMinus)
		curF, curG = reduceFG(fl, gl, liftedF, liftedG)
	}

	check := ringSub(ringMulMod(fLevels[0], curG), ringMulMod(gLevels[0], curF))
	if !ringIsConstant(check, Q) {
		return nil, nil, false
	}
	Fi, okF := ringToInt32(curF)
	Gi, okG := ringToInt32(curG)
	if !okF || !okG {
		return nil, nil, false
	}
	return Fi, Gi, true
}
