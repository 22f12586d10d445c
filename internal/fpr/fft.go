// Package fpr implements the real (IEEE-754 double) polynomial arithmetic
// that the lattice sampler is built on: conversion between the coefficient
// and FFT representations of a polynomial in R[X]/(X^N+1), and the pointwise
// operations the LDL tree builder and the fast Fourier sampler need in the
// FFT domain.
//
// A degree-N polynomial (N = 1<<logn) in FFT domain is stored as N float64s:
// the first N/2 hold the real part of its value at each of the N/2 "odd"
// roots of X^N+1, the second N/2 hold the matching imaginary parts. Because
// the polynomial has real coefficients, the remaining N/2 roots give
// conjugate values and are never stored.
package fpr

import (
	"math"
	"math/cmplx"
)

// Poly is a polynomial of either representation: N coefficients, or N
// floats packed as described in the package doc. Which one a Poly holds is
// a property of how it was produced, not of the type.
type Poly []float64

// New returns a zeroed polynomial of degree N = 1<<logn.
func New(logn uint) Poly {
	return make(Poly, uint(1)<<logn)
}

func root(n, k int) complex128 {
	theta := math.Pi * float64(2*k+1) / float64(n)
	return cmplx.Rect(1, theta)
}

// FFT converts f from coefficient representation to FFT representation.
func FFT(f Poly, logn uint) Poly {
	n := int(uint(1) << logn)
	out := make(Poly, n)
	if n == 1 {
		out[0] = f[0]
		return out
	}
	half := n / 2
	for k := 0; k < half; k++ {
		w := root(n, k)
		acc := complex(f[n-1], 0)
		for j := n - 2; j >= 0; j-- {
			acc = acc*w + complex(f[j], 0)
		}
		out[k] = real(acc)
		out[k+half] = imag(acc)
	}
	return out
}

// IFFT converts f from FFT representation back to coefficients. It is the
// exact inverse of FFT up to double-precision round-off.
func IFFT(f Poly, logn uint) Poly {
	n := int(uint(1) << logn)
	out := make(Poly, n)
	if n == 1 {
		out[0] = f[0]
		return out
	}
	half := n / 2
	for j := 0; j < n; j++ {
		var sum float64
		for k := 0; k < half; k++ {
			theta := math.Pi * float64(2*k+1) / float64(n)
			rotj := cmplx.Rect(1, -theta*float64(j))
			val := complex(f[k], f[k+half])
			sum += real(val * rotj)
		}
		out[j] = sum * 2 / float64(n)
	}
	return out
}

// Add computes a += b, pointwise. Valid in either representation.
func Add(a, b Poly) {
	for i := range a {
		a[i] += b[i]
	}
}

// Sub computes a -= b, pointwise.
func Sub(a, b Poly) {
	for i := range a {
		a[i] -= b[i]
	}
}

// Neg computes a = -a, pointwise.
func Neg(a Poly) {
	for i := range a {
		a[i] = -a[i]
	}
}

// MulConst computes a *= c, pointwise.
func MulConst(a Poly, c float64) {
	for i := range a {
		a[i] *= c
	}
}

// MulFFT computes a *= b pointwise-complex in the FFT domain: a <- a*b.
func MulFFT(a, b Poly, logn uint) {
	n := len(a)
	if n == 1 {
		a[0] *= b[0]
		return
	}
	half := n / 2
	for k := 0; k < half; k++ {
		av := complex(a[k], a[k+half])
		bv := complex(b[k], b[k+half])
		r := av * bv
		a[k] = real(r)
		a[k+half] = imag(r)
	}
}

// MulAdjFFT computes a <- a * conj(b) pointwise in the FFT domain.
func MulAdjFFT(a, b Poly, logn uint) {
	n := len(a)
	if n == 1 {
		a[0] *= b[0]
		return
	}
	half := n / 2
	for k := 0; k < half; k++ {
		av := complex(a[k], a[k+half])
		bv := complex(b[k], b[k+half])
		r := av * cmplx.Conj(bv)
		a[k] = real(r)
		a[k+half] = imag(r)
	}
}

// MulSelfAdjFFT computes a <- a * conj(a) pointwise. The result is real at
// every point (the imaginary half is zeroed) because it is |a|^2.
func MulSelfAdjFFT(a Poly, logn uint) {
	n := len(a)
	if n == 1 {
		a[0] *= a[0]
		return
	}
	half := n / 2
	for k := 0; k < half; k++ {
		re, im := a[k], a[k+half]
		a[k] = re*re + im*im
		a[k+half] = 0
	}
}

// LDL computes, in place, the LDL decomposition of the self-adjoint 2x2
// Gram matrix {{g00,g01},{adj(g01),g11}}: g01 becomes l10, g11 becomes d11.
// g00 is left untouched (it already equals d00). Every FFT coefficient of
// g00 is assumed real, as it must be for a self-adjoint polynomial.
func LDL(g00, g01, g11 Poly, logn uint) {
	n := len(g00)
	if n == 1 {
		a := g00[0]
		b := g01[0]
		c := g11[0]
		l := b / a
		g01[0] = l
		g11[0] = c - l*b
		return
	}
	half := n / 2
	for k := 0; k < half; k++ {
		a := complex(g00[k], g00[k+half])
		b := complex(g01[k], g01[k+half])
		c := complex(g11[k], g11[k+half])
		l := cmplx.Conj(b) / a
		d1 := c - l*b
		g01[k] = real(l)
		g01[k+half] = imag(l)
		g11[k] = real(d1)
		g11[k+half] = imag(d1)
	}
}

// LDLmv is the out-of-place form of LDL: it writes l10 and d11 into
// separate buffers, leaving g00, g01, g11 unmodified.
func LDLmv(d11, l10, g00, g01, g11 Poly, logn uint) {
	n := len(g00)
	if n == 1 {
		a := g00[0]
		b := g01[0]
		c := g11[0]
		l := b / a
		l10[0] = l
		d11[0] = c - l*b
		return
	}
	half := n / 2
	for k := 0; k < half; k++ {
		a := complex(g00[k], g00[k+half])
		b := complex(g01[k], g01[k+half])
		c := complex(g11[k], g11[k+half])
		l := cmplx.Conj(b) / a
		d1 := c - l*b
		l10[k] = real(l)
		l10[k+half] = imag(l)
		d11[k] = real(d1)
		d11[k+half] = imag(d1)
	}
}

// SplitFFT halves a degree-N FFT-domain polynomial f into the FFT-domain
// representations f0, f1 (degree N/2) of the even- and odd-indexed
// coefficients of f's time-domain form. It is the exact inverse of MergeFFT.
func SplitFFT(f0, f1, f Poly, logn uint) {
	n := len(f)
	if n == 2 {
		f0[0] = f[0]
		f1[0] = f[1]
		return
	}
	hn := n / 2
	qn := hn / 2
	for k := 0; k < qn; k++ {
		kp := hn - 1 - k
		a := complex(f[k], f[k+hn])
		b := complex(f[kp], f[kp+hn])
		zk := root(n, k)
		f0c := (a + cmplx.Conj(b)) / 2
		f1c := cmplx.Conj(zk) * (a - cmplx.Conj(b)) / 2
		f0[k] = real(f0c)
		f0[k+qn] = imag(f0c)
		f1[k] = real(f1c)
		f1[k+qn] = imag(f1c)
	}
}

// MergeFFT reconstructs a degree-N FFT-domain polynomial f from its even
// half f0 and odd half f1 (each degree N/2). It is the exact inverse of
// SplitFFT.
func MergeFFT(f, f0, f1 Poly, logn uint) {
	n := len(f)
	if n == 2 {
		f[0] = f0[0]
		f[1] = f1[0]
		return
	}
	hn := n / 2
	qn := hn / 2
	for k := 0; k < hn; k++ {
		var f0c, f1c complex128
		if k < qn {
			f0c = complex(f0[k], f0[k+qn])
			f1c = complex(f1[k], f1[k+qn])
		} else {
			kk := hn - 1 - k
			f0c = cmplx.Conj(complex(f0[kk], f0[kk+qn]))
			f1c = cmplx.Conj(complex(f1[kk], f1[kk+qn]))
		}
		zk := root(n, k)
		fc := f0c + zk*f1c
		f[k] = real(fc)
		f[k+hn] = imag(fc)
	}
}
