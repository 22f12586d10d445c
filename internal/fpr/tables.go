package fpr

// InvSigma holds, per polynomial degree logn, the per-degree normalization
// constant used when turning an LDL leaf's variance into a sampler sigma:
// leaf = InvSigma[logn] / sqrt(variance). Falcon's security proof fixes the
// leaf sigma to slightly above the minimum value that keeps the signature
// forgeable-probability bound intact; these are those fixed constants,
// indexed by logn from 1 to 10.
var InvSigma = [11]float64{
	0,       // logn=0 unused (N=1 has no leaf normalization)
	0,       // logn=1 unused by Falcon (minimum supported degree is 2)
	1.8205, // logn=2
	1.7541, // logn=3
	1.7037, // logn=4
	1.6654, // logn=5
	1.6361, // logn=6
	1.6147, // logn=7
	1.5994, // logn=8
	1.5896, // logn=9  (N=512, the iVRF leaf key degree)
	1.5842, // logn=10 (N=1024)
}

// SigmaMin holds, per logn, the minimum sigma accepted by the integer
// Gaussian sampler; sigma below this value makes BerExp's acceptance
// probability drop below the level the sampler's retry budget tolerates.
var SigmaMin = [11]float64{
	0,
	0,
	1.1165085072329102,
	1.1321247692325274,
	1.1475285353733668,
	1.1620791340580414,
	1.1738356616417384,
	1.1853249885425167,
	1.1897611650166333,
	1.1906820202925887,
	1.1926112063075005,
}

// Sigma0 is the standard deviation of the base half-Gaussian sampler.
const Sigma0 = 1.8205

// InvSqrt2 is 1/sqrt(2). The fast Fourier sampler in internal/sampling has
// no inlined base case and does not use it.
const InvSqrt2 = 0.707106781186547524400844362104849039284835937688474036

// InvSqrt8 is 1/sqrt(8).
const InvSqrt8 = 0.353553390593273762200422181052424519642417968844237018

// InvLog2 is 1/ln(2). BerExp's reduction mod ln 2 uses its own copy of
// this value in internal/gauss.
const InvLog2 = 1.442695040888963407359924681001892137426645954152985934

// Log2 is ln(2).
const Log2 = 0.693147180559945309417232121458176568075500134360255254

// Inv2SqrSigma0 is 1/(2*Sigma0^2). The integer sampler's rejection weight
// uses gauss.Inv2SqrSigma0, which holds the same value.
const Inv2SqrSigma0 = 0.150865048187620768379812998719603664602498487301424354

// InverseOfQ is 1/12289, the Falcon ring modulus inverse. The signer in
// package falcon computes the same value locally when projecting a hashed
// message onto the FFT-domain target.
const InverseOfQ = 1.0 / 12289.0

// Q is the Falcon coefficient modulus.
const Q = 12289
