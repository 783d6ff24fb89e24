// Package blas implements the dense BLAS-1/2/3-class and SpMV kernels
// the handler package dispatches to (spec.md §4.2-4.3, C4/C5/C6). Every
// kernel here is the host reference path: a scalar loop equivalent to
// what a vendor BLAS call would do, grounded in the teacher's
// github.com/james-bowman/sparse/blas package (Dusdot/Dusaxpy/Dusmv/
// Dusmm) and the original ReSolve C++ VectorHandler's cublas-backed
// implementations, generalized from sparse-times-dense kernels to the
// dense-on-dense kernels a Krylov solver needs.
package blas

import "math"

// Dot computes the inner product of x and y using Kahan compensated
// summation, per spec.md §4.3's literal algorithm: this is the host
// reference implementation a vendor cublasDdot call would replace on
// the device side.
func Dot(x, y []float64) float64 {
	var sum, c float64
	for i := range x {
		yTerm := x[i]*y[i] - c
		t := sum + yTerm
		c = (t - sum) - yTerm
		sum = t
	}
	return sum
}

// Scal scales x by alpha in place.
func Scal(alpha float64, x []float64) {
	for i := range x {
		x[i] *= alpha
	}
}

// Axpy computes y <- alpha*x + y in place.
func Axpy(alpha float64, x, y []float64) {
	for i := range x {
		y[i] += alpha * x[i]
	}
}

// Nrm2 computes the Euclidean norm of x via Dot, matching how the
// krylov package derives ||r||2 from the vector handler's Dot primitive
// rather than a separate norm kernel (spec.md §4.6).
func Nrm2(x []float64) float64 {
	return math.Sqrt(Dot(x, x))
}
