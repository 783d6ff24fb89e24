// Package backend provides the capability-object abstraction the handler
// package dispatches through (spec.md §4.1/§9's "polymorphic backends...
// capability object, no inheritance hierarchy" redesign note, C4). A
// Workspace bundles the BLAS-class kernels a single execution backend
// exposes; callers hold a Workspace value rather than switching on a
// backend-kind enum.
package backend

import (
	"github.com/gridsolve/resolve"
	"github.com/gridsolve/resolve/matrix"
)

// Workspace is the set of dense/sparse numerical primitives a Krylov
// solver and direct factorization need, grounded in the original
// ReSolve C++ VectorHandler/MatrixHandler's backend-dispatch surface.
// Host is the only concrete implementation in this module; a CUDA/HIP
// Workspace would implement the same interface without touching any
// caller.
type Workspace interface {
	// Dot returns the inner product of x and y.
	Dot(x, y []float64) float64
	// Scal scales x by alpha in place.
	Scal(alpha float64, x []float64)
	// Axpy computes y <- alpha*x + y in place.
	Axpy(alpha float64, x, y []float64)
	// Gemv computes x <- beta*x + alpha*V*y (or V^T*y when trans), V
	// being n x k column-major.
	Gemv(trans bool, n, k int, alpha, beta float64, v, y, x []float64)
	// SpMV computes y <- alpha*A*x + beta*y (or A^T when trans) for the
	// CSR matrix a, reading/writing the given memory space.
	SpMV(trans bool, alpha float64, a *matrix.CSR, x []float64, beta float64, y []float64, space resolve.Space) resolve.Status
	// SpMVRaw is SpMV's building block, operating directly on CSR arrays
	// already borrowed by the caller (the matrix handler's descriptor
	// cache) rather than re-deriving them from a *matrix.CSR each call.
	SpMVRaw(trans bool, alpha float64, rowPtr, col []int, val, x []float64, beta float64, y []float64)
	// MassAxpy computes y <- y - X*alpha for X n x (k+1) column-major.
	MassAxpy(n, k int, x, alpha, y []float64)
	// MassDot2Vec computes res <- V^T*X for V n x (k+1), X n x 2, both
	// column-major.
	MassDot2Vec(n, k int, v, x, res []float64)
}
