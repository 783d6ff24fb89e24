package handler

import "github.com/gridsolve/resolve/backend"

// VectorHandler dispatches the dense BLAS-class kernels the Krylov core
// and orthogonalizers need to a backend.Workspace, per SPEC_FULL.md
// §6.2: one Workspace call per operation rather than a per-backend
// conditional, generalized from the original VectorHandler.cpp's
// if/else-on-memspace shape.
type VectorHandler struct {
	ws backend.Workspace
}

// NewVectorHandler returns a handler dispatching through ws.
func NewVectorHandler(ws backend.Workspace) *VectorHandler {
	return &VectorHandler{ws: ws}
}

// Dot returns the Kahan-compensated inner product of x and y.
func (h *VectorHandler) Dot(x, y []float64) float64 { return h.ws.Dot(x, y) }

// Scal scales x by alpha in place.
func (h *VectorHandler) Scal(alpha float64, x []float64) { h.ws.Scal(alpha, x) }

// Axpy computes y <- alpha*x + y in place.
func (h *VectorHandler) Axpy(alpha float64, x, y []float64) { h.ws.Axpy(alpha, x, y) }

// Gemv computes x <- beta*x + alpha*V*y (or V^T*y when trans).
func (h *VectorHandler) Gemv(trans bool, n, k int, alpha, beta float64, v, y, x []float64) {
	h.ws.Gemv(trans, n, k, alpha, beta, v, y, x)
}

// MassAxpy computes y <- y - X*alpha for X n x (k+1) column-major.
func (h *VectorHandler) MassAxpy(n, k int, x, alpha, y []float64) {
	h.ws.MassAxpy(n, k, x, alpha, y)
}

// MassDot2Vec computes res <- V^T*X for V n x (k+1), X n x 2.
func (h *VectorHandler) MassDot2Vec(n, k int, v, x, res []float64) {
	h.ws.MassDot2Vec(n, k, v, x, res)
}
