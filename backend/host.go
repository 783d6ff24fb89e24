package backend

import (
	"github.com/gridsolve/resolve"
	"github.com/gridsolve/resolve/blas"
	"github.com/gridsolve/resolve/matrix"
)

// Host is the reference Workspace: every kernel runs as a plain Go loop
// over host memory. No GPU SDK is wired into this module (spec.md's
// device backends are out of scope), so Host both stands in for the
// "device" execution path in tests and is the only production path.
type Host struct{}

var _ Workspace = Host{}

// NewHost returns the host reference workspace.
func NewHost() Host { return Host{} }

func (Host) Dot(x, y []float64) float64 { return blas.Dot(x, y) }

func (Host) Scal(alpha float64, x []float64) { blas.Scal(alpha, x) }

func (Host) Axpy(alpha float64, x, y []float64) { blas.Axpy(alpha, x, y) }

func (Host) Gemv(trans bool, n, k int, alpha, beta float64, v, y, x []float64) {
	blas.Gemv(trans, n, k, alpha, beta, v, y, x)
}

func (Host) SpMV(trans bool, alpha float64, a *matrix.CSR, x []float64, beta float64, y []float64, space resolve.Space) resolve.Status {
	rowPtr, st := a.GetRowData(space)
	if st != resolve.StatusSuccess {
		return st
	}
	col, st := a.GetColData(space)
	if st != resolve.StatusSuccess {
		return st
	}
	val, st := a.GetValues(space)
	if st != resolve.StatusSuccess {
		return st
	}
	blas.SpMV(trans, alpha, rowPtr, col, val, x, beta, y)
	return resolve.StatusSuccess
}

func (Host) SpMVRaw(trans bool, alpha float64, rowPtr, col []int, val, x []float64, beta float64, y []float64) {
	blas.SpMV(trans, alpha, rowPtr, col, val, x, beta, y)
}

func (Host) MassAxpy(n, k int, x, alpha, y []float64) { blas.MassAxpy(n, k, x, alpha, y) }

func (Host) MassDot2Vec(n, k int, v, x, res []float64) { blas.MassDot2Vec(n, k, v, x, res) }
