// Package orthog implements the Gram-Schmidt family of Arnoldi basis
// orthogonalizers (C8) plus sketch-based randomized orthogonalization
// (C10 support), per spec.md §4.5/§4.7.
package orthog

import (
	"math"

	"github.com/gridsolve/resolve"
	"github.com/gridsolve/resolve/handler"
	"github.com/gridsolve/resolve/vector"
)

// Orthogonalizer projects vNext against the first j+1 columns of the
// Krylov basis v, writing the j'th column of the Hessenberg matrix h
// (stored column-major, at least j+2 rows allocated per column) and
// normalizing vNext in place. It does not write into v; the caller
// stores vNext as column j+1.
type Orthogonalizer interface {
	Orthogonalize(vh *handler.VectorHandler, v *vector.Multi, h []float64, j int, vNext []float64) (status resolve.Status, breakdownAt int)
}

// CGS is classical Gram-Schmidt: one block projection V^T*vNext against
// the existing basis followed by one block update vNext -= V*proj, both
// issued as VectorHandler.Gemv calls (spec.md §4.5).
type CGS struct{}

func (CGS) Orthogonalize(vh *handler.VectorHandler, v *vector.Multi, h []float64, j int, vNext []float64) (resolve.Status, int) {
	return cgsPass(vh, v, h, j, vNext)
}

func cgsPass(vh *handler.VectorHandler, v *vector.Multi, h []float64, j int, vNext []float64) (resolve.Status, int) {
	n, _ := v.Dims()
	raw, status := v.Raw(resolve.Host)
	if status != resolve.StatusSuccess {
		return status, -1
	}
	basis := raw[:n*(j+1)]

	proj := make([]float64, j+1)
	vh.Gemv(true, n, j+1, 1, 0, basis, vNext, proj)
	for i := 0; i <= j; i++ {
		h[i] += proj[i]
	}
	vh.Gemv(false, n, j+1, -1, 1, basis, proj, vNext)

	norm := math.Sqrt(vh.Dot(vNext, vNext))
	h[j+1] = norm
	if norm == 0 {
		return resolve.StatusLuckyBreakdown, j
	}
	vh.Scal(1/norm, vNext)
	return resolve.StatusSuccess, -1
}

// MGS is modified Gram-Schmidt: m scalar Dot+Axpy pairs run in
// sequence so that each projection sees the previous step's update,
// grounded in the vladimir-ch reference's inner `for k := 0; k <= i;
// k++` loop over floats.Dot/floats.AddScaled (spec.md §4.5).
type MGS struct{}

func (MGS) Orthogonalize(vh *handler.VectorHandler, v *vector.Multi, h []float64, j int, vNext []float64) (resolve.Status, int) {
	return mgsPass(vh, v, h, j, vNext)
}

func mgsPass(vh *handler.VectorHandler, v *vector.Multi, h []float64, j int, vNext []float64) (resolve.Status, int) {
	for i := 0; i <= j; i++ {
		col, status := v.Col(i, resolve.Host)
		if status != resolve.StatusSuccess {
			return status, -1
		}
		hij := vh.Dot(col, vNext)
		h[i] += hij
		vh.Axpy(-hij, col, vNext)
	}
	norm := math.Sqrt(vh.Dot(vNext, vNext))
	h[j+1] = norm
	if norm == 0 {
		return resolve.StatusLuckyBreakdown, j
	}
	vh.Scal(1/norm, vNext)
	return resolve.StatusSuccess, -1
}

// CGS2 re-runs CGS once more (classical re-orthogonalization), per
// spec.md §4.5. The second pass always runs unless the first pass
// failed or reported a breakdown.
type CGS2 struct{}

func (CGS2) Orthogonalize(vh *handler.VectorHandler, v *vector.Multi, h []float64, j int, vNext []float64) (resolve.Status, int) {
	// StatusSuccess and StatusLuckyBreakdown share the value 0, so a
	// true breakdown is read off brk (>= 0), never off the status value.
	if st, brk := cgsPass(vh, v, h, j, vNext); !st.OK() || brk >= 0 {
		return st, brk
	}
	return cgsPass(vh, v, h, j, vNext)
}

// mgsReorthEta is the post/pre-projection norm ratio below which
// MGSReorth triggers a second pass, per spec.md's literal constant
// η = 1/sqrt(2).
var mgsReorthEta = 1 / math.Sqrt2

// MGSReorth runs MGS, then triggers a second MGS pass only when the
// post-projection norm has dropped below η times the pre-projection
// norm (loss-of-orthogonality heuristic, spec.md §4.5).
type MGSReorth struct{}

func (MGSReorth) Orthogonalize(vh *handler.VectorHandler, v *vector.Multi, h []float64, j int, vNext []float64) (resolve.Status, int) {
	preNorm := math.Sqrt(vh.Dot(vNext, vNext))
	status, brk := mgsPass(vh, v, h, j, vNext)
	if brk >= 0 || !status.OK() {
		return status, brk
	}
	postNorm := h[j+1]
	if preNorm == 0 || postNorm/preNorm >= mgsReorthEta {
		return status, brk
	}
	return mgsPass(vh, v, h, j, vNext)
}
