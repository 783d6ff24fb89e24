// Package handler implements the polymorphic matrix/vector dispatch
// layer (C5, C6) that sits between the direct solver / Krylov core and
// a backend.Workspace, per spec.md §4.2-4.3 and SPEC_FULL.md §6.2.
package handler

import (
	"github.com/gridsolve/resolve"
	"github.com/gridsolve/resolve/backend"
	"github.com/gridsolve/resolve/matrix"
)

type descriptorKey struct {
	token  uint64
	format matrix.Format
	space  resolve.Space
}

type descriptor struct {
	rowPtr []int
	col    []int
	val    []float64
}

// MatrixHandler dispatches SpMV through a backend.Workspace, caching a
// resolved CSR descriptor per (matrix token, format, space) so repeated
// Matvec calls on an unchanged matrix skip re-deriving row/col/val
// borrows. SetValuesChanged / RegisterStructureChange invalidate the
// cache per spec.md §9's conservative resolution of the Open Question
// ("structure changes require the caller to drop the descriptor").
type MatrixHandler struct {
	ws    backend.Workspace
	cache map[descriptorKey]descriptor
	dirty map[uint64]bool
}

// NewMatrixHandler returns a handler dispatching through ws.
func NewMatrixHandler(ws backend.Workspace) *MatrixHandler {
	return &MatrixHandler{
		ws:    ws,
		cache: make(map[descriptorKey]descriptor),
		dirty: make(map[uint64]bool),
	}
}

// SetValuesChanged marks a's cached descriptors as stale without
// discarding the structural (rowPtr/col) layout — the next Matvec
// re-reads values but may still reuse index bookkeeping internally.
func (h *MatrixHandler) SetValuesChanged(a *matrix.CSR, changed bool) {
	h.dirty[a.Token()] = changed
}

// RegisterStructureChange drops every cached descriptor for a, for use
// after a's sparsity pattern itself has changed (not just its values).
func (h *MatrixHandler) RegisterStructureChange(a *matrix.CSR) {
	token := a.Token()
	for k := range h.cache {
		if k.token == token {
			delete(h.cache, k)
		}
	}
	delete(h.dirty, token)
}

// Matvec computes y <- alpha*A*x + beta*y (or A^T*x when trans), using
// the cached descriptor for (a, CSR, space) if present and not marked
// dirty, else rebuilding it.
func (h *MatrixHandler) Matvec(trans bool, alpha float64, a *matrix.CSR, x []float64, beta float64, y []float64, space resolve.Space) resolve.Status {
	key := descriptorKey{token: a.Token(), format: matrix.FormatCSR, space: space}
	d, ok := h.cache[key]
	if !ok || h.dirty[key.token] {
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
		d = descriptor{rowPtr: rowPtr, col: col, val: val}
		h.cache[key] = d
		h.dirty[key.token] = false
	}
	h.ws.SpMVRaw(trans, alpha, d.rowPtr, d.col, d.val, x, beta, y)
	return resolve.StatusSuccess
}
