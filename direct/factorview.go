package direct

import "github.com/gridsolve/resolve/matrix"

// FactorView is a read-only borrow of a factor matrix, handed between
// solvers without transferring ownership of the backing CSR arrays -
// spec.md §9's "factor handoff between solvers" redesign note, adopted
// in place of the original implementation's raw L/U pointer exchange.
type FactorView struct {
	m *matrix.CSR
}

// Dims returns the factor's shape.
func (f FactorView) Dims() (int, int) { return f.m.Dims() }

// At returns the factor's (i, j) entry.
func (f FactorView) At(i, j int) float64 { return f.m.At(i, j) }

// RowView returns the column indices and values stored in row i.
func (f FactorView) RowView(i int) (cols []int, vals []float64) { return f.m.RowView(i) }

// NNZ returns the factor's stored nonzero count.
func (f FactorView) NNZ() int { return f.m.NNZ() }
