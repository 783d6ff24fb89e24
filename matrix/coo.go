package matrix

import (
	"github.com/gridsolve/resolve"
	"gonum.org/v1/gonum/mat"
)

var _ mat.Matrix = (*COO)(nil)

// COO is a dual-resident COOrdinate ("triplet") format sparse matrix.
// It is the creational format: cheap to build incrementally via Set,
// poor for arithmetic, and the natural input format for the COO->CSR
// conversion pipeline (matrix/convert.go). Generalized from the
// teacher's host-only COO (coordinate.go) by routing every array through
// a DualInts/DualFloats pair instead of a plain []int/[]float64.
type COO struct {
	sparse
	rows, cols resolve.DualInts
	vals       resolve.DualFloats
}

// NewCOO creates an empty n x m COO matrix. Fill it with UpdateData or
// Set.
func NewCOO(n, m int) *COO {
	return &COO{sparse: sparse{n: n, m: m}}
}

// NewCOOFromArrays builds a COO matrix directly from host-resident
// row/col/val arrays (as the teacher's NewCOO constructor does), useful
// for tests and literal fixtures.
func NewCOOFromArrays(n, m int, rows, cols []int, vals []float64) *COO {
	if len(rows) != len(cols) || len(rows) != len(vals) {
		panic("resolve/matrix: mismatched COO array lengths")
	}
	c := NewCOO(n, m)
	c.rows.Set(resolve.Host, rows)
	c.cols.Set(resolve.Host, cols)
	c.vals.Set(resolve.Host, vals)
	c.nnz = len(vals)
	return c
}

// SetSymmetric marks the matrix as logically symmetric, stored with only
// the lower triangle materialized (expanded=false) unless expanded is
// true.
func (c *COO) SetSymmetric(expanded bool) {
	c.symmetric = true
	c.expanded = expanded
}

// Dims returns the number of rows and columns.
func (c *COO) Dims() (int, int) { return c.sparse.Dims() }

// NNZ returns the nominal (as-stored) nonzero count.
func (c *COO) NNZ() int {
	if c.nnz == 0 {
		if v, status := c.vals.Get(resolve.Host); status == resolve.StatusSuccess {
			return len(v)
		}
	}
	return c.nnz
}

// At returns the sum of all stored values at (i, j); duplicate
// coordinates are summed, matching the teacher's COO.At semantics.
func (c *COO) At(i, j int) float64 {
	if uint(i) >= uint(c.n) {
		panic(mat.ErrRowAccess)
	}
	if uint(j) >= uint(c.m) {
		panic(mat.ErrColAccess)
	}
	rows, rst := c.rows.Get(resolve.Host)
	cols, cst := c.cols.Get(resolve.Host)
	vals, vst := c.vals.Get(resolve.Host)
	if rst != resolve.StatusSuccess || cst != resolve.StatusSuccess || vst != resolve.StatusSuccess {
		return 0
	}
	var result float64
	for k := range vals {
		if rows[k] == i && cols[k] == j {
			result += vals[k]
		}
	}
	return result
}

// T returns the transpose, sharing the same backing storage with rows
// and columns switched (like the teacher's COO.T()).
func (c *COO) T() mat.Matrix {
	rows, _ := c.rows.Get(resolve.Host)
	cols, _ := c.cols.Get(resolve.Host)
	vals, _ := c.vals.Get(resolve.Host)
	t := NewCOOFromArrays(c.m, c.n, cols, rows, vals)
	t.symmetric = c.symmetric
	t.expanded = c.expanded
	return t
}

// Set appends (i, j, v) to the COO matrix's host-resident arrays.
// Duplicate coordinates are permitted and summed on read/conversion.
func (c *COO) Set(i, j int, v float64) {
	if uint(i) >= uint(c.n) {
		panic(mat.ErrRowAccess)
	}
	if uint(j) >= uint(c.m) {
		panic(mat.ErrColAccess)
	}
	rows, _ := c.rows.Get(resolve.Host)
	cols, _ := c.cols.Get(resolve.Host)
	vals, _ := c.vals.Get(resolve.Host)
	rows = append(rows, i)
	cols = append(cols, j)
	vals = append(vals, v)
	c.rows.Set(resolve.Host, rows)
	c.cols.Set(resolve.Host, cols)
	c.vals.Set(resolve.Host, vals)
	c.nnz = len(vals)
}

// DoNonZero calls fn once per stored element (including duplicates,
// which are not pre-summed); order is not guaranteed.
func (c *COO) DoNonZero(fn func(i, j int, v float64)) {
	rows, _ := c.rows.Get(resolve.Host)
	cols, _ := c.cols.Get(resolve.Host)
	vals, _ := c.vals.Get(resolve.Host)
	for k := range vals {
		fn(rows[k], cols[k], vals[k])
	}
}

// UpdateData copies row/col/val arrays from srcSpace into dstSpace,
// allocating the destination side on demand, and marks dstSpace valid
// and the other side stale - spec.md §4.1's updateData contract.
func (c *COO) UpdateData(row, col []int, val []float64, srcSpace, dstSpace resolve.Space) resolve.Status {
	checkSpace(srcSpace)
	checkSpace(dstSpace)
	if len(row) != len(col) || len(row) != len(val) {
		return resolve.StatusInvalidArg
	}
	c.rows.Set(dstSpace, row)
	c.cols.Set(dstSpace, col)
	c.vals.Set(dstSpace, val)
	c.nnz = len(val)
	return resolve.StatusSuccess
}

// UpdateDataSized first discards the destination side (whose size may be
// unknown to the caller) then reallocates and fills it, per the
// new_nnz-overload variant of spec.md §4.1.
func (c *COO) UpdateDataSized(row, col []int, val []float64, newNNZ int, srcSpace, dstSpace resolve.Space) resolve.Status {
	c.destroy(dstSpace)
	return c.UpdateData(row, col, val, srcSpace, dstSpace)
}

func (c *COO) destroy(space resolve.Space) {
	c.rows.Set(space, nil)
	c.cols.Set(space, nil)
	c.vals.Set(space, nil)
}

// AllocateMatrixData zero-initializes row/col/val storage for space
// without marking any freshness bit, per spec.md §4.1.
func (c *COO) AllocateMatrixData(space resolve.Space) {
	checkSpace(space)
	c.rows.Allocate(space, c.nnz)
	c.cols.Allocate(space, c.nnz)
	c.vals.Allocate(space, c.nnz)
}

// CopyData is an idempotent synchronization of dstSpace from the other
// side if dstSpace is stale.
func (c *COO) CopyData(dstSpace resolve.Space) {
	c.rows.Sync(dstSpace)
	c.cols.Sync(dstSpace)
	c.vals.Sync(dstSpace)
}

// GetRowData returns a borrow of the row-index array in space,
// synchronizing first if necessary.
func (c *COO) GetRowData(space resolve.Space) ([]int, resolve.Status) { return c.rows.Get(space) }

// GetColData returns a borrow of the column-index array in space,
// synchronizing first if necessary.
func (c *COO) GetColData(space resolve.Space) ([]int, resolve.Status) { return c.cols.Get(space) }

// GetValues returns a borrow of the value array in space, synchronizing
// first if necessary.
func (c *COO) GetValues(space resolve.Space) ([]float64, resolve.Status) { return c.vals.Get(space) }
