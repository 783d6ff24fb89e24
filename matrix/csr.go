package matrix

import (
	"github.com/gridsolve/resolve"
	"gonum.org/v1/gonum/mat"
)

var _ mat.Matrix = (*CSR)(nil)

// CSR is a dual-resident Compressed Sparse Row matrix: RowPtr[n+1] is
// non-decreasing with RowPtr[0]=0, RowPtr[n]=nnz; Col/Val are indexed by
// the half-open range [RowPtr[i], RowPtr[i+1]) for row i. This is the
// operational format SpMV, the direct solver and FGMRES all consume.
// Generalized from the teacher's host-only CSR (compressed.go) with dual
// residency and the symmetric/expanded bookkeeping of spec.md §3.
type CSR struct {
	sparse
	rowPtr resolve.DualInts
	col    resolve.DualInts
	val    resolve.DualFloats
}

// NewCSR creates an empty n x m CSR matrix. Fill it with UpdateData or
// AllocateMatrixData + direct array mutation.
func NewCSR(n, m int) *CSR {
	return &CSR{sparse: sparse{n: n, m: m}}
}

// NewCSRFromArrays builds a CSR matrix directly from host-resident
// rowPtr/col/val arrays.
func NewCSRFromArrays(n, m int, rowPtr, col []int, val []float64) *CSR {
	if len(rowPtr) != n+1 {
		panic("resolve/matrix: rowPtr must have length n+1")
	}
	if len(col) != len(val) {
		panic("resolve/matrix: mismatched CSR col/val lengths")
	}
	c := NewCSR(n, m)
	c.rowPtr.Set(resolve.Host, rowPtr)
	c.col.Set(resolve.Host, col)
	c.val.Set(resolve.Host, val)
	c.nnz = len(val)
	return c
}

// SetSymmetric marks the matrix as logically symmetric.
func (c *CSR) SetSymmetric(expanded bool) {
	c.symmetric = true
	c.expanded = expanded
}

// Dims returns the number of rows and columns.
func (c *CSR) Dims() (int, int) { return c.sparse.Dims() }

// RowNNZ returns the number of stored nonzeros in row i.
func (c *CSR) RowNNZ(i int) int {
	ptr, _ := c.rowPtr.Get(resolve.Host)
	if uint(i) >= uint(c.n) {
		panic(mat.ErrRowAccess)
	}
	return ptr[i+1] - ptr[i]
}

// At returns the element at (i, j), scanning row i's stored columns
// (order within a row is unspecified but stable, per spec.md §3).
func (c *CSR) At(i, j int) float64 {
	if uint(i) >= uint(c.n) {
		panic(mat.ErrRowAccess)
	}
	if uint(j) >= uint(c.m) {
		panic(mat.ErrColAccess)
	}
	ptr, pst := c.rowPtr.Get(resolve.Host)
	col, cst := c.col.Get(resolve.Host)
	val, vst := c.val.Get(resolve.Host)
	if pst != resolve.StatusSuccess || cst != resolve.StatusSuccess || vst != resolve.StatusSuccess {
		return 0
	}
	for k := ptr[i]; k < ptr[i+1]; k++ {
		if col[k] == j {
			return val[k]
		}
	}
	return 0
}

// T returns the transpose as a CSC sharing the same backing arrays
// (rows become columns and vice versa), matching the teacher's
// zero-copy CSR<->CSC transpose trick.
func (c *CSR) T() mat.Matrix {
	return &CSC{
		sparse: sparse{n: c.m, m: c.n, nnz: c.nnz, nnzExpanded: c.nnzExpanded, symmetric: c.symmetric, expanded: c.expanded},
		colPtr: c.rowPtr,
		row:    c.col,
		val:    c.val,
	}
}

// DoRowNonZero calls fn once per stored nonzero in row i, in stored
// order - used by the direct solver's sparse-dot row operations
// (grounded in the teacher's Cholesky CSR.DoRowNonZero).
func (c *CSR) DoRowNonZero(i int, fn func(row, col int, v float64)) {
	ptr, _ := c.rowPtr.Get(resolve.Host)
	col, _ := c.col.Get(resolve.Host)
	val, _ := c.val.Get(resolve.Host)
	for k := ptr[i]; k < ptr[i+1]; k++ {
		fn(i, col[k], val[k])
	}
}

// RowView returns the column indices and values of row i as parallel
// slices (host side).
func (c *CSR) RowView(i int) (cols []int, vals []float64) {
	ptr, _ := c.rowPtr.Get(resolve.Host)
	col, _ := c.col.Get(resolve.Host)
	val, _ := c.val.Get(resolve.Host)
	return col[ptr[i]:ptr[i+1]], val[ptr[i]:ptr[i+1]]
}

// UpdateData copies rowPtr/col/val arrays from srcSpace into dstSpace,
// allocating the destination side on demand.
func (c *CSR) UpdateData(rowPtr, col []int, val []float64, srcSpace, dstSpace resolve.Space) resolve.Status {
	checkSpace(srcSpace)
	checkSpace(dstSpace)
	if len(rowPtr) != c.n+1 || len(col) != len(val) {
		return resolve.StatusInvalidArg
	}
	c.rowPtr.Set(dstSpace, rowPtr)
	c.col.Set(dstSpace, col)
	c.val.Set(dstSpace, val)
	c.nnz = len(val)
	return resolve.StatusSuccess
}

// UpdateDataSized discards then reallocates/fills the destination side,
// for callers that don't know the destination's current size.
func (c *CSR) UpdateDataSized(rowPtr, col []int, val []float64, newNNZ int, srcSpace, dstSpace resolve.Space) resolve.Status {
	c.destroy(dstSpace)
	return c.UpdateData(rowPtr, col, val, srcSpace, dstSpace)
}

func (c *CSR) destroy(space resolve.Space) {
	c.rowPtr.Set(space, nil)
	c.col.Set(space, nil)
	c.val.Set(space, nil)
}

// AllocateMatrixData zero-initializes rowPtr/col/val storage for space
// without marking any freshness bit.
func (c *CSR) AllocateMatrixData(space resolve.Space) {
	checkSpace(space)
	nnz := c.NNZExpanded()
	c.rowPtr.Allocate(space, c.n+1)
	c.col.Allocate(space, nnz)
	c.val.Allocate(space, nnz)
}

// CopyData is an idempotent synchronization of dstSpace if stale.
func (c *CSR) CopyData(dstSpace resolve.Space) {
	c.rowPtr.Sync(dstSpace)
	c.col.Sync(dstSpace)
	c.val.Sync(dstSpace)
}

// GetRowData returns a borrow of the row-pointer array in space.
func (c *CSR) GetRowData(space resolve.Space) ([]int, resolve.Status) { return c.rowPtr.Get(space) }

// GetColData returns a borrow of the column-index array in space.
func (c *CSR) GetColData(space resolve.Space) ([]int, resolve.Status) { return c.col.Get(space) }

// GetValues returns a borrow of the value array in space.
func (c *CSR) GetValues(space resolve.Space) ([]float64, resolve.Status) { return c.val.Get(space) }

// SetRowPtr, SetCol and SetVal are used by the COO->CSR conversion
// pipeline (matrix/convert.go) to populate a freshly allocated CSR in
// place on the host side.
func (c *CSR) SetRowPtr(rowPtr []int) { c.rowPtr.Set(resolve.Host, rowPtr) }
func (c *CSR) SetCol(col []int)       { c.col.Set(resolve.Host, col) }
func (c *CSR) SetVal(val []float64)   { c.val.Set(resolve.Host, val) }
