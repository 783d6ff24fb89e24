package matrix

import (
	"github.com/gridsolve/resolve"
	"gonum.org/v1/gonum/mat"
)

var _ mat.Matrix = (*CSC)(nil)

// CSC is a dual-resident Compressed Sparse Column matrix - the transpose
// storage of CSR, per spec.md §3. CSCToCSR converts it for the matrix
// handler. direct.GridLU does not use CSC: it builds its L and U factors
// directly in CSR.
type CSC struct {
	sparse
	colPtr resolve.DualInts
	row    resolve.DualInts
	val    resolve.DualFloats
}

// NewCSC creates an empty n x m CSC matrix.
func NewCSC(n, m int) *CSC {
	return &CSC{sparse: sparse{n: n, m: m}}
}

// NewCSCFromArrays builds a CSC matrix directly from host-resident
// colPtr/row/val arrays.
func NewCSCFromArrays(n, m int, colPtr, row []int, val []float64) *CSC {
	if len(colPtr) != m+1 {
		panic("resolve/matrix: colPtr must have length m+1")
	}
	if len(row) != len(val) {
		panic("resolve/matrix: mismatched CSC row/val lengths")
	}
	c := NewCSC(n, m)
	c.colPtr.Set(resolve.Host, colPtr)
	c.row.Set(resolve.Host, row)
	c.val.Set(resolve.Host, val)
	c.nnz = len(val)
	return c
}

// Dims returns the number of rows and columns.
func (c *CSC) Dims() (int, int) { return c.sparse.Dims() }

// ColNNZ returns the number of stored nonzeros in column j.
func (c *CSC) ColNNZ(j int) int {
	ptr, _ := c.colPtr.Get(resolve.Host)
	if uint(j) >= uint(c.m) {
		panic(mat.ErrColAccess)
	}
	return ptr[j+1] - ptr[j]
}

// At returns the element at (i, j), scanning column j's stored rows.
func (c *CSC) At(i, j int) float64 {
	if uint(i) >= uint(c.n) {
		panic(mat.ErrRowAccess)
	}
	if uint(j) >= uint(c.m) {
		panic(mat.ErrColAccess)
	}
	ptr, pst := c.colPtr.Get(resolve.Host)
	row, rst := c.row.Get(resolve.Host)
	val, vst := c.val.Get(resolve.Host)
	if pst != resolve.StatusSuccess || rst != resolve.StatusSuccess || vst != resolve.StatusSuccess {
		return 0
	}
	for k := ptr[j]; k < ptr[j+1]; k++ {
		if row[k] == i {
			return val[k]
		}
	}
	return 0
}

// T returns the transpose as a CSR sharing the same backing arrays.
func (c *CSC) T() mat.Matrix {
	return &CSR{
		sparse: sparse{n: c.m, m: c.n, nnz: c.nnz, nnzExpanded: c.nnzExpanded, symmetric: c.symmetric, expanded: c.expanded},
		rowPtr: c.colPtr,
		col:    c.row,
		val:    c.val,
	}
}

// DoColNonZero calls fn once per stored nonzero in column j, in stored
// order.
func (c *CSC) DoColNonZero(j int, fn func(row, col int, v float64)) {
	ptr, _ := c.colPtr.Get(resolve.Host)
	row, _ := c.row.Get(resolve.Host)
	val, _ := c.val.Get(resolve.Host)
	for k := ptr[j]; k < ptr[j+1]; k++ {
		fn(row[k], j, val[k])
	}
}

// ColView returns the row indices and values of column j as parallel
// slices (host side).
func (c *CSC) ColView(j int) (rows []int, vals []float64) {
	ptr, _ := c.colPtr.Get(resolve.Host)
	row, _ := c.row.Get(resolve.Host)
	val, _ := c.val.Get(resolve.Host)
	return row[ptr[j]:ptr[j+1]], val[ptr[j]:ptr[j+1]]
}

// UpdateData copies colPtr/row/val arrays from srcSpace into dstSpace,
// allocating the destination side on demand.
func (c *CSC) UpdateData(colPtr, row []int, val []float64, srcSpace, dstSpace resolve.Space) resolve.Status {
	checkSpace(srcSpace)
	checkSpace(dstSpace)
	if len(colPtr) != c.m+1 || len(row) != len(val) {
		return resolve.StatusInvalidArg
	}
	c.colPtr.Set(dstSpace, colPtr)
	c.row.Set(dstSpace, row)
	c.val.Set(dstSpace, val)
	c.nnz = len(val)
	return resolve.StatusSuccess
}

// AllocateMatrixData zero-initializes colPtr/row/val storage for space.
func (c *CSC) AllocateMatrixData(space resolve.Space) {
	checkSpace(space)
	nnz := c.NNZExpanded()
	c.colPtr.Allocate(space, c.m+1)
	c.row.Allocate(space, nnz)
	c.val.Allocate(space, nnz)
}

// CopyData is an idempotent synchronization of dstSpace if stale.
func (c *CSC) CopyData(dstSpace resolve.Space) {
	c.colPtr.Sync(dstSpace)
	c.row.Sync(dstSpace)
	c.val.Sync(dstSpace)
}

// GetColData returns a borrow of the column-pointer array in space.
func (c *CSC) GetColData(space resolve.Space) ([]int, resolve.Status) { return c.colPtr.Get(space) }

// GetRowData returns a borrow of the row-index array in space.
func (c *CSC) GetRowData(space resolve.Space) ([]int, resolve.Status) { return c.row.Get(space) }

// GetValues returns a borrow of the value array in space.
func (c *CSC) GetValues(space resolve.Space) ([]float64, resolve.Status) { return c.val.Get(space) }

func (c *CSC) SetColPtr(colPtr []int) { c.colPtr.Set(resolve.Host, colPtr) }
func (c *CSC) SetRow(row []int)       { c.row.Set(resolve.Host, row) }
func (c *CSC) SetVal(val []float64)   { c.val.Set(resolve.Host, val) }
