// Package vector provides the dense, dual-resident vector and
// multivector containers (spec.md §3 "Dense vector / multivector", C3):
// packed, column-major buffers used as the right-hand side, solution,
// and Krylov basis storage throughout the handler and krylov packages.
//
// Unlike the teacher's sparse.Vector (a sparse/triplet vector type, good
// for one-hot features but unsuited to a dense Krylov basis), Dense and
// Multi are new types - built the teacher's way (thin struct,
// mat.Vector/mat.Matrix interface satisfaction, package-level
// constructors) but over a packed dual-resident dense buffer instead of
// (index, value) pairs. Scratch reuse is left to resolve.DualFloats'
// own Allocate/Sync bookkeeping rather than a separate free-list pool:
// unlike the teacher's triplet-length scratch buffers, Krylov basis
// columns are dual-resident and already tracked by the freshness bits,
// so a second pooling layer on top would just duplicate that state.
package vector

import (
	"github.com/gridsolve/resolve"
	"gonum.org/v1/gonum/mat"
)

var (
	_ mat.Vector = (*Dense)(nil)
	_ mat.Matrix = (*Multi)(nil)
)

// Dense is a single dual-resident column vector of length n.
type Dense struct {
	n    int
	data resolve.DualFloats
}

// NewDense creates an empty length-n vector.
func NewDense(n int) *Dense {
	return &Dense{n: n}
}

// NewDenseFromSlice builds a Dense vector directly from a host-resident
// slice (the slice is retained, not copied).
func NewDenseFromSlice(data []float64) *Dense {
	d := &Dense{n: len(data)}
	d.data.Set(resolve.Host, data)
	return d
}

// Len returns the vector's length.
func (d *Dense) Len() int { return d.n }

// Dims satisfies mat.Matrix: an n-length vector is n x 1.
func (d *Dense) Dims() (r, c int) { return d.n, 1 }

// AtVec returns element i (synchronizing to host if necessary).
func (d *Dense) AtVec(i int) float64 {
	data, status := d.data.Get(resolve.Host)
	if status != resolve.StatusSuccess {
		panic("resolve/vector: not allocated")
	}
	return data[i]
}

// At satisfies mat.Matrix.
func (d *Dense) At(i, j int) float64 {
	if j != 0 {
		panic(mat.ErrColAccess)
	}
	return d.AtVec(i)
}

// T returns the transpose view.
func (d *Dense) T() mat.Matrix { return mat.TransposeVec{Vector: d} }

// SetVec sets element i on the host side, invalidating the device side.
func (d *Dense) SetVec(i int, v float64) {
	data, status := d.data.Get(resolve.Host)
	if status != resolve.StatusSuccess {
		data = make([]float64, d.n)
	}
	data[i] = v
	d.data.Set(resolve.Host, data)
}

// UpdateData copies data from srcSpace into dstSpace, allocating on
// demand, per spec.md §4.1's updateData contract applied to vectors.
func (d *Dense) UpdateData(data []float64, srcSpace, dstSpace resolve.Space) resolve.Status {
	if len(data) != d.n {
		return resolve.StatusInvalidArg
	}
	d.data.Set(dstSpace, data)
	return resolve.StatusSuccess
}

// Allocate zero-initializes storage for space without marking any
// freshness bit.
func (d *Dense) Allocate(space resolve.Space) {
	d.data.Allocate(space, d.n)
}

// CopyData is an idempotent synchronization of dstSpace if stale.
func (d *Dense) CopyData(dstSpace resolve.Space) {
	d.data.Sync(dstSpace)
}

// GetData returns a borrow of the buffer in space, synchronizing first
// if necessary.
func (d *Dense) GetData(space resolve.Space) ([]float64, resolve.Status) {
	return d.data.Get(space)
}

// SetData overwrites space directly (used by handlers/solvers writing
// results back into a caller-owned vector).
func (d *Dense) SetData(space resolve.Space, data []float64) {
	d.data.Set(space, data)
}

// Multi is an n x k dense, column-major, dual-resident multivector - the
// storage type for the FGMRES Krylov basis V, the flexible basis Z, and
// any other block-of-columns quantity.
type Multi struct {
	n, k int
	data resolve.DualFloats
}

// NewMulti creates an empty n x k multivector (k columns of length n).
func NewMulti(n, k int) *Multi {
	return &Multi{n: n, k: k}
}

// Dims returns (n, k).
func (m *Multi) Dims() (int, int) { return m.n, m.k }

// At returns element (i, j).
func (m *Multi) At(i, j int) float64 {
	data, status := m.data.Get(resolve.Host)
	if status != resolve.StatusSuccess {
		panic("resolve/vector: not allocated")
	}
	return data[j*m.n+i]
}

// T returns the transpose view backed by gonum's generic Transpose.
func (m *Multi) T() mat.Matrix { return mat.Transpose{Matrix: m} }

// Allocate zero-initializes the full n*k block for space.
func (m *Multi) Allocate(space resolve.Space) {
	m.data.Allocate(space, m.n*m.k)
}

// Raw returns a borrow of the whole column-major block in space,
// synchronizing first if necessary - used by the handler/krylov packages
// for bulk BLAS-3-class operations (massAxpy, massDot2Vec, gemv).
func (m *Multi) Raw(space resolve.Space) ([]float64, resolve.Status) {
	return m.data.Get(space)
}

// SetRaw overwrites the whole column-major block in space directly.
func (m *Multi) SetRaw(space resolve.Space, data []float64) {
	m.data.Set(space, data)
}

// Col returns the slice of the j'th column within the full block for
// space (no copy; mutating it mutates the multivector).
func (m *Multi) Col(j int, space resolve.Space) ([]float64, resolve.Status) {
	raw, status := m.Raw(space)
	if status != resolve.StatusSuccess {
		return nil, status
	}
	return raw[j*m.n : (j+1)*m.n], resolve.StatusSuccess
}

// SetCol copies src into column j on the host side.
func (m *Multi) SetCol(j int, src []float64) {
	raw, status := m.Raw(resolve.Host)
	if status != resolve.StatusSuccess {
		raw = make([]float64, m.n*m.k)
	}
	copy(raw[j*m.n:(j+1)*m.n], src)
	m.data.Set(resolve.Host, raw)
}

// AsDense returns a *mat.Dense copy sharing no storage with the
// receiver, for interop with gonum routines that require a concrete
// dense type.
func (m *Multi) AsDense() *mat.Dense {
	raw, _ := m.Raw(resolve.Host)
	dense := mat.NewDense(m.n, m.k, nil)
	for j := 0; j < m.k; j++ {
		for i := 0; i < m.n; i++ {
			dense.Set(i, j, raw[j*m.n+i])
		}
	}
	return dense
}
