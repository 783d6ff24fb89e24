// Package resolve provides a reusable sparse linear-system solver core:
// dual-residency sparse matrix and vector containers, a matrix/vector
// handler layer of BLAS- and SpMV-class primitives, a direct-solver
// pipeline and an FGMRES Krylov core, built for repeated solution of
// sequences of linear systems that share nonzero structure but change
// numerical values between solves.
package resolve

// Space tags which side of a dual-resident buffer is being addressed.
// Every storage entity in this module (sparse matrices, dense vectors)
// carries independently allocated Host and Device buffers plus freshness
// bits; Space selects which one an operation reads or writes.
type Space int

const (
	// Host is the CPU-resident side of a dual buffer.
	Host Space = iota
	// Device is the accelerator-resident side of a dual buffer. No GPU
	// SDK is wired into this module (see DESIGN.md); the Device side is
	// realized as genuine, separately-allocated storage routed through
	// the same backend.Workspace contract so the freshness/synchronization
	// state machine is fully exercised without fabricating a vendor
	// dependency.
	Device
)

func (s Space) String() string {
	switch s {
	case Host:
		return "host"
	case Device:
		return "device"
	default:
		return "unknown"
	}
}

// DualFloats is a two-sided float64 buffer with freshness bits. At least
// one side is valid after any successful mutation; reading a stale side
// forces a synchronous copy from the other.
type DualFloats struct {
	host, device           []float64
	hostValid, deviceValid bool
}

// Valid reports whether space currently holds up-to-date data.
func (d *DualFloats) Valid(space Space) bool {
	if space == Host {
		return d.hostValid
	}
	return d.deviceValid
}

// Get returns a borrow of the buffer in space, synchronizing from the
// other side first if space is stale but the other side is valid. It
// reports StatusNotAllocated if neither side holds valid data.
func (d *DualFloats) Get(space Space) ([]float64, Status) {
	if !d.Valid(space) {
		if !d.Valid(opposite(space)) {
			return nil, StatusNotAllocated
		}
		d.sync(opposite(space), space)
	}
	if space == Host {
		return d.host, StatusSuccess
	}
	return d.device, StatusSuccess
}

// Set overwrites space with data, marking space valid and the other side
// stale. The slice is retained, not copied, matching the teacher's
// reuse-the-caller's-backing-slice convention.
func (d *DualFloats) Set(space Space, data []float64) {
	if space == Host {
		d.host = data
		d.hostValid = true
		d.deviceValid = false
		return
	}
	d.device = data
	d.deviceValid = true
	d.hostValid = false
}

// Allocate zero-initializes n elements of space without setting any
// freshness bit, per the matrix/vector allocateMatrixData contract.
func (d *DualFloats) Allocate(space Space, n int) {
	buf := make([]float64, n)
	if space == Host {
		d.host = buf
	} else {
		d.device = buf
	}
}

// Sync is an idempotent synchronization of dst from src if dst is stale.
func (d *DualFloats) Sync(dst Space) {
	if d.Valid(dst) {
		return
	}
	if d.Valid(opposite(dst)) {
		d.sync(opposite(dst), dst)
	}
}

func (d *DualFloats) sync(src, dst Space) {
	var from []float64
	if src == Host {
		from = d.host
	} else {
		from = d.device
	}
	to := make([]float64, len(from))
	copy(to, from)
	if dst == Host {
		d.host = to
		d.hostValid = true
	} else {
		d.device = to
		d.deviceValid = true
	}
}

// DualInts is the integer-array analogue of DualFloats, used for sparse
// matrix structure arrays (row/col indices, row pointers).
type DualInts struct {
	host, device           []int
	hostValid, deviceValid bool
}

// Valid reports whether space currently holds up-to-date data.
func (d *DualInts) Valid(space Space) bool {
	if space == Host {
		return d.hostValid
	}
	return d.deviceValid
}

// Get returns a borrow of the buffer in space, synchronizing first if
// necessary; it reports StatusNotAllocated if neither side is valid.
func (d *DualInts) Get(space Space) ([]int, Status) {
	if !d.Valid(space) {
		if !d.Valid(opposite(space)) {
			return nil, StatusNotAllocated
		}
		d.sync(opposite(space), space)
	}
	if space == Host {
		return d.host, StatusSuccess
	}
	return d.device, StatusSuccess
}

// Set overwrites space with data, marking space valid and the other side
// stale.
func (d *DualInts) Set(space Space, data []int) {
	if space == Host {
		d.host = data
		d.hostValid = true
		d.deviceValid = false
		return
	}
	d.device = data
	d.deviceValid = true
	d.hostValid = false
}

// Allocate zero-initializes n elements of space without setting any
// freshness bit.
func (d *DualInts) Allocate(space Space, n int) {
	buf := make([]int, n)
	if space == Host {
		d.host = buf
	} else {
		d.device = buf
	}
}

// Sync is an idempotent synchronization of dst from src if dst is stale.
func (d *DualInts) Sync(dst Space) {
	if d.Valid(dst) {
		return
	}
	if d.Valid(opposite(dst)) {
		d.sync(opposite(dst), dst)
	}
}

func (d *DualInts) sync(src, dst Space) {
	var from []int
	if src == Host {
		from = d.host
	} else {
		from = d.device
	}
	to := make([]int, len(from))
	copy(to, from)
	if dst == Host {
		d.host = to
		d.hostValid = true
	} else {
		d.device = to
		d.deviceValid = true
	}
}

func opposite(s Space) Space {
	if s == Host {
		return Device
	}
	return Host
}
