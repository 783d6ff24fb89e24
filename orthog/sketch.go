package orthog

import (
	"math"
	"math/rand"

	"github.com/gridsolve/resolve"
	"github.com/gridsolve/resolve/handler"
	"github.com/gridsolve/resolve/vector"
)

// Sketch maps an n-length vector down to a k-length sketch, per
// spec.md §4.7's randomized-orthogonalization support (C10).
type Sketch interface {
	// K returns the sketched dimension.
	K() int
	// Apply writes the sketch of x into out (len K()).
	Apply(x []float64, out []float64)
}

// nextPow2 returns the smallest power of two >= v.
func nextPow2(v int) int {
	p := 1
	for p < v {
		p <<= 1
	}
	return p
}

// FWHT sketches via a randomized Fast Walsh-Hadamard Transform: a
// random +/-1 diagonal sign flip followed by the recursive Hadamard
// butterfly, keeping only the first k coefficients - the structured
// (as opposed to dense-Gaussian) sketch spec.md §4.7 calls for. k may
// be any positive length; the butterfly itself runs on a zero-padded
// power-of-two buffer (see NewFWHT). The transform is unnormalized:
// with k equal to the butterfly width, the squared norm of the sketch
// is exactly that width times the squared norm of the input.
type FWHT struct {
	k     int
	signs []float64
}

// NewFWHT builds a sketch operator for vectors of length n, with
// internal butterfly width the smallest power of two >= max(n, k) so
// the first k transformed coefficients Apply returns are always in
// bounds regardless of how k compares to n.
func NewFWHT(n, k int, rng *rand.Rand) *FWHT {
	dim := nextPow2(n)
	if k > dim {
		dim = nextPow2(k)
	}
	signs := make([]float64, dim)
	for i := range signs {
		if rng.Intn(2) == 0 {
			signs[i] = -1
		} else {
			signs[i] = 1
		}
	}
	return &FWHT{k: k, signs: signs}
}

func (f *FWHT) K() int { return f.k }

func (f *FWHT) Apply(x []float64, out []float64) {
	dim := len(f.signs)
	buf := make([]float64, dim)
	copy(buf, x)
	for i := len(x); i < dim; i++ {
		buf[i] = 0
	}
	for i := range buf {
		buf[i] *= f.signs[i]
	}
	fwhtButterfly(buf)
	copy(out, buf[:f.k])
}

// fwhtButterfly performs the in-place recursive Hadamard transform
// (iterative butterfly form, length must be a power of two).
func fwhtButterfly(a []float64) {
	n := len(a)
	for size := 1; size < n; size *= 2 {
		for i := 0; i < n; i += 2 * size {
			for j := i; j < i+size; j++ {
				x, y := a[j], a[j+size]
				a[j] = x + y
				a[j+size] = x - y
			}
		}
	}
}

// CountSketch hashes each input coordinate into one of k buckets with a
// random sign, per spec.md §4.7's alternative sketch construction.
type CountSketch struct {
	k      int
	bucket []int
	sign   []float64
}

// NewCountSketch builds a sketch operator for vectors of length n into
// k buckets.
func NewCountSketch(n, k int, rng *rand.Rand) *CountSketch {
	bucket := make([]int, n)
	sign := make([]float64, n)
	for i := 0; i < n; i++ {
		bucket[i] = rng.Intn(k)
		if rng.Intn(2) == 0 {
			sign[i] = -1
		} else {
			sign[i] = 1
		}
	}
	return &CountSketch{k: k, bucket: bucket, sign: sign}
}

func (c *CountSketch) K() int { return c.k }

func (c *CountSketch) Apply(x []float64, out []float64) {
	for i := range out {
		out[i] = 0
	}
	for i, v := range x {
		out[c.bucket[i]] += c.sign[i] * v
	}
}

// Randomized computes CGS-style projection coefficients against a
// sketched basis (cheap, dimension K() instead of n) then applies them
// as an exact axpy against the full-dimensional basis and recomputes
// the true norm - spec.md §4.7's randomized Gram-Schmidt: the sketch
// approximates which coefficients to subtract, but the subtraction
// itself and the breakdown/norm check stay exact so FGMRES's
// convergence test is never fooled by sketch error. The sketched field
// caches each basis column's sketch as it is appended, avoiding
// re-sketching columns 0..j-1 on every outer call; a call with j == 0
// starts a new basis and clears the cache.
type Randomized struct {
	Sketch Sketch

	sketched [][]float64
}

func (r *Randomized) Orthogonalize(vh *handler.VectorHandler, v *vector.Multi, h []float64, j int, vNext []float64) (resolve.Status, int) {
	if j == 0 {
		// Column 0 belongs to a new basis (first call, a restart, or a
		// new Solve), so sketches of any previous basis are stale.
		r.sketched = r.sketched[:0]
	}
	for len(r.sketched) <= j {
		col, status := v.Col(len(r.sketched), resolve.Host)
		if status != resolve.StatusSuccess {
			return status, -1
		}
		sk := make([]float64, r.Sketch.K())
		r.Sketch.Apply(col, sk)
		r.sketched = append(r.sketched, sk)
	}

	sx := make([]float64, r.Sketch.K())
	r.Sketch.Apply(vNext, sx)

	for i := 0; i <= j; i++ {
		hij := vh.Dot(r.sketched[i], sx)
		h[i] += hij
		col, status := v.Col(i, resolve.Host)
		if status != resolve.StatusSuccess {
			return status, -1
		}
		vh.Axpy(-hij, col, vNext)
	}

	norm := vh.Dot(vNext, vNext)
	if norm < 0 {
		norm = 0
	}
	normSqrt := math.Sqrt(norm)
	h[j+1] = normSqrt
	if normSqrt == 0 {
		return resolve.StatusLuckyBreakdown, j
	}
	vh.Scal(1/normSqrt, vNext)
	return resolve.StatusSuccess, -1
}
