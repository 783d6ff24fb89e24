package orthog

import (
	"math"
	"math/rand"
	"testing"

	"github.com/gridsolve/resolve"
	"github.com/gridsolve/resolve/backend"
	"github.com/gridsolve/resolve/handler"
	"github.com/gridsolve/resolve/vector"
)

func basisWithOneColumn(n int, col0 []float64) *vector.Multi {
	v := vector.NewMulti(n, 3)
	v.Allocate(resolve.Host)
	v.SetCol(0, col0)
	return v
}

func checkOrthonormal(t *testing.T, vh *handler.VectorHandler, v *vector.Multi, j int) {
	t.Helper()
	for a := 0; a <= j; a++ {
		ca, _ := v.Col(a, resolve.Host)
		for b := a; b <= j; b++ {
			cb, _ := v.Col(b, resolve.Host)
			got := vh.Dot(ca, cb)
			want := 0.0
			if a == b {
				want = 1.0
			}
			if diff := got - want; diff > 1e-8 || diff < -1e-8 {
				t.Fatalf("basis cols %d,%d dot = %v, want %v", a, b, got, want)
			}
		}
	}
}

func runOne(t *testing.T, o Orthogonalizer, vNext []float64) {
	t.Helper()
	n := 4
	vh := handler.NewVectorHandler(backend.NewHost())

	e0 := []float64{1, 0, 0, 0}
	v := basisWithOneColumn(n, e0)

	h := make([]float64, 3)
	st, _ := o.Orthogonalize(vh, v, h, 0, vNext)
	if !st.OK() {
		t.Fatalf("Orthogonalize: %v", st)
	}
	v.SetCol(1, vNext)
	checkOrthonormal(t, vh, v, 1)
}

func TestCGSOrthogonalizes(t *testing.T) {
	runOne(t, CGS{}, []float64{0.5, 1, 0, 0})
}

func TestMGSOrthogonalizes(t *testing.T) {
	runOne(t, MGS{}, []float64{0.5, 1, 0, 0})
}

func TestCGS2Orthogonalizes(t *testing.T) {
	runOne(t, CGS2{}, []float64{0.5, 1, 0, 0})
}

func TestMGSReorthOrthogonalizes(t *testing.T) {
	runOne(t, MGSReorth{}, []float64{0.5, 1, 0, 0})
}

func TestFWHTPreservesRoughNormUnderRandomSigns(t *testing.T) {
	// A power-of-two input with zero sketch loss (k == n): the sketch is
	// a sign flip followed by the unnormalized Hadamard transform, so
	// norm^2 is scaled by exactly n up to floating point.
	n := 8
	f := NewFWHT(n, n, rand.New(rand.NewSource(1)))
	x := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	out := make([]float64, n)
	f.Apply(x, out)

	var inNorm, outNorm float64
	for _, v := range x {
		inNorm += v * v
	}
	for _, v := range out {
		outNorm += v * v
	}
	// Hadamard transform scales norm^2 by n (unnormalized); check ratio.
	ratio := outNorm / inNorm
	if diff := ratio - float64(n); diff > 1e-6 || diff < -1e-6 {
		t.Fatalf("FWHT norm ratio = %v, want %v", ratio, n)
	}
}

func TestCountSketchLinear(t *testing.T) {
	c := NewCountSketch(5, 3, rand.New(rand.NewSource(2)))
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{5, 4, 3, 2, 1}
	out := make([]float64, 3)
	outX := make([]float64, 3)
	outY := make([]float64, 3)
	c.Apply(x, outX)
	c.Apply(y, outY)
	sum := make([]float64, 5)
	for i := range sum {
		sum[i] = x[i] + y[i]
	}
	c.Apply(sum, out)
	for i := range out {
		want := outX[i] + outY[i]
		if math.Abs(out[i]-want) > 1e-9 {
			t.Fatalf("CountSketch not linear at bucket %d: %v vs %v", i, out[i], want)
		}
	}
}
