package blas

import (
	"math"
	"math/rand"
	"testing"
)

func TestDotMatchesNaiveOnWellScaledInput(t *testing.T) {
	x := []float64{1, 2, 3, 4}
	y := []float64{5, 6, 7, 8}
	got := Dot(x, y)
	want := 1.0*5 + 2*6 + 3*7 + 4*8
	if got != want {
		t.Fatalf("Dot() = %v, want %v", got, want)
	}
}

// TestDotKahanAccuracy exercises spec.md §8 invariant 5: on a large
// adversarially-scaled vector, the Kahan-compensated dot product must
// stay within 2*eps*sum(|x_i*y_i|) of the naive summation computed in
// a wider (float64-but-sorted) reference order.
func TestDotKahanAccuracy(t *testing.T) {
	const n = 1_000_000
	rng := rand.New(rand.NewSource(1))
	x := make([]float64, n)
	y := make([]float64, n)
	for i := range x {
		// Adversarial: mix enormous and tiny magnitudes so naive
		// summation order matters.
		if i%2 == 0 {
			x[i] = rng.Float64() * 1e8
			y[i] = rng.Float64()
		} else {
			x[i] = rng.Float64() * 1e-8
			y[i] = rng.Float64()
		}
	}

	got := Dot(x, y)

	// Reference: sum magnitude-sorted ascending, which is much closer to
	// the true value than naive left-to-right summation of an
	// adversarial sequence.
	terms := make([]float64, n)
	var absSum float64
	for i := range x {
		terms[i] = x[i] * y[i]
		absSum += math.Abs(terms[i])
	}
	sortFloatsByMagnitude(terms)
	var exact float64
	for _, v := range terms {
		exact += v
	}

	tol := 2 * 2.220446049250313e-16 * absSum
	if diff := math.Abs(got - exact); diff > tol {
		t.Fatalf("Kahan dot error %v exceeds tolerance %v (got=%v want~=%v)", diff, tol, got, exact)
	}
}

func sortFloatsByMagnitude(xs []float64) {
	// insertion sort is fine; this runs once per test, not hot path
	for i := 1; i < len(xs); i++ {
		v := xs[i]
		j := i - 1
		for j >= 0 && math.Abs(xs[j]) > math.Abs(v) {
			xs[j+1] = xs[j]
			j--
		}
		xs[j+1] = v
	}
}

func TestScal(t *testing.T) {
	x := []float64{1, 2, 3}
	Scal(2, x)
	want := []float64{2, 4, 6}
	for i := range want {
		if x[i] != want[i] {
			t.Fatalf("Scal()[%d] = %v, want %v", i, x[i], want[i])
		}
	}
}

func TestAxpy(t *testing.T) {
	x := []float64{1, 2, 3}
	y := []float64{10, 10, 10}
	Axpy(2, x, y)
	want := []float64{12, 14, 16}
	for i := range want {
		if y[i] != want[i] {
			t.Fatalf("Axpy()[%d] = %v, want %v", i, y[i], want[i])
		}
	}
}

func TestNrm2(t *testing.T) {
	x := []float64{3, 4}
	if got := Nrm2(x); got != 5 {
		t.Fatalf("Nrm2() = %v, want 5", got)
	}
}
