package blas

import "testing"

func TestSpMVLinearity(t *testing.T) {
	// A = [[2, 0, 1], [0, 3, 0], [1, 0, 4]] in CSR.
	rowPtr := []int{0, 2, 3, 5}
	col := []int{0, 2, 1, 0, 2}
	val := []float64{2, 1, 3, 1, 4}

	x := []float64{1, 2, 3}
	y := []float64{4, 5, 6}
	alpha, beta := 2.0, -1.0

	combined := make([]float64, 3)
	for i := range combined {
		combined[i] = alpha*x[i] + beta*y[i]
	}

	lhs := make([]float64, 3)
	SpMV(false, 1, rowPtr, col, val, combined, 0, lhs)

	ax := make([]float64, 3)
	SpMV(false, 1, rowPtr, col, val, x, 0, ax)
	ay := make([]float64, 3)
	SpMV(false, 1, rowPtr, col, val, y, 0, ay)

	rhs := make([]float64, 3)
	for i := range rhs {
		rhs[i] = alpha*ax[i] + beta*ay[i]
	}

	for i := range rhs {
		if diff := lhs[i] - rhs[i]; diff > 1e-9 || diff < -1e-9 {
			t.Fatalf("SpMV linearity violated at %d: A(ax+by)=%v, aAx+bAy=%v", i, lhs[i], rhs[i])
		}
	}
}

func TestSpMVBetaScaling(t *testing.T) {
	rowPtr := []int{0, 1}
	col := []int{0}
	val := []float64{3}
	x := []float64{2}
	y := []float64{10}
	SpMV(false, 1, rowPtr, col, val, x, 2, y)
	// y = 2*10 + 1*3*2 = 26
	if y[0] != 26 {
		t.Fatalf("SpMV() y = %v, want 26", y[0])
	}
}

func TestGemvNoTrans(t *testing.T) {
	// V is 2x2 column-major: col0=[1,2], col1=[3,4]
	v := []float64{1, 2, 3, 4}
	y := []float64{1, 1}
	x := []float64{0, 0}
	Gemv(false, 2, 2, 1, 0, v, y, x)
	// x = V*y = col0*1 + col1*1 = [4, 6]
	if x[0] != 4 || x[1] != 6 {
		t.Fatalf("Gemv() x = %v, want [4 6]", x)
	}
}

func TestGemvTrans(t *testing.T) {
	v := []float64{1, 2, 3, 4}
	y := []float64{1, 1}
	x := []float64{0, 0}
	Gemv(true, 2, 2, 1, 0, v, y, x)
	// x = V^T*y: x[0] = dot(col0,y)=3, x[1]=dot(col1,y)=7
	if x[0] != 3 || x[1] != 7 {
		t.Fatalf("Gemv(trans) x = %v, want [3 7]", x)
	}
}
