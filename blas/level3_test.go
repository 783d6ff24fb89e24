package blas

import "testing"

func TestMassAxpySmallK(t *testing.T) {
	const n, k = 3, 2 // k+1 = 3 columns, well under massSmallThreshold
	x := []float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
	alpha := []float64{2, 3, 4}
	y := []float64{10, 10, 10}
	MassAxpy(n, k, x, alpha, y)
	want := []float64{8, 7, 6}
	for i := range want {
		if y[i] != want[i] {
			t.Fatalf("MassAxpy()[%d] = %v, want %v", i, y[i], want[i])
		}
	}
}

func TestMassAxpyLargeKMatchesSmallK(t *testing.T) {
	const n = 5
	const k = massSmallThreshold // k+1 columns triggers the Dgemm path
	x := make([]float64, n*(k+1))
	for j := 0; j <= k; j++ {
		for i := 0; i < n; i++ {
			x[j*n+i] = float64((i+1)*(j+1)%7) - 3
		}
	}
	alpha := make([]float64, k+1)
	for j := range alpha {
		alpha[j] = float64(j%5) - 2
	}

	ySmall := []float64{1, 2, 3, 4, 5}
	yLarge := append([]float64(nil), ySmall...)

	// Force the small path by calling the fused loop directly.
	for j := 0; j <= k; j++ {
		a := alpha[j]
		col := x[j*n : (j+1)*n]
		for i := 0; i < n; i++ {
			ySmall[i] -= a * col[i]
		}
	}
	MassAxpy(n, k, x, alpha, yLarge)

	for i := range ySmall {
		if diff := ySmall[i] - yLarge[i]; diff > 1e-9 || diff < -1e-9 {
			t.Fatalf("MassAxpy large-k path mismatch at %d: %v vs %v", i, ySmall[i], yLarge[i])
		}
	}
}

func TestMassDot2VecSmallK(t *testing.T) {
	const n, k = 2, 1 // k+1 = 2 columns
	v := []float64{
		1, 0,
		0, 1,
	}
	x := []float64{
		2, 3,
		4, 5,
	}
	res := make([]float64, (k+1)*2)
	MassDot2Vec(n, k, v, x, res)
	// res[j*(k+1)+i] = dot(v_i, x_j)
	want := []float64{2, 3, 4, 5}
	for i := range want {
		if res[i] != want[i] {
			t.Fatalf("MassDot2Vec()[%d] = %v, want %v", i, res[i], want[i])
		}
	}
}

func TestMassDot2VecLargeKMatchesSmallK(t *testing.T) {
	const n = 4
	const k = massSmallThreshold
	v := make([]float64, n*(k+1))
	x := make([]float64, n*2)
	for j := 0; j <= k; j++ {
		for i := 0; i < n; i++ {
			v[j*n+i] = float64((i+2)*(j+1)%11) - 5
		}
	}
	for j := 0; j < 2; j++ {
		for i := 0; i < n; i++ {
			x[j*n+i] = float64((i+1)*(j+3)%9) - 4
		}
	}

	want := make([]float64, (k+1)*2)
	for i := 0; i <= k; i++ {
		vi := v[i*n : (i+1)*n]
		for j := 0; j < 2; j++ {
			xj := x[j*n : (j+1)*n]
			var dot float64
			for t := 0; t < n; t++ {
				dot += vi[t] * xj[t]
			}
			want[j*(k+1)+i] = dot
		}
	}

	got := make([]float64, (k+1)*2)
	MassDot2Vec(n, k, v, x, got)

	for i := range want {
		if diff := want[i] - got[i]; diff > 1e-7 || diff < -1e-7 {
			t.Fatalf("MassDot2Vec large-k path mismatch at %d: %v vs %v", i, want[i], got[i])
		}
	}
}
