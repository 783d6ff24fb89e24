package blas

// Gemv computes x <- beta*x + alpha*V*y (trans=false) or
// x <- beta*x + alpha*V^T*y (trans=true), where V is n x k column-major,
// matching the parameter order and semantics of the original
// VectorHandler.cpp::gemv exactly (output parameter named x, input y).
func Gemv(trans bool, n, k int, alpha, beta float64, v, y, x []float64) {
	if trans {
		// x (len k) = beta*x + alpha*V^T*y (y is len n)
		for j := 0; j < k; j++ {
			var dot float64
			col := v[j*n : (j+1)*n]
			for i := 0; i < n; i++ {
				dot += col[i] * y[i]
			}
			x[j] = beta*x[j] + alpha*dot
		}
		return
	}
	// x (len n) = beta*x + alpha*V*y (y is len k)
	for i := 0; i < n; i++ {
		x[i] *= beta
	}
	for j := 0; j < k; j++ {
		if y[j] == 0 {
			continue
		}
		scale := alpha * y[j]
		col := v[j*n : (j+1)*n]
		for i := 0; i < n; i++ {
			x[i] += scale * col[i]
		}
	}
}

// Dusmv (sparse matrix / vector multiply: y <- alpha*A*x + y or
// y <- alpha*A^T*x + y) multiplies the dense vector x by the CSR-stored
// sparse matrix A (or its transpose) and accumulates into y. Carried
// directly from the teacher's blas.Dusmv (level2.go), generalized from
// indexed-stride gather/scatter (Dusaxpy/Dusdot on explicit index
// slices) to direct CSR row-pointer iteration since the matrix handler
// always hands this kernel a canonical CSR descriptor.
func Dusmv(transA bool, alpha float64, rowPtr, col []int, val, x []float64, y []float64) {
	if alpha == 0 {
		return
	}
	n := len(rowPtr) - 1
	if transA {
		for i := 0; i < n; i++ {
			if x[i] == 0 {
				continue
			}
			scale := alpha * x[i]
			for k := rowPtr[i]; k < rowPtr[i+1]; k++ {
				y[col[k]] += scale * val[k]
			}
		}
		return
	}
	for i := 0; i < n; i++ {
		var dot float64
		for k := rowPtr[i]; k < rowPtr[i+1]; k++ {
			dot += val[k] * x[col[k]]
		}
		y[i] += alpha * dot
	}
}

// SpMV computes y <- alpha*A*x + beta*y (or A^T when trans) where A is
// the CSR matrix (rowPtr, col, val); beta scaling is applied before the
// Dusmv-style accumulation, matching the matrix handler's matvec
// contract (spec.md §4.2).
func SpMV(trans bool, alpha float64, rowPtr, col []int, val, x []float64, beta float64, y []float64) {
	if beta == 0 {
		for i := range y {
			y[i] = 0
		}
	} else if beta != 1 {
		Scal(beta, y)
	}
	Dusmv(trans, alpha, rowPtr, col, val, x, y)
}
