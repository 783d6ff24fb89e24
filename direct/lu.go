package direct

import (
	"math"

	"github.com/gridsolve/resolve"
	"github.com/gridsolve/resolve/matrix"
)

// pivotEpsFactor sets the singular-pivot threshold to eps * ||A||_inf,
// per spec.md §7 kind 4 ("factorization encountered a numerically
// singular pivot").
const pivotEpsFactor = 2.220446049250313e-16

// GridLU is a host-only sparse direct solver performing LU
// factorization with partial (row) pivoting. It is grounded in the
// teacher's cholCSR (cholesky.go): the same row-oriented, sparse-dot
// elimination shape, generalized from symmetric Cholesky to a general
// non-symmetric LU because the target linear systems are not
// guaranteed SPD. Since this module carries no fill-reducing symbolic
// ordering step, elimination runs against a dense working copy of A
// (the teacher also elaborates its sparse factor row-by-row rather
// than computing a symbolic fill pattern up front); L and U are
// materialized back into CSR for the rest of the solver stack to
// consume via DoRowNonZero/RowView.
type GridLU struct {
	state state
	n     int
	a     *matrix.CSR

	dense  [][]float64 // working copy, elimination happens here
	lDense [][]float64
	uDense [][]float64
	perm   []int // row order applied during elimination (partial pivoting)
	qperm  []int // column order; identity, GridLU does no column pivoting

	l *matrix.CSR
	u *matrix.CSR
}

var _ Solver = (*GridLU)(nil)

// NewGridLU returns a fresh, unconfigured solver in the Created state.
func NewGridLU() *GridLU { return &GridLU{} }

// Setup records a's pattern/values and admits WithPattern. When seed
// carries complete L and U factors, GridLU instead bootstraps straight
// to the Factored state from them - spec.md §4.4's cuSolverRf-style
// handoff, mirroring r_KLU_rf_FGMRES.cpp's Rf->setup(A, L, U, P, Q)
// followed only by Rf->refactorize()/Rf->solve(), never its own
// analyze()/factorize(). P and Q default to the identity when the seed
// omits them.
func (g *GridLU) Setup(a *matrix.CSR, seed *SeedFactors) resolve.Status {
	if g.state != stateCreated {
		return resolve.StatusInvalidArg
	}
	n, m := a.Dims()
	if n != m {
		return resolve.StatusInvalidArg
	}
	g.a = a
	g.n = n

	if seed != nil && seed.L != nil && seed.U != nil {
		g.l = seed.L.m
		g.u = seed.U.m
		g.lDense = denseFromCSR(g.l, g.n)
		g.uDense = denseFromCSR(g.u, g.n)
		if seed.P != nil {
			g.perm = append([]int(nil), seed.P...)
		} else {
			g.perm = identityPerm(g.n)
		}
		if seed.Q != nil {
			g.qperm = append([]int(nil), seed.Q...)
		} else {
			g.qperm = identityPerm(g.n)
		}
		g.state = stateFactored
		return resolve.StatusSuccess
	}

	g.state = stateWithPattern
	return resolve.StatusSuccess
}

// Analyze builds the dense working copy from a's CSR entries. GridLU
// applies no fill-reducing reordering, so qperm is the identity; a
// fuller implementation would compute an AMD/COLAMD-style ordering
// here instead.
func (g *GridLU) Analyze() resolve.Status {
	if g.state != stateWithPattern {
		return resolve.StatusInvalidArg
	}
	g.dense = make([][]float64, g.n)
	for i := range g.dense {
		g.dense[i] = make([]float64, g.n)
		g.a.DoRowNonZero(i, func(row, col int, v float64) {
			g.dense[row][col] = v
		})
	}
	g.qperm = identityPerm(g.n)
	g.state = stateAnalyzed
	return resolve.StatusSuccess
}

// Factorize runs Doolittle LU elimination with partial pivoting,
// recording the pivot row order in perm for Refactorize to reuse.
func (g *GridLU) Factorize() resolve.Status {
	if g.state != stateAnalyzed {
		return resolve.StatusInvalidArg
	}
	work := cloneDense(g.dense)
	tol := pivotEpsFactor * infNorm(work)

	perm := identityPerm(g.n)
	if st := eliminate(work, perm, tol, true); !st.OK() {
		return st
	}

	g.perm = perm
	g.lDense, g.uDense = splitLU(work, g.n)
	g.rebuildFactorCSR()
	g.state = stateFactored
	return resolve.StatusSuccess
}

// Refactorize re-runs numeric elimination in the pivot order fixed by
// the prior Factorize, without searching for new pivots - the "cheap
// path" of spec.md §4.4.
func (g *GridLU) Refactorize() resolve.Status {
	if g.state != stateFactored {
		return resolve.StatusInvalidArg
	}
	fresh := make([][]float64, g.n)
	for i := range fresh {
		fresh[i] = make([]float64, g.n)
		g.a.DoRowNonZero(i, func(row, col int, v float64) {
			fresh[row][col] = v
		})
	}
	work := applyRowPerm(fresh, g.perm)
	tol := pivotEpsFactor * infNorm(work)
	if st := eliminate(work, nil, tol, false); !st.OK() {
		return st
	}
	g.lDense, g.uDense = splitLU(work, g.n)
	g.rebuildFactorCSR()
	return resolve.StatusSuccess
}

// Solve applies P, forward-substitutes against L (unit diagonal),
// back-substitutes against U, and applies Q to land the result in x.
// qperm is the identity whenever the factors came from GridLU's own
// Factorize (it does no column pivoting), so this reduces to a direct
// write into x in that case; a seeded, non-identity Q (Setup's
// bootstrap path) is honored here too.
func (g *GridLU) Solve(b, x []float64) resolve.Status {
	if g.state != stateFactored {
		return resolve.StatusInvalidArg
	}
	n := g.n
	pb := make([]float64, n)
	for i, p := range g.perm {
		pb[i] = b[p]
	}

	y := make([]float64, n)
	for i := 0; i < n; i++ {
		sum := pb[i]
		for k := 0; k < i; k++ {
			sum -= g.lDense[i][k] * y[k]
		}
		y[i] = sum // unit diagonal on L
	}

	z := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		sum := y[i]
		for k := i + 1; k < n; k++ {
			sum -= g.uDense[i][k] * z[k]
		}
		diag := g.uDense[i][i]
		if diag == 0 {
			return resolve.StatusFactorizationSingular
		}
		z[i] = sum / diag
	}

	for i, q := range g.qperm {
		x[q] = z[i]
	}
	return resolve.StatusSuccess
}

func (g *GridLU) LFactor() FactorView { return FactorView{m: g.l} }
func (g *GridLU) UFactor() FactorView { return FactorView{m: g.u} }
func (g *GridLU) POrdering() []int    { return g.perm }
func (g *GridLU) QOrdering() []int    { return g.qperm }

func (g *GridLU) rebuildFactorCSR() {
	g.l = denseToCSRUnitLower(g.lDense)
	g.u = denseToCSRUpper(g.uDense)
}

// denseFromCSR materializes an n x n CSR factor (typically a seeded
// FactorView handed in through SeedFactors) into the dense row-major
// form GridLU's triangular solves operate on.
func denseFromCSR(m *matrix.CSR, n int) [][]float64 {
	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, n)
		m.DoRowNonZero(i, func(row, col int, v float64) {
			out[row][col] = v
		})
	}
	return out
}

func identityPerm(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return p
}

func cloneDense(a [][]float64) [][]float64 {
	out := make([][]float64, len(a))
	for i, row := range a {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

func applyRowPerm(a [][]float64, perm []int) [][]float64 {
	out := make([][]float64, len(a))
	for i, p := range perm {
		out[i] = append([]float64(nil), a[p]...)
	}
	return out
}

func infNorm(a [][]float64) float64 {
	var max float64
	for _, row := range a {
		var s float64
		for _, v := range row {
			s += math.Abs(v)
		}
		if s > max {
			max = s
		}
	}
	if max == 0 {
		return 1
	}
	return max
}

// eliminate performs in-place Doolittle LU elimination on work (n x n,
// already row-permuted if pivoting is disabled). When pivot is true it
// partial-pivots on column k, swapping rows of both work and perm;
// when false it trusts the caller's row order (the Refactorize path).
// A pivot magnitude below tol reports StatusFactorizationSingular.
func eliminate(work [][]float64, perm []int, tol float64, pivot bool) resolve.Status {
	n := len(work)
	for k := 0; k < n; k++ {
		if pivot {
			maxRow, maxVal := k, math.Abs(work[k][k])
			for i := k + 1; i < n; i++ {
				if v := math.Abs(work[i][k]); v > maxVal {
					maxRow, maxVal = i, v
				}
			}
			if maxRow != k {
				work[k], work[maxRow] = work[maxRow], work[k]
				perm[k], perm[maxRow] = perm[maxRow], perm[k]
			}
		}
		if math.Abs(work[k][k]) < tol {
			return resolve.StatusFactorizationSingular
		}
		for i := k + 1; i < n; i++ {
			factor := work[i][k] / work[k][k]
			if factor == 0 {
				continue
			}
			work[i][k] = factor
			for j := k + 1; j < n; j++ {
				work[i][j] -= factor * work[k][j]
			}
		}
	}
	return resolve.StatusSuccess
}

func splitLU(work [][]float64, n int) (l, u [][]float64) {
	l = make([][]float64, n)
	u = make([][]float64, n)
	for i := 0; i < n; i++ {
		l[i] = make([]float64, n)
		u[i] = make([]float64, n)
		l[i][i] = 1
		for j := 0; j < n; j++ {
			switch {
			case j < i:
				l[i][j] = work[i][j]
			default:
				u[i][j] = work[i][j]
			}
		}
	}
	return l, u
}

func denseToCSRUnitLower(l [][]float64) *matrix.CSR {
	n := len(l)
	rowPtr := make([]int, n+1)
	var col []int
	var val []float64
	for i := 0; i < n; i++ {
		rowPtr[i] = len(val)
		for j := 0; j <= i; j++ {
			if l[i][j] != 0 {
				col = append(col, j)
				val = append(val, l[i][j])
			}
		}
	}
	rowPtr[n] = len(val)
	return matrix.NewCSRFromArrays(n, n, rowPtr, col, val)
}

func denseToCSRUpper(u [][]float64) *matrix.CSR {
	n := len(u)
	rowPtr := make([]int, n+1)
	var col []int
	var val []float64
	for i := 0; i < n; i++ {
		rowPtr[i] = len(val)
		for j := i; j < n; j++ {
			if u[i][j] != 0 {
				col = append(col, j)
				val = append(val, u[i][j])
			}
		}
	}
	rowPtr[n] = len(val)
	return matrix.NewCSRFromArrays(n, n, rowPtr, col, val)
}
