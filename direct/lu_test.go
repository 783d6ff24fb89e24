package direct

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gridsolve/resolve/matrix"
)

func solveSystem(t *testing.T, a *matrix.CSR, b []float64) (*GridLU, []float64) {
	t.Helper()
	lu := NewGridLU()
	require.True(t, lu.Setup(a, nil).OK())
	require.True(t, lu.Analyze().OK())
	require.True(t, lu.Factorize().OK())
	x := make([]float64, len(b))
	require.True(t, lu.Solve(b, x).OK())
	return lu, x
}

func TestGridLUSolvesSimpleSystem(t *testing.T) {
	// A = [[4, 3], [6, 3]], x = [3, -2] => b = [6, 12]
	a := matrix.NewCSRFromArrays(2, 2, []int{0, 2, 4}, []int{0, 1, 0, 1}, []float64{4, 3, 6, 3})
	b := []float64{6, 12}
	_, x := solveSystem(t, a, b)
	require.InDelta(t, 3.0, x[0], 1e-8)
	require.InDelta(t, -2.0, x[1], 1e-8)
}

func TestGridLUSingularMatrixReportsStatus(t *testing.T) {
	// 3x3 singular: row2 = 2*row1.
	a := matrix.NewCSRFromArrays(3, 3,
		[]int{0, 3, 6, 9},
		[]int{0, 1, 2, 0, 1, 2, 0, 1, 2},
		[]float64{1, 2, 3, 2, 4, 6, 0, 1, 1})
	lu := NewGridLU()
	require.True(t, lu.Setup(a, nil).OK())
	require.True(t, lu.Analyze().OK())
	require.False(t, lu.Factorize().OK(), "Factorize on singular matrix should fail")
}

func TestGridLURefactorizeIdempotence(t *testing.T) {
	a := matrix.NewCSRFromArrays(2, 2, []int{0, 2, 4}, []int{0, 1, 0, 1}, []float64{4, 3, 6, 3})
	b := []float64{6, 12}
	lu, x1 := solveSystem(t, a, b)

	require.True(t, lu.Refactorize().OK())
	x2 := make([]float64, 2)
	require.True(t, lu.Solve(b, x2).OK())
	for i := range x1 {
		require.InDelta(t, x1[i], x2[i], 1e-8, "Refactorize changed solution at %d", i)
	}
}

func TestGridLUStateMachineGuards(t *testing.T) {
	a := matrix.NewCSRFromArrays(1, 1, []int{0, 1}, []int{0}, []float64{2})
	lu := NewGridLU()
	require.False(t, lu.Factorize().OK(), "Factorize before Setup/Analyze should fail")
	require.True(t, lu.Setup(a, nil).OK())
	require.False(t, lu.Setup(a, nil).OK(), "double Setup should fail")
	require.False(t, lu.Factorize().OK(), "Factorize before Analyze should fail")
}

// TestGridLUSeededSetupBootstrapsToFactored mirrors the
// r_KLU_rf_FGMRES.cpp handoff: a second solver is seeded with a first
// solver's completed L/U/P/Q and goes straight to Solve without ever
// calling its own Analyze/Factorize.
func TestGridLUSeededSetupBootstrapsToFactored(t *testing.T) {
	a := matrix.NewCSRFromArrays(2, 2, []int{0, 2, 4}, []int{0, 1, 0, 1}, []float64{4, 3, 6, 3})
	b := []float64{6, 12}
	src, want := solveSystem(t, a, b)

	dst := NewGridLU()
	seed := &SeedFactors{
		L: factorViewPtr(src.LFactor()),
		U: factorViewPtr(src.UFactor()),
		P: src.POrdering(),
		Q: src.QOrdering(),
	}
	require.True(t, dst.Setup(a, seed).OK())
	require.False(t, dst.Analyze().OK(), "a seeded solver should not accept its own Analyze")
	require.False(t, dst.Factorize().OK(), "a seeded solver should not accept its own Factorize")

	got := make([]float64, 2)
	require.True(t, dst.Solve(b, got).OK())
	for i := range want {
		require.InDelta(t, want[i], got[i], 1e-8, "seeded solve mismatch at %d", i)
	}

	require.True(t, dst.Refactorize().OK(), "seeded solver should still accept the cheap refactorize path")
}

func factorViewPtr(f FactorView) *FactorView { return &f }
