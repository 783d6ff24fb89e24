// Package direct implements the sparse direct factorization state
// machine (C7) per spec.md §4.4: Created -> setup -> WithPattern ->
// analyze -> Analyzed -> factorize -> Factored -> {refactorize ->
// Factored, solve -> Factored}.
package direct

import (
	"github.com/gridsolve/resolve"
	"github.com/gridsolve/resolve/matrix"
)

// state is the solver's position in the setup/analyze/factorize state
// machine; every Solver implementation guards its transitions against
// it and returns StatusInvalidArg on an out-of-order call (spec.md §7).
type state int

const (
	stateCreated state = iota
	stateWithPattern
	stateAnalyzed
	stateFactored
)

// SeedFactors carries the optional L?, U?, P?, Q?, b? arguments of
// spec.md §4.4's setup(A, L?, U?, P?, Q?, b?) contract: a completed
// factorization borrowed from another Solver that this one can
// bootstrap from instead of repeating its own analyze/factorize, e.g.
// a cuSolverRf-equivalent seeded from KLU's L/U/P/Q
// (original_source/examples/r_KLU_rf_FGMRES.cpp: "Rf->setup(A, L, U, P,
// Q);" followed directly by Rf->refactorize()/Rf->solve(), never
// Rf->analyze()/Rf->factorize()). A Solver that ignores the seed (or
// is passed nil) falls back to the ordinary setup -> analyze ->
// factorize path.
type SeedFactors struct {
	L *FactorView
	U *FactorView
	P []int
	Q []int
	// B is advisory only, per spec.md §4.4 ("b is advisory for pivot
	// estimation"); GridLU does not consult it.
	B []float64
}

// Solver is the abstract contract a direct factorization backend
// implements (spec.md §4.4, §6's external plug-in contract). GridLU is
// the one concrete, host-only implementation in this module.
type Solver interface {
	// Setup records the matrix pattern/values and admits the solver to
	// the WithPattern state. A non-nil seed carrying complete L/U
	// factors lets the solver bootstrap directly to the Factored state
	// instead, per spec.md §4.4's optional seed-factor contract.
	Setup(a *matrix.CSR, seed *SeedFactors) resolve.Status
	// Analyze performs symbolic preparation (fill-reducing ordering in
	// a fuller implementation; GridLU uses the natural ordering) and
	// admits the solver to the Analyzed state.
	Analyze() resolve.Status
	// Factorize performs the first numeric factorization, establishing
	// the pivot order, and admits the solver to the Factored state.
	Factorize() resolve.Status
	// Refactorize re-runs numeric elimination reusing the pivot order
	// and fill pattern from the prior Factorize/Analyze, without
	// re-searching for pivots.
	Refactorize() resolve.Status
	// Solve computes x from the factored system and right-hand side b.
	Solve(b, x []float64) resolve.Status
	// LFactor returns a read-only borrow of the lower-triangular factor.
	LFactor() FactorView
	// UFactor returns a read-only borrow of the upper-triangular factor.
	UFactor() FactorView
	// POrdering returns the row permutation applied during elimination.
	POrdering() []int
	// QOrdering returns the column permutation applied during
	// elimination (identity for GridLU, which does no column pivoting).
	QOrdering() []int
}
