// Package krylov implements the FGMRES Krylov-subspace solver state
// machine (C9) and its randomized-orthogonalization variant (C10), per
// spec.md §4.6-4.7 and SPEC_FULL.md §6.5.
package krylov

// OrthoVariant selects the Arnoldi orthogonalization used inside the
// FGMRES inner loop, per spec.md §6's configuration surface.
type OrthoVariant int

const (
	OrthoCGS OrthoVariant = iota
	OrthoMGS
	OrthoCGS2
	OrthoMGSReorth
)

// PrecondSide selects preconditioner application. Left preconditioning
// is explicitly out of scope (spec.md §6).
type PrecondSide int

const (
	PrecondNone PrecondSide = iota
	PrecondRight
)

// SketchKind selects the sketch operator used by the randomized variant.
type SketchKind int

const (
	SketchFWHT SketchKind = iota
	SketchCountSketch
)

// Config is FGMRES's configuration surface, all seven fields and
// defaults exactly as spec.md §6 states.
type Config struct {
	Restart      int // m, in [1, 10000], default 10
	Tol          float64
	MaxIt        int
	Flexible     bool
	OrthoVariant OrthoVariant
	PrecondSide  PrecondSide
	SketchKind   SketchKind // randomized variant only
}

// DefaultConfig returns spec.md §6's literal defaults.
func DefaultConfig() Config {
	return Config{
		Restart:      10,
		Tol:          1e-14,
		MaxIt:        100,
		Flexible:     false,
		OrthoVariant: OrthoCGS2,
		PrecondSide:  PrecondRight,
		SketchKind:   SketchFWHT,
	}
}
