package krylov

import (
	"math/rand"

	"github.com/gridsolve/resolve/handler"
	"github.com/gridsolve/resolve/orthog"
)

// sketchDim is the randomized-orthogonalization sketch dimension used
// relative to the restart length m, per spec.md §4.7: large enough
// that the sketch preserves inner products with high probability while
// staying far cheaper than the full n-dimensional dot.
func sketchDim(restart int) int {
	k := 4 * (restart + 1)
	if k < 16 {
		k = 16
	}
	return k
}

// NewRandFGMRES builds an FGMRES instance wired with orthog.Randomized,
// per spec.md §4.7 (C10): the same Arnoldi/restart/rotation state
// machine as FGMRES, parameterized so its basis projection runs through
// a sketch operator instead of full-dimensional dot products. rngSeed
// is threaded through explicitly (rather than a package-level rand.Rand)
// since a deterministic, caller-controlled seed is what makes the
// sketch reproducible across runs - the original spec.md's randomized
// variant gives no seeding contract of its own, so this module supplies
// one rather than reaching for a global source.
func NewRandFGMRES(cfg Config, vh *handler.VectorHandler, mh *handler.MatrixHandler, precon Preconditioner, n int, rngSeed int64) *FGMRES {
	k := sketchDim(cfg.Restart)
	rng := rand.New(rand.NewSource(rngSeed))

	var sk orthog.Sketch
	switch cfg.SketchKind {
	case SketchCountSketch:
		sk = orthog.NewCountSketch(n, k, rng)
	default:
		sk = orthog.NewFWHT(n, k, rng)
	}

	return NewFGMRES(cfg, vh, mh, &orthog.Randomized{Sketch: sk}, precon)
}
