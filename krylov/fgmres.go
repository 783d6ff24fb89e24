package krylov

import (
	"math"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"

	"github.com/gridsolve/resolve"
	"github.com/gridsolve/resolve/handler"
	"github.com/gridsolve/resolve/log"
	"github.com/gridsolve/resolve/matrix"
	"github.com/gridsolve/resolve/orthog"
	"github.com/gridsolve/resolve/vector"
)

// Preconditioner is the right-preconditioning contract FGMRES applies
// inside its Arnoldi loop (left preconditioning is out of scope, per
// spec.md §6). Solve writes M^-1 * x into y.
type Preconditioner interface {
	Solve(x, y []float64) resolve.Status
}

// IdentityPreconditioner is the no-op right preconditioner used when
// Config.PrecondSide is PrecondNone.
type IdentityPreconditioner struct{}

func (IdentityPreconditioner) Solve(x, y []float64) resolve.Status {
	copy(y, x)
	return resolve.StatusSuccess
}

// Stats reports the work FGMRES performed, returned alongside the
// solution regardless of whether convergence was reached (spec.md §7:
// MAX_ITER_REACHED/LUCKY_BREAKDOWN never discard a well-defined
// iterate).
type Stats struct {
	Iterations        int
	Restarts          int
	FinalResidualNorm float64
}

type givens struct{ c, s float64 }

func rotvec(x, y float64, g givens) (rx, ry float64) {
	rx = g.c*x - g.s*y
	ry = g.s*x + g.c*y
	return
}

// drotg computes the right-handed Givens rotation zeroing b, grounded
// directly in the vladimir-ch reference's drotg (spec.md §4.6's
// "right-handed Givens", computed via a hypot-stable ratio rather than
// a naive sqrt(a^2+b^2)).
func drotg(a, b float64) givens {
	if b == 0 {
		return givens{c: 1, s: 0}
	}
	if math.Abs(b) > math.Abs(a) {
		tmp := -a / b
		s := 1 / math.Sqrt(1+tmp*tmp)
		return givens{c: tmp * s, s: s}
	}
	tmp := -b / a
	c := 1 / math.Sqrt(1+tmp*tmp)
	return givens{c: c, s: tmp * c}
}

// FGMRES is the flexible restarted GMRES state machine (C9), per
// spec.md §4.6: per-outer-iteration residual recompute, Arnoldi
// basis/Hessenberg construction via the selected Orthogonalizer, Givens
// rotation application, triangular back-solve, and restart with a
// freshly recomputed true residual (never drifting from the rotated
// g vector).
type FGMRES struct {
	Config Config
	VH     *handler.VectorHandler
	MH     *handler.MatrixHandler
	Ortho  orthog.Orthogonalizer
	Precon Preconditioner
	Logger log.Logger
}

// NewFGMRES returns an FGMRES solver wired to the given handlers. If
// ortho is nil it is chosen from cfg.OrthoVariant; if precon is nil the
// identity preconditioner is used (PrecondSide is honored structurally,
// not by this constructor).
func NewFGMRES(cfg Config, vh *handler.VectorHandler, mh *handler.MatrixHandler, ortho orthog.Orthogonalizer, precon Preconditioner) *FGMRES {
	if ortho == nil {
		ortho = orthoFromVariant(cfg.OrthoVariant)
	}
	if precon == nil {
		precon = IdentityPreconditioner{}
	}
	return &FGMRES{Config: cfg, VH: vh, MH: mh, Ortho: ortho, Precon: precon, Logger: log.NopLogger}
}

func orthoFromVariant(v OrthoVariant) orthog.Orthogonalizer {
	switch v {
	case OrthoCGS:
		return orthog.CGS{}
	case OrthoMGS:
		return orthog.MGS{}
	case OrthoMGSReorth:
		return orthog.MGSReorth{}
	default:
		return orthog.CGS2{}
	}
}

func (f *FGMRES) matvec(a *matrix.CSR, x []float64) []float64 {
	n, _ := a.Dims()
	y := make([]float64, n)
	f.MH.Matvec(false, 1, a, x, 0, y, resolve.Host)
	return y
}

// Solve runs (flexible) restarted GMRES on a*x=b starting from x0,
// returning the solution, run statistics, and a status - spec.md §4.6.
func (f *FGMRES) Solve(a *matrix.CSR, b, x0 []float64) ([]float64, *Stats, resolve.Status) {
	n, m := a.Dims()
	if n != m || len(b) != n || len(x0) != n {
		return nil, nil, resolve.StatusInvalidArg
	}
	restart := f.Config.Restart
	if restart < 1 {
		restart = 1
	}
	if restart > n {
		restart = n
	}

	x := append([]float64(nil), x0...)
	bnorm := f.VH.Dot(b, b)
	bnorm = math.Sqrt(bnorm)
	if bnorm == 0 {
		bnorm = 1
	}

	stats := &Stats{}
	status := resolve.StatusMaxIterReached

	for restartIdx := 0; stats.Iterations < f.Config.MaxIt; restartIdx++ {
		ax := f.matvec(a, x)
		r0 := make([]float64, n)
		for i := range r0 {
			r0[i] = b[i] - ax[i]
		}
		beta := math.Sqrt(f.VH.Dot(r0, r0))
		stats.FinalResidualNorm = beta
		if beta <= f.Config.Tol*bnorm {
			status = resolve.StatusSuccess
			break
		}

		v := vector.NewMulti(n, restart+1)
		v.Allocate(resolve.Host)
		v0 := make([]float64, n)
		copy(v0, r0)
		f.VH.Scal(1/beta, v0)
		v.SetCol(0, v0)

		z := vector.NewMulti(n, restart)
		z.Allocate(resolve.Host)

		ldh := restart + 1
		h := make([]float64, ldh*restart) // column-major, column j holds entries [0..j+1]
		g := make([]float64, restart+1)
		g[0] = beta
		rot := make([]givens, restart)

		mUsed := 0
		breakdown := false
		for j := 0; j < restart; j++ {
			stats.Iterations++
			vj, _ := v.Col(j, resolve.Host)

			zj := make([]float64, n)
			if f.Config.PrecondSide == PrecondNone {
				copy(zj, vj)
			} else if st := f.Precon.Solve(vj, zj); !st.OK() {
				f.Logger.Errorf("krylov: preconditioner solve failed: %v", st)
				return x, stats, resolve.StatusPrecondFailed
			}
			z.SetCol(j, zj)

			w := f.matvec(a, zj)

			hcol := h[j*ldh : j*ldh+restart+1]
			st, brk := f.Ortho.Orthogonalize(f.VH, v, hcol, j, w)
			if !st.OK() {
				return x, stats, st
			}
			// StatusSuccess and StatusLuckyBreakdown share the value 0
			// (spec.md §7: lucky breakdown is a success code), so the
			// breakdown itself must be read off breakdownAt, not status.
			lucky := brk >= 0
			if !lucky {
				v.SetCol(j+1, w)
			}

			for k := 0; k < j; k++ {
				hcol[k], hcol[k+1] = rotvec(hcol[k], hcol[k+1], rot[k])
			}
			rot[j] = drotg(hcol[j], hcol[j+1])
			hcol[j], hcol[j+1] = rotvec(hcol[j], hcol[j+1], rot[j])
			g[j], g[j+1] = rotvec(g[j], g[j+1], rot[j])

			mUsed = j + 1
			resNorm := math.Abs(g[j+1])
			stats.FinalResidualNorm = resNorm
			if resNorm <= f.Config.Tol*bnorm {
				status = resolve.StatusSuccess
				breakdown = lucky
				break
			}
			if lucky {
				status = resolve.StatusLuckyBreakdown
				breakdown = true
				break
			}
			if stats.Iterations >= f.Config.MaxIt {
				break
			}
		}

		y := make([]float64, mUsed)
		copy(y, g[:mUsed])
		if mUsed > 0 {
			bi := blas64.Implementation()
			bi.Dtrsv(blas.Lower, blas.Trans, blas.NonUnit, mUsed, h, ldh, y, 1)
		}
		for j := 0; j < mUsed; j++ {
			zj, _ := z.Col(j, resolve.Host)
			f.VH.Axpy(y[j], zj, x)
		}

		if status == resolve.StatusSuccess || breakdown {
			stats.Restarts = restartIdx
			if status != resolve.StatusSuccess {
				status = resolve.StatusLuckyBreakdown
			}
			break
		}
		stats.Restarts = restartIdx + 1
	}

	return x, stats, status
}
