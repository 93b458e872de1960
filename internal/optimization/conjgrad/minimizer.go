// Package conjgrad implements unconstrained minimization by the nonlinear
// conjugate gradient method with a strong Wolfe line search.
//
// The method generates search directions
//
//	d_{k+1} = -∇f_{k+1} + β_k·d_k,   d_0 = -∇f_0,
//
// with β_k computed by the Polak–Ribière formula clamped at zero, and
// restarts to the steepest descent direction whenever the conjugate update
// would not produce a descent direction or the problem dimension has elapsed
// since the last restart.
//
// References:
//   - Nocedal, J. and S. Wright: Numerical Optimization (2nd ed.),
//     Springer, 2006, chapters 3 and 5.
//   - Hager, W. and H. Zhang: A survey of nonlinear conjugate gradient
//     methods. Pacific Journal of Optimization, 2 (2006), pp. 35-58.
package conjgrad

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/copyleftdev/CGMIN/internal/optimization"
)

// minimizer holds the working state of one run. All scratch vectors are
// allocated at entry and scoped to the call; nothing survives between runs.
type minimizer struct {
	obj optimization.Objective
	cfg *optimization.Config

	n int

	x     []float64 // caller's buffer, updated in place
	g     []float64 // gradient at the most recently evaluated point
	d     []float64 // search direction
	xPrev []float64 // point at the start of the current iteration
	gPrev []float64 // gradient at the start of the current iteration

	fx           float64 // objective value at x
	gd           float64 // directional derivative g·d at the line-search origin
	step         float64 // initial step guess for the next line search
	evals        int     // total objective evaluations
	sinceRestart int     // iterations since the last steepest-descent restart
}

// Minimize drives x toward a local minimum of obj. The x slice is owned by
// the caller and mutated in place; on a Converged result it holds the
// minimizer. cfg may be nil, in which case optimization.DefaultConfig is
// used; mon may be nil to disable progress reporting.
//
// The run is fully synchronous: objective evaluations and progress calls
// happen on the calling goroutine, never concurrently. Cancellation is
// cooperative only, via the Monitor's return value, checked once per
// accepted outer iteration.
//
// The returned Result always carries a terminal Status. The error is
// res.Status.Err() enriched with the line-search cause where one exists, and
// is nil for Converged and StoppedByCallback.
func Minimize(obj optimization.Objective, x []float64, cfg *optimization.Config, mon optimization.Monitor) (*optimization.Result, error) {
	res := &optimization.Result{Status: optimization.NotTerminated}

	c := optimization.DefaultConfig()
	if cfg != nil {
		c = *cfg
	}
	n := len(x)
	if verr := c.Validate(n); verr != nil {
		res.Status = optimization.InvalidInput
		return res, optimization.WrapError(verr, "invalid input").WithComponent("conjgrad")
	}

	m := &minimizer{
		obj:   obj,
		cfg:   &c,
		n:     n,
		x:     x,
		g:     make([]float64, n),
		d:     make([]float64, n),
		xPrev: make([]float64, n),
		gPrev: make([]float64, n),
	}
	var ring []float64
	if c.Past > 0 {
		ring = make([]float64, c.Past)
	}

	m.fx = obj.Evaluate(x, m.g)
	m.evals = 1

	gnorm := floats.Norm(m.g, 2)
	xnorm := floats.Norm(x, 2)
	res.F = m.fx
	res.FuncEvaluations = m.evals
	if gnorm <= c.Epsilon*math.Max(1, xnorm) {
		// The starting point is already a minimizer; no iteration is
		// taken and the monitor is never invoked.
		res.Status = optimization.Converged
		return res, nil
	}
	if c.Past > 0 {
		ring[0] = m.fx
	}
	m.steepestDescent()

	for k := 1; ; k++ {
		copy(m.xPrev, m.x)
		copy(m.gPrev, m.g)
		fPrev := m.fx

		lsEvals, lsErr := m.lineSearch()
		if lsErr != nil {
			// The iterate must stay at the last accepted point.
			copy(m.x, m.xPrev)
			copy(m.g, m.gPrev)
			m.fx = fPrev
			res.Status = optimization.LineSearchFailed
			res.F = m.fx
			res.Iterations = k - 1
			res.FuncEvaluations = m.evals
			return res, optimization.WrapError(lsErr, "line search failed").WithComponent("conjgrad")
		}

		gnorm = floats.Norm(m.g, 2)
		xnorm = floats.Norm(m.x, 2)
		res.F = m.fx
		res.Iterations = k
		res.FuncEvaluations = m.evals

		if gnorm <= c.Epsilon*math.Max(1, xnorm) {
			res.Status = optimization.Converged
			return res, nil
		}
		if c.Past > 0 {
			if k >= c.Past {
				// ring[k%Past] still holds the value from Past
				// iterations ago.
				fPast := ring[k%c.Past]
				den := math.Max(math.Max(math.Abs(fPast), math.Abs(m.fx)), 1)
				if (fPast-m.fx)/den < c.Delta {
					res.Status = optimization.Converged
					return res, nil
				}
			}
			ring[k%c.Past] = m.fx
		}

		if mon != nil {
			rec := optimization.ProgressRecord{
				X:               m.x,
				Gradient:        m.g,
				F:               m.fx,
				XNorm:           xnorm,
				GradNorm:        gnorm,
				Step:            m.step,
				Iteration:       k,
				LineSearchEvals: lsEvals,
			}
			if !mon.Progress(rec) {
				res.Status = optimization.StoppedByCallback
				return res, nil
			}
		}

		if k >= c.MaxIterations {
			res.Status = optimization.MaxIterationsExceeded
			return res, res.Status.Err()
		}

		m.nextDirection()
	}
}
