package conjgrad

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/copyleftdev/CGMIN/internal/optimization"
)

// stepTolerance is the minimum acceptable relative width of the bracketing
// interval. A narrower interval cannot make floating-point progress.
const stepTolerance = 1e-10

// bracket is one endpoint of the line-search interval: a step length with
// the function value and directional derivative observed there.
type bracket struct {
	a float64
	f float64
	g float64
}

// lineSearch finds a step length along m.d from m.xPrev satisfying the
// strong Wolfe conditions
//
//	f(x+αd) ≤ f(x) + c1·α·gᵀd    (sufficient decrease)
//	|g(x+αd)ᵀd| ≤ c2·|gᵀd|      (curvature)
//
// using the bracketing scheme of Nocedal and Wright (Algorithms 3.5, 3.6).
// Every trial costs exactly one objective evaluation. On success m.x, m.g
// and m.fx hold the accepted trial point and m.step the accepted step
// length; on failure the caller restores the pre-iteration state.
func (m *minimizer) lineSearch() (evals int, err error) {
	c := m.cfg
	f0, g0 := m.fx, m.gd
	if g0 >= 0 {
		return 0, optimization.ErrNonDescentDirection
	}

	alpha := m.step
	prev := bracket{0, f0, g0}
	for i := 1; ; i++ {
		if alpha < c.MinStep || alpha > c.MaxStep {
			return evals, optimization.ErrStepOutOfBounds
		}
		f, g := m.trial(alpha)
		evals++
		cur := bracket{alpha, f, g}

		if f > f0+c.SufficientDecrease*alpha*g0 || (i > 1 && f >= prev.f) {
			// The interval [prev, cur] brackets an acceptable step.
			return m.zoom(prev, cur, f0, g0, evals)
		}
		if math.Abs(g) <= -c.Curvature*g0 {
			m.step = alpha
			m.fx = f
			return evals, nil
		}
		if g >= 0 {
			// The derivative turned non-negative, so the minimum lies
			// behind us; zoom with the endpoints swapped.
			return m.zoom(cur, prev, f0, g0, evals)
		}
		if evals >= c.MaxLineSearch {
			return evals, optimization.ErrLineSearchBudget
		}

		prev = cur
		next := math.Min(2*alpha, c.MaxStep)
		if next <= alpha {
			return evals, optimization.ErrStepOutOfBounds
		}
		alpha = next
	}
}

// zoom shrinks the interval [lo, hi] until a step satisfying both Wolfe
// conditions is found. The invariant is that lo always carries the lowest
// function value seen so far and the interval contains a step satisfying
// the conditions.
func (m *minimizer) zoom(lo, hi bracket, f0, g0 float64, evals int) (int, error) {
	c := m.cfg
	for evals < c.MaxLineSearch {
		if math.Abs(hi.a-lo.a) <= stepTolerance*math.Max(1, math.Abs(lo.a)) {
			return evals, optimization.ErrNoProgress
		}
		alpha := interpolateStep(lo, hi)
		if alpha < c.MinStep || alpha > c.MaxStep {
			return evals, optimization.ErrStepOutOfBounds
		}

		f, g := m.trial(alpha)
		evals++

		if f > f0+c.SufficientDecrease*alpha*g0 || f >= lo.f {
			hi = bracket{alpha, f, g}
			continue
		}
		if math.Abs(g) <= -c.Curvature*g0 {
			m.step = alpha
			m.fx = f
			return evals, nil
		}
		if g*(hi.a-lo.a) >= 0 {
			hi = lo
		}
		lo = bracket{alpha, f, g}
	}
	return evals, optimization.ErrLineSearchBudget
}

// interpolateStep proposes the next trial step inside the interval as the
// minimizer of the cubic Hermite interpolant of the two endpoints, falling
// back to bisection when the cubic is degenerate or its minimizer falls too
// close to an endpoint.
func interpolateStep(lo, hi bracket) float64 {
	d1 := lo.g + hi.g - 3*(lo.f-hi.f)/(lo.a-hi.a)
	disc := d1*d1 - lo.g*hi.g
	if disc < 0 {
		return lo.a + 0.5*(hi.a-lo.a)
	}
	d2 := math.Copysign(math.Sqrt(disc), hi.a-lo.a)
	alpha := hi.a - (hi.a-lo.a)*(hi.g+d2-d1)/(hi.g-lo.g+2*d2)

	lower := math.Min(lo.a, hi.a)
	upper := math.Max(lo.a, hi.a)
	margin := 0.1 * (upper - lower)
	if !(alpha > lower+margin && alpha < upper-margin) {
		// Also reached when alpha is NaN.
		return lo.a + 0.5*(hi.a-lo.a)
	}
	return alpha
}

// trial moves x to xPrev + α·d and evaluates the objective there. The
// gradient buffer always reflects the most recent evaluation.
func (m *minimizer) trial(alpha float64) (f, g float64) {
	floats.AddScaledTo(m.x, m.xPrev, alpha, m.d)
	f = m.obj.Evaluate(m.x, m.g)
	m.evals++
	return f, floats.Dot(m.g, m.d)
}
