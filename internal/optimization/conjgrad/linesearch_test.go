package conjgrad

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copyleftdev/CGMIN/internal/optimization"
)

// newLineMinimizer builds a minimizer positioned at x0 with direction d,
// ready for a line search.
func newLineMinimizer(t *testing.T, obj optimization.Objective, x0, d []float64) *minimizer {
	t.Helper()
	cfg := optimization.DefaultConfig()
	n := len(x0)
	m := &minimizer{
		obj:   obj,
		cfg:   &cfg,
		n:     n,
		x:     append([]float64(nil), x0...),
		g:     make([]float64, n),
		d:     append([]float64(nil), d...),
		xPrev: append([]float64(nil), x0...),
		gPrev: make([]float64, n),
		step:  1,
	}
	m.fx = obj.Evaluate(m.x, m.g)
	copy(m.gPrev, m.g)
	var gd float64
	for i := range d {
		gd += m.g[i] * d[i]
	}
	m.gd = gd
	return m
}

// quartic is a one-dimensional objective with a single minimum at x = 3.
type quartic struct{}

func (quartic) Evaluate(x, grad []float64) float64 {
	t := x[0] - 3
	grad[0] = 4 * t * t * t
	return t * t * t * t
}

func TestLineSearchStrongWolfe(t *testing.T) {
	obj := quartic{}
	m := newLineMinimizer(t, obj, []float64{0}, []float64{1})
	f0, g0 := m.fx, m.gd
	require.Negative(t, g0)

	evals, err := m.lineSearch()
	require.NoError(t, err)
	assert.Positive(t, evals)
	assert.LessOrEqual(t, evals, m.cfg.MaxLineSearch)

	alpha := m.step
	g := m.g[0] * m.d[0]
	assert.LessOrEqual(t, m.fx, f0+m.cfg.SufficientDecrease*alpha*g0,
		"sufficient decrease condition must hold")
	assert.LessOrEqual(t, math.Abs(g), m.cfg.Curvature*math.Abs(g0),
		"strong curvature condition must hold")

	// The buffers must agree with the accepted step.
	assert.InDelta(t, alpha, m.x[0], 1e-15)
	assert.InDelta(t, obj.Evaluate([]float64{m.x[0]}, []float64{0}), m.fx, 1e-15)
}

func TestLineSearchNonDescentDirection(t *testing.T) {
	// Pointing away from the minimum makes the directional derivative
	// non-negative.
	m := newLineMinimizer(t, quartic{}, []float64{0}, []float64{-1})
	require.Positive(t, m.gd)

	evals, err := m.lineSearch()
	assert.ErrorIs(t, err, optimization.ErrNonDescentDirection)
	assert.Zero(t, evals, "an impossible search must not evaluate the objective")
}

func TestLineSearchStepOutOfBounds(t *testing.T) {
	m := newLineMinimizer(t, quartic{}, []float64{0}, []float64{1})
	m.cfg.MaxStep = 0.5
	m.step = 1 // beyond MaxStep

	_, err := m.lineSearch()
	assert.ErrorIs(t, err, optimization.ErrStepOutOfBounds)
}

func TestInterpolateStepQuadratic(t *testing.T) {
	// Hermite data of the parabola f(α) = (α - 1/2)², which the cubic
	// reproduces exactly.
	lo := bracket{a: 0, f: 0.25, g: -1}
	hi := bracket{a: 1, f: 0.25, g: 1}
	assert.InDelta(t, 0.5, interpolateStep(lo, hi), 1e-12)
}

func TestInterpolateStepFallsBackToBisection(t *testing.T) {
	// Degenerate data with a negative discriminant.
	lo := bracket{a: 0, f: 1, g: -1}
	hi := bracket{a: 1, f: 1.0 / 3, g: -1}
	d1 := lo.g + hi.g - 3*(lo.f-hi.f)/(lo.a-hi.a)
	require.Negative(t, d1*d1-lo.g*hi.g)

	assert.InDelta(t, 0.5, interpolateStep(lo, hi), 1e-12)
}
