package conjgrad

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/copyleftdev/CGMIN/internal/optimization"
)

func TestBetaPolakRibiere(t *testing.T) {
	tests := []struct {
		name    string
		g       []float64
		gPrev   []float64
		want    float64
	}{
		{
			name:  "unchanged gradient",
			g:     []float64{1, 2},
			gPrev: []float64{1, 2},
			want:  0,
		},
		{
			name:  "orthogonal gradients",
			g:     []float64{0, 3},
			gPrev: []float64{2, 0},
			want:  9.0 / 4,
		},
		{
			name: "negative raw value is clamped",
			// g·(g-gPrev) = 1 - 2 < 0.
			g:     []float64{1},
			gPrev: []float64{2},
			want:  0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, betaPolakRibiere(tt.g, tt.gPrev), 1e-14)
		})
	}
}

func newDirectionMinimizer(n int) *minimizer {
	cfg := optimization.DefaultConfig()
	return &minimizer{
		cfg:   &cfg,
		n:     n,
		x:     make([]float64, n),
		g:     make([]float64, n),
		d:     make([]float64, n),
		xPrev: make([]float64, n),
		gPrev: make([]float64, n),
		step:  1,
	}
}

func TestSteepestDescentRestart(t *testing.T) {
	m := newDirectionMinimizer(2)
	copy(m.g, []float64{3, -4})
	m.sinceRestart = 5
	m.step = 0.25

	m.steepestDescent()

	assert.Equal(t, []float64{-3, 4}, m.d)
	assert.InDelta(t, -25, m.gd, 1e-14)
	assert.Equal(t, 1.0, m.step)
	assert.Zero(t, m.sinceRestart)
}

func TestNextDirectionConjugateUpdate(t *testing.T) {
	m := newDirectionMinimizer(10)
	copy(m.gPrev, []float64{2, 0, 0, 0, 0, 0, 0, 0, 0, 0})
	copy(m.g, []float64{0, 1, 0, 0, 0, 0, 0, 0, 0, 0})
	copy(m.d, []float64{-2, 0, 0, 0, 0, 0, 0, 0, 0, 0})
	m.gd = -4
	m.step = 0.5
	m.sinceRestart = 0

	m.nextDirection()

	// β = g·(g-gPrev)/|gPrev|² = 1/4, so d = -g + β·dPrev.
	beta := 0.25
	want := []float64{-2 * beta, -1, 0, 0, 0, 0, 0, 0, 0, 0}
	require.True(t, floats.EqualApprox(m.d, want, 1e-14), "got %v, want %v", m.d, want)
	assert.Negative(t, m.gd)
	assert.Equal(t, 1, m.sinceRestart)
	assert.Positive(t, m.step)
}

func TestNextDirectionPeriodicRestart(t *testing.T) {
	m := newDirectionMinimizer(2)
	copy(m.gPrev, []float64{2, 0})
	copy(m.g, []float64{0, 1})
	copy(m.d, []float64{-2, 0})
	m.gd = -4
	m.sinceRestart = 1 // one more iteration reaches the dimension

	m.nextDirection()

	assert.Equal(t, []float64{0, -1}, m.d, "restart must take the steepest descent direction")
	assert.Equal(t, 1.0, m.step)
	assert.Zero(t, m.sinceRestart)
}

func TestNextDirectionNonDescentForcesRestart(t *testing.T) {
	m := newDirectionMinimizer(10)
	// A large conjugate term along a direction correlated with the gradient
	// would turn the update uphill.
	copy(m.gPrev, []float64{1e-3, 0, 0, 0, 0, 0, 0, 0, 0, 0})
	copy(m.g, []float64{1, 1, 0, 0, 0, 0, 0, 0, 0, 0})
	copy(m.d, []float64{1, 0, 0, 0, 0, 0, 0, 0, 0, 0})
	m.gd = -1
	m.sinceRestart = 0

	m.nextDirection()

	want := []float64{-1, -1, 0, 0, 0, 0, 0, 0, 0, 0}
	assert.Equal(t, want, m.d)
	assert.Zero(t, m.sinceRestart)
}
