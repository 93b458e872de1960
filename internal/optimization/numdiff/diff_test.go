package numdiff

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cubicValue(x []float64) float64 {
	// f(x) = x₀³ + 2x₀x₁ - x₁²
	return x[0]*x[0]*x[0] + 2*x[0]*x[1] - x[1]*x[1]
}

func cubicGrad(x []float64) []float64 {
	return []float64{3*x[0]*x[0] + 2*x[1], 2*x[0] - 2*x[1]}
}

func TestGradientCentral(t *testing.T) {
	points := [][]float64{
		{0, 0},
		{1, -1},
		{-2.5, 3},
		{1e3, -1e3},
	}
	for _, x := range points {
		want := cubicGrad(x)
		got := make([]float64, 2)
		require.NoError(t, Gradient(got, cubicValue, x))
		for i := range want {
			tol := 1e-6 * math.Max(1, math.Abs(want[i]))
			assert.InDelta(t, want[i], got[i], tol, "at %v", x)
		}
	}
}

func TestGradientForwardLessAccurate(t *testing.T) {
	x := []float64{1, -1}
	want := cubicGrad(x)

	got := make([]float64, 2)
	require.NoError(t, Spec{Method: Forward}.Gradient(got, cubicValue, x))
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-4)
	}
}

func TestGradientRestoresPoint(t *testing.T) {
	x := []float64{1.5, -2.5}
	before := append([]float64(nil), x...)
	dst := make([]float64, 2)
	require.NoError(t, Gradient(dst, cubicValue, x))
	assert.Equal(t, before, x)
}

func TestGradientFixedStep(t *testing.T) {
	x := []float64{2, 1}
	got := make([]float64, 2)
	require.NoError(t, Spec{Method: Central, AbsStep: 1e-5}.Gradient(got, cubicValue, x))
	want := cubicGrad(x)
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-6)
	}
}

func TestGradientArgumentErrors(t *testing.T) {
	assert.Error(t, Gradient(make([]float64, 1), cubicValue, []float64{1, 2}))
	assert.Error(t, Gradient(make([]float64, 2), nil, []float64{1, 2}))
	assert.Error(t, Spec{Method: Method(42)}.Gradient(make([]float64, 2), cubicValue, []float64{1, 2}))
}
