// Package numdiff estimates gradients of scalar functions by finite
// differences. It exists to validate hand-written analytic gradients, both
// in the engine's tests and for callers wiring their own objectives.
package numdiff

import (
	"errors"
	"math"
)

var (
	sqrtEps = math.Sqrt(math.Nextafter(1, 2) - 1)
	cubeEps = math.Pow(math.Nextafter(1, 2)-1, float64(1)/3)
)

// Method selects the finite difference scheme.
type Method int

const (
	// Forward uses the first order accuracy forward difference.
	Forward Method = iota
	// Central uses the second order accuracy central difference at twice
	// the evaluation cost.
	Central
)

// Spec configures a gradient estimate.
type Spec struct {
	// Method is the finite difference scheme to use.
	Method Method
	// AbsStep overrides the automatic per-coordinate step size. When zero
	// the step is h = eps^(1/2 or 1/3) · max(1, |xᵢ|) with the exponent
	// matching the scheme's accuracy order.
	AbsStep float64
}

// Gradient writes the estimated gradient of f at x into dst. The x slice is
// perturbed one coordinate at a time and restored before returning.
func (s Spec) Gradient(dst []float64, f func([]float64) float64, x []float64) error {
	if len(dst) != len(x) {
		return errors.New("numdiff: length mismatch between dst and x")
	}
	if f == nil {
		return errors.New("numdiff: objective function is required")
	}

	switch s.Method {
	case Forward:
		f0 := f(x)
		for i, v := range x {
			h := s.step(sqrtEps, v)
			x[i] = v + h
			dst[i] = (f(x) - f0) / h
			x[i] = v
		}
	case Central:
		for i, v := range x {
			h := s.step(cubeEps, v)
			x[i] = v - h
			f1 := f(x)
			x[i] = v + h
			f2 := f(x)
			x[i] = v
			dst[i] = (f2 - f1) / (2 * h)
		}
	default:
		return errors.New("numdiff: unknown method")
	}
	return nil
}

func (s Spec) step(eps, v float64) float64 {
	if s.AbsStep != 0 {
		return s.AbsStep
	}
	return eps * math.Max(1, math.Abs(v))
}

// Gradient estimates the gradient of f at x by central differences with
// automatic step selection.
func Gradient(dst []float64, f func([]float64) float64, x []float64) error {
	return Spec{Method: Central}.Gradient(dst, f, x)
}
