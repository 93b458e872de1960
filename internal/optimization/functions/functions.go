// Package functions provides objective functions for demonstrating and
// testing the minimization engine.
package functions

import (
	"sort"

	"github.com/copyleftdev/CGMIN/internal/optimization"
)

// Rosenbrock implements the two-variable Rosenbrock function
//
//	f(a,b) = (1-a)² + 100(b-a²)².
//
// The global minimum is 0 at (1, 1). The standard hard starting point is
// (0, 0), from which the minimizer sits across a curved narrow valley.
//
// References:
//   - Rosenbrock, H.H.: An Automatic Method for Finding the Greatest or
//     Least Value of a Function. Computer J 3 (1960), 175-184
type Rosenbrock struct{}

// Evaluate returns f(x) and writes the gradient into grad.
func (Rosenbrock) Evaluate(x, grad []float64) float64 {
	if len(x) != 2 {
		panic("functions: dimension of the problem must be 2")
	}
	if len(x) != len(grad) {
		panic("functions: incorrect size of the gradient")
	}

	a, b := x[0], x[1]
	grad[0] = -2 + 2*a - 400*a*b + 400*a*a*a
	grad[1] = 200*b - 200*a*a
	return (1-a)*(1-a) + 100*(b-a*a)*(b-a*a)
}

// Sphere implements the convex quadratic
//
//	f(x) = Σ xᵢ²
//
// in any dimension. The minimum is 0 at the origin. Its contours are exact
// spheres, so a conjugate gradient method finds the minimum in a single
// steepest-descent step.
type Sphere struct{}

// Evaluate returns f(x) and writes the gradient into grad.
func (Sphere) Evaluate(x, grad []float64) float64 {
	if len(x) != len(grad) {
		panic("functions: incorrect size of the gradient")
	}
	var sum float64
	for i, v := range x {
		grad[i] = 2 * v
		sum += v * v
	}
	return sum
}

// Beale implements the Beale function
//
//	f(a,b) = (1.5 - a(1-b))² + (2.25 - a(1-b²))² + (2.625 - a(1-b³))²,
//
// a second non-convex two-variable test surface with its minimum of 0 at
// (3, 0.5).
//
// References:
//   - Beale, E.: On an Iterative Method for Finding a Local Minimum of a
//     Function of More than One Variable. Technical Report 25, Statistical
//     Techniques Research Group, Princeton University (1958)
type Beale struct{}

// Evaluate returns f(x) and writes the gradient into grad.
func (Beale) Evaluate(x, grad []float64) float64 {
	if len(x) != 2 {
		panic("functions: dimension of the problem must be 2")
	}
	if len(x) != len(grad) {
		panic("functions: incorrect size of the gradient")
	}

	t1 := 1 - x[1]
	t2 := 1 - x[1]*x[1]
	t3 := 1 - x[1]*x[1]*x[1]

	f1 := 1.5 - x[0]*t1
	f2 := 2.25 - x[0]*t2
	f3 := 2.625 - x[0]*t3

	grad[0] = -2 * (f1*t1 + f2*t2 + f3*t3)
	grad[1] = 2 * x[0] * (f1 + 2*f2*x[1] + 3*f3*x[1]*x[1])
	return f1*f1 + f2*f2 + f3*f3
}

// catalog maps the names accepted by the CLI and the HTTP API to objectives.
var catalog = map[string]optimization.Objective{
	"rosenbrock": Rosenbrock{},
	"sphere":     Sphere{},
	"beale":      Beale{},
}

// ByName returns the named objective from the catalog.
func ByName(name string) (optimization.Objective, bool) {
	obj, ok := catalog[name]
	return obj, ok
}

// Names lists the catalog in sorted order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
