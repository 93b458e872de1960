// Package optimization defines the contracts shared by the CGMIN
// minimization engine and its callers: the objective and progress
// capabilities, run configuration, and termination statuses.
package optimization

// Objective is the evaluation capability supplied by the caller. Evaluate
// computes the function value at x and overwrites every entry of grad with
// the gradient at x. It must behave as a pure function of x. The engine may
// call Evaluate several times per outer iteration, once per line-search
// trial point, but never concurrently.
type Objective interface {
	Evaluate(x, grad []float64) float64
}

// ObjectiveFunc adapts an ordinary function to the Objective interface.
type ObjectiveFunc func(x, grad []float64) float64

// Evaluate calls f(x, grad).
func (f ObjectiveFunc) Evaluate(x, grad []float64) float64 { return f(x, grad) }

// ProgressRecord describes one accepted outer iteration. The X and Gradient
// slices are views into the engine's working storage and are only valid for
// the duration of the Progress call; callers that need them afterwards must
// copy them.
type ProgressRecord struct {
	// X is the current candidate point.
	X []float64
	// Gradient is the gradient at X.
	Gradient []float64
	// F is the objective value at X.
	F float64
	// XNorm and GradNorm are the Euclidean norms of X and Gradient.
	XNorm    float64
	GradNorm float64
	// Step is the line-search step length accepted this iteration.
	Step float64
	// Iteration counts accepted outer iterations, starting at 1.
	Iteration int
	// LineSearchEvals is the number of objective evaluations the line
	// search spent this iteration.
	LineSearchEvals int
}

// Monitor is the progress capability supplied by the caller. Progress is
// invoked once per accepted outer iteration. Returning true continues the
// run; returning false is a cooperative cancellation request, after which
// the engine terminates with StoppedByCallback and performs no further
// objective evaluations.
type Monitor interface {
	Progress(rec ProgressRecord) bool
}

// MonitorFunc adapts an ordinary function to the Monitor interface.
type MonitorFunc func(rec ProgressRecord) bool

// Progress calls f(rec).
func (f MonitorFunc) Progress(rec ProgressRecord) bool { return f(rec) }

// Result contains the outcome of a minimization run.
type Result struct {
	// Status is the termination reason.
	Status Status
	// F is the objective value at the final point.
	F float64
	// Iterations is the number of accepted outer iterations.
	Iterations int
	// FuncEvaluations is the total number of Objective.Evaluate calls.
	FuncEvaluations int
}
