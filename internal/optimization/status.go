package optimization

import "errors"

// Status is the termination reason of a minimization run. Programs should
// use Code, not the underlying value of the Status itself, when a stable
// numeric representation is needed.
type Status int

const (
	// NotTerminated means the run has not reached a terminal state. It is
	// never returned from a completed run.
	NotTerminated Status = iota
	// Converged means the gradient-norm or plateau criterion was satisfied.
	Converged
	// StoppedByCallback means the progress capability requested early
	// termination. The point holds exactly the values last reported.
	StoppedByCallback
	// MaxIterationsExceeded means the outer-iteration budget was exhausted
	// without convergence.
	MaxIterationsExceeded
	// LineSearchFailed means the strong Wolfe conditions were not satisfied
	// within the line-search budget, or a trial step left the configured
	// bounds. The point holds the last accepted iterate.
	LineSearchFailed
	// InvalidInput means the dimension or configuration was rejected before
	// any buffer allocation or callback invocation.
	InvalidInput
	// AllocationFailure means working storage could not be obtained. The Go
	// runtime aborts on heap exhaustion, so this value is never produced;
	// it is reserved to keep the Code table stable for wire and CLI
	// consumers.
	AllocationFailure
)

var statuses = []struct {
	name string
	code int
	err  error
}{
	{name: "NotTerminated", code: -100},
	{name: "Converged", code: 0},
	{name: "StoppedByCallback", code: -5},
	{
		name: "MaxIterationsExceeded",
		code: -4,
		err:  errors.New("conjgrad: maximum number of iterations reached"),
	},
	{
		name: "LineSearchFailed",
		code: -3,
		err:  errors.New("conjgrad: line search failed"),
	},
	{
		name: "InvalidInput",
		code: -1,
		err:  errors.New("conjgrad: invalid dimension or configuration"),
	},
	{
		name: "AllocationFailure",
		code: -2,
		err:  errors.New("conjgrad: could not allocate working storage"),
	},
}

func (s Status) String() string {
	return statuses[s].name
}

// Code returns the stable numeric value of the status: 0 for Converged and
// a distinct negative value for every other terminal reason.
func (s Status) Code() int {
	return statuses[s].code
}

// Success reports whether the run found a minimizer.
func (s Status) Success() bool {
	return s == Converged
}

// Err returns the error associated with a failed run. It is nil for
// Converged and for StoppedByCallback, which is a caller-requested outcome
// rather than a failure.
func (s Status) Err() error {
	return statuses[s].err
}
