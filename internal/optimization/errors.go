package optimization

import (
	"errors"
	"fmt"
)

// Sentinel causes of a line-search failure. They are wrapped into the error
// returned alongside the LineSearchFailed status and can be recovered with
// errors.Is.
var (
	// ErrNonDescentDirection signifies that the directional derivative
	// along the search direction was non-negative, so no step can decrease
	// the objective.
	ErrNonDescentDirection = errors.New("conjgrad: non-descent search direction")

	// ErrStepOutOfBounds signifies that a trial step left the configured
	// [MinStep, MaxStep] interval.
	ErrStepOutOfBounds = errors.New("conjgrad: line search step outside configured bounds")

	// ErrLineSearchBudget signifies that the Wolfe conditions were not
	// satisfied within MaxLineSearch objective evaluations.
	ErrLineSearchBudget = errors.New("conjgrad: line search evaluation budget exhausted")

	// ErrNoProgress signifies that the bracketing interval collapsed
	// without an acceptable step, typically from floating-point rounding.
	ErrNoProgress = errors.New("conjgrad: no progress in line search interval")
)

// Error represents an optimization error with context that can be wrapped
// with additional information.
type Error struct {
	// Message describes the error that occurred.
	Message string
	// Op is the operation that caused the error.
	Op string
	// Component is the component where the error occurred.
	Component string
	// Err is the underlying error that triggered this one, if any.
	Err error
}

// Error returns the string representation of the error.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	var prefix string
	switch {
	case e.Component != "" && e.Op != "":
		prefix = fmt.Sprintf("%s: %s", e.Component, e.Op)
	case e.Component != "":
		prefix = e.Component
	case e.Op != "":
		prefix = e.Op
	}

	msg := e.Message
	if e.Err != nil {
		if msg != "" {
			msg = fmt.Sprintf("%s: %v", msg, e.Err)
		} else {
			msg = e.Err.Error()
		}
	}
	if prefix != "" {
		return fmt.Sprintf("%s: %s", prefix, msg)
	}
	return msg
}

// Unwrap returns the underlying error, if any.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// WithOperation adds operation context to the error.
func (e *Error) WithOperation(op string) *Error {
	e.Op = op
	return e
}

// WithComponent adds component context to the error.
func (e *Error) WithComponent(component string) *Error {
	e.Component = component
	return e
}

// NewError creates a new optimization error with the given message.
func NewError(message string) *Error {
	return &Error{Message: message}
}

// NewErrorf creates a new optimization error with formatted message.
func NewErrorf(format string, args ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

// WrapError wraps an existing error with additional context.
// If err is nil, WrapError returns nil.
func WrapError(err error, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{Message: message, Err: err}
}
