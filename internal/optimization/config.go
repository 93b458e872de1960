package optimization

// Config holds the tuning values for one minimization run. It is treated as
// immutable once handed to the engine. Construct it with DefaultConfig and
// override fields as needed; validation happens when the run starts, not
// here.
type Config struct {
	// Epsilon is the gradient-norm tolerance. The run converges when
	// ‖g‖ ≤ Epsilon·max(1, ‖x‖).
	Epsilon float64

	// Past is the lookback window of the relative-decrease test. The last
	// Past objective values are kept and compared against the current one.
	// Zero disables the test.
	Past int

	// Delta is the relative-function-decrease tolerance used together with
	// Past to detect a plateau.
	Delta float64

	// MaxIterations bounds the number of accepted outer iterations.
	MaxIterations int

	// MaxLineSearch bounds the number of objective evaluations per line
	// search.
	MaxLineSearch int

	// MinStep and MaxStep bound the line-search step length. A trial step
	// outside [MinStep, MaxStep] fails the line search.
	MinStep float64
	MaxStep float64

	// SufficientDecrease is the constant c1 in the sufficient-decrease
	// (Armijo) condition f(x+αd) ≤ f(x) + c1·α·gᵀd.
	SufficientDecrease float64

	// Curvature is the constant c2 in the strong curvature condition
	// |g(x+αd)ᵀd| ≤ c2·|gᵀd|. Smaller values give a more exact line
	// search; conjugate gradient directions need c2 well below the 0.9
	// customary for quasi-Newton methods.
	Curvature float64
}

// DefaultConfig returns the documented default tuning values.
func DefaultConfig() Config {
	return Config{
		Epsilon:            1e-5,
		Past:               0,
		Delta:              1e-5,
		MaxIterations:      1000,
		MaxLineSearch:      40,
		MinStep:            1e-20,
		MaxStep:            1e20,
		SufficientDecrease: 1e-4,
		Curvature:          0.1,
	}
}

// Validate checks the configuration against the problem dimension. It is
// called by the engine before any buffer allocation or callback invocation;
// a non-nil error corresponds to the InvalidInput status.
func (c *Config) Validate(dim int) error {
	switch {
	case dim <= 0:
		return NewErrorf("dimension must be positive, got %d", dim)
	case c.Epsilon <= 0:
		return NewErrorf("gradient tolerance must be positive, got %g", c.Epsilon)
	case c.Past < 0:
		return NewErrorf("lookback window must be non-negative, got %d", c.Past)
	case c.Delta < 0:
		return NewErrorf("decrease tolerance must be non-negative, got %g", c.Delta)
	case c.MaxIterations <= 0:
		return NewErrorf("iteration budget must be positive, got %d", c.MaxIterations)
	case c.MaxLineSearch <= 0:
		return NewErrorf("line search budget must be positive, got %d", c.MaxLineSearch)
	case c.MinStep <= 0 || c.MinStep >= c.MaxStep:
		return NewErrorf("step bounds must satisfy 0 < min < max, got [%g, %g]", c.MinStep, c.MaxStep)
	case c.SufficientDecrease <= 0 || c.SufficientDecrease >= c.Curvature:
		return NewErrorf("sufficient decrease constant must satisfy 0 < c1 < c2, got c1=%g c2=%g",
			c.SufficientDecrease, c.Curvature)
	case c.Curvature >= 1:
		return NewErrorf("curvature constant must be below 1, got %g", c.Curvature)
	}
	return nil
}
