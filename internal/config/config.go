// Package config loads service configuration from the environment.
package config

import (
	"time"

	"github.com/caarlos0/env/v10"

	"github.com/copyleftdev/CGMIN/internal/optimization"
)

// Config holds the full service configuration.
type Config struct {
	Environment string `env:"ENV" envDefault:"development"`
	HTTP        struct {
		Port            int           `env:"HTTP_PORT" envDefault:"8080"`
		ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"30s"`
		WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
		IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"120s"`
		ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	}
	Logging struct {
		Level  string `env:"LOG_LEVEL" envDefault:"info"`
		Format string `env:"LOG_FORMAT" envDefault:"json"`
		Output string `env:"LOG_OUTPUT" envDefault:"stderr"`
	}
	Solver struct {
		Epsilon       float64 `env:"CG_EPSILON" envDefault:"1e-5"`
		Delta         float64 `env:"CG_DELTA" envDefault:"1e-5"`
		Past          int     `env:"CG_PAST" envDefault:"0"`
		MaxIterations int     `env:"CG_MAX_ITERATIONS" envDefault:"1000"`
		MaxLineSearch int     `env:"CG_MAX_LINESEARCH" envDefault:"40"`
		MinStep       float64 `env:"CG_MIN_STEP" envDefault:"1e-20"`
		MaxStep       float64 `env:"CG_MAX_STEP" envDefault:"1e20"`
	}
}

// Load parses the configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	// Development runs default to verbose console output unless overridden.
	if cfg.Environment == "development" {
		if cfg.Logging.Level == "info" {
			cfg.Logging.Level = "debug"
		}
	}

	return cfg, nil
}

// SolverConfig maps the environment-supplied solver defaults onto an engine
// configuration. Per-request overrides are applied on top by the server.
func (c *Config) SolverConfig() optimization.Config {
	sc := optimization.DefaultConfig()
	sc.Epsilon = c.Solver.Epsilon
	sc.Delta = c.Solver.Delta
	sc.Past = c.Solver.Past
	sc.MaxIterations = c.Solver.MaxIterations
	sc.MaxLineSearch = c.Solver.MaxLineSearch
	sc.MinStep = c.Solver.MinStep
	sc.MaxStep = c.Solver.MaxStep
	return sc
}
