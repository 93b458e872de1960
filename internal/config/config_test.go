package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "json", cfg.Logging.Format)
	// Development promotes the default log level to debug.
	assert.Equal(t, "debug", cfg.Logging.Level)

	assert.Equal(t, 1e-5, cfg.Solver.Epsilon)
	assert.Equal(t, 1e-5, cfg.Solver.Delta)
	assert.Equal(t, 0, cfg.Solver.Past)
	assert.Equal(t, 1000, cfg.Solver.MaxIterations)
	assert.Equal(t, 40, cfg.Solver.MaxLineSearch)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("CG_EPSILON", "1e-8")
	t.Setenv("CG_PAST", "5")
	t.Setenv("CG_MAX_ITERATIONS", "250")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, 1e-8, cfg.Solver.Epsilon)
	assert.Equal(t, 5, cfg.Solver.Past)
	assert.Equal(t, 250, cfg.Solver.MaxIterations)
}

func TestLoadProductionKeepsInfoLevel(t *testing.T) {
	t.Setenv("ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadInvalidValue(t *testing.T) {
	t.Setenv("CG_EPSILON", "not-a-number")

	_, err := Load()
	assert.Error(t, err)
}

func TestSolverConfig(t *testing.T) {
	t.Setenv("CG_EPSILON", "1e-7")
	t.Setenv("CG_DELTA", "1e-9")
	t.Setenv("CG_MAX_LINESEARCH", "20")

	cfg, err := Load()
	require.NoError(t, err)

	sc := cfg.SolverConfig()
	assert.Equal(t, 1e-7, sc.Epsilon)
	assert.Equal(t, 1e-9, sc.Delta)
	assert.Equal(t, 20, sc.MaxLineSearch)
	require.NoError(t, sc.Validate(2))
}
