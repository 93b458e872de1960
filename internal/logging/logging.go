// Package logging provides structured logging for the CGMIN minimization
// service, backed by zap.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the configuration for the logger.
type Config struct {
	// Level is the minimum log level to output (debug, info, warn, error).
	Level string
	// Format is the output format (json, console).
	Format string
	// Output is the output destination (stdout, stderr, or a file path).
	Output string
}

// DefaultConfig returns the default logging configuration.
func DefaultConfig() *Config {
	return &Config{
		Level:  "info",
		Format: "json",
		Output: "stderr",
	}
}

// New creates a zap logger from the given configuration.
func New(cfg *Config) (*zap.Logger, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.OutputPaths = []string{outputPath(cfg.Output)}
	zapCfg.ErrorOutputPaths = []string{outputPath(cfg.Output)}

	switch strings.ToLower(cfg.Format) {
	case "", "json":
		zapCfg.Encoding = "json"
	case "console", "text":
		zapCfg.Encoding = "console"
		zapCfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	default:
		return nil, fmt.Errorf("logging: unknown format %q", cfg.Format)
	}
	zapCfg.EncoderConfig.EncodeTime = zapcore.RFC3339NanoTimeEncoder

	return zapCfg.Build()
}

func parseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(level) {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "warn":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return 0, fmt.Errorf("logging: unknown level %q", level)
	}
}

func outputPath(output string) string {
	switch output {
	case "", "stderr":
		return "stderr"
	case "stdout":
		return "stdout"
	default:
		// Treat as file path.
		return output
	}
}
