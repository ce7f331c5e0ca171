// Package logging builds the zap logger used across tourguide. While the
// interactive overlay owns the terminal, log output goes to a file; writing
// to stderr would tear the rendered screen.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a production logger writing under <workspace>/.tourguide/logs.
// Verbose lowers the level to debug.
func New(workspace string, verbose bool) (*zap.Logger, error) {
	dir := filepath.Join(workspace, ".tourguide", "logs")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{filepath.Join(dir, "tourguide.log")}
	cfg.ErrorOutputPaths = cfg.OutputPaths
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
