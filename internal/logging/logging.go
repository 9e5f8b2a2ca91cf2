// Package logging provides the process-wide zap logger for parafrase.
// Subsystems obtain named child loggers (pipeline, risk, refine, search,
// store) so log output can be filtered per concern.
package logging

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	logger = zap.NewNop()
)

// Init builds the global logger. Call once at startup; verbose enables
// debug-level output.
func Init(verbose bool) error {
	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	built, err := config.Build()
	if err != nil {
		return err
	}
	mu.Lock()
	logger = built
	mu.Unlock()
	return nil
}

// SetLogger replaces the global logger. Tests use this with zaptest.
func SetLogger(l *zap.Logger) {
	mu.Lock()
	logger = l
	mu.Unlock()
}

// Named returns a child logger for a subsystem.
func Named(subsystem string) *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger.Named(subsystem)
}

// Sync flushes buffered log entries. Safe to call on shutdown.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	_ = logger.Sync()
}
