// Package logger holds the application-wide zap logger.
package logger

import (
	"go.uber.org/zap"
)

// Logger wraps a *zap.Logger that is replaced once Init is called.
type Logger struct {
	// Log is the active logger. It is a no-op logger until Init succeeds.
	Log *zap.Logger
}

// New returns a Logger that discards everything until Init is called.
func New() *Logger {
	return &Logger{Log: zap.NewNop()}
}

// Init builds a production JSON logger at the given level
// ("debug", "info", "warn", "error"...).
func (l *Logger) Init(level string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl

	zl, err := cfg.Build()
	if err != nil {
		return err
	}
	l.Log = zl
	return nil
}
