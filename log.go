package eda

import (
	"log/slog"
	"sync/atomic"
)

var logger atomic.Pointer[slog.Logger]

// SetLogger sets the logger used by this package and its subpackages.
// A nil logger restores slog.Default.
func SetLogger(l *slog.Logger) {
	logger.Store(l)
}

// Logger returns the logger set with SetLogger or slog.Default.
func Logger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return slog.Default()
}
