package spawn

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the spawn package's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the spawn package's logger.
// This must be called before any spawn operations; it is not
// synchronized against a concurrent Logger call.
func SetLogger(l *zap.Logger) {
	logger = l
}
