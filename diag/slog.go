package diag

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// QNX slogf severities.
const (
	SlogShutdown = 0
	SlogCritical = 1
	SlogError    = 2
	SlogWarning  = 3
	SlogNotice   = 4
	SlogInfo     = 5
	SlogDebug1   = 6
	SlogDebug2   = 7
)

func slogLevel(severity int) zapcore.Level {
	switch {
	case severity <= SlogError:
		return zapcore.ErrorLevel
	case severity == SlogWarning:
		return zapcore.WarnLevel
	case severity <= SlogInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// Slogf is the QNX system logger entry point. code identifies the emitting
// subsystem in the foreign convention; both it and the severity are
// attached as fields. Returns the formatted message length.
func Slogf(code, severity int, format string, args ...any) int {
	msg := fmt.Sprintf(format, args...)
	Logger().Log(slogLevel(severity), msg,
		zap.Int("code", code),
		zap.Int("severity", severity),
	)
	return len(msg)
}
