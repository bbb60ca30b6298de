// Package console holds the process-wide logger. It is a thin printf-style
// layer over a zap sugared logger, plus a Debugger adapter for the stage
// services.
package console

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the process logger. It starts out writing to stderr at info level.
var Logger = New(os.Stderr)

// Log wraps a sugared zap logger.
type Log struct {
	// DebugLevel enables Debug output when greater than zero.
	DebugLevel int

	sugar *zap.SugaredLogger
}

// New returns a Log writing human-readable lines to w.
func New(w zapcore.WriteSyncer) *Log {
	encoder := zap.NewDevelopmentEncoderConfig()
	encoder.TimeKey = ""
	encoder.CallerKey = ""
	encoder.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoder),
		zapcore.Lock(w),
		zap.DebugLevel,
	)
	return &Log{sugar: zap.New(core).Sugar()}
}

// Wrap returns a Log backed by an existing zap logger.
func Wrap(l *zap.Logger) *Log {
	return &Log{sugar: l.Sugar()}
}

// Quiet returns a Log that discards everything.
func Quiet() *Log {
	return Wrap(zap.NewNop())
}

// Debug logs when DebugLevel is set.
func (l *Log) Debug(format string, args ...interface{}) {
	if l.DebugLevel > 0 {
		l.sugar.Debugf(format, args...)
	}
}

// Info logs an informational line.
func (l *Log) Info(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

// Warn logs a recoverable problem.
func (l *Log) Warn(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

// Error logs a failure.
func (l *Log) Error(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

// Sync flushes buffered output.
func (l *Log) Sync() {
	_ = l.sugar.Sync()
}

// Printf implements the Debugger interface so a Log can be handed to the
// stage services. Lines go out at debug level.
func (l *Log) Printf(format string, args ...interface{}) {
	l.Debug(format, args...)
}
