// Package diag provides the diagnostic logger for the provisioning pipeline.
//
// The pipeline's user-facing surface is the colorized step output; diag
// carries the free-text debug lines that are only useful when something
// misbehaves. It wraps a zap sugared logger writing to stderr so diagnostics
// never interleave with captured command output on stdout.
package diag

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger provides printf-style diagnostic logging.
type Logger struct {
	sugar *zap.SugaredLogger
}

// New creates a diagnostic logger writing to stderr.
// When verbose is false, debug lines are suppressed and only warnings and
// errors surface.
func New(verbose bool) *Logger {
	return NewWithWriter(verbose, os.Stderr)
}

// NewWithWriter creates a diagnostic logger writing to the given writer.
func NewWithWriter(verbose bool, w io.Writer) *Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		MessageKey:     "msg",
		EncodeTime:     zapcore.RFC3339TimeEncoder,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(w),
		level,
	)

	return &Logger{sugar: zap.New(core).Sugar()}
}

// Nop returns a logger that discards everything.
// Useful as the default when no logger was configured.
func Nop() *Logger {
	return &Logger{sugar: zap.NewNop().Sugar()}
}

// Debugf logs a debug message with printf-style formatting.
func (l *Logger) Debugf(template string, args ...any) {
	l.sugar.Debugf(template, args...)
}

// Infof logs an info message with printf-style formatting.
func (l *Logger) Infof(template string, args ...any) {
	l.sugar.Infof(template, args...)
}

// Warnf logs a warning message with printf-style formatting.
func (l *Logger) Warnf(template string, args ...any) {
	l.sugar.Warnf(template, args...)
}

// Errorf logs an error message with printf-style formatting.
func (l *Logger) Errorf(template string, args ...any) {
	l.sugar.Errorf(template, args...)
}

// With returns a Logger with additional context fields.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{sugar: l.sugar.With(args...)}
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error {
	return l.sugar.Sync()
}
