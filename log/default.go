package log

import (
	"context"
	"log/slog"
	"os"
)

// DefaultContextProvider supplies the context used by the non-context logging
// functions and methods. It returns [context.TODO] unless reassigned.
//
//nolint:gochecknoglobals
var DefaultContextProvider func() context.Context = context.TODO

// defaultLog is the package-level logger used by the package-level logging
// functions. It writes to standard error until reconfigured with [Config].
//
//nolint:gochecknoglobals
var defaultLog = Make(os.Stderr)

// Default returns the package-level logger.
func Default() Logger {
	return defaultLog
}

// Config reconfigures the package-level logger, preserving any settings not
// overridden by the provided options.
//
// It is intended for process initialization (for example, while parsing
// command-line flags) and is not safe for use concurrently with the
// package-level logging functions.
func Config(opts ...Option) {
	defaultLog = defaultLog.Wrap(opts...)
}

// TraceContext logs a message at Trace level to the package-level logger.
func TraceContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.TraceContext(ctx, msg, attrs...)
}

// Trace logs a message at Trace level to the package-level logger.
func Trace(msg string, attrs ...slog.Attr) {
	defaultLog.TraceContext(DefaultContextProvider(), msg, attrs...)
}

// DebugContext logs a message at Debug level to the package-level logger.
func DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.DebugContext(ctx, msg, attrs...)
}

// Debug logs a message at Debug level to the package-level logger.
func Debug(msg string, attrs ...slog.Attr) {
	defaultLog.DebugContext(DefaultContextProvider(), msg, attrs...)
}

// InfoContext logs a message at Info level to the package-level logger.
func InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.InfoContext(ctx, msg, attrs...)
}

// Info logs a message at Info level to the package-level logger.
func Info(msg string, attrs ...slog.Attr) {
	defaultLog.InfoContext(DefaultContextProvider(), msg, attrs...)
}

// WarnContext logs a message at Warn level to the package-level logger.
func WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.WarnContext(ctx, msg, attrs...)
}

// Warn logs a message at Warn level to the package-level logger.
func Warn(msg string, attrs ...slog.Attr) {
	defaultLog.WarnContext(DefaultContextProvider(), msg, attrs...)
}

// ErrorContext logs a message at Error level to the package-level logger.
func ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.ErrorContext(ctx, msg, attrs...)
}

// Error logs a message at Error level to the package-level logger.
func Error(msg string, attrs ...slog.Attr) {
	defaultLog.ErrorContext(DefaultContextProvider(), msg, attrs...)
}
