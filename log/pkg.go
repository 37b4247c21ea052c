package log

import (
	"context"
	"log/slog"
	"os"
)

// DefaultContextProvider supplies the context for functions that take none.
var DefaultContextProvider = context.TODO

var defaultLog = Make(os.Stderr)

// Config rebuilds the default Logger with opts applied.
func Config(opts ...Option) { defaultLog = defaultLog.Wrap(opts...) }

// Default returns the default Logger.
func Default() Logger { return defaultLog }

// With returns the default Logger with attrs added to every record.
func With(attrs ...slog.Attr) Logger { return defaultLog.With(attrs...) }

// TraceContext logs at [LevelTrace] through the Logger carried by ctx.
func TraceContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	FromContext(ctx).emit(ctx, LevelTrace, msg, attrs)
}

// DebugContext logs at [LevelDebug] through the Logger carried by ctx.
func DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	FromContext(ctx).emit(ctx, LevelDebug, msg, attrs)
}

// InfoContext logs at [LevelInfo] through the Logger carried by ctx.
func InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	FromContext(ctx).emit(ctx, LevelInfo, msg, attrs)
}

// WarnContext logs at [LevelWarn] through the Logger carried by ctx.
func WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	FromContext(ctx).emit(ctx, LevelWarn, msg, attrs)
}

// ErrorContext logs at [LevelError] through the Logger carried by ctx.
func ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	FromContext(ctx).emit(ctx, LevelError, msg, attrs)
}

// Trace logs at [LevelTrace] through the default Logger.
func Trace(msg string, attrs ...slog.Attr) {
	defaultLog.emit(DefaultContextProvider(), LevelTrace, msg, attrs)
}

// Debug logs at [LevelDebug] through the default Logger.
func Debug(msg string, attrs ...slog.Attr) {
	defaultLog.emit(DefaultContextProvider(), LevelDebug, msg, attrs)
}

// Info logs at [LevelInfo] through the default Logger.
func Info(msg string, attrs ...slog.Attr) {
	defaultLog.emit(DefaultContextProvider(), LevelInfo, msg, attrs)
}

// Warn logs at [LevelWarn] through the default Logger.
func Warn(msg string, attrs ...slog.Attr) {
	defaultLog.emit(DefaultContextProvider(), LevelWarn, msg, attrs)
}

// Error logs at [LevelError] through the default Logger.
func Error(msg string, attrs ...slog.Attr) {
	defaultLog.emit(DefaultContextProvider(), LevelError, msg, attrs)
}
