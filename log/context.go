package log

import "context"

type contextKey struct{}

// NewContext returns a copy of ctx carrying l.
// The package-level *Context functions log through it.
func NewContext(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// FromContext returns the Logger carried by ctx, or [Default].
func FromContext(ctx context.Context) Logger {
	if ctx != nil {
		if l, ok := ctx.Value(contextKey{}).(Logger); ok && l.Logger != nil {
			return l
		}
	}

	return defaultLog
}
