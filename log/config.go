package log

import (
	"io"
	"log/slog"
	"time"
)

// DefaultCaller reports whether records include their source location
// unless configured otherwise.
const DefaultCaller = false

// DefaultPretty reports whether records are colorized unless configured
// otherwise.
const DefaultPretty = true

// config is the immutable description of a [Logger].
// Options return modified copies, so a config shared by several loggers is
// never written after construction.
type config struct {
	output     io.Writer
	formatTime FormatTime
	level      Level
	format     Format
	caller     bool
	pretty     bool
}

func makeConfig(w io.Writer, opts ...Option) config {
	return apply(config{}, append([]Option{WithDefaults(w)}, opts...)...)
}

func (c config) clone(opts ...Option) config { return apply(c, opts...) }

// handlerOptions translates c into the options shared by every handler.
// Timestamps are rendered by formatTime and levels by their own names, so
// trace records read "TRACE" instead of "DEBUG-4".
func (c config) handlerOptions() *slog.HandlerOptions {
	formatTime := c.formatTime
	if formatTime == nil {
		formatTime = makeFormatTimeFunc(DefaultTimeLayout)
	}

	return &slog.HandlerOptions{
		AddSource: c.caller,
		Level:     slog.Level(c.level),
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			switch v := a.Value.Any().(type) {
			case time.Time:
				if a.Key != slog.TimeKey {
					break
				}

				s := formatTime(v)
				if s == "" {
					return slog.Attr{}
				}

				a.Value = slog.StringValue(s)

			case slog.Level:
				if a.Key == slog.LevelKey {
					a.Value = slog.StringValue(Level(v).label())
				}
			}

			return a
		},
	}
}

type handlerFunc func(io.Writer, *slog.HandlerOptions) slog.Handler

var handlers = map[bool]map[Format]handlerFunc{
	false: {
		FormatJSON: func(w io.Writer, o *slog.HandlerOptions) slog.Handler {
			return slog.NewJSONHandler(w, o)
		},
		FormatText: func(w io.Writer, o *slog.HandlerOptions) slog.Handler {
			return slog.NewTextHandler(w, o)
		},
	},
	true: {
		FormatJSON: func(w io.Writer, o *slog.HandlerOptions) slog.Handler {
			return newPrettyJSONHandler(w, o)
		},
		FormatText: func(w io.Writer, o *slog.HandlerOptions) slog.Handler {
			return newPrettyTextHandler(w, o)
		},
	},
}

// handler builds the [slog.Handler] described by c with opts applied.
// An unknown format discards every record.
func (c config) handler(opts ...Option) slog.Handler {
	c = c.clone(opts...)

	newHandler, ok := handlers[c.pretty][c.format]
	if !ok {
		return slog.DiscardHandler
	}

	output := c.output
	if output == nil {
		output = io.Discard
	}

	return newHandler(output, c.handlerOptions())
}
