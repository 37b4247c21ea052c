// Package log wraps [log/slog] with functional options and a trace level.
//
// A [Logger] is an immutable value built by [Make] from a writer and
// options such as [WithLevel], [WithFormat], [WithTimeLayout],
// [WithCaller] and [WithPretty]. [Logger.Wrap] rebuilds it with more
// options and [Logger.With] adds attributes:
//
//	logger := log.Make(os.Stderr, log.WithLevel(log.LevelTrace))
//	logger = logger.With(slog.String("manifest", path))
//	logger.Trace("descend", slog.String("token", "ls"))
//
// Attributes are [slog.Attr] values, not alternating key/value pairs.
//
// # Levels
//
// [LevelTrace] sits below [LevelDebug] and records each step of command
// resolution and completion. [LevelInfo] is the default.
//
// # Package Functions
//
// The package-level functions log through a default Logger that writes to
// standard error and is reconfigured by [Config]. The *Context variants
// log through the Logger stored in the context by [NewContext] and fall
// back to the default:
//
//	ctx = log.NewContext(ctx, log.With(slog.String("manifest", path)))
//	log.TraceContext(ctx, "complete") // includes manifest=...
//
// Functions without a context use [DefaultContextProvider].
//
// # Timestamps
//
// [WithTimeLayout] accepts a [time] layout name such as "RFC3339",
// "Kitchen" or "DateTime", a short name such as "ms" or "ns", or any
// layout string. "none" or a blank layout omits timestamps.
//
// # Output
//
// Records are encoded as [FormatJSON] (the default) or [FormatText].
// [WithPretty] colors both with lipgloss: text records lose their quoting
// and JSON records are indented.
package log
