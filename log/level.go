package log

//go:generate go tool stringer --linecomment --type Level,Format --output level_string.go

import (
	"iter"
	"log/slog"
	"slices"
	"strings"
)

// Level is the severity of a log message. It extends [slog.Level] with
// [LevelTrace], used for per-token command resolution.
type Level slog.Level

const (
	LevelTrace Level = Level(slog.LevelDebug - 4) // trace
	LevelDebug Level = Level(slog.LevelDebug)     // debug
	LevelInfo  Level = Level(slog.LevelInfo)      // info
	LevelWarn  Level = Level(slog.LevelWarn)      // warn
	LevelError Level = Level(slog.LevelError)     // error
)

// DefaultLevel is the level used when none is configured or a level name
// cannot be parsed.
const DefaultLevel = LevelInfo

var levels = []Level{LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError}

// Levels yields the name of each level from least to most severe.
func Levels() iter.Seq[string] {
	return names(levels, Level.String)
}

// ParseLevel returns the level named by s, ignoring case.
// Anything [slog.Level.UnmarshalText] accepts is also accepted, including
// offsets such as "warn+2". Unknown names yield [DefaultLevel].
func ParseLevel(s string) Level {
	s = strings.TrimSpace(s)

	if i := slices.IndexFunc(levels, func(l Level) bool {
		return strings.EqualFold(l.String(), s)
	}); i >= 0 {
		return levels[i]
	}

	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return DefaultLevel
	}

	return Level(l)
}

// label is the uppercase name written by the standard handlers.
func (l Level) label() string { return strings.ToUpper(l.String()) }

// Format selects the encoding of log records.
type Format int

const (
	FormatText Format = iota // text
	FormatJSON               // json
)

// DefaultFormat is the format used when none is configured.
const DefaultFormat = FormatJSON

var formats = []Format{FormatJSON, FormatText}

// Formats yields the name of each format.
func Formats() iter.Seq[string] {
	return names(formats, Format.String)
}

// ParseFormat returns the format named by s, or [DefaultFormat].
func ParseFormat(s string) Format {
	s = strings.TrimSpace(s)

	for _, f := range formats {
		if strings.EqualFold(f.String(), s) {
			return f
		}
	}

	return DefaultFormat
}

func names[T any](values []T, name func(T) string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, v := range values {
			if !yield(name(v)) {
				return
			}
		}
	}
}
