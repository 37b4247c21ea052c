package log

import (
	"strings"
	"time"
	"unicode"
)

// FormatTime renders a record timestamp. An empty result drops the
// timestamp from the record.
type FormatTime func(time.Time) string

// DefaultTimeLayout is the layout used when none is configured.
const DefaultTimeLayout = time.RFC3339

// namedLayouts maps normalized layout names to [time] layouts.
// Names are normalized by lowercasing and dropping everything that is not
// a letter or digit, so "RFC3339Nano", "rfc-3339-nano" and "rfc3339nano"
// are the same name.
var namedLayouts = map[string]string{
	"none": "",

	"rfc3339":     time.RFC3339,
	"rfc3339nano": time.RFC3339Nano,
	"rfc822":      time.RFC822,
	"rfc822z":     time.RFC822Z,
	"rfc850":      time.RFC850,
	"rfc1123":     time.RFC1123,
	"rfc1123z":    time.RFC1123Z,
	"ansic":       time.ANSIC,
	"unixdate":    time.UnixDate,
	"rubydate":    time.RubyDate,
	"kitchen":     time.Kitchen,
	"datetime":    time.DateTime,
	"dateonly":    time.DateOnly,
	"timeonly":    time.TimeOnly,
	"stamp":       time.Stamp,
}

func init() {
	for layout, aliases := range map[string][]string{
		time.StampMilli: {"stampmilli", "milli", "millis", "ms"},
		time.StampMicro: {"stampmicro", "micro", "micros", "us"},
		time.StampNano:  {"stampnano", "nano", "nanos", "ns"},
	} {
		for _, alias := range aliases {
			namedLayouts[alias] = layout
		}
	}
}

func normalizeLayout(layout string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}

		return -1
	}, layout)
}

// makeFormatTimeFunc resolves layout to a [FormatTime].
// Named layouts are looked up in namedLayouts; anything else is passed
// verbatim to [time.Time.Format]. A blank layout disables timestamps.
func makeFormatTimeFunc(layout string) FormatTime {
	key := normalizeLayout(layout)
	if key == "" {
		return func(time.Time) string { return "" }
	}

	if named, ok := namedLayouts[key]; ok {
		layout = named
	}

	if layout == "" {
		return func(time.Time) string { return "" }
	}

	return func(t time.Time) string { return t.Format(layout) }
}
