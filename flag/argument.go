package flag

import (
	"strconv"
	"strings"
)

// Argument is one parsed token: either a literal positional string or an
// occurrence of an allowed flag.
//
// The zero value is the empty literal.
type Argument struct {
	text  string
	spec  Spec
	value string
	flag  bool
	bound bool
}

// Literal returns a positional argument.
func Literal(text string) Argument {
	return Argument{text: text}
}

// Occur returns an occurrence of spec with no value.
func Occur(spec Spec) Argument {
	return Argument{spec: spec, flag: true}
}

// Bind returns an occurrence of spec carrying value.
// The spec itself is left untouched.
func Bind(spec Spec, value string) Argument {
	return Argument{spec: spec, value: value, flag: true, bound: true}
}

// IsFlag reports whether the argument is a flag occurrence.
func (a Argument) IsFlag() bool { return a.flag }

// Text returns the literal string, or "" for a flag occurrence.
func (a Argument) Text() string { return a.text }

// Spec returns the flag of an occurrence.
func (a Argument) Spec() (Spec, bool) { return a.spec, a.flag }

// Value returns the value bound to an Option occurrence.
func (a Argument) Value() (string, bool) { return a.value, a.bound }

// Pending reports whether the argument is an Option occurrence still
// waiting for its value.
func (a Argument) Pending() bool {
	return a.flag && a.spec.IsOption() && !a.bound
}

// String formats the argument for diagnostics.
func (a Argument) String() string {
	switch {
	case !a.flag:
		return strconv.Quote(a.text)
	case a.bound:
		return a.spec.SurfaceForm() + "=" + strconv.Quote(a.value)
	default:
		return a.spec.SurfaceForm()
	}
}

// Arguments is an ordered sequence of parsed arguments.
type Arguments []Argument

// Literals returns the positional arguments, in order.
func (a Arguments) Literals() []string {
	var out []string

	for _, arg := range a {
		if !arg.flag {
			out = append(out, arg.text)
		}
	}

	return out
}

// Flags returns the flag of every occurrence, in order.
func (a Arguments) Flags() []Spec {
	var out []Spec

	for _, arg := range a {
		if arg.flag {
			out = append(out, arg.spec)
		}
	}

	return out
}

// Has reports whether spec occurs at least once.
func (a Arguments) Has(spec Spec) bool {
	for _, arg := range a {
		if arg.flag && arg.spec.Equal(spec) {
			return true
		}
	}

	return false
}

// Count returns the number of occurrences of spec.
func (a Arguments) Count(spec Spec) int {
	n := 0

	for _, arg := range a {
		if arg.flag && arg.spec.Equal(spec) {
			n++
		}
	}

	return n
}

// Value returns the value of the last bound occurrence of spec.
func (a Arguments) Value(spec Spec) (string, bool) {
	for i := len(a) - 1; i >= 0; i-- {
		if a[i].flag && a[i].bound && a[i].spec.Equal(spec) {
			return a[i].value, true
		}
	}

	return "", false
}

// Last returns the final argument.
func (a Arguments) Last() (Argument, bool) {
	if len(a) == 0 {
		return Argument{}, false
	}

	return a[len(a)-1], true
}

// String formats the sequence for diagnostics.
func (a Arguments) String() string {
	parts := make([]string, len(a))
	for i, arg := range a {
		parts[i] = arg.String()
	}

	return "[" + strings.Join(parts, " ") + "]"
}
