package flag

//go:generate go tool stringer --linecomment --type Kind --output kind_string.go

import (
	"slices"
	"unicode/utf8"
)

// Kind distinguishes flags that stand alone from flags that bind a value.
type Kind uint8

const (
	KindSimple Kind = iota // simple
	KindOption             // option
)

const (
	shortPrefix = "-"
	longPrefix  = "--"
)

// Spec is an immutable description of one recognized flag.
type Spec struct {
	name    string
	kind    Kind
	suggest func() []string
	next    func(previous []Spec) []rune
}

// Setting configures a [Spec] at construction time.
type Setting func(Spec) Spec

// Simple returns a flag that takes no value.
//
// With no options it is also the canonical key for comparing against flags
// found in parsed arguments.
func Simple(name string, opts ...Setting) Spec {
	return apply(Spec{name: name, kind: KindSimple}, opts...)
}

// Option returns a flag whose value is the token following it.
func Option(name string, opts ...Setting) Spec {
	return apply(Spec{name: name, kind: KindOption}, opts...)
}

func apply(s Spec, opts ...Setting) Spec {
	for _, opt := range opts {
		s = opt(s)
	}

	return s
}

// WithSuggestions sets the provider of completion candidates for an Option
// flag's value. The provider must be a pure function.
func WithSuggestions(fn func() []string) Setting {
	return func(s Spec) Spec {
		s.suggest = fn

		return s
	}
}

// WithValues is shorthand for [WithSuggestions] with a fixed list.
func WithValues(values ...string) Setting {
	values = slices.Clone(values)

	return WithSuggestions(func() []string { return slices.Clone(values) })
}

// WithNext sets the provider of characters that may follow a one-character
// flag inside the same cluster. It receives every flag already in the
// cluster, including the receiver as the last element.
func WithNext(fn func(previous []Spec) []rune) Setting {
	return func(s Spec) Spec {
		s.next = fn

		return s
	}
}

// WithNextRunes is shorthand for [WithNext] with a fixed set of characters.
func WithNextRunes(chars string) Setting {
	runes := []rune(chars)

	return WithNext(func([]Spec) []rune { return slices.Clone(runes) })
}

// Name returns the flag name without dashes.
func (s Spec) Name() string { return s.name }

// Kind returns whether the flag is simple or binds a value.
func (s Spec) Kind() Kind { return s.kind }

// IsOption reports whether the flag consumes the following token.
func (s Spec) IsOption() bool { return s.kind == KindOption }

// IsShort reports whether the name is exactly one character, which makes
// the flag single-dash and clusterable.
func (s Spec) IsShort() bool { return utf8.RuneCountInString(s.name) == 1 }

// Rune returns the character of a short flag.
func (s Spec) Rune() (rune, bool) {
	if !s.IsShort() {
		return utf8.RuneError, false
	}

	r, _ := utf8.DecodeRuneInString(s.name)

	return r, true
}

// SurfaceForm returns the flag as typed on the command line: "-x" for
// one-character names, "--name" otherwise.
func (s Spec) SurfaceForm() string {
	if s.IsShort() {
		return shortPrefix + s.name
	}

	return longPrefix + s.name
}

// String implements [fmt.Stringer].
func (s Spec) String() string { return s.SurfaceForm() }

// Equal reports whether both specs have the same name.
func (s Spec) Equal(other Spec) bool { return s.name == other.name }

// Suggestions returns the completion candidates for the flag's value.
// Simple flags have none.
func (s Spec) Suggestions() []string {
	if s.kind != KindOption || s.suggest == nil {
		return nil
	}

	return s.suggest()
}

// Next returns the characters that may extend a cluster ending with this
// flag. Long flags never cluster and always return nil.
func (s Spec) Next(previous []Spec) []rune {
	if !s.IsShort() || s.next == nil {
		return nil
	}

	return s.next(previous)
}
