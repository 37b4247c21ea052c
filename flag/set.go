package flag

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ardnew/subcmd/pkg"
)

// Set is an ordered collection of flags allowed in one context.
// No two members may share a name; see [Set.Validate].
type Set []Spec

// Lookup returns the member whose surface form equals token exactly.
func (s Set) Lookup(token string) (Spec, bool) {
	for _, spec := range s {
		if spec.SurfaceForm() == token {
			return spec, true
		}
	}

	return Spec{}, false
}

// LookupRune returns the one-character member named r.
func (s Set) LookupRune(r rune) (Spec, bool) {
	for _, spec := range s {
		if c, ok := spec.Rune(); ok && c == r {
			return spec, true
		}
	}

	return Spec{}, false
}

// Contains reports whether a member has the same name as spec.
func (s Set) Contains(spec Spec) bool {
	return slices.ContainsFunc(s, spec.Equal)
}

// Shorts returns the characters of all one-character members, in order.
func (s Set) Shorts() []rune {
	var runes []rune

	for _, spec := range s {
		if r, ok := spec.Rune(); ok {
			runes = append(runes, r)
		}
	}

	return runes
}

// Without returns the members not equal to any of the given specs.
func (s Set) Without(specs ...Spec) Set {
	out := make(Set, 0, len(s))

	for _, spec := range s {
		if !slices.ContainsFunc(specs, spec.Equal) {
			out = append(out, spec)
		}
	}

	return out
}

// SurfaceForms returns the surface form of each member, in order.
func (s Set) SurfaceForms() []string {
	forms := make([]string, len(s))
	for i, spec := range s {
		forms[i] = spec.SurfaceForm()
	}

	return forms
}

// Validate reports the first malformed or duplicated member.
func (s Set) Validate() error {
	seen := make(map[string]struct{}, len(s))

	for _, spec := range s {
		if spec.name == "" || strings.HasPrefix(spec.name, shortPrefix) {
			return fmt.Errorf("%w: %q", pkg.ErrInvalidFlag, spec.name)
		}

		if _, dup := seen[spec.name]; dup {
			return fmt.Errorf("%w: %s", pkg.ErrDuplicateFlag, spec.SurfaceForm())
		}

		seen[spec.name] = struct{}{}
	}

	return nil
}
