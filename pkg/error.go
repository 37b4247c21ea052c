package pkg

// Sentinel errors for the subcmd module and its subpackages.
// These errors can be tested using errors.Is for reliable error checking.

import (
	"fmt"
	"slices"
	"strings"
)

// Error represents a chain of errors.
type Error []error

// ErrInvalidFlag is returned when a flag name is empty or carries its own
// leading dash.
//
// This error should be wrapped with the offending name.
var ErrInvalidFlag = MakeErrorf("invalid flag name")

// ErrDuplicateFlag is returned when two flags allowed in the same context
// share a name.
//
// This error should be wrapped with the surface form of the duplicate.
var ErrDuplicateFlag = MakeErrorf("duplicate flag")

// ErrDuplicateName is returned when two sibling commands share a name, or
// a command name collides with a sibling's alias.
//
// This error should be wrapped with the command path of the duplicate.
var ErrDuplicateName = MakeErrorf("duplicate command name")

// ErrDuplicateAlias is returned when an alias is declared by two siblings.
//
// This error should be wrapped with the command path of the duplicate.
var ErrDuplicateAlias = MakeErrorf("duplicate command alias")

// ErrEmptyName is returned when a command has no name.
var ErrEmptyName = MakeErrorf("empty command name")

// ErrManifest is returned when a command manifest cannot be decoded.
//
// This error should be wrapped with the underlying decode error
// to preserve the error chain.
var ErrManifest = MakeErrorf("invalid manifest")

// ErrExpr is returned when a manifest expression fails to compile or
// evaluate.
//
// This error should be wrapped with the expression source and the
// underlying expr-lang error.
var ErrExpr = MakeErrorf("expression error")

// ErrNoManifest is returned when no manifest file is found on the search
// path.
var ErrNoManifest = MakeErrorf("manifest not found")

// ErrReadInput is returned when reading input fails.
//
// This error should be wrapped with the underlying I/O error
// to preserve the error chain.
var ErrReadInput = MakeErrorf("failed to read input")

// MakeError constructs an Error from the given errors.
// The errors are stored in the order they are provided:
// the first argument is the innermost error in the chain.
// Nil is returned if no errors are provided.
func MakeError(errs ...error) Error {
	var e Error

	for _, err := range errs {
		if err != nil {
			e = append(e, UnwrapErrors(err)...)
		}
	}

	return e
}

// MakeErrorf constructs an Error from a formatted error message.
func MakeErrorf(format string, args ...any) Error {
	return MakeError(fmt.Errorf(format, args...))
}

// Error returns a concatenated string representation of all errors
// in the error chain, separated by ": ", from innermost to outermost.
func (e Error) Error() string {
	var sb strings.Builder

	for i, err := range slices.All(e) {
		if i > 0 {
			sb.WriteString(": ")
		}

		sb.WriteString(err.Error())
	}

	return sb.String()
}

// Wrap appends one or more errors to the receiver and returns the result.
func (e Error) Wrap(err ...error) Error {
	return append(slices.Clip(e), err...)
}

// Wrapf appends a formatted error to the receiver and returns the result.
func (e Error) Wrapf(format string, args ...any) Error {
	return append(slices.Clip(e), fmt.Errorf(format, args...))
}

// Unwrap returns the slice of errors contained in the receiver.
func (e Error) Unwrap() []error {
	return e
}

// Is reports whether target is an Error whose chain begins the receiver's
// chain. Sentinels are single-element chains, so any chain built from a
// sentinel by [Error.Wrap] or [Error.Wrapf] matches it.
func (e Error) Is(target error) bool {
	t, ok := target.(Error)
	if !ok || len(t) == 0 || len(t) > len(e) {
		return false
	}

	for i := range t {
		if !sameError(e[i], t[i]) {
			return false
		}
	}

	return true
}

// sameError compares two chain elements by identity. Nested chains are
// slices and therefore never compared.
func sameError(a, b error) bool {
	if _, ok := a.(Error); ok {
		return false
	}

	if _, ok := b.(Error); ok {
		return false
	}

	return a == b
}

// UnwrapErrors recursively unwraps an error chain and returns a slice
// containing all errors in the chain, starting from the innermost error.
func UnwrapErrors(err error) Error {
	if err == nil {
		return nil
	}

	chain := Error{}

	if e, ok := err.(interface{ Unwrap() []error }); ok {
		for _, wrapped := range e.Unwrap() {
			chain = append(chain, UnwrapErrors(wrapped)...)
		}
	} else if e, ok := err.(interface{ Unwrap() error }); ok {
		chain = append(chain, UnwrapErrors(e.Unwrap())...)
	}

	return append(chain, err)
}
