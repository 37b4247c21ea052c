// Package flag models command-line flags and parses raw tokens into an
// ordered sequence of typed arguments.
//
// # Specifications
//
// A [Spec] describes one recognized flag. Its name never includes dashes;
// the surface syntax is derived from the name's length:
//
//	flag.Simple("v")      // -v       (clusterable: -vx)
//	flag.Simple("force")  // --force  (never clustered)
//	flag.Option("o", flag.WithValues("json", "yaml"))  // -o json
//
// Specs are immutable values and may be shared freely across goroutines.
// Two specs are equal when their names are equal, so a bare
// flag.Simple(name) doubles as a comparison key.
//
// # Parsing
//
// [Parse] walks the tokens left to right:
//
//   - "--name" matches an allowed long flag exactly, otherwise it is literal.
//   - "-abc" is a cluster of one-character flags. Every character must match
//     an allowed flag or the whole token is literal.
//   - An Option flag (long form, or a one-character cluster naming exactly
//     one Option flag) consumes the following token as its value.
//   - Everything else is a literal positional argument.
//
// An Option flag at the end of input is emitted without a value; whether
// that is acceptable is up to the command receiving it.
package flag
