// Package command resolves a raw token list against a tree of named
// commands.
//
// A tree is built from values implementing [Node]. [Dispatch] walks the
// tree one token per level, parses the remaining tokens with
// [flag.Parse] using the terminal node's allowed flags, and executes the
// node. [Complete] performs the same descent for a partially typed line
// and returns the completion candidates for its last token.
//
// Every operation takes an opaque caller identity of type ID, which is
// passed through to the nodes unchanged. A node may use it to vary the
// flags it allows or the hints it offers.
//
// # Grammar
//
//	app list -a --output json -zv file
//	│   │    │  │        │    │   └ literal
//	│   │    │  │        │    └ cluster of -z and -v
//	│   │    │  │        └ value of --output
//	│   │    │  └ long option
//	│   │    └ short flag
//	│   └ child of app
//	└ root
//
// Path tokens must match a child name or alias exactly. Unknown flags,
// unknown path segments, and a trailing option without a value are never
// errors; they surface as literals or as unbound occurrences.
package command
