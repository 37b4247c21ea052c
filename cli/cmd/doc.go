// Package cmd implements the subcommands of the subcmd CLI.
//
// Every subcommand operates on a command tree loaded from a YAML manifest
// (see package [github.com/ardnew/subcmd/manifest]) and on the identity
// given by the --as and --role flags:
//
//   - run: dispatch tokens and print the node's output
//   - complete: print the completion candidates for tokens
//   - repl: interactive prompt with as-you-type completion
//   - check: load and validate the manifest, optionally printing its tree
//   - init: write a sample manifest or the current configuration
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file, without extension.
	ConfigIdentifier = "config"

	// ManifestIdentifier is the kong variable identifier containing the
	// default manifest file name.
	ManifestIdentifier = "manifest"
)
