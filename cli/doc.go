// Package cli contains the command line interface for subcmd.
//
// # Usage
//
// Tokens that do not name a subcommand of subcmd itself are dispatched
// through the command tree of the manifest:
//
//	subcmd list -al --sort size src
//	subcmd --as alice --role admin run service stop --force
//	subcmd complete list --sort ''
//	subcmd repl
//	subcmd check --tree
//	subcmd init
//
// The manifest is located by name in the working directory, the
// configuration directory, and then each directory listed in $SUBCMD_PATH.
//
// # Configuration
//
// Flag defaults may be given in config.json, config.yaml or config.toml in
// the configuration directory. The YAML and TOML loaders read the mapping
// under the "config" key (the [config] table in TOML), or the top-level
// mapping when that key is absent. Flag
// names may use underscores in place of hyphens:
//
//	config:
//	  log_level: debug
//	  manifest: tools.yaml
//	  role: [admin]
//
// Command-line flags override config file values. "subcmd init --config"
// writes the current flag values in this format.
//
// # Shell completion
//
// Bash can complete through the complete subcommand directly, which reads
// COMP_LINE and COMP_POINT from the environment:
//
//	complete -C 'subcmd complete' subcmd
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o subcmd .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/subcmd/pprof)
package cli
