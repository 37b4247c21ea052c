// Package manifest builds command trees from YAML documents.
//
// A manifest describes one root command. Each command may declare
// aliases, flags, static positional hints, nested commands, and an
// optional expression that produces its output:
//
//	name: app
//	commands:
//	  - name: list
//	    aliases: [ls]
//	    complete: [files, dirs]
//	    flags:
//	      - name: a
//	        next: lv
//	      - name: sort
//	        values: [name, size]
//	      - name: force
//	        when: '"admin" in identity.Roles'
//	    run: 'join(args, ",") + (flags.sort ?? "")'
//
// Expressions use the expr-lang language and are compiled when the
// manifest is loaded. A flag's when guard receives the caller identity
// and decides whether the flag is recognized for that caller. A command's
// run expression receives the parsed arguments:
//
//	args      []string          literal arguments, in order
//	flags     map[string]any    flag name to bound value, or true
//	identity  Identity          the caller
//	path      string            command names from the root, space separated
//
// A command with neither run nor children prints its path and arguments.
// A command with children and no run only groups them.
package manifest
