package pkg

import (
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/syntax"
)

// Fields splits line into words as a POSIX shell would, removing quotes and
// escapes. Parameters expand to nothing and nothing is globbed, so the
// result depends on line alone.
//
// A line that is not a single simple command, such as one ending inside a
// quote or containing a pipe, is split on white space instead.
func Fields(line string) []string {
	file, err := syntax.NewParser(syntax.Variant(syntax.LangPOSIX)).
		Parse(strings.NewReader(line), "")
	if err != nil || len(file.Stmts) != 1 {
		return strings.Fields(line)
	}

	stmt := file.Stmts[0]

	call, ok := stmt.Cmd.(*syntax.CallExpr)
	if !ok || stmt.Negated || stmt.Background || len(call.Assigns) > 0 {
		return strings.Fields(line)
	}

	cfg := &expand.Config{Env: expand.ListEnviron()}

	words, err := expand.Fields(cfg, call.Args...)
	if err != nil {
		return strings.Fields(line)
	}

	if words == nil {
		return []string{}
	}

	return words
}
