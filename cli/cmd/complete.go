package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"unicode"

	"github.com/ardnew/subcmd/command"
	"github.com/ardnew/subcmd/log"
	"github.com/ardnew/subcmd/pkg"
)

// Complete prints the completion candidates for a partial command line,
// one per line.
//
// The last token is the one being completed; pass "" to list everything
// that may follow the preceding tokens. When invoked by bash through
// "complete -C", the command line is read from COMP_LINE instead and cut
// at COMP_POINT.
type Complete struct {
	Line   string   `env:"COMP_LINE"  help:"Complete this command line, including the program name" placeholder:"LINE"`
	Point  int      `env:"COMP_POINT" help:"Cursor offset into --line"                             default:"-1"`
	Tokens []string `arg:""           help:"Tokens typed so far"                                   optional:"" passthrough:""`
}

// Run executes the complete command.
func (c *Complete) Run(ctx context.Context) error {
	return c.run(ctx, os.Stdout)
}

func (c *Complete) run(ctx context.Context, stdout io.Writer) error {
	t := targetFrom(ctx)

	root, _, err := t.load(io.Discard)
	if err != nil {
		return err
	}

	typed := c.Tokens
	if c.Line != "" {
		typed = splitLine(c.Line, c.Point)
	}

	if len(typed) == 0 {
		typed = []string{""}
	}

	candidates := command.Complete(ctx, root, t.Identity(), typed)

	log.DebugContext(ctx, "completed",
		slog.String("typed", strconv.Quote(typed[len(typed)-1])),
		slog.Int("candidates", len(candidates)),
	)

	for _, c := range candidates {
		fmt.Fprintln(stdout, c)
	}

	return nil
}

// splitLine cuts line at point, splits it into shell words and drops the
// program name. Trailing whitespace starts a new empty token. A negative
// or out-of-range point selects the whole line.
func splitLine(line string, point int) []string {
	if point >= 0 && point < len(line) {
		line = line[:point]
	}

	tokens := pkg.Fields(line)
	if endsInBlank(line) {
		tokens = append(tokens, "")
	}

	if len(tokens) > 0 {
		tokens = tokens[1:]
	}

	return tokens
}

// endsInBlank reports whether line ends in white space that is not escaped
// by a backslash, so that the word being completed is a new, empty one.
func endsInBlank(line string) bool {
	n := len(line)
	if n == 0 || !unicode.IsSpace(rune(line[n-1])) {
		return false
	}

	escapes := 0
	for i := n - 2; i >= 0 && line[i] == '\\'; i-- {
		escapes++
	}

	return escapes%2 == 0
}
