package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/subcmd/command"
	"github.com/ardnew/subcmd/log"
	"github.com/ardnew/subcmd/manifest"
)

// Run dispatches tokens through the command tree.
type Run struct {
	Tokens []string `arg:"" help:"Command path, flags and arguments" optional:"" passthrough:""`
}

// Run executes the run command.
func (r *Run) Run(ctx context.Context) error {
	return r.run(ctx, os.Stdout, os.Stderr)
}

func (r *Run) run(ctx context.Context, stdout, stderr io.Writer) error {
	t := targetFrom(ctx)

	root, path, err := t.load(stdout)
	if err != nil {
		return err
	}

	ctx = log.NewContext(ctx, log.FromContext(ctx).With(slog.String("manifest", path)))

	out, err := command.Dispatch(ctx, root, t.Identity(), r.Tokens)
	if err != nil {
		return ErrDispatch.
			With(slog.String("manifest", path)).
			With(slog.Any("tokens", r.Tokens)).
			Wrap(err)
	}

	if !out.Ran {
		printNotice(stderr, out)
	}

	return nil
}

// printNotice reports a node that only groups subcommands, followed by the
// subcommands it offers.
func printNotice(w io.Writer, out command.Outcome[manifest.Identity]) {
	style := lipgloss.NewRenderer(w).NewStyle().
		Foreground(lipgloss.Color("1")).
		Bold(true)

	fmt.Fprintln(w, style.Render(out.Notice()))

	children := out.Node.Children()
	if len(children) == 0 {
		return
	}

	names := make([]string, len(children))
	for i, child := range children {
		names[i] = child.Name()
	}

	fmt.Fprintf(w, "available: %s\n", strings.Join(names, ", "))
}
