package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ardnew/subcmd/cli/cmd/repl"
	"github.com/ardnew/subcmd/command"
	"github.com/ardnew/subcmd/log"
)

// Check loads the manifest and validates the tree for the selected identity.
type Check struct {
	Tree bool `help:"Print the command tree with the flags allowed for the identity" short:"t"`
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) error {
	return c.run(ctx, os.Stdout)
}

func (c *Check) run(ctx context.Context, stdout io.Writer) error {
	t := targetFrom(ctx)

	root, path, err := t.load(io.Discard)
	if err != nil {
		return err
	}

	if err := command.Validate(root, t.Identity()); err != nil {
		return ErrValidate.
			With(slog.String("manifest", path)).
			With(slog.Any("identity", t.Identity())).
			Wrap(err)
	}

	log.InfoContext(ctx, "manifest ok", slog.String("path", path))

	if c.Tree {
		fmt.Fprintln(stdout, repl.Tree(root, t.Identity()))
	}

	return nil
}
