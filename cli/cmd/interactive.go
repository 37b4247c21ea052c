package cmd

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"

	"github.com/ardnew/subcmd/cli/cmd/repl"
	"github.com/ardnew/subcmd/log"
	"github.com/ardnew/subcmd/manifest"
)

// Repl starts an interactive prompt on the command tree.
type Repl struct {
	History string `default:"${cache}/history.utf8" help:"History file ('' keeps history in memory)"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	t := targetFrom(ctx)

	var out bytes.Buffer

	root, path, err := t.load(&out)
	if err != nil {
		return err
	}

	history := r.History
	if history != "" {
		history = filepath.Clean(history)
	}

	logger := log.With(slog.String("manifest", path))

	err = repl.Run(ctx, repl.Session[manifest.Identity]{
		Root:     root,
		Identity: t.Identity(),
		Output:   &out,
		History:  history,
	}, logger)
	if err != nil {
		return ErrTerminal.With(slog.String("manifest", path)).Wrap(err)
	}

	return nil
}
