package manifest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/ardnew/subcmd/command"
	"github.com/ardnew/subcmd/flag"
	"github.com/ardnew/subcmd/log"
	"github.com/ardnew/subcmd/pkg"
)

// Node is a command built from a [Document]. It implements
// [command.Node] for [Identity] callers.
type Node struct {
	name     string
	path     string
	aliases  []string
	hints    []string
	repeat   bool
	flags    []guarded
	children []command.Node[Identity]
	run      *vm.Program
	out      io.Writer
	logger   log.Logger
}

// guarded is a flag recognized only when its guard, if any, holds.
type guarded struct {
	spec flag.Spec
	when *vm.Program
	src  string
}

var _ command.Node[Identity] = (*Node)(nil)

// Name implements [command.Node].
func (n *Node) Name() string { return n.name }

// Path returns the command names from the root to n.
func (n *Node) Path() string { return n.path }

// Aliases implements [command.Node].
func (n *Node) Aliases() []string { return n.aliases }

// Children implements [command.Node].
func (n *Node) Children() []command.Node[Identity] { return n.children }

// AllowedFlags implements [command.Node]. A flag whose guard fails to
// evaluate is left out.
func (n *Node) AllowedFlags(id Identity) flag.Set {
	set := make(flag.Set, 0, len(n.flags))

	for _, g := range n.flags {
		if g.when == nil {
			set = append(set, g.spec)

			continue
		}

		ok, err := expr.Run(g.when, guardEnv(id))
		if err != nil {
			n.logger.Warn("flag guard failed",
				slog.String("path", n.path),
				slog.String("flag", g.spec.SurfaceForm()),
				slog.String("when", g.src),
				slog.Any("error", err),
			)

			continue
		}

		if allow, _ := ok.(bool); allow {
			set = append(set, g.spec)
		}
	}

	return set
}

// Execute implements [command.Node].
func (n *Node) Execute(
	ctx context.Context,
	id Identity,
	args flag.Arguments,
) (bool, error) {
	if n.run == nil {
		if len(n.children) > 0 {
			return false, nil
		}

		_, err := fmt.Fprintln(n.out, n.path, args)

		return true, err
	}

	log.DebugContext(ctx, "run",
		slog.String("path", n.path),
		slog.Any("identity", id),
	)

	result, err := expr.Run(n.run, runEnv(n.path, id, args))
	if err != nil {
		return true, pkg.ErrExpr.Wrapf("%s", n.path).Wrap(err)
	}

	if result == nil {
		return true, nil
	}

	_, err = fmt.Fprintln(n.out, result)

	return true, err
}

// TabComplete implements [command.Node] with the static hints of the
// manifest.
func (n *Node) TabComplete(Identity, flag.Arguments, string) []string {
	return slices.Clone(n.hints)
}

// SuggestFlags implements [command.Node]. Commands marked repeat offer
// every allowed flag again.
func (n *Node) SuggestFlags(id Identity, args flag.Arguments) []flag.Spec {
	allowed := n.AllowedFlags(id)
	if n.repeat {
		return allowed
	}

	return command.DefaultSuggestFlags(allowed, args)
}

func guardEnv(id Identity) map[string]any {
	return map[string]any{
		"identity": id,
		"user":     id.User,
		"roles":    id.Roles,
	}
}

func runEnv(path string, id Identity, args flag.Arguments) map[string]any {
	flags := make(map[string]any)

	for _, arg := range args {
		spec, ok := arg.Spec()
		if !ok {
			continue
		}

		if v, bound := arg.Value(); bound {
			flags[spec.Name()] = v
		} else if _, seen := flags[spec.Name()]; !seen {
			flags[spec.Name()] = true
		}
	}

	literals := args.Literals()
	if literals == nil {
		literals = []string{}
	}

	return map[string]any{
		"args":     literals,
		"flags":    flags,
		"identity": id,
		"path":     path,
	}
}
