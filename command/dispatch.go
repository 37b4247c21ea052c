package command

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ardnew/subcmd/flag"
	"github.com/ardnew/subcmd/log"
)

// Outcome describes the node reached by [Dispatch] and what it did.
type Outcome[ID any] struct {
	// Node is the terminal node.
	Node Node[ID]

	// Path holds the names of the nodes from the root to Node.
	Path []string

	// Args are the arguments parsed for Node.
	Args flag.Arguments

	// Ran is false when Node only groups subcommands.
	Ran bool
}

// Notice returns the message shown to the caller when the terminal node
// could not run by itself, or "" when it ran.
func (o Outcome[ID]) Notice() string {
	if o.Ran {
		return ""
	}

	return strings.Join(o.Path, " ") + ": cannot run without a subcommand"
}

// Dispatch resolves tokens against the tree rooted at node and executes
// the terminal node.
//
// While the first token names a child, Dispatch descends into that child
// and drops the token. The remaining tokens are parsed against the
// terminal node's allowed flags and passed to its Execute method. The
// returned error is the one returned by Execute.
func Dispatch[ID any](
	ctx context.Context,
	node Node[ID],
	id ID,
	tokens []string,
) (Outcome[ID], error) {
	path := []string{node.Name()}

	for len(tokens) > 0 {
		child, ok := Find(node, tokens[0])
		if !ok {
			break
		}

		log.TraceContext(ctx, "descend",
			slog.String("token", tokens[0]),
			slog.String("node", child.Name()),
		)

		node, tokens = child, tokens[1:]
		path = append(path, node.Name())
	}

	args := flag.Parse(tokens, node.AllowedFlags(id))

	log.DebugContext(ctx, "execute",
		slog.String("path", strings.Join(path, " ")),
		slog.String("args", args.String()),
	)

	ran, err := node.Execute(ctx, id, args)

	return Outcome[ID]{Node: node, Path: path, Args: args, Ran: ran}, err
}
