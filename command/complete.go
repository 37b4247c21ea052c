package command

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/ardnew/subcmd/flag"
	"github.com/ardnew/subcmd/log"
)

// Complete returns the candidates for the last element of typed, which is
// the token being edited and may be "". The preceding elements are the
// tokens already supplied.
//
// Completion descends the tree like [Dispatch], but only through supplied
// tokens, so a child name still being typed is completed rather than
// entered. If the supplied tokens end with an Option flag awaiting its
// value, the candidates are that flag's suggestions. Otherwise they are,
// in order: child names and aliases, the node's positional hints, the
// surface forms of the suggested flags, and the possible one-character
// extensions of a flag cluster being typed. Every candidate not starting
// with the token being edited is dropped.
func Complete[ID any](
	ctx context.Context,
	node Node[ID],
	id ID,
	typed []string,
) []string {
	for len(typed) > 1 && len(node.Children()) > 0 {
		child, ok := Find(node, typed[0])
		if !ok {
			break
		}

		log.TraceContext(ctx, "descend",
			slog.String("token", typed[0]),
			slog.String("node", child.Name()),
		)

		node, typed = child, typed[1:]
	}

	var supplied []string

	inProgress := ""

	if n := len(typed); n > 0 {
		supplied, inProgress = typed[:n-1], typed[n-1]
	}

	allowed := node.AllowedFlags(id)
	args := flag.Parse(supplied, allowed)

	var candidates []string

	if last, ok := args.Last(); ok && last.Pending() {
		spec, _ := last.Spec()
		candidates = spec.Suggestions()
	} else {
		candidates = Names(node)
		candidates = append(candidates, node.TabComplete(id, args, inProgress)...)
		candidates = append(candidates, flag.Set(node.SuggestFlags(id, args)).SurfaceForms()...)
		candidates = append(candidates, continuations(inProgress, allowed)...)
	}

	narrowed := Narrow(candidates, inProgress)

	log.TraceContext(ctx, "complete",
		slog.String("node", node.Name()),
		slog.String("typed", inProgress),
		slog.Int("candidates", len(candidates)),
		slog.Int("narrowed", len(narrowed)),
	)

	return narrowed
}

// continuations returns the clusters formed by appending one allowed
// character to token, as proposed by the last flag already in the cluster.
func continuations(token string, allowed flag.Set) []string {
	cluster, ok := flag.Cluster(token, allowed)
	if !ok {
		return nil
	}

	shorts := allowed.Shorts()

	var out []string

	for _, r := range cluster[len(cluster)-1].Next(cluster) {
		if slices.Contains(shorts, r) {
			out = append(out, token+string(r))
		}
	}

	return out
}

// Narrow returns the candidates that begin with prefix, in their original
// order. The comparison is case-sensitive.
func Narrow(candidates []string, prefix string) []string {
	out := make([]string, 0, len(candidates))

	for _, c := range candidates {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}

	return out
}
