package command

import (
	"context"
	"slices"

	"github.com/ardnew/subcmd/flag"
)

// Node is one command in a tree.
//
// Names are unique among siblings, and aliases are unique among siblings
// and against sibling names; see [Validate]. A tree must not change once
// it is handed to [Dispatch] or [Complete].
type Node[ID any] interface {
	// Name is the token that selects this node from its parent.
	Name() string

	// Aliases are alternate tokens that select this node.
	Aliases() []string

	// Children returns the subcommands in display order.
	Children() []Node[ID]

	// AllowedFlags returns the flags recognized for id. Tokens naming any
	// other flag are literals.
	AllowedFlags(id ID) flag.Set

	// Execute runs the node with its parsed arguments. It reports false
	// when the node only groups subcommands and cannot run by itself.
	Execute(ctx context.Context, id ID, args flag.Arguments) (bool, error)

	// TabComplete returns positional candidates for the token being typed.
	// Results are narrowed by the caller.
	TabComplete(id ID, args flag.Arguments, typed string) []string

	// SuggestFlags returns the flags worth offering given args. Most
	// implementations return [DefaultSuggestFlags].
	SuggestFlags(id ID, args flag.Arguments) []flag.Spec
}

// Find returns the child of node selected by token, matching names before
// aliases.
func Find[ID any](node Node[ID], token string) (Node[ID], bool) {
	children := node.Children()

	for _, child := range children {
		if child.Name() == token {
			return child, true
		}
	}

	for _, child := range children {
		if slices.Contains(child.Aliases(), token) {
			return child, true
		}
	}

	return nil, false
}

// Names returns the name and then the aliases of each child, in child
// order.
func Names[ID any](node Node[ID]) []string {
	var names []string

	for _, child := range node.Children() {
		names = append(names, child.Name())
		names = append(names, child.Aliases()...)
	}

	return names
}

// DefaultSuggestFlags returns the allowed flags that do not already occur
// in args.
func DefaultSuggestFlags(allowed flag.Set, args flag.Arguments) []flag.Spec {
	return allowed.Without(args.Flags()...)
}

// Func is a [Node] assembled from plain values and functions. Any nil
// function falls back to the default behavior documented on its field.
type Func[ID any] struct {
	// Label is the node name.
	Label string

	// Alias lists alternate names.
	Alias []string

	// Subs are the child nodes.
	Subs []Node[ID]

	// Flags is used when FlagsFor is nil.
	Flags flag.Set

	// FlagsFor returns the allowed flags for a caller.
	FlagsFor func(id ID) flag.Set

	// Action runs the node. A nil Action makes the node a group that
	// cannot run by itself.
	Action func(ctx context.Context, id ID, args flag.Arguments) error

	// Hint returns positional candidates. Nil offers none.
	Hint func(id ID, args flag.Arguments, typed string) []string

	// Suggest overrides [DefaultSuggestFlags].
	Suggest func(id ID, args flag.Arguments) []flag.Spec
}

// Name implements [Node].
func (f *Func[ID]) Name() string { return f.Label }

// Aliases implements [Node].
func (f *Func[ID]) Aliases() []string { return f.Alias }

// Children implements [Node].
func (f *Func[ID]) Children() []Node[ID] { return f.Subs }

// AllowedFlags implements [Node].
func (f *Func[ID]) AllowedFlags(id ID) flag.Set {
	if f.FlagsFor != nil {
		return f.FlagsFor(id)
	}

	return f.Flags
}

// Execute implements [Node].
func (f *Func[ID]) Execute(
	ctx context.Context,
	id ID,
	args flag.Arguments,
) (bool, error) {
	if f.Action == nil {
		return false, nil
	}

	return true, f.Action(ctx, id, args)
}

// TabComplete implements [Node].
func (f *Func[ID]) TabComplete(
	id ID,
	args flag.Arguments,
	typed string,
) []string {
	if f.Hint == nil {
		return nil
	}

	return f.Hint(id, args, typed)
}

// SuggestFlags implements [Node].
func (f *Func[ID]) SuggestFlags(id ID, args flag.Arguments) []flag.Spec {
	if f.Suggest != nil {
		return f.Suggest(id, args)
	}

	return DefaultSuggestFlags(f.AllowedFlags(id), args)
}
