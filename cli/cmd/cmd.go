package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/alecthomas/kong"

	"github.com/ardnew/subcmd/command"
	"github.com/ardnew/subcmd/manifest"
	"github.com/ardnew/subcmd/pkg"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// Target selects the manifest a subcommand operates on and the identity
// used to evaluate its flag guards.
type Target struct {
	Manifest string
	User     string
	Roles    []string
}

type targetKey struct{}

// WithTarget returns a new context.Context containing t.
func WithTarget(ctx context.Context, t Target) context.Context {
	return context.WithValue(ctx, targetKey{}, t)
}

// targetFrom retrieves the Target stored by WithTarget. The zero Target
// selects the default manifest name.
func targetFrom(ctx context.Context) Target {
	t, _ := ctx.Value(targetKey{}).(Target)
	if t.Manifest == "" {
		t.Manifest = pkg.ManifestName
	}

	return t
}

// Identity returns the identity presented to the command tree.
func (t Target) Identity() manifest.Identity {
	return manifest.Identity{User: t.User, Roles: t.Roles}
}

// load finds and builds the manifest, sending node output to w.
func (t Target) load(w io.Writer) (command.Node[manifest.Identity], string, error) {
	path, err := manifest.Find(t.Manifest, pkg.SearchPath()...)
	if err != nil {
		return nil, "", ErrLoadManifest.
			With(slog.String("manifest", t.Manifest)).
			Wrap(err)
	}

	root, err := manifest.LoadFile(path, manifest.WithOutput(w))
	if err != nil {
		return nil, path, ErrLoadManifest.
			With(slog.String("manifest", path)).
			Wrap(err)
	}

	return root, path, nil
}
