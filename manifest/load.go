package manifest

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/subcmd/command"
	"github.com/ardnew/subcmd/flag"
	"github.com/ardnew/subcmd/log"
	"github.com/ardnew/subcmd/pkg"
)

// config holds the options applied while building a tree.
type config struct {
	out    io.Writer
	logger log.Logger
}

// Option configures how a manifest is built.
type Option func(config) config

// WithOutput sets the writer receiving command output. The default is
// [os.Stdout].
func WithOutput(w io.Writer) Option {
	return func(c config) config {
		if w == nil {
			w = io.Discard
		}

		c.out = w

		return c
	}
}

// WithLogger sets the Logger used by the built commands. The default is
// [log.Default] at the time the tree is built.
func WithLogger(l log.Logger) Option {
	return func(c config) config {
		c.logger = l

		return c
	}
}

// withManifest names the manifest file in everything the tree logs.
func withManifest(path string) Option {
	return func(c config) config {
		c.logger = c.logger.With(slog.String("manifest", path))

		return c
	}
}

// Load decodes a manifest from r and builds its command tree.
func Load(r io.Reader, opts ...Option) (*Node, error) {
	var buf bytes.Buffer

	if _, err := buf.ReadFrom(r); err != nil {
		return nil, pkg.ErrReadInput.Wrap(err)
	}

	doc, err := Decode(buf.Bytes())
	if err != nil {
		return nil, err
	}

	return Build(doc, opts...)
}

// LoadFile loads the manifest at path. Records logged by the tree carry
// path as the "manifest" attribute.
func LoadFile(path string, opts ...Option) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pkg.ErrReadInput.Wrap(err)
	}
	defer f.Close()

	log.Debug("load manifest", slog.String("path", path))

	return Load(f, append(opts[:len(opts):len(opts)], withManifest(path))...)
}

// Decode parses manifest YAML. Unknown fields are rejected.
func Decode(data []byte) (Document, error) {
	var doc Document

	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.DisallowUnknownField()); err != nil {
		return Document{}, pkg.ErrManifest.Wrap(err)
	}

	return doc, nil
}

// Encode formats doc as manifest YAML.
func Encode(doc Document) ([]byte, error) {
	data, err := yaml.MarshalWithOptions(doc, yaml.Indent(2), yaml.IndentSequence(true))
	if err != nil {
		return nil, pkg.ErrManifest.Wrap(err)
	}

	return data, nil
}

// Build compiles doc into a command tree. Every expression is compiled
// and every name and flag is checked before the tree is returned.
func Build(doc Document, opts ...Option) (*Node, error) {
	cfg := config{out: os.Stdout, logger: log.Default()}
	for _, opt := range opts {
		cfg = opt(cfg)
	}

	root, err := build(doc, nil, cfg)
	if err != nil {
		return nil, err
	}

	if err := command.Validate(command.Node[Identity](root), Identity{}); err != nil {
		return nil, pkg.ErrManifest.Wrap(err)
	}

	return root, nil
}

var (
	guardTypes = guardEnv(Identity{})
	runTypes   = runEnv("", Identity{}, nil)
)

func build(doc Document, parent []string, cfg config) (*Node, error) {
	path := append(parent[:len(parent):len(parent)], doc.Name)
	where := strings.Join(path, " ")

	n := &Node{
		name:    doc.Name,
		path:    where,
		aliases: doc.Aliases,
		hints:   doc.Complete,
		repeat:  doc.Repeat,
		out:     cfg.out,
		logger:  cfg.logger,
	}

	all := make(flag.Set, 0, len(doc.Flags))

	for _, f := range doc.Flags {
		g := guarded{spec: makeSpec(f), src: f.When}

		if f.When != "" {
			prog, err := compile(f.When, guardTypes, expr.AsBool())
			if err != nil {
				return nil, pkg.ErrExpr.Wrapf("%s %s: when", where, g.spec).Wrap(err)
			}

			g.when = prog
		}

		all = append(all, g.spec)
		n.flags = append(n.flags, g)
	}

	if err := all.Validate(); err != nil {
		return nil, pkg.ErrManifest.Wrapf("%s", where).Wrap(err)
	}

	if doc.Run != "" {
		prog, err := compile(doc.Run, runTypes)
		if err != nil {
			return nil, pkg.ErrExpr.Wrapf("%s: run", where).Wrap(err)
		}

		n.run = prog
	}

	for _, sub := range doc.Commands {
		child, err := build(sub, path, cfg)
		if err != nil {
			return nil, err
		}

		n.children = append(n.children, child)
	}

	return n, nil
}

func compile(src string, env map[string]any, opts ...expr.Option) (*vm.Program, error) {
	return expr.Compile(src, append([]expr.Option{expr.Env(env)}, opts...)...)
}

func makeSpec(f Flag) flag.Spec {
	var opts []flag.Setting

	if len(f.Values) > 0 {
		opts = append(opts, flag.WithValues(f.Values...))
	}

	if f.Next != "" {
		opts = append(opts, flag.WithNextRunes(f.Next))
	}

	if f.Option || len(f.Values) > 0 {
		return flag.Option(f.Name, opts...)
	}

	return flag.Simple(f.Name, opts...)
}

// Find returns the first file named name in the given directories. Names
// without an extension also match with ".yaml" or ".yml" appended.
func Find(name string, dirs ...string) (string, error) {
	candidates := []string{name}
	if filepath.Ext(name) == "" {
		candidates = append(candidates, name+".yaml", name+".yml")
	}

	if filepath.IsAbs(name) {
		dirs = []string{""}
	}

	for _, dir := range dirs {
		for _, c := range candidates {
			path := filepath.Join(dir, c)

			info, err := os.Stat(path)
			switch {
			case err == nil && !info.IsDir():
				return path, nil
			case err != nil && !errors.Is(err, fs.ErrNotExist):
				log.Debug("skip manifest candidate",
					slog.String("path", path),
					slog.Any("error", err),
				)
			}
		}
	}

	return "", pkg.ErrNoManifest.Wrapf("%s", name)
}
