package cmd

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/subcmd/log"
	"github.com/ardnew/subcmd/manifest"
	"github.com/ardnew/subcmd/pkg"
	"github.com/ardnew/subcmd/profile"
)

// defaultIndent is the number of spaces used to indent generated YAML.
const defaultIndent = 2

// Init writes a sample command manifest to the configuration directory, or
// with --config, a configuration file holding the current flag values.
type Init struct {
	Force  bool   `help:"Overwrite an existing file"                               short:"f"`
	Config bool   `help:"Write the configuration file instead of a sample manifest" short:"c"`
	Output string `help:"Write to this path instead of the default location"       short:"o" placeholder:"FILE" type:"path"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	var (
		path string
		data []byte
	)

	if i.Config {
		path, data, err = i.configFile(ctx)
	} else {
		path, data, err = i.sampleManifest()
	}

	if err != nil {
		return err
	}

	if i.Output != "" {
		path = i.Output
	}

	err = writeFile(path, data, i.Force)
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "initialized file", slog.String("path", path))

	return nil
}

func (i *Init) sampleManifest() (string, []byte, error) {
	data, err := manifest.Encode(manifest.Sample())
	if err != nil {
		return "", nil, ErrYAMLMarshal.Wrap(err)
	}

	return filepath.Join(pkg.ConfigDir(), pkg.ManifestName), data, nil
}

// configFile renders the current flag values under the configuration key.
func (i *Init) configFile(ctx context.Context) (string, []byte, error) {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		panic("internal error: kong context undefined")
	}

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config path undefined")
	}

	data, err := yaml.MarshalWithOptions(
		yaml.MapSlice{{Key: ConfigIdentifier, Value: flagValues(ktx)}},
		yaml.Indent(defaultIndent),
		yaml.IndentSequence(true),
	)
	if err != nil {
		return "", nil, ErrYAMLMarshal.Wrap(err)
	}

	return confPath + ".yaml", data, nil
}

// flagValues collects the set values of the application's flags, keyed by
// flag name with hyphens replaced by underscores.
func flagValues(ktx *kong.Context) yaml.MapSlice {
	prefixIgnore := []string{"help", profile.Tag}

	var values yaml.MapSlice

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(prefixIgnore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		val := ktx.FlagValue(flag)
		if isEmpty(val) {
			continue
		}

		values = append(values, yaml.MapItem{
			Key:   strings.ReplaceAll(flag.Name, "-", "_"),
			Value: val,
		})
	}

	return values
}

func isEmpty(val any) bool {
	switch v := val.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []string:
		return len(v) == 0
	default:
		return false
	}
}

// writeFile writes data to path, refusing to replace an existing file
// unless force is set.
func writeFile(path string, data []byte, force bool) error {
	_, err := os.Stat(path)
	if err == nil && !force {
		return ErrWriteConfig.
			With(slog.String("file", path)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	err = os.MkdirAll(filepath.Dir(path), 0o700)
	if err == nil {
		err = os.WriteFile(path, data, 0o600)
	}

	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", path)).
			Wrap(err)
	}

	return nil
}
