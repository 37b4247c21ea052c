package cli

import (
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/subcmd/log"
)

// resolve returns a [kong.ConfigurationLoader] that reads YAML config
// files.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve("config"), "/path/to/config.yaml")
//
// Flag values are read from the mapping stored under name, or from the
// top-level mapping when no such key exists. Flag names with hyphens
// (e.g., "log-level") may use underscores in the file (e.g., "log_level").
//
// Example config file:
//
//	config:
//	  log_level: debug
//	  log_format: json
//	  log_pretty: true
//	  role: [admin, ops]
//
// Command-line flags override config file values.
func resolve(name string) kong.ConfigurationLoader {
	return resolveWith(name, func(r io.Reader, doc *map[string]any) error {
		return yaml.NewDecoder(r).Decode(doc)
	})
}

// resolveTOML is [resolve] for TOML files, where the scoped mapping is the
// table [name]:
//
//	[config]
//	log_level = "debug"
//	role = ["admin", "ops"]
func resolveTOML(name string) kong.ConfigurationLoader {
	return resolveWith(name, func(r io.Reader, doc *map[string]any) error {
		_, err := toml.NewDecoder(r).Decode(doc)

		return err
	})
}

func resolveWith(
	name string,
	decode func(io.Reader, *map[string]any) error,
) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		var doc map[string]any

		err := decode(r, &doc)
		if err != nil {
			// A malformed or empty file behaves like a missing one.
			if !errors.Is(err, io.EOF) {
				log.Warn("ignoring configuration file", slog.Any("error", err))
			}

			return config{}, nil
		}

		if scoped, ok := doc[name].(map[string]any); ok {
			doc = scoped
		}

		return makeConfig(doc), nil
	}
}

// config implements [kong.Resolver] for decoded config files.
type config map[string]any

// makeConfig converts decoded scalars into values kong can parse.
func makeConfig(doc map[string]any) config {
	c := make(config, len(doc))

	for key, val := range doc {
		c[key] = scalar(val)
	}

	return c
}

// scalar renders numbers as strings, since kong parses flag values from
// their text. Sequences are converted element-wise.
func scalar(val any) any {
	switch v := val.(type) {
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = scalar(elem)
		}

		return out
	default:
		return v
	}
}

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := r[flag.Name]; ok {
		return value, nil
	}

	if value, ok := r[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
		return value, nil
	}

	// Not found - return nil to let kong use defaults
	return nil, nil
}
