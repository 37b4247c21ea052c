package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/subcmd/manifest"
)

func TestInit_SampleManifest(t *testing.T) {
	tests := []struct {
		name    string
		force   bool
		setup   func(t *testing.T, path string)
		wantErr error
	}{
		{
			name: "create new manifest",
		},
		{
			name:  "overwrite existing with force",
			force: true,
			setup: func(t *testing.T, path string) {
				if err := os.WriteFile(path, []byte("existing content"), 0o600); err != nil {
					t.Fatal(err)
				}
			},
		},
		{
			name: "fail without force",
			setup: func(t *testing.T, path string) {
				if err := os.WriteFile(path, []byte("existing content"), 0o600); err != nil {
					t.Fatal(err)
				}
			},
			wantErr: ErrFileExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", "commands.yaml")

			if tt.setup != nil {
				if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
					t.Fatal(err)
				}

				tt.setup(t, path)
			}

			err := (&Init{Force: tt.force, Output: path}).Run(context.Background())

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Run() = %v, want %v", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("Run() = %v", err)
			}

			root, err := manifest.LoadFile(path)
			if err != nil {
				t.Fatalf("written manifest does not load: %v", err)
			}

			if root.Name() != manifest.Sample().Name {
				t.Errorf("root = %q, want %q", root.Name(), manifest.Sample().Name)
			}
		})
	}
}

func TestInit_ConfigFile(t *testing.T) {
	dir := t.TempDir()

	var cli struct {
		LogLevel string   `default:"info"`
		Manifest string   `default:"commands.yaml"`
		Role     []string `name:"role"`
		Hidden   string   `default:"secret" hidden:""`
		Empty    string

		Init Init `cmd:""`
	}

	parser, err := kong.New(&cli, kong.Vars{
		ConfigIdentifier: filepath.Join(dir, "config"),
	})
	if err != nil {
		t.Fatal(err)
	}

	ktx, err := parser.Parse([]string{"--role", "admin", "--role", "ops", "init", "--config"})
	if err != nil {
		t.Fatal(err)
	}

	if err := cli.Init.Run(WithContext(context.Background(), ktx)); err != nil {
		t.Fatalf("Run() = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatal(err)
	}

	var doc struct {
		Config map[string]any `yaml:"config"`
	}

	if err := yaml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("config file is not YAML: %v\n%s", err, data)
	}

	if got := doc.Config["log_level"]; got != "info" {
		t.Errorf("log_level = %v, want info", got)
	}

	if got := doc.Config["manifest"]; got != "commands.yaml" {
		t.Errorf("manifest = %v, want commands.yaml", got)
	}

	roles, ok := doc.Config["role"].([]any)
	if !ok || len(roles) != 2 || roles[0] != "admin" || roles[1] != "ops" {
		t.Errorf("role = %#v, want [admin ops]", doc.Config["role"])
	}

	for _, key := range []string{"hidden", "empty", "help"} {
		if _, ok := doc.Config[key]; ok {
			t.Errorf("config contains %q", key)
		}
	}
}
