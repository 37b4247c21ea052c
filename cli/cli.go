package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/subcmd/cli/cmd"
	"github.com/ardnew/subcmd/pkg"
)

// CLI is the top-level command-line interface for subcmd.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit" short:"V"`

	Manifest string   `help:"Command manifest file (searched in cwd, config dir, then ${pathEnv})" placeholder:"FILE" short:"m" default:"${manifest}"`
	As       string   `help:"User name presented to flag guards"                                   placeholder:"USER"                      env:"USER"`
	Role     []string `help:"Role granted to the user (repeatable)"                                placeholder:"ROLE" short:"r"`

	Run      cmd.Run      `cmd:"" default:"withargs" help:"Dispatch tokens through the command tree"`
	Complete cmd.Complete `cmd:""                    help:"Print completion candidates for tokens"`
	Repl     cmd.Repl     `cmd:""                    help:"Interactive prompt with as-you-type completion"`
	Check    cmd.Check    `cmd:""                    help:"Load and validate the command manifest"`
	Init     cmd.Init     `cmd:""                    help:"Write a sample manifest or configuration file"`
}

// Run executes the subcmd CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	configFilePath := configPath(baseConfig)

	vars := kong.Vars{
		cmd.ConfigIdentifier:   configFilePath,
		cmd.CacheIdentifier:    pkg.CacheDir(),
		cmd.ManifestIdentifier: pkg.ManifestName,
		"pathEnv":              pkg.EnvPath,
		"version":              pkg.Name + " " + pkg.Version(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position. TextUnmarshaler on logFormat/logLevel handles those flags
	// during normal parsing, but this early scan also catches boolean flags
	// like --log-pretty.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				FlagsLast:           false,
				NoAppSummary:        false,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configFilePath+".json"),
		kong.Configuration(resolve(baseConfig), configFilePath+".yaml", configFilePath+".yml"),
		kong.Configuration(resolveTOML(baseConfig), configFilePath+".toml"),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Caller which don't use TextUnmarshaler.
	cli.Log.start(ctx)

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithTarget(ctx, cmd.Target{
		Manifest: cli.Manifest,
		User:     cli.As,
		Roles:    cli.Role,
	})

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}
