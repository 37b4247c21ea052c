package log_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/subcmd/log"
)

func Example() {
	logger := log.Make(os.Stdout,
		log.WithFormat(log.FormatText),
		log.WithPretty(false),
		log.WithTimeLayout("none"))

	logger.Info("manifest loaded", slog.String("path", "commands.yaml"))
	logger.Debug("hidden below the default level")

	// Output:
	// level=INFO msg="manifest loaded" path=commands.yaml
}

func Example_trace() {
	logger := log.Make(os.Stdout,
		log.WithFormat(log.FormatJSON),
		log.WithPretty(false),
		log.WithTimeLayout("none"),
		log.WithLevel(log.LevelTrace))

	logger.Trace("descend", slog.String("token", "ls"), slog.String("node", "list"))

	// Output:
	// {"level":"TRACE","msg":"descend","token":"ls","node":"list"}
}

func ExampleNewContext() {
	logger := log.Make(os.Stdout,
		log.WithFormat(log.FormatText),
		log.WithPretty(false),
		log.WithTimeLayout("none"))

	ctx := log.NewContext(context.Background(),
		logger.With(slog.String("manifest", "commands.yaml")))

	log.InfoContext(ctx, "execute", slog.String("node", "start"))

	// Output:
	// level=INFO msg=execute manifest=commands.yaml node=start
}

func ExampleLogger_Wrap() {
	base := log.Make(os.Stdout, log.WithPretty(false), log.WithTimeLayout("none"))
	quiet := base.Wrap(log.WithLevel(log.LevelWarn))

	quiet.Info("suppressed")
	quiet.Warn("flag guard failed", slog.String("flag", "--force"))

	// Output:
	// {"level":"WARN","msg":"flag guard failed","flag":"--force"}
}
