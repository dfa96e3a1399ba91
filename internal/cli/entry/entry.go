package entry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/regenrek/debugkit/internal/cli/app"
	"github.com/regenrek/debugkit/internal/cli/root"
	"github.com/regenrek/debugkit/internal/cli/spec"
	"github.com/regenrek/debugkit/internal/config"
	"github.com/regenrek/debugkit/internal/debuggee"
	"github.com/regenrek/debugkit/internal/identity"
	"github.com/regenrek/debugkit/internal/logging"
	"github.com/regenrek/debugkit/internal/runenv"
)

// Run starts the CLI and returns the process exit code.
func Run(args []string, version string) int {
	appName := identity.ResolveBinaryName(args)
	specDoc, err := spec.LoadDefault()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return 1
	}
	mode := logging.ModeFromArgs(args, specDoc.HasTopLevel)
	logCfg := logging.Config{}
	if freshConfigRequested(args) {
		_ = os.Setenv(runenv.FreshConfigEnv, "1")
	}
	if configPath, err := config.DefaultPath(); err == nil && configPath != "" {
		if err := config.EnsureDefault(configPath); err != nil {
			fmt.Fprintf(os.Stderr, "%s: init config: %v\n", appName, err)
			return 1
		}
		if cfg, err := config.Load(configPath); err == nil && cfg != nil {
			logCfg = cfg.Logging
		} else if err != nil {
			fmt.Fprintf(os.Stderr, "%s: load config: %v\n", appName, err)
			return 1
		}
	}
	closeLogger, err := logging.Init(context.Background(), logCfg, logging.InitOptions{
		App:     identity.AppSlug,
		Version: version,
		Mode:    mode,
	})
	if err != nil {
		if mode == logging.ModeRun {
			fmt.Fprintf(os.Stderr, "%s: init logging: %v\n", appName, err)
			return 1
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
		slog.Error("init logging failed; using stderr fallback", "err", err)
	} else if closeLogger != nil {
		defer func() { _ = closeLogger() }()
	}

	deps := root.DefaultDependencies(version)
	deps.AppName = appName
	runner, err := app.NewRunnerFromSpec(specDoc, deps)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return 1
	}
	if err := runner.Run(context.Background(), args); err != nil {
		var debuggeeErr *debuggee.ExitError
		if errors.As(err, &debuggeeErr) {
			// run already reported how the debuggee ended.
			return debuggeeErr.ExitCode()
		}
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			if msg := err.Error(); msg != "" {
				fmt.Fprintf(os.Stderr, "%s: %s\n", appName, msg)
			}
			return exitErr.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return 1
	}
	return 0
}

// freshConfigRequested reports whether --fresh-config appears before "--",
// so the global config is skipped before the CLI parses flags.
func freshConfigRequested(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "--":
			return false
		case "--fresh-config", "--fresh-config=true", "--fresh-config=1":
			return true
		}
	}
	return false
}
