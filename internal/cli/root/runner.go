package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/regenrek/debugkit/internal/cli/spec"
	"github.com/regenrek/debugkit/internal/identity"
)

// Runner executes the CLI using the spec and registry.
type Runner struct {
	specDoc *spec.Spec
	deps    Dependencies
	app     *cli.Command
}

// NewRunner builds the CLI runner.
func NewRunner(specDoc *spec.Spec, deps Dependencies, reg *Registry) (*Runner, error) {
	app, err := BuildApp(specDoc, deps, reg)
	if err != nil {
		return nil, err
	}
	return &Runner{specDoc: specDoc, deps: deps, app: app}, nil
}

// Run executes the CLI with the given arguments.
func (r *Runner) Run(ctx context.Context, args []string) error {
	if r == nil || r.app == nil {
		return fmt.Errorf("runner is not initialized")
	}
	if r.specDoc != nil && r.app != nil {
		appName := identity.ResolveBinaryName(args)
		r.specDoc.App.Name = appName
		r.app.Name = appName
	}
	args = applyShorthand(r.specDoc, args)
	return r.app.Run(ctx, args)
}

func applyShorthand(specDoc *spec.Spec, args []string) []string {
	if specDoc == nil || len(args) == 0 {
		return args
	}
	defaultCmd := strings.TrimSpace(specDoc.App.DefaultCommand)
	if defaultCmd == "" {
		return args
	}
	if len(args) == 1 {
		return []string{args[0], defaultCmd}
	}
	flag := strings.TrimSpace(specDoc.App.ShorthandFlag)
	if flag == "" {
		return args
	}
	// A bare word that is not a command is passed to the default command, so
	// "debugkit server" runs the "server" launch configuration.
	if len(args) == 2 && !strings.HasPrefix(args[1], "-") && !specDoc.HasTopLevel(args[1]) {
		return []string{args[0], defaultCmd, "--" + flag, args[1]}
	}
	return args
}
