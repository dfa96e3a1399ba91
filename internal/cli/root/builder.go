package root

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/regenrek/debugkit/internal/cli/output"
	"github.com/regenrek/debugkit/internal/cli/spec"
)

// BuildApp constructs the urfave/cli command tree described by specDoc. Every
// command ID in the spec must have a handler in reg and every handler must
// belong to a command.
func BuildApp(specDoc *spec.Spec, deps Dependencies, reg *Registry) (*cli.Command, error) {
	if specDoc == nil {
		return nil, errors.New("spec is nil")
	}
	if reg == nil {
		return nil, errors.New("registry is nil")
	}
	if err := reg.EnsureHandlers(specDoc); err != nil {
		return nil, err
	}
	globalFlags, err := buildFlags(specDoc.GlobalFlags)
	if err != nil {
		return nil, fmt.Errorf("global flags: %w", err)
	}
	commands := make([]*cli.Command, 0, len(specDoc.Commands))
	for _, cmdSpec := range specDoc.Commands {
		cmd, err := buildCommand(cmdSpec, deps, reg)
		if err != nil {
			return nil, err
		}
		commands = append(commands, cmd)
	}
	var restoreEnv func()
	return &cli.Command{
		Name:        specDoc.App.Name,
		Usage:       specDoc.App.Summary,
		Description: specDoc.App.Summary,
		Flags:       globalFlags,
		Commands:    commands,
		Writer:      deps.Stdout,
		ErrWriter:   deps.Stderr,
		// Errors reach the caller, which owns the process exit code.
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd != nil && cmd.Bool("version") {
				printVersion(deps.Stdout, specDoc.App.Name, deps.Version)
				return ctx, cli.Exit("", 0)
			}
			cleanup, err := applyRunEnvFromFlags(cmd)
			if err != nil {
				return ctx, err
			}
			restoreEnv = cleanup
			return ctx, nil
		},
		After: func(context.Context, *cli.Command) error {
			if restoreEnv != nil {
				restoreEnv()
				restoreEnv = nil
			}
			return nil
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runDefaultCommand(ctx, cmd, specDoc, deps, reg)
		},
	}, nil
}

func printVersion(w io.Writer, name, version string) {
	if w == nil {
		return
	}
	_, _ = fmt.Fprintf(w, "%s %s\n", name, version)
}

func buildCommand(cmdSpec spec.Command, deps Dependencies, reg *Registry) (*cli.Command, error) {
	flags, err := buildFlags(cmdSpec.Flags)
	if err != nil {
		return nil, fmt.Errorf("flags for %s: %w", cmdSpec.ID, err)
	}
	cmd := &cli.Command{
		Name:        cmdSpec.Name,
		Aliases:     cmdSpec.Aliases,
		Usage:       cmdSpec.Summary,
		Description: cmdSpec.Description,
		Hidden:      cmdSpec.Hidden,
		Flags:       flags,
		ArgsUsage:   argsUsage(cmdSpec.Args),
		Arguments:   buildArguments(cmdSpec.Args),
	}
	for _, child := range cmdSpec.Subcommands {
		sub, err := buildCommand(child, deps, reg)
		if err != nil {
			return nil, err
		}
		cmd.Commands = append(cmd.Commands, sub)
	}
	// Group commands such as "signal" have no handler and print their help.
	if handler, ok := reg.HandlerFor(cmdSpec.ID); ok {
		cmd.Action = func(ctx context.Context, cliCmd *cli.Command) error {
			return runHandler(ctx, cliCmd, cmdSpec, deps, handler)
		}
	}
	return cmd, nil
}

// runDefaultCommand handles an invocation with flags but no command. The
// root command is passed through so global flags such as --json apply.
func runDefaultCommand(ctx context.Context, rootCmd *cli.Command, specDoc *spec.Spec, deps Dependencies, reg *Registry) error {
	defaultCmd := strings.TrimSpace(specDoc.App.DefaultCommand)
	if defaultCmd == "" {
		return cli.ShowRootCommandHelp(rootCmd)
	}
	cmdSpec := specDoc.FindByID(defaultCmd)
	if cmdSpec == nil {
		return fmt.Errorf("default command %q not found", defaultCmd)
	}
	handler, ok := reg.HandlerFor(cmdSpec.ID)
	if !ok {
		return missingHandlerError(cmdSpec.ID)
	}
	return runHandler(ctx, rootCmd, *cmdSpec, deps, handler)
}

func runHandler(ctx context.Context, cliCmd *cli.Command, cmdSpec spec.Command, deps Dependencies, handler Handler) error {
	if handler == nil {
		return nil
	}
	if err := validateArgs(cmdSpec, cliCmd); err != nil {
		return err
	}
	if err := validateConstraints(cmdSpec, cliCmd); err != nil {
		return err
	}
	jsonOut := cliCmd.Bool("json")
	if jsonOut && (cmdSpec.JSON == nil || !cmdSpec.JSON.Supported) {
		return fmt.Errorf("command %s does not support --json", cmdSpec.Name)
	}
	commandCtx := CommandContext{
		Context: ctx,
		Args:    positionalArgs(cmdSpec, cliCmd),
		Spec:    cmdSpec,
		Cmd:     cliCmd,
		Deps:    deps,
		JSON:    jsonOut,
		Out:     deps.Stdout,
		ErrOut:  deps.Stderr,
		Stdin:   deps.Stdin,
	}
	if err := confirmIfNeeded(commandCtx, cliCmd); err != nil {
		return err
	}
	commandCtx.Started = time.Now()
	err := handler(commandCtx)
	if err == nil {
		return nil
	}
	var exitErr cli.ExitCoder
	if !jsonOut || errors.As(err, &exitErr) {
		return err
	}
	meta := output.WithDuration(output.NewMeta(cmdSpec.ID, deps.Version), commandCtx.Started)
	code, details := errorCode(err)
	_ = output.WriteError(commandCtx.Out, meta, code, err.Error(), details)
	return cli.Exit("", 1)
}

func argsUsage(args []spec.Arg) string {
	if len(args) == 0 {
		return ""
	}
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		name := strings.ToUpper(arg.Name)
		if arg.Variadic {
			name += "..."
		}
		if arg.Required {
			parts = append(parts, name)
		} else {
			parts = append(parts, fmt.Sprintf("[%s]", name))
		}
	}
	return strings.Join(parts, " ")
}

func confirmIfNeeded(ctx CommandContext, cliCmd *cli.Command) error {
	if !ctx.Spec.SideEffects && !ctx.Spec.Confirm {
		return nil
	}
	if cliCmd.Bool("yes") {
		return nil
	}
	message := fmt.Sprintf("Confirm %s", ctx.Spec.ID)
	ok, err := PromptConfirm(ctx.Stdin, ctx.ErrOut, message)
	if err != nil {
		return err
	}
	if !ok {
		return cli.Exit(fmt.Sprintf("%s aborted", ctx.Spec.Name), 1)
	}
	return nil
}
