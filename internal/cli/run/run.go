package run

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/regenrek/debugkit/internal/argv"
	"github.com/regenrek/debugkit/internal/cli/output"
	"github.com/regenrek/debugkit/internal/cli/root"
	"github.com/regenrek/debugkit/internal/config"
	"github.com/regenrek/debugkit/internal/debuggee"
	"github.com/regenrek/debugkit/internal/identity"
	"github.com/regenrek/debugkit/internal/launch"
)

// Register registers the run handler.
func Register(reg *root.Registry) {
	reg.Register("run", runDebuggee)
}

var runProcess = debuggee.Run

func runDebuggee(ctx root.CommandContext) error {
	cfg, _, err := config.LoadDefault()
	if err != nil {
		return err
	}
	resolved, err := resolveLaunch(ctx, cfg.LaunchDefaults())
	if err != nil {
		return err
	}

	parent := ctx.Context
	if parent == nil {
		parent = context.Background()
	}
	sigCtx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	reporter := newReporter(ctx)
	opts := debuggee.Options{
		Stdin:   ctx.Stdin,
		Stdout:  ctx.Out,
		Stderr:  ctx.ErrOut,
		OnEvent: reporter.event,
	}
	if ctx.JSON {
		// Keep stdout a clean envelope stream.
		opts.Stdout = ctx.ErrOut
	}
	exit, err := runProcess(sigCtx, resolved, opts)
	if err != nil {
		return err
	}
	if reporter.err != nil {
		return reporter.err
	}
	return exit.Err()
}

// resolveLaunch builds the launch from the command line after "--" or from
// the selected launch file configuration, then applies flag overrides.
func resolveLaunch(ctx root.CommandContext, defaults launch.Defaults) (*launch.Launch, error) {
	workDir, err := root.ResolveWorkDir(ctx)
	if err != nil {
		return nil, err
	}
	var (
		selected  launch.Config
		workspace string
	)
	if len(ctx.Args) > 0 {
		selected = launch.Config{
			Name:    filepath.Base(ctx.Args[0]),
			Command: argv.Join(ctx.Args),
			Literal: true,
		}
		workspace = workDir
	} else {
		file, err := launch.Open(flagString(ctx, "config"), workDir)
		if err != nil {
			return nil, fmt.Errorf("%w (create one with '%s init --local' or pass a command after --)", err, identity.CLIName)
		}
		selected, err = file.Select(flagString(ctx, "name"))
		if err != nil {
			return nil, err
		}
		workspace = file.Workspace()
	}
	if cwd := flagString(ctx, "cwd"); cwd != "" {
		selected.Cwd = cwd
	}
	if sig := flagString(ctx, "stop-signal"); sig != "" {
		selected.StopSignal = sig
	}
	if ctx.Cmd != nil && ctx.Cmd.IsSet("stop-timeout") {
		selected.StopTimeout = ctx.Cmd.Duration("stop-timeout").String()
	}
	return selected.Resolve(workspace, defaults)
}

func flagString(ctx root.CommandContext, name string) string {
	if ctx.Cmd == nil {
		return ""
	}
	return strings.TrimSpace(ctx.Cmd.String(name))
}

// reporter writes lifecycle events as stream envelopes in JSON mode and as
// status lines on stderr otherwise.
type reporter struct {
	stream *output.Stream
	errOut io.Writer
	app    string
	err    error
}

func newReporter(ctx root.CommandContext) *reporter {
	app := identity.NormalizeCLIName(ctx.Deps.AppName)
	if app == "" {
		app = identity.CLIName
	}
	errOut := ctx.ErrOut
	if errOut == nil {
		errOut = io.Discard
	}
	r := &reporter{errOut: errOut, app: app}
	if ctx.JSON {
		r.stream = output.NewStream(ctx.Out, "run", ctx.Deps.Version)
	}
	return r
}

func (r *reporter) event(evt debuggee.Event) {
	if r.err != nil {
		return
	}
	if r.stream != nil {
		r.err = r.stream.Write(runEvent(evt), evt.Type == debuggee.EventTerminated)
		return
	}
	switch evt.Type {
	case debuggee.EventProcess:
		label := evt.Name
		if label == "" {
			label = "debuggee"
		}
		_, r.err = fmt.Fprintf(r.errOut, "%s: started %s (pid %d): %s\n", r.app, label, evt.PID, evt.Command)
	case debuggee.EventExited:
		if evt.Exit == nil {
			return
		}
		_, r.err = fmt.Fprintf(r.errOut, "%s: %s %s after %s\n", r.app, exitLabel(evt), evt.Exit.Describe(), evt.Exit.Duration.Round(time.Millisecond))
	}
}

func exitLabel(evt debuggee.Event) string {
	label := evt.Name
	if label == "" {
		label = "debuggee"
	}
	if evt.Exit != nil && evt.Exit.Killed {
		return label + " (killed)"
	}
	if evt.Exit != nil && evt.Exit.Stopped {
		return label + " (stopped)"
	}
	return label
}

func runEvent(evt debuggee.Event) output.RunEvent {
	out := output.RunEvent{
		Type:    string(evt.Type),
		Name:    evt.Name,
		PID:     evt.PID,
		Command: evt.Command,
		TS:      evt.Time.UTC(),
	}
	if evt.Exit != nil {
		exit := evt.Exit
		out.Exit = &output.ExitSummary{
			PID:         exit.PID,
			Code:        exit.Code,
			Signaled:    exit.Signaled,
			Signal:      exit.Signal,
			SignalName:  exit.SignalName,
			Stopped:     exit.Stopped,
			Killed:      exit.Killed,
			ShellCode:   exit.ShellCode(),
			Description: exit.Describe(),
			DurationMS:  exit.Duration.Milliseconds(),
		}
	}
	return out
}
