package debuggee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"time"

	"github.com/regenrek/debugkit/internal/launch"
	"github.com/regenrek/debugkit/internal/logging"
	"github.com/regenrek/debugkit/internal/runenv"
)

// ErrNoProgram is returned for a launch without an argument vector.
var ErrNoProgram = errors.New("debuggee: launch has no program")

// Run starts l and waits for it to finish. Cancelling ctx asks the debuggee
// to stop with its stop signal and kills it once the stop timeout passes.
// A non-zero exit is reported through Exit, not as an error.
func Run(ctx context.Context, l *launch.Launch, opts Options) (Exit, error) {
	if l == nil || len(l.Argv) == 0 || l.Argv[0] == "" {
		return Exit{}, ErrNoProgram
	}
	log := opts.logger()
	timeout := stopTimeout(l)

	cmd := exec.Command(l.Argv[0], l.Argv[1:]...)
	cmd.Dir = l.Dir
	cmd.Env = l.Environ()
	cmd.Stdin = opts.Stdin
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr
	// Descendants that inherit the output pipes must not hold Wait open.
	cmd.WaitDelay = timeout
	grouped := startGroup(cmd)

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return Exit{}, fmt.Errorf("debuggee: start %s: %w", l.Argv[0], err)
	}
	pid := cmd.Process.Pid
	log.Info("debuggee: started",
		"name", l.Name,
		"pid", pid,
		"argv", logging.SanitizeArgs(l.Argv),
		"dir", l.Dir,
	)
	if len(l.Env) > 0 {
		log.Debug("debuggee: environment overrides", "pid", pid, "env", logging.SanitizeEnv(l.Env))
	}
	opts.emit(Event{Type: EventProcess, Name: l.Name, PID: pid, Command: l.CommandLine()})

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	var (
		waitErr  error
		stopped  bool
		killSent bool
	)
	select {
	case waitErr = <-done:
	case <-ctx.Done():
		stopped = true
		killSent, waitErr = requestStop(cmd, grouped, l, timeout, done, log)
	}

	if cmd.ProcessState == nil {
		return Exit{}, fmt.Errorf("debuggee: wait %s: %w", l.Argv[0], waitErr)
	}
	var exitErr *exec.ExitError
	switch {
	case errors.Is(waitErr, exec.ErrWaitDelay):
		log.Warn("debuggee: output still open after exit; closed", "pid", pid, "wait_delay", timeout)
	case waitErr != nil && !errors.As(waitErr, &exitErr):
		log.Warn("debuggee: wait failed", "pid", pid, "err", waitErr)
	}

	exit := exitFromState(cmd.ProcessState)
	exit.Stopped = stopped
	exit.Killed = killSent && diedFromKill(exit)
	exit.Duration = time.Since(start)
	log.Info("debuggee: exited",
		"name", l.Name,
		"pid", pid,
		"status", exit.Describe(),
		"duration", exit.Duration,
	)
	opts.emit(Event{Type: EventExited, Name: l.Name, PID: pid, Exit: &exit})
	opts.emit(Event{Type: EventTerminated, Name: l.Name, PID: pid})
	return exit, nil
}

func stopTimeout(l *launch.Launch) time.Duration {
	if l.StopTimeout > 0 {
		return l.StopTimeout
	}
	return runenv.DefaultStopWait
}

// requestStop sends the stop signal to the debuggee's process group and
// kills the group after timeout. It consumes the wait result from done and
// reports whether a kill was sent.
func requestStop(cmd *exec.Cmd, grouped bool, l *launch.Launch, timeout time.Duration, done <-chan error, log *slog.Logger) (killSent bool, waitErr error) {
	pid := cmd.Process.Pid
	kill := func() bool {
		if err := killGroup(cmd.Process, grouped); err != nil {
			log.Debug("debuggee: kill failed", "pid", pid, "err", err)
			return false
		}
		return true
	}
	if l.StopSignal == 0 {
		log.Info("debuggee: stop requested; killing", "pid", pid)
		return kill(), <-done
	}
	log.Info("debuggee: stop requested", "pid", pid, "signal", l.StopSignal, "timeout", timeout)
	if err := signalGroup(cmd.Process, grouped, l.StopSignal); err != nil {
		log.Warn("debuggee: stop signal failed; killing", "pid", pid, "err", err)
		return kill(), <-done
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case err := <-done:
		return false, err
	case <-timer.C:
		log.Warn("debuggee: stop timeout; killing", "pid", pid, "timeout", timeout)
		return kill(), <-done
	}
}
