package debuggee

import (
	"context"
	"errors"
	"testing"

	"github.com/regenrek/debugkit/internal/launch"
)

func TestExitDescribe(t *testing.T) {
	tests := []struct {
		name string
		exit Exit
		want string
		code int
	}{
		{name: "clean", exit: Exit{Code: 0}, want: "exited with code 0", code: 0},
		{name: "failure", exit: Exit{Code: 3}, want: "exited with code 3", code: 3},
		{name: "signaled", exit: Exit{Code: -1, Signaled: true, Signal: 9, SignalName: "SIGKILL"}, want: "terminated by signal SIGKILL (9)", code: 137},
		{name: "unnamed_signal", exit: Exit{Code: -1, Signaled: true, Signal: 77, SignalName: "77"}, want: "terminated by signal 77", code: 205},
		{name: "no_name", exit: Exit{Code: -1, Signaled: true, Signal: 15}, want: "terminated by signal 15", code: 143},
		{name: "unknown_code", exit: Exit{Code: -1}, want: "exited with code -1", code: 1},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.exit.Describe(); got != tt.want {
				t.Fatalf("Describe()=%q want %q", got, tt.want)
			}
			if got := tt.exit.ShellCode(); got != tt.code {
				t.Fatalf("ShellCode()=%d want %d", got, tt.code)
			}
		})
	}
}

func TestExitErr(t *testing.T) {
	if err := (Exit{Code: 0}).Err(); err != nil {
		t.Fatalf("expected nil for clean exit, got %v", err)
	}
	err := (Exit{Code: 2}).Err()
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected ExitError, got %v", err)
	}
	if exitErr.ExitCode() != 2 || err.Error() != "debuggee exited with code 2" {
		t.Fatalf("exit error=%q code=%d", err.Error(), exitErr.ExitCode())
	}
	signaled := (Exit{Code: -1, Signaled: true, Signal: 15, SignalName: "SIGTERM"}).Err()
	if !errors.As(signaled, &exitErr) || exitErr.ExitCode() != 143 {
		t.Fatalf("signaled exit error=%v", signaled)
	}
}

func TestRunRejectsEmptyLaunch(t *testing.T) {
	for _, l := range []*launch.Launch{nil, {}, {Argv: []string{""}}} {
		if _, err := Run(context.Background(), l, Options{}); !errors.Is(err, ErrNoProgram) {
			t.Fatalf("expected ErrNoProgram, got %v", err)
		}
	}
}

func TestRunMissingProgram(t *testing.T) {
	var events []Event
	l := &launch.Launch{Argv: []string{"debugkit-definitely-missing-binary"}}
	_, err := Run(context.Background(), l, Options{OnEvent: func(evt Event) { events = append(events, evt) }})
	if err == nil {
		t.Fatalf("expected start error")
	}
	if len(events) != 0 {
		t.Fatalf("expected no events, got %v", events)
	}
}
