// Package debuggee runs a resolved launch configuration as a child process
// and reports its lifecycle as process, exited and terminated events.
package debuggee

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"
)

// EventType names a lifecycle event.
type EventType string

const (
	// EventProcess is emitted once the program is running.
	EventProcess EventType = "process"
	// EventExited carries the exit status.
	EventExited EventType = "exited"
	// EventTerminated is the last event of a run.
	EventTerminated EventType = "terminated"
)

// Event is one lifecycle notification.
type Event struct {
	Type    EventType `json:"type"`
	Name    string    `json:"name,omitempty"`
	PID     int       `json:"pid,omitempty"`
	Command string    `json:"command,omitempty"`
	Exit    *Exit     `json:"exit,omitempty"`
	Time    time.Time `json:"time"`
}

// Exit describes how the debuggee finished.
type Exit struct {
	PID int `json:"pid"`
	// Code is the exit code, or -1 when the process died from a signal.
	Code       int           `json:"code"`
	Signaled   bool          `json:"signaled"`
	Signal     int           `json:"signal,omitempty"`
	SignalName string        `json:"signal_name,omitempty"`
	Stopped    bool          `json:"stopped"`
	Killed     bool          `json:"killed"`
	Duration   time.Duration `json:"duration"`
}

// Describe returns a one-line summary such as "exited with code 2" or
// "terminated by signal SIGKILL (9)".
func (e Exit) Describe() string {
	if e.Signaled {
		name := e.SignalName
		if name == "" {
			name = strconv.Itoa(e.Signal)
		}
		if name == strconv.Itoa(e.Signal) {
			return fmt.Sprintf("terminated by signal %d", e.Signal)
		}
		return fmt.Sprintf("terminated by signal %s (%d)", name, e.Signal)
	}
	return fmt.Sprintf("exited with code %d", e.Code)
}

// ShellCode returns the status a shell would report: the exit code, or 128
// plus the signal number.
func (e Exit) ShellCode() int {
	if e.Signaled {
		return 128 + e.Signal
	}
	if e.Code < 0 {
		return 1
	}
	return e.Code
}

// Err returns nil for a clean exit and *ExitError otherwise.
func (e Exit) Err() error {
	if e.ShellCode() == 0 {
		return nil
	}
	return &ExitError{Exit: e}
}

// ExitError reports a debuggee that exited non-zero or died from a signal.
// ExitCode returns the shell-style status so the error can end the CLI with
// the debuggee's code.
type ExitError struct {
	Exit Exit
}

func (e *ExitError) Error() string {
	return "debuggee " + e.Exit.Describe()
}

func (e *ExitError) ExitCode() int {
	return e.Exit.ShellCode()
}

// Options wires the debuggee's standard streams and event sink. Nil streams
// are connected to the null device.
type Options struct {
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	OnEvent func(Event)
	Logger  *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

func (o Options) emit(evt Event) {
	if o.OnEvent == nil {
		return
	}
	if evt.Time.IsZero() {
		evt.Time = time.Now()
	}
	o.OnEvent(evt)
}
