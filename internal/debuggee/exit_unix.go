//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package debuggee

import (
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/regenrek/debugkit/internal/signame"
)

func exitFromState(state *os.ProcessState) Exit {
	exit := Exit{PID: state.Pid(), Code: state.ExitCode()}
	status, ok := state.Sys().(syscall.WaitStatus)
	if !ok || !status.Signaled() {
		return exit
	}
	exit.Signaled = true
	exit.Signal = int(status.Signal())
	if name, err := signame.Resolve(exit.Signal); err == nil {
		exit.SignalName = name
	}
	return exit
}

// startGroup makes the debuggee lead a new process group so stop signals
// reach everything it forks. A debuggee reading from a terminal stays in the
// terminal's foreground group, where Ctrl-C already reaches its descendants
// and a background group would stop on SIGTTIN.
func startGroup(cmd *exec.Cmd) bool {
	if f, ok := cmd.Stdin.(*os.File); ok {
		if term.IsTerminal(int(f.Fd())) {
			return false
		}
	}
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	return true
}

func signalGroup(p *os.Process, grouped bool, n int) error {
	return unix.Kill(target(p, grouped), unix.Signal(n))
}

func killGroup(p *os.Process, grouped bool) error {
	return unix.Kill(target(p, grouped), unix.SIGKILL)
}

func target(p *os.Process, grouped bool) int {
	if grouped {
		return -p.Pid
	}
	return p.Pid
}

// diedFromKill reports whether the exit was caused by SIGKILL rather than
// by the stop signal that preceded it.
func diedFromKill(exit Exit) bool {
	return exit.Signaled && exit.Signal == int(unix.SIGKILL)
}
