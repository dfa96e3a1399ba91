//go:build !(aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris)

package debuggee

import (
	"os"
	"os/exec"
	"runtime"

	"github.com/regenrek/debugkit/internal/signame"
)

func exitFromState(state *os.ProcessState) Exit {
	return Exit{PID: state.Pid(), Code: state.ExitCode()}
}

func startGroup(*exec.Cmd) bool {
	return false
}

func signalGroup(*os.Process, bool, int) error {
	return &signame.UnsupportedPlatformError{Platform: runtime.GOOS}
}

func killGroup(p *os.Process, _ bool) error {
	return p.Kill()
}

func diedFromKill(Exit) bool {
	return true
}
