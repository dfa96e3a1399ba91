package entry

import (
	"bytes"
	"io"
	"os"
	"runtime"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"
)

func TestRunVersionFlagExitsZero(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())
	t.Setenv("DEBUGKIT_CONFIG_DIR", t.TempDir())

	prevExiter := cli.OsExiter
	prevErrWriter := cli.ErrWriter
	cli.OsExiter = func(int) {}
	cli.ErrWriter = io.Discard
	t.Cleanup(func() {
		cli.OsExiter = prevExiter
		cli.ErrWriter = prevErrWriter
	})

	var out bytes.Buffer
	prevStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w
	t.Cleanup(func() { os.Stdout = prevStdout })
	t.Cleanup(func() { _ = r.Close() })
	t.Cleanup(func() { _ = w.Close() })

	exit := Run([]string{"debugkit", "--version"}, "test")
	_ = w.Close()
	_, _ = io.Copy(&out, r)
	if exit != 0 {
		t.Fatalf("exit=%d", exit)
	}
	if !strings.Contains(out.String(), "debugkit test") {
		t.Fatalf("stdout=%q", out.String())
	}
}

func TestRunVersionCommandWrites(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())
	t.Setenv("DEBUGKIT_CONFIG_DIR", t.TempDir())

	var out bytes.Buffer
	prevStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w
	t.Cleanup(func() { os.Stdout = prevStdout })
	t.Cleanup(func() { _ = r.Close() })
	t.Cleanup(func() { _ = w.Close() })

	exit := Run([]string{"debugkit", "version"}, "test")
	_ = w.Close()
	_, _ = io.Copy(&out, r)
	if exit != 0 {
		t.Fatalf("exit=%d", exit)
	}
	if !strings.Contains(out.String(), "debugkit test") {
		t.Fatalf("stdout=%q", out.String())
	}
}

func TestFreshConfigRequested(t *testing.T) {
	cases := []struct {
		args []string
		want bool
	}{
		{args: []string{"debugkit", "--fresh-config", "run"}, want: true},
		{args: []string{"debugkit", "run", "--fresh-config=true"}, want: true},
		{args: []string{"debugkit", "run", "--", "app", "--fresh-config"}, want: false},
		{args: []string{"debugkit", "version"}, want: false},
	}
	for _, tc := range cases {
		if got := freshConfigRequested(tc.args); got != tc.want {
			t.Fatalf("freshConfigRequested(%q)=%v want %v", tc.args, got, tc.want)
		}
	}
}

func TestRunMirrorsDebuggeeExitCode(t *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "plan9" {
		t.Skip("needs a POSIX shell")
	}
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv("DEBUGKIT_CONFIG_DIR", t.TempDir())
	t.Setenv("DEBUGKIT_LOG_SINK", "none")

	exit := Run([]string{"debugkit", "run", "--", "sh", "-c", "exit 3"}, "test")
	if exit != 3 {
		t.Fatalf("exit=%d want 3", exit)
	}
}
