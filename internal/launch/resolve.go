package launch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/regenrek/debugkit/internal/argv"
	"github.com/regenrek/debugkit/internal/runenv"
	"github.com/regenrek/debugkit/internal/signame"
)

const DefaultStopSignal = "SIGTERM"

// Defaults fills stop settings a configuration leaves empty.
type Defaults struct {
	StopSignal  string
	StopTimeout time.Duration
}

// Launch is a configuration resolved against its workspace.
type Launch struct {
	Name string
	Argv []string
	Dir  string
	Env  map[string]string

	// StopSignal is the number sent first on a stop request. Zero means the
	// host has no signals and the process is killed directly.
	StopSignal  int
	StopTimeout time.Duration
}

// Resolve tokenizes the command line, expands variables in each token and
// resolves the stop policy. workspace is the directory relative paths are taken from,
// normally the launch file's directory.
func (c Config) Resolve(workspace string, defaults Defaults) (*Launch, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	vars := workspaceVars(workspace, c.Vars)
	// Variables expand inside tokens, so substituted paths with spaces stay
	// one argument.
	tokens := func(line string) []string {
		out := argv.Parse(line)
		if c.Literal {
			return out
		}
		for i, token := range out {
			out[i] = ExpandVars(token, vars)
		}
		return out
	}

	var args []string
	if command := strings.TrimSpace(c.Command); command != "" {
		args = tokens(command)
	} else if c.Literal {
		args = []string{strings.TrimSpace(c.Program)}
	} else {
		args = []string{expandPath(strings.TrimSpace(c.Program), vars)}
	}
	if extra := strings.TrimSpace(c.Args); extra != "" {
		args = append(args, tokens(extra)...)
	}
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return nil, ErrNoCommand
	}

	dir := workspace
	if cwd := strings.TrimSpace(c.Cwd); cwd != "" {
		dir = expandPath(cwd, vars)
		if !filepath.IsAbs(dir) && workspace != "" {
			dir = filepath.Join(workspace, dir)
		}
	}

	var env map[string]string
	if len(c.Env) > 0 {
		env = make(map[string]string, len(c.Env))
		for key, value := range c.Env {
			env[key] = ExpandVars(value, vars)
		}
	}

	stopSignal, err := resolveStopSignal(c.StopSignal, defaults.StopSignal)
	if err != nil {
		return nil, err
	}
	stopTimeout, err := resolveStopTimeout(c.StopTimeout, defaults.StopTimeout)
	if err != nil {
		return nil, err
	}

	return &Launch{
		Name:        strings.TrimSpace(c.Name),
		Argv:        args,
		Dir:         dir,
		Env:         env,
		StopSignal:  stopSignal,
		StopTimeout: stopTimeout,
	}, nil
}

// CommandLine returns the argument vector quoted as one line.
func (l *Launch) CommandLine() string {
	if l == nil {
		return ""
	}
	return argv.Join(l.Argv)
}

// Environ returns the process environment with the launch overrides applied,
// overrides sorted by key.
func (l *Launch) Environ() []string {
	base := os.Environ()
	if l == nil || len(l.Env) == 0 {
		return base
	}
	out := make([]string, 0, len(base)+len(l.Env))
	for _, kv := range base {
		key, _, _ := strings.Cut(kv, "=")
		if _, overridden := l.Env[key]; overridden {
			continue
		}
		out = append(out, kv)
	}
	keys := make([]string, 0, len(l.Env))
	for key := range l.Env {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		out = append(out, key+"="+l.Env[key])
	}
	return out
}

func resolveStopSignal(values ...string) (int, error) {
	name := DefaultStopSignal
	for _, value := range values {
		if v := strings.TrimSpace(value); v != "" {
			name = v
			break
		}
	}
	n, err := signame.Lookup(name)
	if err != nil {
		var unsupported *signame.UnsupportedPlatformError
		if errors.As(err, &unsupported) {
			return 0, nil
		}
		return 0, fmt.Errorf("launch: stop_signal: %w", err)
	}
	return n, nil
}

func resolveStopTimeout(raw string, fallback time.Duration) (time.Duration, error) {
	if fallback <= 0 {
		fallback = runenv.StopTimeout()
	}
	if strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	return parseTimeout(raw)
}

// parseTimeout accepts a Go duration or whole seconds; the value must be
// positive.
func parseTimeout(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if d, err := time.ParseDuration(raw); err == nil {
		if d <= 0 {
			return 0, fmt.Errorf("launch: stop_timeout must be positive, got %q", raw)
		}
		return d, nil
	}
	secs, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("launch: stop_timeout: invalid duration %q", raw)
	}
	if secs <= 0 {
		return 0, fmt.Errorf("launch: stop_timeout must be positive, got %q", raw)
	}
	return time.Duration(secs) * time.Second, nil
}
