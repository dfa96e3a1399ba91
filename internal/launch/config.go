// Package launch loads debuggee launch files and resolves a configuration
// into the argument vector, directory, environment and stop policy the
// runner needs.
//
// A launch file holds one or more named configurations:
//
//	version: 1
//	configurations:
//	  - name: server
//	    program: ./bin/server
//	    args: --listen :8080 --name "dev server"
//	    env:
//	      LOG_LEVEL: debug
//	    stop_signal: SIGINT
//	    stop_timeout: 3s
//
// args is one string split with shell quoting rules. command may replace
// program with a whole command line; args are then appended to its tokens.
package launch

import (
	"errors"
	"fmt"
	"strings"
)

const FileVersion = 1

// File is the on-disk launch file.
type File struct {
	Version        int      `yaml:"version,omitempty" toml:"version,omitempty"`
	Configurations []Config `yaml:"configurations" toml:"configurations"`

	// Path is the file the configurations were read from.
	Path string `yaml:"-" toml:"-"`
}

// Config is one launch configuration as written by the user.
type Config struct {
	Name        string            `yaml:"name,omitempty" toml:"name,omitempty"`
	Program     string            `yaml:"program,omitempty" toml:"program,omitempty"`
	Args        string            `yaml:"args,omitempty" toml:"args,omitempty"`
	Command     string            `yaml:"command,omitempty" toml:"command,omitempty"`
	Cwd         string            `yaml:"cwd,omitempty" toml:"cwd,omitempty"`
	Env         map[string]string `yaml:"env,omitempty" toml:"env,omitempty"`
	Vars        map[string]string `yaml:"vars,omitempty" toml:"vars,omitempty"`
	StopSignal  string            `yaml:"stop_signal,omitempty" toml:"stop_signal,omitempty"`
	StopTimeout string            `yaml:"stop_timeout,omitempty" toml:"stop_timeout,omitempty"`

	// Literal skips variable expansion in command and args, for command
	// lines a shell has already expanded.
	Literal bool `yaml:"-" toml:"-"`
}

var (
	ErrNoConfigurations = errors.New("launch: file has no configurations")
	ErrNoCommand        = errors.New("launch: program or command is required")
	ErrBothCommands     = errors.New("launch: program and command are mutually exclusive")
	ErrUnknownName      = errors.New("launch: unknown configuration")
)

// Validate checks the file structure and every configuration.
func (f *File) Validate() error {
	if f == nil || len(f.Configurations) == 0 {
		return ErrNoConfigurations
	}
	if f.Version != 0 && f.Version != FileVersion {
		return fmt.Errorf("launch: unsupported version %d", f.Version)
	}
	seen := make(map[string]struct{}, len(f.Configurations))
	for i, cfg := range f.Configurations {
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("configuration %d (%s): %w", i, cfg.label(i), err)
		}
		name := strings.TrimSpace(cfg.Name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			return fmt.Errorf("launch: duplicate configuration name %q", name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

// Select returns the configuration with the given name. An empty name picks
// the first configuration.
func (f *File) Select(name string) (Config, error) {
	if f == nil || len(f.Configurations) == 0 {
		return Config{}, ErrNoConfigurations
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return f.Configurations[0], nil
	}
	names := make([]string, 0, len(f.Configurations))
	for _, cfg := range f.Configurations {
		if strings.TrimSpace(cfg.Name) == name {
			return cfg, nil
		}
		if cfg.Name != "" {
			names = append(names, cfg.Name)
		}
	}
	return Config{}, fmt.Errorf("%w %q (available: %s)", ErrUnknownName, name, strings.Join(names, ", "))
}

// Validate checks a configuration without expanding variables or touching
// the filesystem.
func (c Config) Validate() error {
	program := strings.TrimSpace(c.Program)
	command := strings.TrimSpace(c.Command)
	switch {
	case program == "" && command == "":
		return ErrNoCommand
	case program != "" && command != "":
		return ErrBothCommands
	}
	if raw := strings.TrimSpace(c.StopTimeout); raw != "" {
		if _, err := parseTimeout(raw); err != nil {
			return err
		}
	}
	for key := range c.Env {
		if strings.TrimSpace(key) == "" || strings.ContainsAny(key, "=\x00") {
			return fmt.Errorf("launch: invalid env name %q", key)
		}
	}
	return nil
}

func (c Config) label(index int) string {
	if name := strings.TrimSpace(c.Name); name != "" {
		return name
	}
	return fmt.Sprintf("#%d", index)
}
