// Package config loads the global debugkit configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/regenrek/debugkit/internal/appdirs"
	"github.com/regenrek/debugkit/internal/identity"
	"github.com/regenrek/debugkit/internal/launch"
	"github.com/regenrek/debugkit/internal/logging"
	"github.com/regenrek/debugkit/internal/runenv"
)

// Config represents config.yml.
type Config struct {
	Logging logging.Config `yaml:"logging,omitempty"`
	Run     RunConfig      `yaml:"run,omitempty"`
}

// RunConfig holds defaults for launches that do not set their own.
type RunConfig struct {
	StopSignal  string `yaml:"stop_signal,omitempty"`
	StopTimeout string `yaml:"stop_timeout,omitempty"`
}

// DefaultPath returns the global config path. It is empty when fresh config
// mode is enabled.
func DefaultPath() (string, error) {
	if runenv.FreshConfigEnabled() {
		return "", nil
	}
	dir, err := appdirs.ConfigDirPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, identity.GlobalConfigFile), nil
}

// Load reads the config at path. A missing file yields an empty config.
func Load(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		return &Config{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}
	return &cfg, nil
}

// LoadDefault loads the config at DefaultPath and returns it with the path
// it came from. The path is empty in fresh config mode.
func LoadDefault() (*Config, string, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, "", err
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// LaunchDefaults returns the stop settings applied to launches that leave
// them empty.
func (c *Config) LaunchDefaults() launch.Defaults {
	if c == nil {
		return launch.Defaults{}
	}
	return launch.Defaults{
		StopSignal:  strings.TrimSpace(c.Run.StopSignal),
		StopTimeout: runenv.ParseTimeout(c.Run.StopTimeout, 0),
	}
}
