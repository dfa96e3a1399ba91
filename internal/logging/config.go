package logging

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/regenrek/debugkit/internal/userpath"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

type Sink string

const (
	SinkStderr Sink = "stderr"
	SinkFile   Sink = "file"
	SinkNone   Sink = "none"
)

const (
	EnvLogLevel      = "DEBUGKIT_LOG_LEVEL"
	EnvLogFormat     = "DEBUGKIT_LOG_FORMAT"
	EnvLogSink       = "DEBUGKIT_LOG_SINK"
	EnvLogFile       = "DEBUGKIT_LOG_FILE"
	EnvLogAddSource  = "DEBUGKIT_LOG_ADD_SOURCE"
	EnvLogMaxSizeMB  = "DEBUGKIT_LOG_MAX_SIZE_MB"
	EnvLogMaxBackups = "DEBUGKIT_LOG_MAX_BACKUPS"
	EnvLogMaxAgeDays = "DEBUGKIT_LOG_MAX_AGE_DAYS"
	EnvLogCompress   = "DEBUGKIT_LOG_COMPRESS"
)

// Config is the logging section of the global config. Nil fields fall back
// to the defaults of the current Mode.
type Config struct {
	Level     *string `yaml:"level,omitempty"`
	Format    *string `yaml:"format,omitempty"`
	Sink      *string `yaml:"sink,omitempty"`
	File      *string `yaml:"file,omitempty"`
	AddSource *bool   `yaml:"add_source,omitempty"`

	MaxSizeMB  *int  `yaml:"max_size_mb,omitempty"`
	MaxBackups *int  `yaml:"max_backups,omitempty"`
	MaxAgeDays *int  `yaml:"max_age_days,omitempty"`
	Compress   *bool `yaml:"compress,omitempty"`
}

func ptr[T any](v T) *T { return &v }

// DefaultConfig is quiet for plain CLI calls. A debuggee run keeps an
// info-level JSON trail in a rotated file.
func DefaultConfig(mode Mode) Config {
	cfg := Config{
		Level:      ptr("error"),
		Format:     ptr(string(FormatText)),
		Sink:       ptr(string(SinkStderr)),
		AddSource:  ptr(false),
		MaxSizeMB:  ptr(20),
		MaxBackups: ptr(5),
		MaxAgeDays: ptr(7),
		Compress:   ptr(true),
	}
	if mode == ModeRun {
		cfg.Level = ptr("info")
		cfg.Format = ptr(string(FormatJSON))
		cfg.Sink = ptr(string(SinkFile))
	}
	return cfg
}

func pick[T any](base, override *T) *T {
	if override != nil {
		return override
	}
	return base
}

// Merge returns c with every field set in override replaced.
func (c Config) Merge(override Config) Config {
	return Config{
		Level:      pick(c.Level, override.Level),
		Format:     pick(c.Format, override.Format),
		Sink:       pick(c.Sink, override.Sink),
		File:       pick(c.File, override.File),
		AddSource:  pick(c.AddSource, override.AddSource),
		MaxSizeMB:  pick(c.MaxSizeMB, override.MaxSizeMB),
		MaxBackups: pick(c.MaxBackups, override.MaxBackups),
		MaxAgeDays: pick(c.MaxAgeDays, override.MaxAgeDays),
		Compress:   pick(c.Compress, override.Compress),
	}
}

// WithEnv applies the DEBUGKIT_LOG_* variables on top of c. Unparseable
// numbers are ignored.
func (c Config) WithEnv() Config {
	env := func(name string) (string, bool) {
		v := strings.TrimSpace(os.Getenv(name))
		return v, v != ""
	}
	var override Config
	for name, dst := range map[string]**string{
		EnvLogLevel:  &override.Level,
		EnvLogFormat: &override.Format,
		EnvLogSink:   &override.Sink,
		EnvLogFile:   &override.File,
	} {
		if v, ok := env(name); ok {
			*dst = ptr(v)
		}
	}
	for name, dst := range map[string]**bool{
		EnvLogAddSource: &override.AddSource,
		EnvLogCompress:  &override.Compress,
	} {
		if v, ok := env(name); ok {
			*dst = ptr(!isDisabledString(v))
		}
	}
	for name, dst := range map[string]**int{
		EnvLogMaxSizeMB:  &override.MaxSizeMB,
		EnvLogMaxBackups: &override.MaxBackups,
		EnvLogMaxAgeDays: &override.MaxAgeDays,
	} {
		if v, ok := env(name); ok {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = ptr(n)
			}
		}
	}
	return c.Merge(override)
}

// Normalize lowercases enum fields, expands a leading ~ in File, clamps
// negative rotation limits to zero and validates the result.
func (c Config) Normalize() (Config, error) {
	lower := func(s *string) *string {
		if s == nil {
			return nil
		}
		v := strings.ToLower(strings.TrimSpace(*s))
		if v == "" {
			return nil
		}
		return &v
	}
	nonNegative := func(n *int) *int {
		if n != nil && *n < 0 {
			return ptr(0)
		}
		return n
	}
	c.Level = lower(c.Level)
	c.Format = lower(c.Format)
	c.Sink = lower(c.Sink)
	if c.File != nil {
		if v := strings.TrimSpace(*c.File); v == "" {
			c.File = nil
		} else {
			c.File = ptr(userpath.ExpandUser(v))
		}
	}
	c.MaxSizeMB = nonNegative(c.MaxSizeMB)
	c.MaxBackups = nonNegative(c.MaxBackups)
	c.MaxAgeDays = nonNegative(c.MaxAgeDays)
	return c, c.Validate()
}

func (c Config) Validate() error {
	if c.Level != nil {
		switch *c.Level {
		case "debug", "info", "warn", "warning", "error":
		default:
			return fmt.Errorf("logging.level: invalid %q", *c.Level)
		}
	}
	if c.Format != nil {
		switch Format(*c.Format) {
		case FormatText, FormatJSON:
		default:
			return fmt.Errorf("logging.format: invalid %q", *c.Format)
		}
	}
	if c.Sink != nil {
		switch Sink(*c.Sink) {
		case SinkStderr, SinkFile, SinkNone:
		default:
			return fmt.Errorf("logging.sink: invalid %q", *c.Sink)
		}
	}
	return nil
}

func isDisabledString(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "0", "false", "no", "off":
		return true
	default:
		return false
	}
}
