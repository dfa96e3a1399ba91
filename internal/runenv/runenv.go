package runenv

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	RuntimeDirEnv   = "DEBUGKIT_RUNTIME_DIR"
	ConfigDirEnv    = "DEBUGKIT_CONFIG_DIR"
	FreshConfigEnv  = "DEBUGKIT_FRESH_CONFIG"
	StopTimeoutEnv  = "DEBUGKIT_STOP_TIMEOUT"
	DefaultStopWait = 5 * time.Second
)

func enabledEnv(name string) bool {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return false
	}
	switch strings.ToLower(value) {
	case "0", "false", "no", "off":
		return false
	default:
		return true
	}
}

// FreshConfigEnabled reports whether the global config file is ignored.
func FreshConfigEnabled() bool {
	return enabledEnv(FreshConfigEnv)
}

func ConfigDir() string {
	return strings.TrimSpace(os.Getenv(ConfigDirEnv))
}

func RuntimeDir() string {
	return strings.TrimSpace(os.Getenv(RuntimeDirEnv))
}

// StopTimeout returns how long a debuggee gets between the stop signal and a
// kill. Accepts a Go duration or a number of seconds.
func StopTimeout() time.Duration {
	return ParseTimeout(os.Getenv(StopTimeoutEnv), DefaultStopWait)
}

// ParseTimeout parses a Go duration or whole seconds, returning fallback for
// empty, invalid or non-positive values.
func ParseTimeout(raw string, fallback time.Duration) time.Duration {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		if d <= 0 {
			return fallback
		}
		return d
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs <= 0 {
		return fallback
	}
	return time.Duration(secs) * time.Second
}
