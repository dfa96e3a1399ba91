package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/regenrek/debugkit/internal/atomicfile"
)

const defaultConfigContent = `# debugkit - Global Configuration

# Logging for the CLI. "debugkit run" defaults to an info-level JSON log file
# in the runtime dir; plain commands log errors to stderr.
# logging:
#   level: error        # debug | info | warn | error
#   format: text        # text | json
#   sink: stderr        # stderr | file | none
#   file: ~/.local/state/debugkit/debugkit.log
#   max_size_mb: 20
#   max_backups: 5
#   max_age_days: 7
#   compress: true

# Defaults for debuggees whose launch file does not set them.
# run:
#   stop_signal: SIGTERM
#   stop_timeout: 5s
`

// EnsureDefault creates a commented config at path when none exists.
func EnsureDefault(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("config path is empty")
	}
	info, err := os.Stat(path)
	if err == nil {
		if info.IsDir() {
			return fmt.Errorf("config path %q is a directory", path)
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config %q: %w", path, err)
	}
	return WriteDefault(path)
}

// WriteDefault writes the commented config template to path, replacing any
// existing file.
func WriteDefault(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("config path is empty")
	}
	if err := atomicfile.Write(path, []byte(defaultConfigContent), 0o644, 0o755); err != nil {
		return fmt.Errorf("write config %q: %w", path, err)
	}
	return nil
}
