package appdirs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/regenrek/debugkit/internal/identity"
	"github.com/regenrek/debugkit/internal/runenv"
)

// ConfigDirPath returns the directory holding config.yml without creating it.
func ConfigDirPath() (string, error) {
	if override := runenv.ConfigDir(); override != "" {
		return override, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, identity.AppSlug), nil
}

// RuntimeDirPath returns the runtime directory without creating it.
func RuntimeDirPath() (string, error) {
	if override := runenv.RuntimeDir(); override != "" {
		return override, nil
	}
	return defaultRuntimeDir()
}
