//go:build windows

package appdirs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/regenrek/debugkit/internal/identity"
	"github.com/regenrek/debugkit/internal/runenv"
)

// RuntimeDir returns the directory for logs, creating it when missing.
func RuntimeDir() (string, error) {
	dir := runenv.RuntimeDir()
	if dir == "" {
		var err error
		if dir, err = defaultRuntimeDir(); err != nil {
			return "", err
		}
	}
	return dir, EnsurePrivateDir(dir, false)
}

func defaultRuntimeDir() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolve cache dir: %w", err)
	}
	return filepath.Join(dir, identity.AppSlug), nil
}

// EnsurePrivateDir creates dir when missing. Windows ACLs are left alone.
func EnsurePrivateDir(dir string, _ bool) error {
	if dir == "" || dir == "." {
		return fmt.Errorf("directory path is empty")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%q is not a directory", dir)
	}
	return nil
}
