//go:build !windows

package appdirs

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/regenrek/debugkit/internal/identity"
	"github.com/regenrek/debugkit/internal/runenv"
)

var permsWarnOnce sync.Once

// RuntimeDir returns the directory for logs and other per-user state,
// creating it with 0700 permissions when missing.
func RuntimeDir() (string, error) {
	if override := runenv.RuntimeDir(); override != "" {
		return override, EnsurePrivateDir(override, true)
	}
	dir, err := defaultRuntimeDir()
	if err != nil {
		return "", err
	}
	return dir, EnsurePrivateDir(dir, false)
}

func defaultRuntimeDir() (string, error) {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, identity.AppSlug), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".local", "state", identity.AppSlug), nil
}

// EnsurePrivateDir creates dir with 0700 permissions, or tightens an existing
// dir owned by the current user. Directories the user picked explicitly
// (userChosen) and directories owned by someone else only get a warning.
func EnsurePrivateDir(dir string, userChosen bool) error {
	if dir == "" || dir == "." {
		return fmt.Errorf("directory path is empty")
	}
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%q is not a directory", dir)
	}
	mode := info.Mode().Perm()
	if mode&0o077 == 0 {
		return nil
	}
	switch {
	case userChosen:
		permsWarnOnce.Do(func() {
			slog.Warn("directory is group/world accessible; consider chmod 0700", "path", dir, "mode", mode.String())
		})
	case ownedByCurrentUser(info):
		if err := os.Chmod(dir, 0o700); err != nil {
			return fmt.Errorf("chmod %s: %w", dir, err)
		}
	default:
		permsWarnOnce.Do(func() {
			slog.Warn("directory is not owned by current user; permissions unchanged", "path", dir, "mode", mode.String())
		})
	}
	return nil
}

func ownedByCurrentUser(info os.FileInfo) bool {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return false
	}
	return stat.Uid == uint32(os.Getuid())
}
