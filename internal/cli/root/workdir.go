package root

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ResolveWorkDir returns the directory launch files and relative paths are
// resolved against: the command's WorkDir, then Deps.WorkDir, then the
// process working directory.
func ResolveWorkDir(ctx CommandContext) (string, error) {
	if strings.TrimSpace(ctx.WorkDir) != "" {
		return normalizeWorkDir(ctx.WorkDir)
	}
	if strings.TrimSpace(ctx.Deps.WorkDir) != "" {
		return normalizeWorkDir(ctx.Deps.WorkDir)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return normalizeWorkDir(cwd)
}

func normalizeWorkDir(dir string) (string, error) {
	trimmed := strings.TrimSpace(dir)
	if trimmed == "" {
		return "", errors.New("workdir is empty")
	}
	abs, err := filepath.Abs(trimmed)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("workdir: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("workdir %q is not a directory", abs)
	}
	return abs, nil
}
