// Package userpath converts between home-relative and absolute paths.
package userpath

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandUser expands a leading "~" or "~/" to the current user's home
// directory. "~user" forms are returned unchanged.
func ExpandUser(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}

// ShortenUser replaces a leading home directory with "~" for display.
func ShortenUser(path string) string {
	if path == "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if path == home {
		return "~"
	}
	prefix := strings.TrimSuffix(home, string(filepath.Separator)) + string(filepath.Separator)
	if rest, ok := strings.CutPrefix(path, prefix); ok {
		return "~/" + filepath.ToSlash(rest)
	}
	return path
}
