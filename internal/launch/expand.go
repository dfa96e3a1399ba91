package launch

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/regenrek/debugkit/internal/userpath"
)

const (
	VarWorkspaceFolder = "WORKSPACE_FOLDER"
	VarWorkspaceName   = "WORKSPACE_NAME"
)

var varPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-([^}]*))?\}`)

// ExpandVars replaces ${VAR} and ${VAR:-default}. Lookup order is vars, then
// the process environment, then the default.
func ExpandVars(s string, vars map[string]string) string {
	if !strings.Contains(s, "${") {
		return s
	}
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}
		name := parts[1]
		if val, ok := vars[name]; ok && val != "" {
			return val
		}
		if val := os.Getenv(name); val != "" {
			return val
		}
		if len(parts) > 2 {
			return parts[2]
		}
		return ""
	})
}

// expandPath expands variables and a leading ~ in a path-like value.
func expandPath(s string, vars map[string]string) string {
	return userpath.ExpandUser(ExpandVars(s, vars))
}

func workspaceVars(workspace string, user map[string]string) map[string]string {
	vars := make(map[string]string, len(user)+2)
	if workspace != "" {
		vars[VarWorkspaceFolder] = workspace
		vars[VarWorkspaceName] = filepath.Base(workspace)
	}
	for k, v := range user {
		vars[k] = v
	}
	return vars
}
