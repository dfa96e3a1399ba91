package identity

import (
	"path/filepath"
	"strings"
)

const (
	BrandName = "debugkit"
	// AppSlug is the canonical identifier for on-disk state and log fields.
	AppSlug = "debugkit"
	CLIName = "debugkit"

	GlobalConfigFile = "config.yml"

	// ProjectLaunchFiles are searched, in order, in the working directory
	// when run/launch commands get no explicit file.
	ProjectLaunchFileYML  = ".debugkit.yml"
	ProjectLaunchFileYAML = ".debugkit.yaml"
	ProjectLaunchFileTOML = ".debugkit.toml"
)

var (
	CLIAliases = []string{"dbk"}
)

// ProjectLaunchFiles returns the launch file names in lookup order.
func ProjectLaunchFiles() []string {
	return []string{ProjectLaunchFileYML, ProjectLaunchFileYAML, ProjectLaunchFileTOML}
}

// NormalizeCLIName maps a binary name to the name shown in help and output.
func NormalizeCLIName(name string) string {
	trimmed := strings.ToLower(strings.TrimSpace(name))
	trimmed = strings.TrimSuffix(trimmed, ".exe")
	if IsCLICommandToken(trimmed) {
		return trimmed
	}
	return CLIName
}

// ResolveBinaryName returns the CLI name for argv[0].
func ResolveBinaryName(args []string) string {
	if len(args) == 0 {
		return CLIName
	}
	return NormalizeCLIName(filepath.Base(args[0]))
}

func IsCLICommandToken(token string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(token))
	if trimmed == "" {
		return false
	}
	if trimmed == CLIName {
		return true
	}
	for _, alias := range CLIAliases {
		if trimmed == alias {
			return true
		}
	}
	return false
}
