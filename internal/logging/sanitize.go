package logging

import (
	"regexp"
	"strings"
)

const redacted = "<redacted>"

// secretWords are the name fragments that mark a flag or variable as secret.
const secretWords = `TOKEN|SECRET|PASSWORD|PASSWD|PASS|API_?KEY|AUTH|AUTHORIZATION|BEARER|COOKIE|SESSION|CREDENTIALS?|PRIVATE_KEY`

type redaction struct {
	pattern *regexp.Regexp
	replace string
}

var (
	secretFlag = regexp.MustCompile(`(?i)^--?[a-z0-9-]*(?:` + strings.ReplaceAll(secretWords, "_", "[-_]") + `)[a-z0-9-]*$`)
	secretKey  = regexp.MustCompile(`(?i)^[A-Z0-9_]*(?:` + secretWords + `)[A-Z0-9_]*$`)

	// Applied in order to every logged command string.
	redactions = []redaction{
		{regexp.MustCompile(`(?i)(^|\s)(--?[a-z0-9-]*(?:` + strings.ReplaceAll(secretWords, "_", "[-_]") + `)[a-z0-9-]*)(=|\s+)(\S+)`), "${1}${2}${3}" + redacted},
		{regexp.MustCompile(`(?i)\b([A-Z0-9_]*(?:` + secretWords + `)[A-Z0-9_]*)=(\S+)`), "${1}=" + redacted},
		{regexp.MustCompile(`(?i)\bAuthorization:\s*Bearer\s+[^\s"'` + "`" + `]+`), "Authorization: Bearer " + redacted},
		{regexp.MustCompile(`(?i)\bBearer\s+[^\s"'` + "`" + `<]+`), "Bearer " + redacted},
		{regexp.MustCompile(`://([^/\s:@]+):([^/\s@]+)@`), "://${1}:" + redacted + "@"},
	}
)

// SanitizeCommand redacts secrets in a command string: values of secret
// flags and variables, bearer tokens and URL passwords.
func SanitizeCommand(value string) string {
	out := strings.TrimSpace(value)
	for _, r := range redactions {
		out = r.pattern.ReplaceAllString(out, r.replace)
	}
	return out
}

// SanitizeArgs redacts sensitive values in an argument vector. A secret flag
// followed by a separate value token redacts that token.
func SanitizeArgs(args []string) []string {
	if len(args) == 0 {
		return nil
	}
	out := make([]string, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if secretFlag.MatchString(arg) && i+1 < len(args) {
			out[i] = arg
			out[i+1] = redacted
			i++
			continue
		}
		out[i] = SanitizeCommand(arg)
	}
	return out
}

// SanitizeEnv returns a copy of env with values of sensitive keys redacted.
func SanitizeEnv(env map[string]string) map[string]string {
	if len(env) == 0 {
		return nil
	}
	out := make(map[string]string, len(env))
	for key, value := range env {
		if secretKey.MatchString(key) {
			value = redacted
		}
		out[key] = value
	}
	return out
}
