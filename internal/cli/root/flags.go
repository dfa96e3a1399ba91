package root

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/regenrek/debugkit/internal/cli/spec"
	"github.com/regenrek/debugkit/internal/runenv"
	"github.com/regenrek/debugkit/internal/signame"
)

func buildFlags(flags []spec.Flag) ([]cli.Flag, error) {
	if len(flags) == 0 {
		return nil, nil
	}
	out := make([]cli.Flag, 0, len(flags))
	for _, flag := range flags {
		built, err := buildFlag(flag)
		if err != nil {
			return nil, err
		}
		out = append(out, built)
	}
	return out, nil
}

// buildFlag maps a flag declaration to its urfave flag. "path" flags complete
// as files, "enum" flags reject values outside the list and "signal" flags
// must name a signal the host knows.
func buildFlag(flag spec.Flag) (cli.Flag, error) {
	name := strings.TrimSpace(flag.Name)
	if name == "" {
		return nil, fmt.Errorf("flag name is required")
	}
	var sources cli.ValueSourceChain
	if env := strings.TrimSpace(flag.Env); env != "" {
		sources = cli.EnvVars(env)
	}
	kind := strings.TrimSpace(flag.Type)
	switch kind {
	case "bool":
		return &cli.BoolFlag{
			Name:     name,
			Aliases:  flag.Aliases,
			Usage:    flag.Description,
			Required: flag.Required,
			Hidden:   flag.Hidden,
			Sources:  sources,
			Value:    boolDefault(flag.Default),
		}, nil
	case "string", "path", "enum", "signal":
		fl := &cli.StringFlag{
			Name:      name,
			Aliases:   flag.Aliases,
			Usage:     flag.Description,
			Required:  flag.Required,
			Hidden:    flag.Hidden,
			Sources:   sources,
			Value:     stringDefault(flag.Default),
			TakesFile: kind == "path",
		}
		switch {
		case kind == "signal":
			fl.Validator = validateSignal
		case len(flag.Enum) > 0:
			fl.Validator = enumValidator(flag.Enum)
		}
		return fl, nil
	case "int":
		return &cli.IntFlag{
			Name:     name,
			Aliases:  flag.Aliases,
			Usage:    flag.Description,
			Required: flag.Required,
			Hidden:   flag.Hidden,
			Sources:  sources,
			Value:    intDefault(flag.Default),
		}, nil
	case "duration":
		return &cli.DurationFlag{
			Name:     name,
			Aliases:  flag.Aliases,
			Usage:    flag.Description,
			Required: flag.Required,
			Hidden:   flag.Hidden,
			Sources:  sources,
			Value:    durationDefault(flag.Default),
		}, nil
	default:
		return nil, fmt.Errorf("unsupported flag type %q for %s", flag.Type, name)
	}
}

func validateSignal(value string) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	_, err := signame.Lookup(value)
	return err
}

func enumValidator(values []string) func(string) error {
	allowed := make(map[string]struct{}, len(values))
	for _, value := range values {
		allowed[value] = struct{}{}
	}
	return func(val string) error {
		if _, ok := allowed[val]; !ok {
			return fmt.Errorf("invalid value %q (allowed: %s)", val, strings.Join(values, ", "))
		}
		return nil
	}
}

func boolDefault(value any) bool {
	parsed, _ := value.(bool)
	return parsed
}

func stringDefault(value any) string {
	switch parsed := value.(type) {
	case string:
		return parsed
	case int:
		// YAML reads "default: 15" for a signal flag as an int.
		return strconv.Itoa(parsed)
	default:
		return ""
	}
}

func intDefault(value any) int {
	switch parsed := value.(type) {
	case int:
		return parsed
	case int64:
		return int(parsed)
	case float64:
		return int(parsed)
	default:
		return 0
	}
}

// durationDefault accepts a Go duration or whole seconds, like the
// DEBUGKIT_STOP_TIMEOUT variable.
func durationDefault(value any) time.Duration {
	switch parsed := value.(type) {
	case time.Duration:
		return parsed
	case int:
		return runenv.ParseTimeout(strconv.Itoa(parsed), 0)
	case string:
		return runenv.ParseTimeout(parsed, 0)
	default:
		return 0
	}
}
