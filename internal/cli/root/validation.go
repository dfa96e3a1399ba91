package root

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/regenrek/debugkit/internal/cli/spec"
)

// validateArgs checks required positionals and the declared value types.
func validateArgs(cmdSpec spec.Command, cmd *cli.Command) error {
	for _, argSpec := range cmdSpec.Args {
		name := strings.TrimSpace(argSpec.Name)
		if name == "" {
			continue
		}
		values := argValues(argSpec, cmd)
		if argSpec.Required && len(values) == 0 {
			return fmt.Errorf("missing argument %q", argSpec.Name)
		}
		for _, value := range values {
			if err := checkArgValue(argSpec, value); err != nil {
				return err
			}
		}
	}
	return nil
}

func argValues(argSpec spec.Arg, cmd *cli.Command) []string {
	name := strings.TrimSpace(argSpec.Name)
	var raw []string
	if argSpec.Variadic {
		raw = cmd.StringArgs(name)
	} else {
		raw = []string{cmd.StringArg(name)}
	}
	out := make([]string, 0, len(raw))
	for _, value := range raw {
		if strings.TrimSpace(value) != "" {
			out = append(out, value)
		}
	}
	return out
}

func checkArgValue(argSpec spec.Arg, value string) error {
	switch strings.TrimSpace(argSpec.Type) {
	case "int":
		if _, err := strconv.Atoi(strings.TrimSpace(value)); err != nil {
			return fmt.Errorf("argument %q: %q is not a whole number", argSpec.Name, value)
		}
	case "enum":
		if !slices.Contains(argSpec.Enum, value) {
			return fmt.Errorf("argument %q: invalid value %q (allowed: %s)", argSpec.Name, value, strings.Join(argSpec.Enum, ", "))
		}
	}
	return nil
}

type constraintCheck func(fields []string, present map[string]bool, count int) error

var constraintChecks = map[string]constraintCheck{
	"exactly_one": func(fields []string, _ map[string]bool, count int) error {
		if count != 1 {
			return fmt.Errorf("exactly one of %s is required", strings.Join(fields, ", "))
		}
		return nil
	},
	"at_least_one": func(fields []string, _ map[string]bool, count int) error {
		if count == 0 {
			return fmt.Errorf("at least one of %s is required", strings.Join(fields, ", "))
		}
		return nil
	},
	"requires": func(fields []string, present map[string]bool, _ int) error {
		if !present[fields[0]] {
			return nil
		}
		for _, field := range fields[1:] {
			if !present[field] {
				return fmt.Errorf("%s requires %s", fields[0], strings.Join(fields[1:], ", "))
			}
		}
		return nil
	},
	"excludes": func(fields []string, _ map[string]bool, count int) error {
		if count > 1 {
			return fmt.Errorf("only one of %s may be set", strings.Join(fields, ", "))
		}
		return nil
	},
}

func validateConstraints(cmdSpec spec.Command, cmd *cli.Command) error {
	for _, constraint := range cmdSpec.Constraints {
		if len(constraint.Fields) == 0 {
			continue
		}
		check, ok := constraintChecks[strings.TrimSpace(constraint.Type)]
		if !ok {
			continue
		}
		present := make(map[string]bool, len(constraint.Fields))
		count := 0
		for _, field := range constraint.Fields {
			if fieldPresent(field, cmdSpec, cmd) {
				present[field] = true
				count++
			}
		}
		if err := check(constraint.Fields, present, count); err != nil {
			return err
		}
	}
	return nil
}

// fieldPresent reports whether a constraint field names a non-empty argument
// or a flag set on the command line or through its env var.
func fieldPresent(field string, cmdSpec spec.Command, cmd *cli.Command) bool {
	field = strings.TrimSpace(field)
	if field == "" {
		return false
	}
	for _, arg := range cmdSpec.Args {
		if arg.Name == field {
			return len(argValues(arg, cmd)) > 0
		}
	}
	return cmd.IsSet(field)
}
