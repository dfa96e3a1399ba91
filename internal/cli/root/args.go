package root

import (
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/regenrek/debugkit/internal/cli/spec"
)

func buildArguments(args []spec.Arg) []cli.Argument {
	if len(args) == 0 {
		return nil
	}
	out := make([]cli.Argument, 0, len(args))
	for _, arg := range args {
		out = append(out, buildArgument(arg))
	}
	return out
}

func buildArgument(arg spec.Arg) cli.Argument {
	name := strings.TrimSpace(arg.Name)
	if arg.Variadic {
		min := 0
		if arg.Required {
			min = 1
		}
		return &cli.StringArgs{
			Name: name,
			Min:  min,
			Max:  -1,
		}
	}
	return &cli.StringArg{Name: name}
}

// positionalArgs collects the values of the declared arguments in order.
// Commands without declared arguments get the raw positional args.
func positionalArgs(cmdSpec spec.Command, cmd *cli.Command) []string {
	out := []string{}
	if cmd == nil {
		return out
	}
	if len(cmdSpec.Args) == 0 {
		if parsed := cmd.Args(); parsed != nil {
			out = append(out, parsed.Slice()...)
		}
		return out
	}
	for _, arg := range cmdSpec.Args {
		name := strings.TrimSpace(arg.Name)
		if arg.Variadic {
			out = append(out, cmd.StringArgs(name)...)
			continue
		}
		if value := cmd.StringArg(name); value != "" {
			out = append(out, value)
		}
	}
	return out
}
