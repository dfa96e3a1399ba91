package root

import (
	"testing"

	"github.com/urfave/cli/v3"

	"github.com/regenrek/debugkit/internal/cli/spec"
)

func TestPositionalArgsUsesNamedArguments(t *testing.T) {
	cmdSpec := spec.Command{
		ID: "args",
		Args: []spec.Arg{{
			Name:     "line",
			Required: true,
			Variadic: true,
		}},
	}
	cmd := &cli.Command{
		Name: "args",
		Arguments: []cli.Argument{
			&cli.StringArgs{Name: "line", Min: 1, Max: -1},
		},
	}
	rargs := []string{"a b", "c"}
	for _, a := range cmd.Arguments {
		var err error
		rargs, err = a.Parse(rargs)
		if err != nil {
			t.Fatalf("arg parse: %v", err)
		}
	}
	got := positionalArgs(cmdSpec, cmd)
	if len(got) != 2 || got[0] != "a b" || got[1] != "c" {
		t.Fatalf("got=%v", got)
	}
}

func TestValidateArgsVariadicRequired(t *testing.T) {
	cmdSpec := spec.Command{
		ID: "args",
		Args: []spec.Arg{{
			Name:     "line",
			Required: true,
			Variadic: true,
		}},
	}
	cmd := &cli.Command{
		Name: "args",
		Arguments: []cli.Argument{
			&cli.StringArgs{Name: "line", Min: 1, Max: -1},
		},
	}
	if err := validateArgs(cmdSpec, cmd); err == nil {
		t.Fatalf("expected error")
	}
	rargs := []string{"x"}
	for _, a := range cmd.Arguments {
		var err error
		rargs, err = a.Parse(rargs)
		if err != nil {
			t.Fatalf("arg parse: %v", err)
		}
	}
	if err := validateArgs(cmdSpec, cmd); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPositionalArgsOptionalSingle(t *testing.T) {
	cmdSpec := spec.Command{ID: "launch.show", Args: []spec.Arg{{Name: "file"}}}
	cmd := &cli.Command{
		Name:      "show",
		Arguments: []cli.Argument{&cli.StringArg{Name: "file"}},
	}
	if got := positionalArgs(cmdSpec, cmd); len(got) != 0 {
		t.Fatalf("expected no args, got %v", got)
	}
	if _, err := cmd.Arguments[0].Parse([]string{"launch.yml"}); err != nil {
		t.Fatalf("arg parse: %v", err)
	}
	if got := positionalArgs(cmdSpec, cmd); len(got) != 1 || got[0] != "launch.yml" {
		t.Fatalf("got=%v", got)
	}
}
