package root

import (
	"context"
	"io"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/regenrek/debugkit/internal/cli/output"
	"github.com/regenrek/debugkit/internal/cli/spec"
)

// CommandContext is what a handler sees of one command invocation.
type CommandContext struct {
	Context context.Context
	Args    []string
	Spec    spec.Command
	Cmd     *cli.Command
	Deps    Dependencies
	JSON    bool
	Out     io.Writer
	ErrOut  io.Writer
	Stdin   io.Reader
	WorkDir string
	// Started is when validation finished and the handler was called.
	Started time.Time
}

// WriteJSON writes data to Out as the success envelope of command.
func (c CommandContext) WriteJSON(command string, data any) error {
	meta := output.NewMeta(command, c.Deps.Version)
	if !c.Started.IsZero() {
		meta = output.WithDuration(meta, c.Started)
	}
	return output.WriteSuccess(c.Out, meta, data)
}
