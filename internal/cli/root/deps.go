package root

import (
	"io"
	"os"

	"github.com/regenrek/debugkit/internal/identity"
)

// Dependencies provides external services for CLI handlers.
type Dependencies struct {
	Version string
	AppName string
	WorkDir string

	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
}

// DefaultDependencies returns dependencies wired to the process streams.
func DefaultDependencies(version string) Dependencies {
	return Dependencies{
		Version: version,
		AppName: identity.CLIName,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Stdin:   os.Stdin,
	}
}
