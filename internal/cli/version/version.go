package version

import (
	"fmt"
	"runtime"

	"github.com/regenrek/debugkit/internal/cli/output"
	"github.com/regenrek/debugkit/internal/cli/root"
	"github.com/regenrek/debugkit/internal/identity"
	"github.com/regenrek/debugkit/internal/signame"
)

// Register registers version handler.
func Register(reg *root.Registry) {
	reg.Register("version", runVersion)
}

func runVersion(ctx root.CommandContext) error {
	name := identity.NormalizeCLIName(ctx.Deps.AppName)
	if ctx.JSON {
		_, tableErr := signame.Table()
		return ctx.WriteJSON("version", output.VersionInfo{
			Name:             name,
			Version:          ctx.Deps.Version,
			GOOS:             runtime.GOOS,
			GOARCH:           runtime.GOARCH,
			SignalsSupported: tableErr == nil,
		})
	}
	_, err := fmt.Fprintf(ctx.Out, "%s %s\n", name, ctx.Deps.Version)
	return err
}
