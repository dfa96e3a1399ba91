package catalog

import (
	"github.com/regenrek/debugkit/internal/cli/args"
	"github.com/regenrek/debugkit/internal/cli/initcfg"
	"github.com/regenrek/debugkit/internal/cli/launches"
	"github.com/regenrek/debugkit/internal/cli/root"
	"github.com/regenrek/debugkit/internal/cli/run"
	"github.com/regenrek/debugkit/internal/cli/signal"
	"github.com/regenrek/debugkit/internal/cli/version"
)

// RegisterAll registers all CLI commands.
func RegisterAll(reg *root.Registry) {
	if reg == nil {
		return
	}
	args.Register(reg)
	signal.Register(reg)
	launches.Register(reg)
	run.Register(reg)
	initcfg.Register(reg)
	version.Register(reg)
}
