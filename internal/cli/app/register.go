package app

import (
	"github.com/regenrek/debugkit/internal/cli/catalog"
	"github.com/regenrek/debugkit/internal/cli/root"
)

func registerAll(reg *root.Registry) {
	if reg == nil {
		return
	}
	catalog.RegisterAll(reg)
}
