package app

import (
	"github.com/regenrek/debugkit/internal/cli/root"
	"github.com/regenrek/debugkit/internal/cli/spec"
)

// NewRunner builds the CLI runner from the embedded command spec.
func NewRunner(deps root.Dependencies) (*root.Runner, error) {
	specDoc, err := spec.LoadDefault()
	if err != nil {
		return nil, err
	}
	return NewRunnerFromSpec(specDoc, deps)
}

// NewRunnerFromSpec builds the CLI runner for an already loaded spec.
func NewRunnerFromSpec(specDoc *spec.Spec, deps root.Dependencies) (*root.Runner, error) {
	reg := root.NewRegistry()
	registerAll(reg)
	return root.NewRunner(specDoc, deps, reg)
}
