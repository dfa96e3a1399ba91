package root

import (
	"errors"
	"fmt"

	"github.com/regenrek/debugkit/internal/debuggee"
	"github.com/regenrek/debugkit/internal/launch"
	"github.com/regenrek/debugkit/internal/signame"
)

type missingHandlerError string

func (e missingHandlerError) Error() string {
	return fmt.Sprintf("missing CLI handler for %s", string(e))
}

// errorCode maps a handler error to the code reported in JSON error
// envelopes, with details for errors that carry structured data.
func errorCode(err error) (string, map[string]any) {
	var unknown *signame.UnknownSignalError
	if errors.As(err, &unknown) {
		details := map[string]any{"input": unknown.Input}
		if len(unknown.Suggestions) > 0 {
			details["suggestions"] = unknown.Suggestions
		}
		return "unknown_signal", details
	}
	var unsupported *signame.UnsupportedPlatformError
	if errors.As(err, &unsupported) {
		return "unsupported_platform", map[string]any{"platform": unsupported.Platform}
	}
	switch {
	case errors.Is(err, launch.ErrNotFound):
		return "launch_not_found", nil
	case errors.Is(err, launch.ErrUnknownName):
		return "unknown_configuration", nil
	case errors.Is(err, launch.ErrNoConfigurations),
		errors.Is(err, launch.ErrNoCommand),
		errors.Is(err, launch.ErrBothCommands),
		errors.Is(err, debuggee.ErrNoProgram):
		return "invalid_launch", nil
	}
	return "command_failed", nil
}
