package root

import (
	"fmt"
	"sort"
	"strings"

	"github.com/regenrek/debugkit/internal/cli/spec"
)

// Handler executes a command.
type Handler func(ctx CommandContext) error

// Registry maps command IDs to handlers.
type Registry struct {
	handlers map[string]Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register adds a handler for a command ID, replacing any earlier one.
func (r *Registry) Register(id string, handler Handler) {
	if r == nil || id == "" || handler == nil {
		return
	}
	r.handlers[id] = handler
}

// HandlerFor returns a handler for the command ID.
func (r *Registry) HandlerFor(id string) (Handler, bool) {
	if r == nil {
		return nil, false
	}
	h, ok := r.handlers[id]
	return h, ok
}

// IDs returns the registered command IDs in sorted order.
func (r *Registry) IDs() []string {
	if r == nil {
		return nil
	}
	ids := make([]string, 0, len(r.handlers))
	for id := range r.handlers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// EnsureHandlers verifies that every leaf command has a handler and that
// every handler belongs to a command.
func (r *Registry) EnsureHandlers(doc *spec.Spec) error {
	if r == nil || doc == nil {
		return nil
	}
	known := make(map[string]struct{})
	for _, cmd := range doc.AllCommands() {
		known[cmd.ID] = struct{}{}
		if len(cmd.Subcommands) > 0 {
			continue
		}
		if _, ok := r.handlers[cmd.ID]; !ok {
			return missingHandlerError(cmd.ID)
		}
	}
	var stale []string
	for _, id := range r.IDs() {
		if _, ok := known[id]; !ok {
			stale = append(stale, id)
		}
	}
	if len(stale) > 0 {
		return fmt.Errorf("CLI handlers without commands: %s", strings.Join(stale, ", "))
	}
	return nil
}
