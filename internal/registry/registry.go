package registry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vk/uibridge/internal/ui"
)

// Module is the interface all UI modules must implement to be registered.
// The module list assembled at startup is the explicit registration list:
// there is no scanning or reflection-based discovery.
type Module interface {
	Register(r *Registry)
}

// RegisteredUI holds the compiled Go parts of a UI declared in the descriptor.
type RegisteredUI struct {
	// New constructs one UI instance. The context carries the current scope
	// identifier for the duration of the call.
	New func(ctx context.Context, event *ui.CreateEvent) (ui.UI, error)

	// NewParams returns a fresh params struct to decode the descriptor's
	// `params` block into, or nil when the UI takes no params.
	NewParams func() any
}

// Registry holds all registered UI factories for a single application instance.
type Registry struct {
	UIRegistry map[string]*RegisteredUI
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		UIRegistry: make(map[string]*RegisteredUI),
	}
}

// RegisterUI registers a Go factory for a UI name. Registering the same name
// twice is a programmer error and panics at startup.
func (r *Registry) RegisterUI(name string, factory *RegisteredUI) {
	if _, exists := r.UIRegistry[name]; exists {
		panic(fmt.Sprintf("UI factory with name '%s' already registered", name))
	}
	if factory == nil || factory.New == nil {
		panic(fmt.Sprintf("UI factory '%s' must provide a New function", name))
	}
	slog.Debug("Registering UI factory.", "name", name)
	r.UIRegistry[name] = factory
}

// UI looks up a registered factory by name.
func (r *Registry) UI(name string) (*RegisteredUI, bool) {
	factory, ok := r.UIRegistry[name]
	return factory, ok
}
