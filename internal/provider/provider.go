package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/uibridge/internal/config"
	"github.com/vk/uibridge/internal/ctxlog"
	"github.com/vk/uibridge/internal/registry"
	"github.com/vk/uibridge/internal/scope"
	"github.com/vk/uibridge/internal/ui"
)

// Provider resolves request paths to UI names and creates UI instances.
type Provider struct {
	reg       *registry.Registry
	model     *config.Model
	converter config.Converter

	// paths maps normalized descriptor paths to UI names. Populated once at
	// build time, read-only afterwards.
	paths map[string]string
}

// New builds a provider from the validated descriptor model. Two UIs bound
// to the same normalized path is a fatal configuration error: the build
// fails and the session being initialized is aborted.
func New(ctx context.Context, reg *registry.Registry, model *config.Model, converter config.Converter) (*Provider, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Building UI provider from descriptor.", "ui_count", len(model.UIs))

	paths := make(map[string]string, len(model.UIs))
	for name, def := range model.UIs {
		normalized := NormalizePath(def.Path)
		if existing, exists := paths[normalized]; exists {
			return nil, fmt.Errorf("ui %q: path %q is already mapped to ui %q", name, normalized, existing)
		}
		logger.Debug("Mapping UI to path.", "ui", name, "path", normalized)
		paths[normalized] = name
	}

	if len(paths) == 0 {
		logger.Warn("Descriptor declares no UIs; all paths will resolve to not-found.")
	}

	return &Provider{
		reg:       reg,
		model:     model,
		converter: converter,
		paths:     paths,
	}, nil
}

// Resolve normalizes the request path and returns the bound UI name. The
// second return value is false when no UI is bound to the path; the caller
// treats that as a 404.
func (p *Provider) Resolve(path string) (string, bool) {
	name, ok := p.paths[NormalizePath(path)]
	return name, ok
}

// Definition returns the descriptor definition for a resolved UI name.
func (p *Provider) Definition(name string) (*config.UIDefinition, bool) {
	def, ok := p.model.UIs[name]
	return def, ok
}

// NormalizePath reduces a request path to its canonical registry form:
// any "!"-delimited fragment suffix is stripped, trailing slashes are
// trimmed, and the root path is "/".
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '!'); idx >= 0 {
		path = path[:idx]
	}
	for len(path) > 1 && strings.HasSuffix(path, "/") {
		path = path[:len(path)-1]
	}
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

// CreateUI constructs and initializes one UI instance. The scope identifier
// derived from the event is installed only on the child context that wraps
// the factory and Init calls; the caller's context is never touched, so the
// identifier cannot outlive the creation call chain.
func (p *Provider) CreateUI(ctx context.Context, event *ui.CreateEvent) (ui.UI, error) {
	logger := ctxlog.FromContext(ctx)

	def, ok := p.model.UIs[event.Name]
	if !ok {
		return nil, fmt.Errorf("ui %q is not declared in the descriptor", event.Name)
	}
	factory, ok := p.reg.UI(event.Name)
	if !ok {
		return nil, fmt.Errorf("ui %q has no registered factory", event.Name)
	}

	event.Path = NormalizePath(def.Path)
	if event.Title == "" {
		event.Title = def.Title
	}

	if factory.NewParams != nil {
		params := factory.NewParams()
		if err := p.converter.DecodeParams(ctx, params, def.Params); err != nil {
			return nil, fmt.Errorf("ui %q: %w", event.Name, err)
		}
		event.Params = params
	} else if len(def.Params) > 0 {
		return nil, fmt.Errorf("ui %q: descriptor declares params but the factory accepts none", event.Name)
	}

	id := scope.Identifier{SessionID: event.SessionID, UIID: event.UIID}
	createCtx := scope.WithIdentifier(ctx, id)

	logger.Debug("Creating UI instance.", "ui", event.Name, "identifier", id.String())
	instance, err := factory.New(createCtx, event)
	if err != nil {
		return nil, fmt.Errorf("ui %q: factory failed: %w", event.Name, err)
	}
	if err := instance.Init(createCtx, event); err != nil {
		return nil, fmt.Errorf("ui %q: init failed: %w", event.Name, err)
	}
	return instance, nil
}
