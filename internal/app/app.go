package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/uibridge/internal/config"
	"github.com/vk/uibridge/internal/ctxlog"
	"github.com/vk/uibridge/internal/provider"
	"github.com/vk/uibridge/internal/push"
	"github.com/vk/uibridge/internal/registry"
	"github.com/vk/uibridge/internal/scope"
	"github.com/vk/uibridge/internal/session"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	registry  *registry.Registry
	model     *config.Model
	converter config.Converter

	store    *scope.Store
	sessions *session.Manager
	broker   *push.Broker
}

// New is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
// Startup configuration errors are programmer/deployment errors and panic;
// main recovers them into a clean exit message.
func New(outW io.Writer, appConfig *Config, loader config.Loader, modules ...registry.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	// Load the deployment descriptor into the format-agnostic model first.
	model, converter, err := loader.Load(ctx, appConfig.DescriptorPath)
	if err != nil {
		panic(fmt.Errorf("failed to load deployment descriptor: %w", err))
	}
	logger.Debug("Descriptor loaded and translated into unified model.")

	if appConfig.ListenAddr != "" {
		model.Server.ListenAddr = appConfig.ListenAddr
	}

	a := &App{
		outW:      outW,
		logger:    logger,
		model:     model,
		converter: converter,
		store:     scope.NewStore(),
		broker:    push.NewBroker(),
	}
	a.sessions = session.NewManager(model.Server.SessionCookie, model.Server.SessionIdle, a.store)

	// Create and populate the registry with Go UI factories. The module list
	// is the explicit registration list; there is no scanning.
	reg := registry.New()
	if len(modules) == 0 {
		modules = a.coreModules()
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All UI modules registered.", "count", len(modules))

	// Validate descriptor/factory parity before serving anything.
	if err := reg.Validate(ctx, model); err != nil {
		panic(err)
	}
	logger.Debug("Registry validation passed.")
	a.registry = reg

	// Every new session gets its own provider, built from the shared model.
	// A provider build failure (duplicate path) aborts that session's setup.
	a.sessions.OnInit(func(ctx context.Context, s *session.Session) error {
		p, err := provider.New(ctx, a.registry, a.model, a.converter)
		if err != nil {
			return err
		}
		s.SetProvider(p)
		return nil
	})

	return a
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Sessions returns the application's session manager. This is primarily for testing.
func (a *App) Sessions() *session.Manager {
	return a.sessions
}

// Model returns the loaded descriptor model. This is primarily for testing.
func (a *App) Model() *config.Model {
	return a.model
}

// Broker returns the push broker.
func (a *App) Broker() *push.Broker {
	return a.broker
}
