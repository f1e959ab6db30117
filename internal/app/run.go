package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/vk/uibridge/internal/ctxlog"
	"github.com/vk/uibridge/internal/push"
	"github.com/vk/uibridge/internal/server"
	"github.com/vk/uibridge/internal/telemetry"
)

// Run starts the embedded HTTP server (with the push endpoint mounted) and
// blocks until the context is cancelled or the listener fails.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	tracer, err := telemetry.Setup(ctx)
	if err != nil {
		return fmt.Errorf("failed to set up telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracer.Shutdown(shutdownCtx); err != nil {
			a.logger.Warn("Tracer shutdown failed.", "error", err)
		}
	}()

	pushSrv := push.NewServer(ctx, a.model.Server.PushPath, func(sessionID string) bool {
		_, ok := a.sessions.Get(sessionID)
		return ok
	})
	defer pushSrv.Close()
	a.broker.Attach(pushSrv)

	dispatch := server.New(a.logger, a.sessions, tracer)
	dispatch.MountPush(a.model.Server.PushPath, pushSrv.Handler())

	go a.sessions.Run(ctx)

	httpSrv := &http.Server{
		Addr:    a.model.Server.ListenAddr,
		Handler: dispatch.Handler(),
	}

	go func() {
		<-ctx.Done()
		a.logger.Info("Shutting down HTTP server.")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			a.logger.Warn("HTTP server shutdown failed.", "error", err)
		}
	}()

	a.logger.Info("HTTP server starting.",
		"address", a.model.Server.ListenAddr,
		"push_path", a.model.Server.PushPath,
		"uis", len(a.model.UIs),
	)
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server failed: %w", err)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
