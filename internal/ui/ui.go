// Package ui defines the contract between the bridge and the server-rendered
// view components it dispatches to. It deliberately knows nothing about
// sessions, registries, or transports.
package ui

import (
	"context"
	"net/http"
)

// UI is a server-rendered view component, selected per request path. One
// instance is created per session and view number, then reused for
// subsequent requests to the same path within that session.
type UI interface {
	// Init is called exactly once, right after the factory constructs the
	// instance. The creation context carries the current scope identifier.
	Init(ctx context.Context, event *CreateEvent) error

	// Render writes the component's response for a single request.
	Render(ctx context.Context, w http.ResponseWriter, r *http.Request) error
}

// CreateEvent describes a single UI instantiation. It is handed to the
// factory and to Init.
type CreateEvent struct {
	// Name is the UI's registered name from the deployment descriptor.
	Name string

	// Path is the normalized descriptor path the UI is bound to.
	Path string

	// Title from the descriptor, may be empty.
	Title string

	// UIID is the per-session UI number, assigned at creation.
	UIID int

	// SessionID identifies the owning session.
	SessionID string

	// Params holds the decoded descriptor params struct for this UI, or nil
	// when the factory declares none.
	Params any
}
