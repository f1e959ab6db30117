package config

import (
	"time"

	"github.com/hashicorp/hcl/v2"
)

// Model is the unified, format-agnostic representation of the deployment
// descriptor: the embedded server settings and every declared UI.
type Model struct {
	Server *ServerDefinition
	UIs    map[string]*UIDefinition
}

// NewModel returns an empty model with server defaults applied.
func NewModel() *Model {
	return &Model{
		Server: DefaultServer(),
		UIs:    make(map[string]*UIDefinition),
	}
}

// ServerDefinition holds the embedded HTTP server settings from the
// descriptor's `server` block.
type ServerDefinition struct {
	ListenAddr    string
	SessionCookie string
	SessionIdle   time.Duration
	PushPath      string
}

// DefaultServer returns the settings used when the descriptor has no
// `server` block.
func DefaultServer() *ServerDefinition {
	return &ServerDefinition{
		ListenAddr:    ":8080",
		SessionCookie: "UIBRIDGE_SESSION",
		SessionIdle:   30 * time.Minute,
		PushPath:      "/socket.io/",
	}
}

// UIDefinition is the format-agnostic representation of a `ui` block: one
// path binding for a registered UI factory.
type UIDefinition struct {
	Name  string
	Path  string
	Title string
	Push  bool

	// Params holds the raw expressions of the `params` block. They are
	// decoded into the factory's params struct at provider build time.
	Params map[string]hcl.Expression
}
