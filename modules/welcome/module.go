// Package welcome provides a minimal built-in UI. It mostly exists so a
// fresh deployment renders something, and it exercises descriptor params
// decoding end to end.
package welcome

import (
	"context"
	"fmt"
	"html"
	"net/http"

	"github.com/vk/uibridge/internal/registry"
	"github.com/vk/uibridge/internal/ui"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Params defines the descriptor params accepted by the welcome UI.
type Params struct {
	Greeting string `param:"greeting"`
	Footer   string `param:"footer"`
}

// UI is the welcome view instance.
type UI struct {
	title    string
	greeting string
	footer   string
}

// Init captures the creation event and decoded params.
func (u *UI) Init(ctx context.Context, event *ui.CreateEvent) error {
	u.title = event.Title
	u.greeting = "Welcome"
	if p, ok := event.Params.(*Params); ok {
		if p.Greeting != "" {
			u.greeting = p.Greeting
		}
		u.footer = p.Footer
	}
	return nil
}

// Render writes the welcome page.
func (u *UI) Render(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	title := u.title
	if title == "" {
		title = "uibridge"
	}
	_, err := fmt.Fprintf(w,
		"<!doctype html><html><head><title>%s</title></head><body><h1>%s</h1><p>%s</p></body></html>\n",
		html.EscapeString(title),
		html.EscapeString(u.greeting),
		html.EscapeString(u.footer),
	)
	return err
}

// Register registers the welcome UI factory.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterUI("welcome", &registry.RegisteredUI{
		New: func(ctx context.Context, event *ui.CreateEvent) (ui.UI, error) {
			return &UI{}, nil
		},
		NewParams: func() any { return new(Params) },
	})
}
