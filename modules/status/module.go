// Package status provides a built-in UI showing the live state of the
// bridge: session count, scoped value count, and this view's own visit
// counter. The counter lives in the UI scope and each render is published
// on the push channel, which makes this module a working reference for
// both mechanisms.
package status

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/vk/uibridge/internal/push"
	"github.com/vk/uibridge/internal/registry"
	"github.com/vk/uibridge/internal/scope"
	"github.com/vk/uibridge/internal/ui"
)

// Stats is the slice of the session manager the status UI reads.
type Stats interface {
	Count() int
}

// Module implements the registry.Module interface for this package.
type Module struct {
	stats  Stats
	store  *scope.Store
	broker *push.Broker
	start  time.Time
}

// New creates the status module over the application's live components.
func New(stats Stats, store *scope.Store, broker *push.Broker) *Module {
	return &Module{
		stats:  stats,
		store:  store,
		broker: broker,
		start:  time.Now(),
	}
}

// UI is the status view instance.
type UI struct {
	mod    *Module
	id     scope.Identifier
	title  string
	visits *atomic.Int64
}

// Init resolves this instance's visit counter from the UI scope. The scope
// identifier is only available on the creation context, so the counter is
// captured here and reused on every render.
func (u *UI) Init(ctx context.Context, event *ui.CreateEvent) error {
	u.title = event.Title
	id, ok := scope.FromContext(ctx)
	if !ok {
		return fmt.Errorf("status UI initialized outside a UI creation chain")
	}
	u.id = id

	v, err := u.mod.store.Get(ctx, "status.visits", func() (any, error) {
		return new(atomic.Int64), nil
	})
	if err != nil {
		return err
	}
	u.visits = v.(*atomic.Int64)
	return nil
}

// Render writes the status page and publishes the refreshed numbers to any
// attached push client.
func (u *UI) Render(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	visits := u.visits.Add(1)
	sessions := u.mod.stats.Count()
	scoped := u.mod.store.Len()
	uptime := time.Since(u.mod.start).Round(time.Second)

	u.mod.broker.Publish(ctx, u.id, "status", map[string]any{
		"visits":   visits,
		"sessions": sessions,
		"scoped":   scoped,
		"uptime":   uptime.String(),
	})

	title := u.title
	if title == "" {
		title = "Status"
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err := fmt.Fprintf(w,
		"<!doctype html><html><head><title>%s</title></head><body>"+
			"<h1>%s</h1><ul>"+
			"<li>uptime: %s</li>"+
			"<li>sessions: %d</li>"+
			"<li>scoped values: %d</li>"+
			"<li>visits (this view): %d</li>"+
			"</ul></body></html>\n",
		html.EscapeString(title), html.EscapeString(title),
		uptime, sessions, scoped, visits,
	)
	return err
}

// Register registers the status UI factory.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterUI("status", &registry.RegisteredUI{
		New: func(ctx context.Context, event *ui.CreateEvent) (ui.UI, error) {
			return &UI{mod: m}, nil
		},
	})
}
