// Package push carries server-initiated updates to attached browser
// sessions over a socket.io channel. UIs publish through the Broker; the
// transport joins each attached client to a room named after its scope
// identifier.
package push

import (
	"context"
	"sync"

	"github.com/vk/uibridge/internal/ctxlog"
	"github.com/vk/uibridge/internal/scope"
)

// Emitter is the narrow transport surface the broker publishes through.
// The socket.io server implements it; tests use fakes.
type Emitter interface {
	EmitTo(room string, event string, payload any)
}

// Broker fans server-side UI updates out to attached push clients. A broker
// with no transport attached drops publishes silently, so UIs can publish
// unconditionally whether or not push is enabled.
type Broker struct {
	mu      sync.RWMutex
	emitter Emitter
}

// NewBroker creates a broker with no transport attached.
func NewBroker() *Broker {
	return &Broker{}
}

// Attach installs the transport the broker publishes through.
func (b *Broker) Attach(e Emitter) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.emitter = e
}

// Publish emits an event to every client attached to the given identifier.
func (b *Broker) Publish(ctx context.Context, id scope.Identifier, event string, payload any) {
	b.mu.RLock()
	emitter := b.emitter
	b.mu.RUnlock()

	logger := ctxlog.FromContext(ctx)
	if emitter == nil {
		logger.Debug("Push publish dropped, no transport attached.", "identifier", id.String(), "event", event)
		return
	}

	logger.Debug("Publishing push event.", "identifier", id.String(), "event", event)
	emitter.EmitTo(id.String(), event, payload)
}

// PublishCurrent publishes to the context's current UI. It is a convenience
// for code running inside a UI construction chain.
func (b *Broker) PublishCurrent(ctx context.Context, event string, payload any) bool {
	id, ok := scope.FromContext(ctx)
	if !ok {
		return false
	}
	b.Publish(ctx, id, event, payload)
	return true
}
