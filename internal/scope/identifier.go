// Package scope implements the UI scope: a correlation identifier passed
// explicitly through context.Context during UI construction, and a store
// that caches named values per identifier.
//
// The identifier is only ever installed on the child context that wraps a
// single factory call, so it cannot leak across requests or goroutines.
package scope

import (
	"context"
	"fmt"
)

// Identifier is the opaque correlation token for one UI instance. It is
// derived from a creation event and used as the key for UI-scoped values.
type Identifier struct {
	SessionID string
	UIID      int
}

// Valid reports whether the identifier refers to a real creation event.
func (id Identifier) Valid() bool {
	return id.SessionID != ""
}

// String renders the identifier for logs and push channel rooms.
func (id Identifier) String() string {
	return fmt.Sprintf("%s/%d", id.SessionID, id.UIID)
}

// key is an unexported type to prevent collisions with context keys from other packages.
type key struct{}

var identifierKey = key{}

// WithIdentifier returns a child context carrying the current UI identifier.
func WithIdentifier(ctx context.Context, id Identifier) context.Context {
	return context.WithValue(ctx, identifierKey, id)
}

// FromContext extracts the current UI identifier from a context. The second
// return value is false outside of a UI construction call chain.
func FromContext(ctx context.Context) (Identifier, bool) {
	id, ok := ctx.Value(identifierKey).(Identifier)
	return id, ok && id.Valid()
}
