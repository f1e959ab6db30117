package config

import (
	"context"

	"github.com/hashicorp/hcl/v2"
)

// Loader is the interface for a format-specific descriptor loader.
type Loader interface {
	// Load reads descriptor files from the given paths, translates them into
	// the format-agnostic model, and returns a matching Converter.
	Load(ctx context.Context, paths ...string) (*Model, Converter, error)
}

// Converter is the interface for format-specific data binding. It bridges
// the raw descriptor params and the Go structs declared by UI factories.
type Converter interface {
	// DecodeParams evaluates the raw param expressions and populates the
	// provided Go struct, matching fields by their `param` tag.
	DecodeParams(ctx context.Context, target any, params map[string]hcl.Expression) error
}
