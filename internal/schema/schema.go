// Package schema holds the HCL-tagged structs the deployment descriptor is
// decoded into. The hcl package translates these into the format-agnostic
// config model.
package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// ParamsBlock represents the content of a UI's `params` block. Attributes
// are kept as raw expressions until the owning factory's params struct is
// known.
type ParamsBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// UIDefinition represents a `ui` block: one path binding for a registered
// UI factory.
type UIDefinition struct {
	Name   string       `hcl:"name,label"`
	Path   string       `hcl:"path"`
	Title  string       `hcl:"title,optional"`
	Push   bool         `hcl:"push,optional"`
	Params *ParamsBlock `hcl:"params,block"`
}

// ServerDefinition represents the optional `server` block with the embedded
// HTTP server settings.
type ServerDefinition struct {
	ListenAddr    string `hcl:"listen_addr,optional"`
	SessionCookie string `hcl:"session_cookie,optional"`
	SessionIdle   string `hcl:"session_idle,optional"`
	PushPath      string `hcl:"push_path,optional"`
}

// Descriptor represents the top-level structure of a deployment descriptor
// file.
type Descriptor struct {
	Server *ServerDefinition `hcl:"server,block"`
	UIs    []*UIDefinition   `hcl:"ui,block"`
	Body   hcl.Body          `hcl:",remain"`
}
