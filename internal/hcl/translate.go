package hcl

import (
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/uibridge/internal/config"
	"github.com/vk/uibridge/internal/schema"
)

// translateServer applies a descriptor `server` block on top of the default
// server settings.
func (l *Loader) translateServer(s *schema.ServerDefinition, out *config.ServerDefinition) error {
	if s.ListenAddr != "" {
		out.ListenAddr = s.ListenAddr
	}
	if s.SessionCookie != "" {
		out.SessionCookie = s.SessionCookie
	}
	if s.PushPath != "" {
		if !strings.HasPrefix(s.PushPath, "/") {
			return fmt.Errorf("push_path must start with '/', got %q", s.PushPath)
		}
		out.PushPath = s.PushPath
	}
	if s.SessionIdle != "" {
		idle, err := time.ParseDuration(s.SessionIdle)
		if err != nil {
			return fmt.Errorf("invalid session_idle %q: %w", s.SessionIdle, err)
		}
		if idle <= 0 {
			return fmt.Errorf("session_idle must be positive, got %q", s.SessionIdle)
		}
		out.SessionIdle = idle
	}
	return nil
}

// translateUI converts the HCL-specific ui schema into the agnostic model.
func (l *Loader) translateUI(s *schema.UIDefinition) (*config.UIDefinition, error) {
	if !strings.HasPrefix(s.Path, "/") {
		return nil, fmt.Errorf("path must start with '/', got %q", s.Path)
	}
	return &config.UIDefinition{
		Name:   s.Name,
		Path:   s.Path,
		Title:  s.Title,
		Push:   s.Push,
		Params: l.extractBodyAttributes(s.Params),
	}, nil
}

// extractBodyAttributes keeps a params block's attributes as raw expressions
// so they can be decoded later against the owning factory's params struct.
func (l *Loader) extractBodyAttributes(block *schema.ParamsBlock) map[string]hcl.Expression {
	if block == nil || block.Body == nil {
		return nil
	}
	attrs, _ := block.Body.JustAttributes()
	if len(attrs) == 0 {
		return nil
	}
	exprs := make(map[string]hcl.Expression, len(attrs))
	for name, attr := range attrs {
		exprs[name] = attr.Expr
	}
	return exprs
}
