package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/uibridge/internal/config"
	"github.com/vk/uibridge/internal/ctxlog"
)

// Validate performs a parity check between the deployment descriptor and the
// registered Go factories. Every descriptor `ui` block must name a
// registered factory; factories that no descriptor references are allowed
// but logged, since they are unreachable.
func (r *Registry) Validate(ctx context.Context, model *config.Model) error {
	logger := ctxlog.FromContext(ctx)
	var errs []string

	for name := range model.UIs {
		if _, ok := r.UIRegistry[name]; !ok {
			errs = append(errs, fmt.Sprintf("ui '%s': descriptor declares it, but no Go factory is registered under that name", name))
		}
	}

	for name := range r.UIRegistry {
		if _, ok := model.UIs[name]; !ok {
			logger.Warn("UI factory is registered but not declared in any descriptor; it will never be served.", "name", name)
		}
	}

	if len(model.UIs) == 0 {
		logger.Warn("Found no UIs in the deployment descriptor; every request path will resolve to not-found.")
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
