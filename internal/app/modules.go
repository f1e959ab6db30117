package app

import (
	"github.com/vk/uibridge/internal/registry"
	"github.com/vk/uibridge/modules/status"
	"github.com/vk/uibridge/modules/welcome"
)

// coreModules is the definitive list of UI modules compiled into the
// uibridged binary. Deployments that embed the app can pass their own list
// to New instead.
func (a *App) coreModules() []registry.Module {
	return []registry.Module{
		&welcome.Module{},
		status.New(a.sessions, a.store, a.broker),
	}
}
