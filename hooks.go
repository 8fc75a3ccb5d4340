package vinoteca

import (
	"sync"

	"github.com/agentstation/vinoteca/pkg/catalogs"
)

// Hook function types for reload events
type (
	// ReloadedHook is called after a new snapshot has been published
	ReloadedHook func(old, new *catalogs.Catalog)

	// ReloadFailedHook is called when a reload fails; the old snapshot is still served
	ReloadFailedHook func(err error)
)

// hooks manages event callbacks for catalog reloads
type hooks struct {
	mu             sync.RWMutex
	onReloaded     []ReloadedHook
	onReloadFailed []ReloadFailedHook
}

func newHooks() *hooks {
	return &hooks{}
}

// OnReloaded registers a callback for successful reloads
func (h *hooks) OnReloaded(fn ReloadedHook) {
	if fn == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onReloaded = append(h.onReloaded, fn)
}

// OnReloadFailed registers a callback for failed reloads
func (h *hooks) OnReloadFailed(fn ReloadFailedHook) {
	if fn == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onReloadFailed = append(h.onReloadFailed, fn)
}

func (h *hooks) triggerReloaded(old, new *catalogs.Catalog) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onReloaded {
		hook(old, new)
	}
}

func (h *hooks) triggerReloadFailed(err error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onReloadFailed {
		hook(err)
	}
}
