// control/control.go
// Author: momentics <momentics@gmail.com>
//
// Runtime control plane for hioload-vram devices: dynamic config store with
// hot-reload propagation, debug probe registry, and stats aggregation.
// Bank capacities are fixed at device construction; only the reloadable
// subset of keys may change at runtime.

package control

import (
	"sync"

	"github.com/momentics/hioload-vram/api"
)

// Controller implements api.Control for one device.
type Controller struct {
	mu        sync.RWMutex
	config    map[string]any
	listeners []func()
	probes    map[string]func() any
}

// NewController initializes an empty control plane.
func NewController() *Controller {
	return &Controller{
		config: make(map[string]any),
		probes: make(map[string]func() any),
	}
}

// GetConfig returns a copy of all config values.
func (c *Controller) GetConfig() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]any, len(c.config))
	for k, v := range c.config {
		out[k] = v
	}
	return out
}

// SetConfig merges new values and dispatches reload listeners.
func (c *Controller) SetConfig(newCfg map[string]any) error {
	c.mu.Lock()
	for k, v := range newCfg {
		c.config[k] = v
	}
	listeners := append([]func(){}, c.listeners...)
	c.mu.Unlock()
	for _, fn := range listeners {
		fn()
	}
	return nil
}

// OnReload registers a listener hook called on config changes.
func (c *Controller) OnReload(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// RegisterDebugProbe inserts a named debug hook.
func (c *Controller) RegisterDebugProbe(name string, fn func() any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.probes[name] = fn
}

// Stats returns the output of all registered probes.
func (c *Controller) Stats() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]any, len(c.probes))
	for k, fn := range c.probes {
		out[k] = fn()
	}
	return out
}

var _ api.Control = (*Controller)(nil)
