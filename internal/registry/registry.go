// Package registry manages module lifecycle: registration, dependency
// ordering, initialization, event wiring and shutdown.
package registry

import (
	"context"
	"fmt"
	"sync"

	"github.com/Muhfaizr21/warungforzaSaas-sub001/pkg/plugin"
	"go.uber.org/zap"
)

// Registry manages the lifecycle of all registered modules.
type Registry struct {
	mu       sync.RWMutex
	plugins  map[string]plugin.Plugin
	infos    map[string]plugin.PluginInfo
	order    []string // topological order after Validate
	disabled map[string]bool
	logger   *zap.Logger
}

// New creates a new plugin registry.
func New(logger *zap.Logger) *Registry {
	return &Registry{
		plugins:  make(map[string]plugin.Plugin),
		infos:    make(map[string]plugin.PluginInfo),
		disabled: make(map[string]bool),
		logger:   logger,
	}
}

// Register adds a plugin to the registry. Must be called before Validate.
func (r *Registry) Register(p plugin.Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	info := p.Info()
	if info.Name == "" {
		return fmt.Errorf("plugin has empty name")
	}
	if _, exists := r.plugins[info.Name]; exists {
		return fmt.Errorf("plugin %q already registered", info.Name)
	}

	r.plugins[info.Name] = p
	r.infos[info.Name] = info
	r.logger.Info("plugin registered",
		zap.String("name", info.Name),
		zap.String("version", info.Version),
	)
	return nil
}

// Validate checks API versions and dependencies, disables optional modules
// that cannot run (cascading to their dependents) and computes start order.
func (r *Registry) Validate() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for name, info := range r.infos {
		if info.APIVersion < plugin.APIVersionMin || info.APIVersion > plugin.APIVersionCurrent {
			err := fmt.Errorf("plugin %q targets Plugin API v%d, supported range is v%d..v%d",
				name, info.APIVersion, plugin.APIVersionMin, plugin.APIVersionCurrent)
			if err := r.disable(name, err); err != nil {
				return err
			}
		}
	}

	for name, info := range r.infos {
		if r.disabled[name] {
			continue
		}
		for _, dep := range info.Dependencies {
			if _, ok := r.plugins[dep]; !ok {
				if err := r.disable(name, fmt.Errorf("plugin %q depends on %q which is not registered", name, dep)); err != nil {
					return err
				}
				break
			}
		}
	}

	// Cascade: anything depending on a disabled module is disabled too.
	for changed := true; changed; {
		changed = false
		for name, info := range r.infos {
			if r.disabled[name] {
				continue
			}
			for _, dep := range info.Dependencies {
				if !r.disabled[dep] {
					continue
				}
				if err := r.disable(name, fmt.Errorf("plugin %q depends on %q which is disabled", name, dep)); err != nil {
					return err
				}
				changed = true
				break
			}
		}
	}

	order, err := r.topologicalSort()
	if err != nil {
		return err
	}
	r.order = order

	r.logger.Info("plugin dependency resolution complete",
		zap.Strings("start_order", r.order),
		zap.Int("disabled", len(r.disabled)),
	)
	return nil
}

// disable marks an optional module disabled, or returns reason when the
// module is required. Caller holds r.mu.
func (r *Registry) disable(name string, reason error) error {
	if r.infos[name].Required {
		return reason
	}
	r.logger.Warn("disabling plugin", zap.String("name", name), zap.Error(reason))
	r.disabled[name] = true
	return nil
}

// InitAll initializes active modules in dependency order, runs config
// validation and wires declared event subscriptions onto the bus. The lock
// is not held across Init so modules can resolve their dependencies.
func (r *Registry) InitAll(ctx context.Context, depsFn func(name string) plugin.Dependencies) error {
	for _, name := range r.activeOrder() {
		r.mu.Lock()
		p := r.plugins[name]
		var err error
		for _, dep := range r.infos[name].Dependencies {
			if r.disabled[dep] {
				err = r.disable(name, fmt.Errorf("plugin %q depends on %q which failed to initialize", name, dep))
				break
			}
		}
		skip := r.disabled[name]
		r.mu.Unlock()
		if err != nil {
			return err
		}
		if skip {
			continue
		}
		deps := depsFn(name)

		r.logger.Info("initializing plugin", zap.String("name", name))
		err = guard(name, "Init", func() error { return p.Init(ctx, deps) })
		if err == nil {
			if v, ok := p.(plugin.Validator); ok {
				err = v.ValidateConfig()
			}
		}
		if err != nil {
			r.mu.Lock()
			derr := r.disable(name, err)
			r.mu.Unlock()
			if derr != nil {
				return fmt.Errorf("required plugin %q failed to initialize: %w", name, derr)
			}
			continue
		}

		if sub, ok := p.(plugin.EventSubscriber); ok && deps.Bus != nil {
			for _, s := range sub.Subscriptions() {
				deps.Bus.Subscribe(s.Topic, s.Handler)
				r.logger.Debug("event subscription wired",
					zap.String("plugin", name),
					zap.String("topic", s.Topic),
				)
			}
		}
	}
	return nil
}

// StartAll starts all initialized plugins in dependency order.
func (r *Registry) StartAll(ctx context.Context) error {
	for _, name := range r.activeOrder() {
		r.mu.RLock()
		p := r.plugins[name]
		r.mu.RUnlock()

		r.logger.Info("starting plugin", zap.String("name", name))
		if err := guard(name, "Start", func() error { return p.Start(ctx) }); err != nil {
			r.mu.Lock()
			derr := r.disable(name, err)
			r.mu.Unlock()
			if derr != nil {
				return fmt.Errorf("required plugin %q failed to start: %w", name, derr)
			}
		}
	}
	return nil
}

// activeOrder returns the start order minus disabled modules.
func (r *Registry) activeOrder() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.order))
	for _, name := range r.order {
		if !r.disabled[name] {
			out = append(out, name)
		}
	}
	return out
}

// StopAll stops active plugins in reverse dependency order. Errors and
// panics are logged; every module still gets its Stop call.
func (r *Registry) StopAll(ctx context.Context) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := len(r.order) - 1; i >= 0; i-- {
		name := r.order[i]
		if r.disabled[name] {
			continue
		}
		p := r.plugins[name]
		r.logger.Info("stopping plugin", zap.String("name", name))
		if err := guard(name, "Stop", func() error { return p.Stop(ctx) }); err != nil {
			r.logger.Error("failed to stop plugin", zap.String("name", name), zap.Error(err))
		}
	}
}

// guard converts a panic in a lifecycle call into an error.
func guard(name, phase string, fn func() error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("plugin %q panicked in %s: %v", name, phase, rec)
		}
	}()
	return fn()
}

// Get returns an active plugin by name.
func (r *Registry) Get(name string) (plugin.Plugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plugins[name]
	if ok && r.disabled[name] {
		return nil, false
	}
	return p, ok
}

// All returns all active (non-disabled) plugins in dependency order.
func (r *Registry) All() []plugin.Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]plugin.Plugin, 0, len(r.order))
	for _, name := range r.order {
		if !r.disabled[name] {
			result = append(result, r.plugins[name])
		}
	}
	return result
}

// AllRoutes returns HTTP routes from all active plugins implementing HTTPProvider.
func (r *Registry) AllRoutes() map[string][]plugin.Route {
	r.mu.RLock()
	defer r.mu.RUnlock()

	routes := make(map[string][]plugin.Route)
	for _, name := range r.order {
		if r.disabled[name] {
			continue
		}
		if hp, ok := r.plugins[name].(plugin.HTTPProvider); ok {
			if pr := hp.Routes(); len(pr) > 0 {
				routes[name] = pr
			}
		}
	}
	return routes
}

// Resolve returns a plugin by name (implements plugin.PluginResolver).
func (r *Registry) Resolve(name string) (plugin.Plugin, bool) {
	return r.Get(name)
}

// ResolveByRole returns all active plugins that declare the given role.
func (r *Registry) ResolveByRole(role string) []plugin.Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []plugin.Plugin
	for _, name := range r.order {
		if r.disabled[name] {
			continue
		}
		for _, pluginRole := range r.infos[name].Roles {
			if pluginRole == role {
				result = append(result, r.plugins[name])
				break
			}
		}
	}
	return result
}

// IsDisabled returns whether a plugin has been disabled.
func (r *Registry) IsDisabled(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.disabled[name]
}

// topologicalSort orders active plugins with Kahn's algorithm.
func (r *Registry) topologicalSort() ([]string, error) {
	inDegree := make(map[string]int)
	dependents := make(map[string][]string)

	for name := range r.plugins {
		if !r.disabled[name] {
			inDegree[name] = 0
		}
	}
	for name := range inDegree {
		for _, dep := range r.infos[name].Dependencies {
			if _, active := inDegree[dep]; active {
				inDegree[name]++
				dependents[dep] = append(dependents[dep], name)
			}
		}
	}

	var queue []string
	for name, degree := range inDegree {
		if degree == 0 {
			queue = append(queue, name)
		}
	}

	order := make([]string, 0, len(inDegree))
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		order = append(order, name)
		for _, d := range dependents[name] {
			inDegree[d]--
			if inDegree[d] == 0 {
				queue = append(queue, d)
			}
		}
	}

	if len(order) != len(inDegree) {
		var cycled []string
		for name, degree := range inDegree {
			if degree > 0 {
				cycled = append(cycled, name)
			}
		}
		return nil, fmt.Errorf("dependency cycle detected among plugins: %v", cycled)
	}
	return order, nil
}
