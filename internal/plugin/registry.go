package plugin

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"git.home.luguber.info/inful/docsite-commonmark/internal/config"
	"git.home.luguber.info/inful/docsite-commonmark/internal/foundation/errors"
)

// Registry manages plugin registration and discovery.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]map[string]Plugin // map[name]map[version]Plugin
	latest  map[string]string            // most recently registered version per name
}

// NewRegistry creates a new empty plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		plugins: make(map[string]map[string]Plugin),
		latest:  make(map[string]string),
	}
}

// Register adds a plugin to the registry.
// Returns an error if a plugin with the same name and version already exists.
func (r *Registry) Register(plugin Plugin) error {
	if plugin == nil {
		return fmt.Errorf("cannot register nil plugin")
	}

	metadata := plugin.Metadata()
	if err := metadata.Validate(); err != nil {
		return fmt.Errorf("invalid plugin metadata: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.plugins[metadata.Name] == nil {
		r.plugins[metadata.Name] = make(map[string]Plugin)
	}
	if _, exists := r.plugins[metadata.Name][metadata.Version]; exists {
		return fmt.Errorf("plugin %s@%s already registered", metadata.Name, metadata.Version)
	}

	r.plugins[metadata.Name][metadata.Version] = plugin
	r.latest[metadata.Name] = metadata.Version
	return nil
}

// GetLatest retrieves the most recently registered version of a plugin.
func (r *Registry) GetLatest(name string) (Plugin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	version, ok := r.latest[name]
	if !ok {
		return nil, fmt.Errorf("plugin %s not found", name)
	}
	return r.plugins[name][version], nil
}

// List returns all registered plugins ordered by name and version.
func (r *Registry) List() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []Plugin
	for _, versions := range r.plugins {
		for _, plugin := range versions {
			result = append(result, plugin)
		}
	}
	slices.SortFunc(result, func(a, b Plugin) int {
		return strings.Compare(a.Metadata().String(), b.Metadata().String())
	})
	return result
}

// ListByType returns all plugins of a specific type.
func (r *Registry) ListByType(pluginType PluginType) []Plugin {
	var result []Plugin
	for _, plugin := range r.List() {
		if plugin.Metadata().Type == pluginType {
			result = append(result, plugin)
		}
	}
	return result
}

// Enabled is a plugin selected by the site config, with its options.
type Enabled struct {
	Plugin  Plugin
	Options map[string]any
}

// Name returns the plugin's registered name.
func (e Enabled) Name() string {
	return e.Plugin.Metadata().Name
}

// Resolve maps the config's plugins list onto registered plugins, in order,
// validating each plugin's options. Unknown names are config errors.
func (r *Registry) Resolve(entries config.NamedEntries) ([]Enabled, error) {
	enabled := make([]Enabled, 0, len(entries))
	for _, entry := range entries {
		p, err := r.GetLatest(entry.Name)
		if err != nil {
			return nil, errors.ConfigError("unknown plugin").
				WithContext("plugin", entry.Name).
				WithCause(err).
				Build()
		}
		if err := p.Validate(entry.Options); err != nil {
			return nil, errors.WrapError(err, errors.CategoryConfig, "invalid plugin options").
				WithContext("plugin", entry.Name).
				Build()
		}
		enabled = append(enabled, Enabled{Plugin: p, Options: entry.Options})
	}
	return enabled, nil
}

// globalRegistry is the default plugin registry used throughout the application.
var globalRegistry = NewRegistry()

// DefaultRegistry returns the global plugin registry.
func DefaultRegistry() *Registry {
	return globalRegistry
}
