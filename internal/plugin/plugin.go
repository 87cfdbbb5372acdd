// Package plugin provides the site generator's plugin system. Plugins are
// registered by name, enabled through the config's plugins list and receive
// build lifecycle events.
package plugin

import (
	"fmt"
)

// Plugin represents a site plugin with metadata and option validation.
type Plugin interface {
	// Metadata returns the plugin's metadata (name, version, type).
	Metadata() PluginMetadata

	// Validate checks the options given to the plugin in the site config.
	Validate(options map[string]any) error
}

// BuildHooks is implemented by plugins that act around a site build.
//
// OnPreBuild runs before any file is discovered or rendered. OnPostBuild runs
// after the build finished, also when it failed, in reverse plugin order.
type BuildHooks interface {
	OnPreBuild(pctx *PluginContext) error
	OnPostBuild(pctx *PluginContext) error
}

// PluginMetadata describes a plugin's identity.
type PluginMetadata struct {
	// Name is the identifier used in the plugins list of the site config.
	Name string

	// Version is the semantic version (e.g., "v1.0.0").
	Version string

	Type PluginType

	Description string
}

// String returns a human-readable representation of the plugin metadata.
func (m PluginMetadata) String() string {
	return fmt.Sprintf("%s@%s (%s)", m.Name, m.Version, m.Type)
}

// Validate checks if the plugin metadata is valid.
func (m PluginMetadata) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("plugin name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("plugin version is required")
	}
	if !m.Type.IsValid() {
		return fmt.Errorf("invalid plugin type: %s", m.Type)
	}
	return nil
}
