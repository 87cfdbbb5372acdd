package plugin

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/docsite-commonmark/internal/config"
	"git.home.luguber.info/inful/docsite-commonmark/internal/logfields"
)

// PluginContext provides plugins with access to the build's configuration and state.
type PluginContext struct {
	// Context is the standard Go context for cancellation and deadlines.
	Context context.Context

	// Logger provides structured logging for plugin operations.
	Logger *slog.Logger

	// Config is the site configuration.
	Config *config.Config

	// BuildID uniquely identifies this build.
	BuildID string

	// Options holds the plugin's own entry from the config's plugins list.
	Options map[string]any
}

// NewPluginContext creates a new plugin context with the given services.
func NewPluginContext(ctx context.Context, logger *slog.Logger, cfg *config.Config, buildID string) *PluginContext {
	if logger == nil {
		logger = slog.Default()
	}
	return &PluginContext{
		Context: ctx,
		Logger:  logger,
		Config:  cfg,
		BuildID: buildID,
	}
}

// ForPlugin returns a copy scoped to one plugin: its logger carries the plugin
// name and Options holds that plugin's options.
func (pc *PluginContext) ForPlugin(name string, options map[string]any) *PluginContext {
	return &PluginContext{
		Context: pc.Context,
		Logger:  pc.Logger.With(logfields.Plugin(name)),
		Config:  pc.Config,
		BuildID: pc.BuildID,
		Options: options,
	}
}

// Bool reads a boolean option, falling back to def when absent or not a bool.
func (pc *PluginContext) Bool(key string, def bool) bool {
	if v, ok := pc.Options[key].(bool); ok {
		return v
	}
	return def
}
