package shim

import (
	"fmt"

	"git.home.luguber.info/inful/docsite-commonmark/internal/commonmark"
	"git.home.luguber.info/inful/docsite-commonmark/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite-commonmark/internal/logfields"
	"git.home.luguber.info/inful/docsite-commonmark/internal/plugin"
	"git.home.luguber.info/inful/docsite-commonmark/internal/site"
)

// PluginVersion is the version the plugin registers under.
const PluginVersion = "v1.0.0"

// Plugin options.
const (
	OptionStrict     = "strict"
	OptionUnsafeHTML = "unsafe_html"
)

// Plugin renders pages with CommonMark for the duration of a build.
type Plugin struct {
	hooks        *site.Hooks
	installation *Installation
}

var (
	_ plugin.Plugin     = (*Plugin)(nil)
	_ plugin.BuildHooks = (*Plugin)(nil)
)

// NewPlugin returns the plugin bound to the generator's own internals.
func NewPlugin() *Plugin {
	return NewPluginWithHooks(site.Internals())
}

// NewPluginWithHooks returns the plugin bound to an explicit hooks table.
func NewPluginWithHooks(hooks *site.Hooks) *Plugin {
	return &Plugin{hooks: hooks}
}

func (p *Plugin) Metadata() plugin.PluginMetadata {
	return plugin.PluginMetadata{
		Name:        Owner,
		Version:     PluginVersion,
		Type:        plugin.PluginTypeRenderer,
		Description: "Render pages with goldmark (CommonMark) instead of the default renderer",
	}
}

// Validate accepts the boolean options strict and unsafe_html.
func (p *Plugin) Validate(options map[string]any) error {
	for key, value := range options {
		switch key {
		case OptionStrict, OptionUnsafeHTML:
			if _, ok := value.(bool); !ok {
				return errors.ValidationError("plugin option must be a boolean").
					WithContext("option", key).
					WithContext("value", fmt.Sprintf("%v", value)).
					Build()
			}
		default:
			return errors.ValidationError("unknown plugin option").
				WithContext("option", key).
				Build()
		}
	}
	return nil
}

// OnPreBuild builds the converter from the site's markdown_extensions and
// substitutes the page renderer.
func (p *Plugin) OnPreBuild(pctx *plugin.PluginContext) error {
	conv, err := commonmark.New(commonmark.Options{
		Extensions:       pctx.Config.MarkdownExtensions.Names(),
		ExtensionConfigs: pctx.Config.MDXConfigs(),
		Unsafe:           pctx.Bool(OptionUnsafeHTML, true),
		Strict:           pctx.Bool(OptionStrict, false),
	}, pctx.Logger)
	if err != nil {
		return err
	}

	inst, err := Install(p.hooks, conv)
	if err != nil {
		return err
	}
	p.installation = inst

	pctx.Logger.Info("Page renderer substituted",
		logfields.Target(site.TargetPageRender),
		logfields.HostVersion(p.hooks.Version()),
		logfields.Renderer(Owner))
	return nil
}

// OnPostBuild restores the default renderer.
func (p *Plugin) OnPostBuild(pctx *plugin.PluginContext) error {
	if p.installation == nil {
		return nil
	}
	p.installation.Restore()
	p.installation = nil
	pctx.Logger.Debug("Page renderer restored", logfields.Target(site.TargetPageRender))
	return nil
}
