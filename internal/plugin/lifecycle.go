package plugin

import (
	stderrors "errors"

	"git.home.luguber.info/inful/docsite-commonmark/internal/logfields"
)

// RunPreBuild calls OnPreBuild on every enabled plugin that has build hooks,
// in config order. It stops at the first failure and returns the plugins whose
// pre-build already ran, so the caller can still run their post-build hooks.
func RunPreBuild(pctx *PluginContext, plugins []Enabled) ([]Enabled, error) {
	ran := make([]Enabled, 0, len(plugins))
	for _, e := range plugins {
		hooks, ok := e.Plugin.(BuildHooks)
		if !ok {
			continue
		}
		scoped := pctx.ForPlugin(e.Name(), e.Options)
		scoped.Logger.Debug("Running pre-build hook")
		if err := hooks.OnPreBuild(scoped); err != nil {
			return ran, NewPluginError(e.Name(), "pre_build", err)
		}
		ran = append(ran, e)
	}
	return ran, nil
}

// RunPostBuild calls OnPostBuild in reverse order. All hooks run; failures are joined.
func RunPostBuild(pctx *PluginContext, plugins []Enabled) error {
	var errs []error
	for i := len(plugins) - 1; i >= 0; i-- {
		e := plugins[i]
		hooks, ok := e.Plugin.(BuildHooks)
		if !ok {
			continue
		}
		scoped := pctx.ForPlugin(e.Name(), e.Options)
		scoped.Logger.Debug("Running post-build hook")
		if err := hooks.OnPostBuild(scoped); err != nil {
			scoped.Logger.Warn("Post-build hook failed", logfields.Error(err))
			errs = append(errs, NewPluginError(e.Name(), "post_build", err))
		}
	}
	return stderrors.Join(errs...)
}
