package site

import (
	"fmt"
	"sync"

	"git.home.luguber.info/inful/docsite-commonmark/internal/config"
)

const (
	// InternalsVersion identifies the shape of the hooks table. The major part
	// changes whenever a target is renamed or its type changes.
	InternalsVersion = "1.4"

	// TargetPageRender is the hook every page render goes through. Its value in
	// the table is a *RenderFunc.
	TargetPageRender = "page.render"

	// DefaultRendererName labels renders done by the built-in renderer.
	DefaultRendererName = "blackfriday"
)

// RenderFunc converts page.Markdown into page.Content and page.TOC.
type RenderFunc func(page *Page, cfg *config.Config, files *Files) error

// renderPage is the patch target behind TargetPageRender.
var renderPage RenderFunc = renderBlackfriday

// Hooks is a versioned table of named internal references plugins may rebind.
// Claims record which owner has rebound a target so a second owner cannot
// stack on top of the first.
type Hooks struct {
	mu      sync.Mutex
	version string
	targets map[string]any
	owners  map[string]string
}

// NewHooks builds a hooks table. Values are expected to be pointers to the
// referenced variables.
func NewHooks(version string, targets map[string]any) *Hooks {
	return &Hooks{
		version: version,
		targets: targets,
		owners:  make(map[string]string),
	}
}

var internals = NewHooks(InternalsVersion, map[string]any{
	TargetPageRender: &renderPage,
})

// Internals returns the process-wide hooks table of this generator.
func Internals() *Hooks {
	return internals
}

// Version returns the internals version the table was built for.
func (h *Hooks) Version() string {
	return h.version
}

// Lookup returns the reference registered under name.
func (h *Hooks) Lookup(name string) (any, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	ref, ok := h.targets[name]
	return ref, ok
}

// Claim marks name as rebound by owner. It fails if any owner, including the
// same one, already holds the claim.
func (h *Hooks) Claim(name, owner string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if current, ok := h.owners[name]; ok {
		return fmt.Errorf("hook %s already claimed by %s", name, current)
	}
	h.owners[name] = owner
	return nil
}

// Release drops owner's claim on name. Releasing a claim held by someone else is a no-op.
func (h *Hooks) Release(name, owner string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.owners[name] == owner {
		delete(h.owners, name)
	}
}

// Owner returns who currently claims name, or "".
func (h *Hooks) Owner(name string) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.owners[name]
}

// ActiveRenderer names whoever currently serves page renders.
func ActiveRenderer() string {
	if owner := internals.Owner(TargetPageRender); owner != "" {
		return owner
	}
	return DefaultRendererName
}
