package shim

import (
	"fmt"
	"strings"
	"sync"

	"git.home.luguber.info/inful/docsite-commonmark/internal/commonmark"
	"git.home.luguber.info/inful/docsite-commonmark/internal/config"
	"git.home.luguber.info/inful/docsite-commonmark/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite-commonmark/internal/site"
	"git.home.luguber.info/inful/docsite-commonmark/internal/toc"
)

// Owner is the name the shim claims the page render hook under.
const Owner = "commonmark"

// supportedMajor is the internals major version the shim binds to.
const supportedMajor = "1"

var (
	ErrPatchTargetMissing     = errors.CompatError("page render hook not found in host internals").Build()
	ErrIncompatibleHost       = errors.CompatError("page render hook has an unexpected type").Build()
	ErrUnsupportedHostVersion = errors.CompatError("unsupported host internals version").Build()
	ErrAlreadyInstalled       = errors.CompatError("page render hook already substituted").Build()
)

// Check verifies hooks exposes a page render hook the shim can bind to and
// returns it. It never modifies hooks.
func Check(hooks *site.Hooks) (*site.RenderFunc, error) {
	if hooks == nil {
		return nil, ErrPatchTargetMissing
	}

	version := hooks.Version()
	if major, _, _ := strings.Cut(version, "."); major != supportedMajor {
		return nil, ErrUnsupportedHostVersion.
			WithContext("host_version", version).
			WithContext("supported", supportedMajor+".x")
	}

	ref, ok := hooks.Lookup(site.TargetPageRender)
	if !ok {
		return nil, ErrPatchTargetMissing.WithContext("target", site.TargetPageRender)
	}

	target, ok := ref.(*site.RenderFunc)
	if !ok || target == nil || *target == nil {
		return nil, ErrIncompatibleHost.
			WithContext("target", site.TargetPageRender).
			WithContext("type", fmt.Sprintf("%T", ref))
	}
	return target, nil
}

// Installation is a live substitution of the page render hook.
type Installation struct {
	hooks    *site.Hooks
	target   *site.RenderFunc
	original site.RenderFunc
	once     sync.Once
}

// Install rebinds the page render hook in hooks to render with conv.
// On error hooks is left as it was.
func Install(hooks *site.Hooks, conv *commonmark.Converter) (*Installation, error) {
	if conv == nil {
		return nil, errors.ValidationError("converter is required").Build()
	}

	target, err := Check(hooks)
	if err != nil {
		return nil, err
	}

	if err := hooks.Claim(site.TargetPageRender, Owner); err != nil {
		return nil, ErrAlreadyInstalled.
			WithContext("owner", hooks.Owner(site.TargetPageRender)).
			WithCause(err)
	}

	inst := &Installation{hooks: hooks, target: target, original: *target}
	*target = Wrap(conv)
	return inst, nil
}

// Restore puts the original page renderer back. Calling it again does nothing.
func (i *Installation) Restore() {
	if i == nil {
		return
	}
	i.once.Do(func() {
		*i.target = i.original
		i.hooks.Release(site.TargetPageRender, Owner)
	})
}

// Wrap adapts conv to the host's page render signature. Converter errors are
// returned unchanged.
func Wrap(conv *commonmark.Converter) site.RenderFunc {
	return func(page *site.Page, _ *config.Config, files *site.Files) error {
		res, err := conv.Render([]byte(page.Markdown), site.NewLinkResolver(page.File, files))
		if err != nil {
			return err
		}
		page.Content = res.HTML
		page.TOC = toc.Build(res.Headings)
		return nil
	}
}
