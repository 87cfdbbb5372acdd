package commands

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/docsite-commonmark/internal/commonmark"
	"git.home.luguber.info/inful/docsite-commonmark/internal/plugin"
	"git.home.luguber.info/inful/docsite-commonmark/internal/site"
	"git.home.luguber.info/inful/docsite-commonmark/internal/version"
)

// VersionCmd implements the 'version' command.
type VersionCmd struct{}

func (v *VersionCmd) Run(g *Global, _ *CLI) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\nhost internals %s\n", version.String(), site.InternalsVersion)

	b.WriteString("renderer plugins:\n")
	for _, p := range g.Registry.ListByType(plugin.PluginTypeRenderer) {
		fmt.Fprintf(&b, "  %s\n", p.Metadata())
	}
	fmt.Fprintf(&b, "commonmark extensions: %s\n", strings.Join(commonmark.SupportedExtensions(), ", "))

	_, err := fmt.Fprint(g.Stdout, b.String())
	return err
}
