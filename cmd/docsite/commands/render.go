package commands

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"git.home.luguber.info/inful/docsite-commonmark/internal/config"
	"git.home.luguber.info/inful/docsite-commonmark/internal/logfields"
	"git.home.luguber.info/inful/docsite-commonmark/internal/site"
	"git.home.luguber.info/inful/docsite-commonmark/internal/toc"
)

// RenderCmd implements the 'render' command.
type RenderCmd struct {
	File string `arg:"" help:"Markdown file to render" type:"existingfile"`
	TOC  bool   `name:"toc" help:"Print the table of contents instead of the HTML"`
}

func (r *RenderCmd) Run(g *Global, root *CLI) error {
	cfg, found, err := renderConfig(root.Config)
	if err != nil {
		return err
	}
	if !found {
		slog.Warn("No configuration file, rendering without plugins", logfields.Path(root.Config))
	}

	page, err := site.NewGenerator(cfg).WithRegistry(g.Registry).RenderFile(g.Context, r.File)
	if err != nil {
		return err
	}
	slog.Info("Rendered page", logfields.Path(r.File), logfields.Renderer(page.Renderer))

	if r.TOC {
		writeTOC(g, page.TOC, 0)
		return nil
	}
	_, err = fmt.Fprint(g.Stdout, page.Content)
	return err
}

// renderConfig uses the config file when there is one; a lone Markdown file
// renders with defaults and no plugins.
func renderConfig(path string) (*config.Config, bool, error) {
	if _, err := os.Stat(path); err != nil && os.IsNotExist(err) {
		return config.Default(), false, nil
	}
	cfg, err := config.Load(path)
	return cfg, true, err
}

func writeTOC(g *Global, entries toc.TOC, depth int) {
	for _, e := range entries {
		_, _ = fmt.Fprintf(g.Stdout, "%s- %s (%s)\n", strings.Repeat("  ", depth), e.Title, e.URL())
		writeTOC(g, e.Children, depth+1)
	}
}
