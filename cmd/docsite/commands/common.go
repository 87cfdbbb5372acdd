package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docsite-commonmark/internal/config"
	"git.home.luguber.info/inful/docsite-commonmark/internal/logfields"
	"git.home.luguber.info/inful/docsite-commonmark/internal/metrics"
	"git.home.luguber.info/inful/docsite-commonmark/internal/plugin"
	"git.home.luguber.info/inful/docsite-commonmark/internal/shim"
	"git.home.luguber.info/inful/docsite-commonmark/internal/site"
)

// Global is shared state bound into every command's Run.
type Global struct {
	// Context is the parent of every command's context.
	Context  context.Context
	Registry *plugin.Registry
	Stdout   io.Writer
}

// NewGlobal returns the global state with the bundled plugins registered.
func NewGlobal() (*Global, error) {
	reg := plugin.NewRegistry()
	if err := reg.Register(shim.NewPlugin()); err != nil {
		return nil, err
	}
	return &Global{Context: context.Background(), Registry: reg, Stdout: os.Stdout}, nil
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"f" name:"config-file" help:"Site configuration file" default:"mkdocs.yml" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build  BuildCmd   `cmd:"" help:"Build the site into site_dir"`
	Render RenderCmd  `cmd:"" help:"Render a single Markdown file to stdout. Without a config file no plugins run and the default renderer is used."`
	Watch  WatchCmd   `cmd:"" help:"Build, then rebuild whenever docs or config change"`
	Info   VersionCmd `cmd:"" name:"version" help:"Print version information"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// RunBuild builds the site once. When metrics_textfile is configured the
// build's metrics are written there, also after a failed build.
func RunBuild(ctx context.Context, g *Global, cfg *config.Config) (*site.BuildReport, error) {
	var (
		recorder metrics.Recorder = metrics.NoopRecorder{}
		prom     *metrics.PrometheusRecorder
	)
	if cfg.MetricsTextfile != "" {
		prom = metrics.NewPrometheusRecorder(nil)
		recorder = prom
	}

	report, err := site.NewGenerator(cfg).
		WithRegistry(g.Registry).
		WithRecorder(recorder).
		Build(ctx)

	if prom != nil {
		if werr := prom.WriteTextfile(cfg.MetricsTextfile); werr != nil {
			slog.Warn("Failed to write metrics textfile", logfields.Path(cfg.MetricsTextfile), logfields.Error(werr))
		}
	}
	if err != nil {
		return nil, err
	}

	_, _ = fmt.Fprintf(g.Stdout, "Built %d pages and %d static files into %s (renderer: %s)\n",
		report.Pages, report.StaticFiles, cfg.SiteDir, report.Renderer)
	return report, nil
}
