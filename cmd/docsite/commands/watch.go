package commands

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/docsite-commonmark/internal/logfields"
	"git.home.luguber.info/inful/docsite-commonmark/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	SiteDir  string        `name:"site-dir" short:"d" help:"Override site_dir" type:"path"`
	Debounce time.Duration `help:"Quiet period before a rebuild" default:"300ms"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root.Config, w.SiteDir)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(g.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if _, err := RunBuild(ctx, g, cfg); err != nil {
		// Keep watching so the next edit can fix the build.
		slog.Error("Initial build failed", logfields.Error(err))
	}

	watcher, err := watch.New(cfg.DocsDir, cfg.Path, func(ctx context.Context) error {
		// The config is reloaded on every rebuild so edits to mkdocs.yml apply.
		next, err := loadConfig(root.Config, w.SiteDir)
		if err != nil {
			return err
		}
		_, err = RunBuild(ctx, g, next)
		return err
	}, watch.WithDebounce(w.Debounce), watch.WithLogger(slog.Default()))
	if err != nil {
		return err
	}
	return watcher.Run(ctx)
}
