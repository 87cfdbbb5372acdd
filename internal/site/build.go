package site

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/docsite-commonmark/internal/config"
	"git.home.luguber.info/inful/docsite-commonmark/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite-commonmark/internal/logfields"
	"git.home.luguber.info/inful/docsite-commonmark/internal/metrics"
	"git.home.luguber.info/inful/docsite-commonmark/internal/plugin"
)

// BuildReport summarizes a finished build.
type BuildReport struct {
	BuildID     string
	Pages       int
	StaticFiles int
	Renderer    string
	Duration    time.Duration
}

// Generator builds a site from a configuration.
type Generator struct {
	cfg      *config.Config
	registry *plugin.Registry
	recorder metrics.Recorder
	logger   *slog.Logger
}

// NewGenerator returns a generator using the default plugin registry, no
// metrics and the default logger.
func NewGenerator(cfg *config.Config) *Generator {
	return &Generator{
		cfg:      cfg,
		registry: plugin.DefaultRegistry(),
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
}

// WithRegistry sets the registry plugins are resolved from.
func (g *Generator) WithRegistry(r *plugin.Registry) *Generator {
	if r != nil {
		g.registry = r
	}
	return g
}

// WithRecorder injects a metrics recorder.
func (g *Generator) WithRecorder(r metrics.Recorder) *Generator {
	if r != nil {
		g.recorder = r
	}
	return g
}

// WithLogger sets the logger.
func (g *Generator) WithLogger(l *slog.Logger) *Generator {
	if l != nil {
		g.logger = l
	}
	return g
}

// Build renders every page to site_dir. Plugin pre-build hooks run first and
// post-build hooks always run last, whether or not the build succeeded.
func (g *Generator) Build(ctx context.Context) (report *BuildReport, err error) {
	start := time.Now()
	report = &BuildReport{BuildID: uuid.NewString()}
	logger := g.logger.With(logfields.BuildID(report.BuildID))

	defer func() {
		report.Duration = time.Since(start)
		g.recorder.ObserveBuildDuration(report.Duration)
		if err != nil {
			g.recorder.IncBuildOutcome(metrics.ResultFailed)
			return
		}
		g.recorder.IncBuildOutcome(metrics.ResultSuccess)
	}()

	err = g.withPlugins(ctx, logger, report.BuildID, func() error {
		report.Renderer = ActiveRenderer()
		logger.Info("Starting site build",
			logfields.Path(g.cfg.DocsDir), logfields.Renderer(report.Renderer))
		return g.build(ctx, logger, report)
	})
	if err != nil {
		return report, err
	}

	logger.Info("Site build finished",
		logfields.Count(report.Pages),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
	return report, nil
}

// withPlugins runs fn between the enabled plugins' pre- and post-build hooks.
func (g *Generator) withPlugins(ctx context.Context, logger *slog.Logger, buildID string, fn func() error) error {
	enabled, err := g.registry.Resolve(g.cfg.Plugins)
	if err != nil {
		return err
	}

	pctx := plugin.NewPluginContext(ctx, logger, g.cfg, buildID)
	ran, preErr := plugin.RunPreBuild(pctx, enabled)
	g.recorder.SetRendererPatched(ActiveRenderer() != DefaultRendererName)

	var runErr error
	if preErr == nil {
		runErr = fn()
	}

	postErr := plugin.RunPostBuild(pctx, ran)
	g.recorder.SetRendererPatched(ActiveRenderer() != DefaultRendererName)

	if preErr != nil {
		return stderrors.Join(preErr, postErr)
	}
	return stderrors.Join(runErr, postErr)
}

func (g *Generator) build(ctx context.Context, logger *slog.Logger, report *BuildReport) error {
	files, err := Discover(g.cfg.DocsDir, g.cfg.DirectoryURLs())
	if err != nil {
		return err
	}

	pages := make([]*Page, 0, len(files.Documentation()))
	for _, f := range files.Documentation() {
		if err := ctx.Err(); err != nil {
			return err
		}
		page, err := LoadPage(f)
		if err != nil {
			return err
		}
		if err := g.renderPage(logger, page, files, report.Renderer); err != nil {
			return err
		}
		pages = append(pages, page)
	}

	if err := os.RemoveAll(g.cfg.SiteDir); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to clean site_dir").
			WithContext("site_dir", g.cfg.SiteDir).
			Build()
	}

	for _, page := range pages {
		out, err := assemble(g.cfg, page, pages)
		if err != nil {
			return errors.WrapError(err, errors.CategoryBuild, "failed to apply theme").
				WithContext("page", page.File.SrcPath).
				Build()
		}
		if err := writeFile(filepath.Join(g.cfg.SiteDir, filepath.FromSlash(page.File.DestPath)), out); err != nil {
			return err
		}
	}
	report.Pages = len(pages)

	for _, f := range files.Static() {
		if err := copyFile(f.AbsSrcPath, filepath.Join(g.cfg.SiteDir, filepath.FromSlash(f.DestPath))); err != nil {
			return err
		}
		report.StaticFiles++
	}
	return nil
}

// renderPage renders one page, timing it. Renderer errors are kept in the
// chain unchanged so callers can still match on them.
func (g *Generator) renderPage(logger *slog.Logger, page *Page, files *Files, renderer string) error {
	start := time.Now()
	err := page.Render(g.cfg, files)
	elapsed := time.Since(start)

	if err != nil {
		g.recorder.ObservePageRender(renderer, elapsed, metrics.ResultFailed)
		return errors.WrapError(err, errors.CategoryRender, "failed to render page").
			WithContext("page", page.File.SrcPath).
			WithContext("renderer", renderer).
			Build()
	}
	g.recorder.ObservePageRender(renderer, elapsed, metrics.ResultSuccess)
	page.Renderer = renderer
	logger.Debug("Rendered page", logfields.Page(page.File.SrcPath), logfields.URL(page.File.URL))
	return nil
}

// RenderFile renders a single Markdown file with the site's plugins active.
// Links are resolved against docs_dir when the file lives inside it.
func (g *Generator) RenderFile(ctx context.Context, path string) (*Page, error) {
	var page *Page
	buildID := uuid.NewString()
	logger := g.logger.With(logfields.BuildID(buildID))

	err := g.withPlugins(ctx, logger, buildID, func() error {
		files, file, err := g.filesFor(path)
		if err != nil {
			return err
		}
		page, err = LoadPage(file)
		if err != nil {
			return err
		}
		return g.renderPage(logger, page, files, ActiveRenderer())
	})
	if err != nil {
		return nil, err
	}
	return page, nil
}

func (g *Generator) filesFor(path string) (*Files, *File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, nil, errors.WrapError(err, errors.CategoryFileSystem, "cannot resolve path").Build()
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, nil, errors.NotFoundError("file not found").WithContext("path", path).WithCause(err).Build()
	}

	docs, err := filepath.Abs(g.cfg.DocsDir)
	if err == nil {
		if rel, relErr := filepath.Rel(docs, abs); relErr == nil && filepath.IsLocal(rel) {
			if files, discoverErr := Discover(docs, g.cfg.DirectoryURLs()); discoverErr == nil {
				if f := files.Get(filepath.ToSlash(rel)); f != nil {
					return files, f, nil
				}
			}
		}
	}

	f := NewFile(filepath.Base(abs), filepath.Dir(abs), g.cfg.DirectoryURLs())
	return NewFiles([]*File{f}), f, nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to create output directory").
			WithContext("path", path).
			Build()
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write output").
			WithContext("path", path).
			Build()
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to open static file").
			WithContext("path", src).
			Build()
	}
	defer func() {
		_ = in.Close()
	}()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to create output directory").
			WithContext("path", dst).
			Build()
	}
	out, err := os.Create(dst)
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to create static file").
			WithContext("path", dst).
			Build()
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to copy static file").
			WithContext("path", dst).
			Build()
	}
	return out.Close()
}
