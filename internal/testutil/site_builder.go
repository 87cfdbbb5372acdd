package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docsite-commonmark/internal/config"
)

// SiteBuilder provides a fluent interface for laying out a test site: a
// config and a docs_dir below a fresh temporary directory.
type SiteBuilder struct {
	t      *testing.T
	root   string
	config *config.Config
	docs   map[string]string
}

// Site is a test site written to disk.
type Site struct {
	Root       string
	ConfigPath string
	Config     *config.Config
}

// NewSiteBuilder creates a builder rooted in t.TempDir().
func NewSiteBuilder(t *testing.T) *SiteBuilder {
	t.Helper()
	root := t.TempDir()
	cfg := config.Default()
	cfg.SiteName = "Test Site"
	cfg.DocsDir = filepath.Join(root, "docs")
	cfg.SiteDir = filepath.Join(root, "site")
	return &SiteBuilder{t: t, root: root, config: cfg, docs: make(map[string]string)}
}

// WithSiteName sets site_name.
func (sb *SiteBuilder) WithSiteName(name string) *SiteBuilder {
	sb.config.SiteName = name
	return sb
}

// WithPlugin appends to the plugins list.
func (sb *SiteBuilder) WithPlugin(name string, options map[string]any) *SiteBuilder {
	sb.config.Plugins = append(sb.config.Plugins, config.NamedEntry{Name: name, Options: options})
	return sb
}

// WithExtension appends to markdown_extensions.
func (sb *SiteBuilder) WithExtension(name string, options map[string]any) *SiteBuilder {
	sb.config.MarkdownExtensions = append(sb.config.MarkdownExtensions, config.NamedEntry{Name: name, Options: options})
	return sb
}

// WithMetricsTextfile sets metrics_textfile, relative to the site root.
func (sb *SiteBuilder) WithMetricsTextfile(name string) *SiteBuilder {
	sb.config.MetricsTextfile = filepath.Join(sb.root, name)
	return sb
}

// WithDoc adds a file below docs_dir. path is slash separated.
func (sb *SiteBuilder) WithDoc(path, content string) *SiteBuilder {
	sb.docs[path] = content
	return sb
}

// Build writes docs_dir and mkdocs.yml and returns the site.
func (sb *SiteBuilder) Build() *Site {
	sb.t.Helper()

	if err := os.MkdirAll(sb.config.DocsDir, testDirPermissions); err != nil {
		sb.t.Fatalf("Failed to create docs dir: %v", err)
	}
	for path, content := range sb.docs {
		full := filepath.Join(sb.config.DocsDir, filepath.FromSlash(path))
		if err := os.MkdirAll(filepath.Dir(full), testDirPermissions); err != nil {
			sb.t.Fatalf("Failed to create directory for %s: %v", path, err)
		}
		if err := os.WriteFile(full, []byte(content), testFilePermissions); err != nil {
			sb.t.Fatalf("Failed to write %s: %v", path, err)
		}
	}

	data, err := yaml.Marshal(sb.config)
	if err != nil {
		sb.t.Fatalf("Failed to marshal config: %v", err)
	}
	configPath := filepath.Join(sb.root, config.DefaultFile)
	if err := os.WriteFile(configPath, data, testFilePermissions); err != nil {
		sb.t.Fatalf("Failed to write config: %v", err)
	}

	cfg := *sb.config
	cfg.Path = configPath
	return &Site{Root: sb.root, ConfigPath: configPath, Config: &cfg}
}

// Output returns assertions on the site's site_dir.
func (s *Site) Output(t *testing.T) *FileAssertions {
	return NewFileAssertions(t, s.Config.SiteDir)
}
