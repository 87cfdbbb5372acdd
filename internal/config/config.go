package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docsite-commonmark/internal/foundation/errors"
)

// DefaultFile is the configuration file looked up when none is given.
const DefaultFile = "mkdocs.yml"

// Config represents the site configuration.
type Config struct {
	SiteName        string `yaml:"site_name"`
	SiteURL         string `yaml:"site_url,omitempty"`
	SiteDescription string `yaml:"site_description,omitempty"`

	// DocsDir and SiteDir are resolved against the config file's directory on Load.
	DocsDir          string `yaml:"docs_dir"`
	SiteDir          string `yaml:"site_dir"`
	UseDirectoryURLs *bool  `yaml:"use_directory_urls,omitempty"`

	MarkdownExtensions NamedEntries `yaml:"markdown_extensions,omitempty"`
	Plugins            NamedEntries `yaml:"plugins,omitempty"`

	// MetricsTextfile, when set, receives a Prometheus text exposition after each build.
	MetricsTextfile string `yaml:"metrics_textfile,omitempty"`

	// Path of the file this config was loaded from (empty for Default()).
	Path string `yaml:"-"`
}

// DirectoryURLs reports the effective use_directory_urls setting (default true).
func (c *Config) DirectoryURLs() bool {
	return c.UseDirectoryURLs == nil || *c.UseDirectoryURLs
}

// MDXConfigs returns per-extension settings keyed by extension name.
func (c *Config) MDXConfigs() map[string]map[string]any {
	return c.MarkdownExtensions.Configs()
}

// Default returns a configuration usable without a config file.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load loads configuration from the specified file.
func Load(configPath string) (*Config, error) {
	loadEnvFiles(filepath.Dir(configPath))

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundError("configuration file not found").
				WithContext("path", configPath).
				Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read config file").
			WithContext("path", configPath).
			Build()
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	cfg.Path = configPath
	cfg.resolvePaths(filepath.Dir(configPath))

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML configuration after expanding environment variables.
// Paths are left as written; Load resolves them.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to unmarshal config").Build()
	}

	res := Normalize(&cfg)
	for _, w := range res.Warnings {
		fmt.Fprintf(os.Stderr, "config normalization: %s\n", w)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.SiteName == "" {
		cfg.SiteName = "Documentation"
	}
	if cfg.DocsDir == "" {
		cfg.DocsDir = "docs"
	}
	if cfg.SiteDir == "" {
		cfg.SiteDir = "site"
	}
}

func (c *Config) resolvePaths(base string) {
	if !filepath.IsAbs(c.DocsDir) {
		c.DocsDir = filepath.Join(base, c.DocsDir)
	}
	if !filepath.IsAbs(c.SiteDir) {
		c.SiteDir = filepath.Join(base, c.SiteDir)
	}
	if c.MetricsTextfile != "" && !filepath.IsAbs(c.MetricsTextfile) {
		c.MetricsTextfile = filepath.Join(base, c.MetricsTextfile)
	}
}
