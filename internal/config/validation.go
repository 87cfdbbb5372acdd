package config

import (
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/docsite-commonmark/internal/foundation/errors"
)

// Validate checks a loaded configuration. Paths are expected to be resolved.
func Validate(cfg *Config) error {
	info, err := os.Stat(cfg.DocsDir)
	if err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "docs_dir does not exist").
			WithContext("docs_dir", cfg.DocsDir).
			Build()
	}
	if !info.IsDir() {
		return errors.ConfigError("docs_dir is not a directory").
			WithContext("docs_dir", cfg.DocsDir).
			Build()
	}
	return validateLayout(cfg)
}

// validateLayout rejects site_dir/docs_dir nesting: building would either copy
// the output into itself or wipe the sources.
func validateLayout(cfg *Config) error {
	docs, err := filepath.Abs(cfg.DocsDir)
	if err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "cannot resolve docs_dir").Build()
	}
	site, err := filepath.Abs(cfg.SiteDir)
	if err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "cannot resolve site_dir").Build()
	}

	switch {
	case docs == site:
		return errors.ConfigError("docs_dir and site_dir must differ").
			WithContext("dir", docs).
			Build()
	case isWithin(site, docs):
		return errors.ConfigError("site_dir must not be inside docs_dir").
			WithContext("site_dir", site).
			WithContext("docs_dir", docs).
			Build()
	case isWithin(docs, site):
		return errors.ConfigError("docs_dir must not be inside site_dir").
			WithContext("site_dir", site).
			WithContext("docs_dir", docs).
			Build()
	}
	return nil
}

func isWithin(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
