package config

import (
	"fmt"
	"maps"
	"path/filepath"
	"strings"
)

// NormalizationResult captures adjustments made while normalizing a config.
type NormalizationResult struct {
	Warnings []string
}

func (r *NormalizationResult) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Normalize canonicalizes user input in place: trims names and paths, drops
// empty entries and folds duplicate entries into the first occurrence
// (options of later duplicates win).
func Normalize(cfg *Config) NormalizationResult {
	var res NormalizationResult

	cfg.SiteName = strings.TrimSpace(cfg.SiteName)
	cfg.SiteURL = strings.TrimSpace(cfg.SiteURL)
	if d := strings.TrimSpace(cfg.DocsDir); d != "" {
		cfg.DocsDir = filepath.Clean(d)
	}
	if d := strings.TrimSpace(cfg.SiteDir); d != "" {
		cfg.SiteDir = filepath.Clean(d)
	}

	cfg.MarkdownExtensions = normalizeEntries("markdown_extensions", cfg.MarkdownExtensions, &res)
	cfg.Plugins = normalizeEntries("plugins", cfg.Plugins, &res)
	return res
}

func normalizeEntries(field string, in NamedEntries, res *NormalizationResult) NamedEntries {
	if in == nil {
		return nil
	}
	out := make(NamedEntries, 0, len(in))
	index := make(map[string]int, len(in))
	for _, e := range in {
		e.Name = strings.TrimSpace(e.Name)
		if e.Name == "" {
			res.warn("%s: dropped entry with empty name", field)
			continue
		}
		if i, dup := index[e.Name]; dup {
			res.warn("%s: %q listed more than once; merged into first occurrence", field, e.Name)
			if len(e.Options) > 0 {
				merged := make(map[string]any, len(out[i].Options)+len(e.Options))
				maps.Copy(merged, out[i].Options)
				maps.Copy(merged, e.Options)
				out[i].Options = merged
			}
			continue
		}
		index[e.Name] = len(out)
		out = append(out, e)
	}
	return out
}
