package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsite-commonmark/internal/config"
)

func TestSiteBuilder_WritesLoadableSite(t *testing.T) {
	s := NewSiteBuilder(t).
		WithSiteName("Docs").
		WithPlugin("commonmark", map[string]any{"strict": true}).
		WithExtension("toc", map[string]any{"permalink": true}).
		WithDoc("index.md", "# Home\n").
		WithDoc("guide/setup.md", "# Setup\n").
		Build()

	cfg, err := config.Load(s.ConfigPath)
	require.NoError(t, err)

	assert.Equal(t, "Docs", cfg.SiteName)
	assert.Equal(t, s.Config.DocsDir, cfg.DocsDir)
	assert.Equal(t, []string{"commonmark"}, cfg.Plugins.Names())
	assert.Equal(t, true, cfg.MDXConfigs()["toc"]["permalink"])

	docs := NewFileAssertions(t, cfg.DocsDir)
	docs.AssertFileContains("guide/setup.md", "# Setup").AssertFileNotExists("missing.md")
}
