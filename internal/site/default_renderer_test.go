package site

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsite-commonmark/internal/config"
	"git.home.luguber.info/inful/docsite-commonmark/internal/toc"
)

func renderDefault(t *testing.T, cfg *config.Config, src, markdown string, files *Files) *Page {
	t.Helper()
	f := NewFile(src, "/docs", cfg.DirectoryURLs())
	if files == nil {
		files = NewFiles([]*File{f})
	}
	p, err := NewPage(f, []byte(markdown))
	require.NoError(t, err)
	require.NoError(t, renderBlackfriday(p, cfg, files))
	return p
}

func TestRenderBlackfriday_Paragraph(t *testing.T) {
	p := renderDefault(t, config.Default(), "a.md", "hello\n", nil)
	assert.Equal(t, "<p>hello</p>\n", p.Content)
}

func TestRenderBlackfriday_LooseListHasNoNewlineInItems(t *testing.T) {
	p := renderDefault(t, config.Default(), "a.md", "- a\n\n- b\n", nil)
	assert.Contains(t, p.Content, "<li><p>a</p></li>")
}

func TestRenderBlackfriday_HeadingIDsAndTOC(t *testing.T) {
	p := renderDefault(t, config.Default(), "a.md", "# Title\n\n## Part One\n\n## Part One\n\n### Détails\n", nil)

	assert.Contains(t, p.Content, `<h1 id="title">Title</h1>`)
	assert.Contains(t, p.Content, `<h2 id="part-one">Part One</h2>`)
	assert.Contains(t, p.Content, `<h2 id="part-one_1">Part One</h2>`)
	assert.Contains(t, p.Content, `<h3 id="details">Détails</h3>`)

	require.Equal(t, 1, len(p.TOC))
	root := p.TOC[0]
	assert.Equal(t, "title", root.ID)
	require.Len(t, root.Children, 2)
	assert.Equal(t, "part-one_1", root.Children[1].ID)
	require.Len(t, root.Children[1].Children, 1)
	assert.Equal(t, "#details", root.Children[1].Children[0].URL())
}

func TestRenderBlackfriday_RewritesLinks(t *testing.T) {
	cfg := config.Default()
	files := NewFiles([]*File{
		NewFile("index.md", "/docs", true),
		NewFile("guide/setup.md", "/docs", true),
	})
	p, err := NewPage(files.Get("index.md"), []byte("See [setup](guide/setup.md#install).\n"))
	require.NoError(t, err)
	require.NoError(t, renderBlackfriday(p, cfg, files))

	assert.Contains(t, p.Content, `href="guide/setup/#install"`)
}

func TestRenderBlackfriday_Extensions(t *testing.T) {
	cfg := config.Default()
	cfg.MarkdownExtensions = config.NamedEntries{{Name: "tables"}}

	p := renderDefault(t, cfg, "a.md", "| a | b |\n|---|---|\n| 1 | 2 |\n", nil)
	assert.Contains(t, p.Content, "<table>")

	plain := renderDefault(t, config.Default(), "a.md", "| a | b |\n|---|---|\n| 1 | 2 |\n", nil)
	assert.NotContains(t, plain.Content, "<table>")
}

func TestHeadingsFromHTML(t *testing.T) {
	headings, err := HeadingsFromHTML(`<h1 id="a">A <code>b</code></h1><p>x</p><h2>no id</h2><div><h3 id="c">C</h3></div>`)
	require.NoError(t, err)

	assert.Equal(t, []toc.Heading{
		{Level: 1, ID: "a", Title: "A b"},
		{Level: 3, ID: "c", Title: "C"},
	}, headings)
}
