package commonmark

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"git.home.luguber.info/inful/docsite-commonmark/internal/toc"
)

func newConverter(t *testing.T, opts Options) *Converter {
	t.Helper()
	c, err := New(opts, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	return c
}

func render(t *testing.T, c *Converter, src string, links LinkResolver) Result {
	t.Helper()
	res, err := c.Render([]byte(src), links)
	require.NoError(t, err)
	return res
}

func TestRender_SingleParagraph(t *testing.T) {
	res := render(t, newConverter(t, Options{}), "hello\n", nil)
	assert.Equal(t, "<p>hello</p>\n", res.HTML)
	assert.Empty(t, res.Headings)
}

func TestRender_LooseList(t *testing.T) {
	res := render(t, newConverter(t, Options{}), "- a\n\n- b\n", nil)
	assert.Equal(t, "<ul>\n<li>\n<p>a</p>\n</li>\n<li>\n<p>b</p>\n</li>\n</ul>\n", res.HTML)
}

func TestRender_MatchesGoldmark(t *testing.T) {
	src := "# Title\n\nSome *text* and `code` with a [link](https://example.com).\n\n" +
		"- a\n- b\n\n1. one\n\n2. two\n\n```go\nx := 1\n```\n\n> quote\n\n<div>raw</div>\n\n| a | b |\n|---|---|\n| 1 | 2 |\n"

	tests := []struct {
		name string
		opts Options
		md   goldmark.Markdown
	}{
		{
			name: "defaults",
			opts: Options{},
			md:   goldmark.New(goldmark.WithParserOptions(parser.WithAutoHeadingID())),
		},
		{
			name: "tables",
			opts: Options{Extensions: []string{"tables"}},
			md: goldmark.New(
				goldmark.WithExtensions(extension.Table),
				goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var want bytes.Buffer
			require.NoError(t, tt.md.Convert([]byte(src), &want))

			res := render(t, newConverter(t, tt.opts), src, nil)
			assert.Equal(t, want.String(), res.HTML)
		})
	}
}

func TestRender_HeadingIDs(t *testing.T) {
	res := render(t, newConverter(t, Options{}), "# Intro\n\n## Setup\n\n## Setup\n\n### Café *au* lait\n\n## !!!\n", nil)

	assert.Contains(t, res.HTML, `<h2 id="setup">Setup</h2>`)
	assert.Contains(t, res.HTML, `<h2 id="setup_1">Setup</h2>`)
	assert.Equal(t, []toc.Heading{
		{Level: 1, ID: "intro", Title: "Intro"},
		{Level: 2, ID: "setup", Title: "Setup"},
		{Level: 2, ID: "setup_1", Title: "Setup"},
		{Level: 3, ID: "cafe-au-lait", Title: "Café au lait"},
		{Level: 2, ID: "_1", Title: "!!!"},
	}, res.Headings)
}

func TestRender_HeadingIDsFromText(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		id    string
		title string
	}{
		{"link label only", "# See [x](y.md)\n", "see-x", "See x"},
		{"entity decoded", "# A &amp; B\n", "a-b", "A & B"},
		{"numeric reference", "# Caf&#233;\n", "cafe", "Café"},
		{"raw html dropped", "# x <code>y</code>\n", "x-y", "x y"},
		{"code span kept verbatim", "# Use `a &amp; b`\n", "use-a-amp-b", "Use a &amp; b"},
		{"escaped punctuation", "# 1\\. Start\n", "1-start", "1. Start"},
		{"setext over two lines", "Multi\nline heading\n===\n", "multi-line-heading", "Multi line heading"},
		{"image alt dropped", "# Logo ![alt](a.png)\n", "logo", "Logo"},
	}
	c := newConverter(t, Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := render(t, c, tt.src, nil)
			require.Len(t, res.Headings, 1)
			assert.Equal(t, tt.id, res.Headings[0].ID)
			assert.Equal(t, tt.title, res.Headings[0].Title)
			assert.Contains(t, res.HTML, `id="`+tt.id+`"`)
		})
	}
}

func TestRender_IDsAreFreshPerDocument(t *testing.T) {
	c := newConverter(t, Options{})
	first := render(t, c, "# Same\n", nil)
	second := render(t, c, "# Same\n", nil)
	assert.Equal(t, first.HTML, second.HTML)
	assert.Equal(t, "same", second.Headings[0].ID)
}

func TestRender_ExplicitIDsReserved(t *testing.T) {
	c := newConverter(t, Options{Extensions: []string{"attr_list"}})
	res := render(t, c, "## Part {#custom}\n\n## Custom\n", nil)

	require.Len(t, res.Headings, 2)
	assert.Equal(t, "custom", res.Headings[0].ID)
	assert.Equal(t, "Part", res.Headings[0].Title)
	assert.Equal(t, "custom_1", res.Headings[1].ID)
}

type mapResolver map[string]string

func (m mapResolver) ResolveLink(dest string) string {
	if out, ok := m[dest]; ok {
		return out
	}
	return dest
}

func TestRender_RewritesLinks(t *testing.T) {
	links := mapResolver{"guide.md": "guide/", "img/a.png": "../img/a.png"}
	res := render(t, newConverter(t, Options{}), "[Guide](guide.md) ![a](img/a.png) [ext](https://x.test/)\n", links)

	assert.Equal(t,
		`<p><a href="guide/">Guide</a> <img src="../img/a.png" alt="a"> <a href="https://x.test/">ext</a></p>`+"\n",
		res.HTML)
}

func TestRender_NilResolverLeavesLinks(t *testing.T) {
	res := render(t, newConverter(t, Options{}), "[Guide](guide.md)\n", nil)
	assert.Equal(t, `<p><a href="guide.md">Guide</a></p>`+"\n", res.HTML)
}

func TestRender_Unsafe(t *testing.T) {
	safe := render(t, newConverter(t, Options{}), "<div>x</div>\n", nil)
	assert.Equal(t, "<!-- raw HTML omitted -->\n", safe.HTML)

	unsafe := render(t, newConverter(t, Options{Unsafe: true}), "<div>x</div>\n", nil)
	assert.Equal(t, "<div>x</div>\n", unsafe.HTML)
}

func TestRender_Permalink(t *testing.T) {
	c := newConverter(t, Options{
		Extensions:       []string{"toc"},
		ExtensionConfigs: map[string]map[string]any{"toc": {"permalink": true}},
	})
	res := render(t, c, "## Usage\n", nil)

	assert.Equal(t,
		`<h2 id="usage">Usage<a href="#usage" title="Permanent link" class="headerlink">¶</a></h2>`+"\n",
		res.HTML)
	assert.Equal(t, "Usage", res.Headings[0].Title)

	custom := newConverter(t, Options{
		Extensions:       []string{"toc"},
		ExtensionConfigs: map[string]map[string]any{"toc": {"permalink": "#"}},
	})
	assert.Contains(t, render(t, custom, "## Usage\n", nil).HTML, `class="headerlink">#</a>`)
}
