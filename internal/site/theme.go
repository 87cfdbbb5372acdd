package site

import (
	"bytes"
	"embed"
	"html/template"
	"strings"

	"git.home.luguber.info/inful/docsite-commonmark/internal/config"
)

//go:embed theme/base.html
var themeFS embed.FS

var baseTemplate = template.Must(template.ParseFS(themeFS, "theme/base.html"))

// NavItem is one entry of the site navigation as seen from a given page.
type NavItem struct {
	Title  string
	URL    string
	Active bool
}

// pageContext is what the theme template receives.
type pageContext struct {
	SiteName     string
	HomeURL      string
	CanonicalURL string
	Page         *Page
	// Content is the rendered page HTML, trusted as produced by the page renderer.
	Content template.HTML
	Nav     []NavItem
}

// assemble wraps a rendered page in the theme.
func assemble(cfg *config.Config, page *Page, pages []*Page) ([]byte, error) {
	ctx := pageContext{
		SiteName: cfg.SiteName,
		HomeURL:  RelativeURL("./", page.File.URL),
		Page:     page,
		Content:  template.HTML(page.Content),
		Nav:      navFor(page, pages),
	}
	if cfg.SiteURL != "" {
		ctx.CanonicalURL = canonicalURL(cfg.SiteURL, page.File.URL)
	}

	var buf bytes.Buffer
	if err := baseTemplate.Execute(&buf, ctx); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func navFor(current *Page, pages []*Page) []NavItem {
	items := make([]NavItem, 0, len(pages))
	for _, p := range pages {
		items = append(items, NavItem{
			Title:  p.Title,
			URL:    p.File.URLRelativeTo(current.File),
			Active: p == current,
		})
	}
	return items
}

func canonicalURL(siteURL, pageURL string) string {
	base := strings.TrimSuffix(siteURL, "/") + "/"
	if pageURL == "./" {
		return base
	}
	return base + pageURL
}
