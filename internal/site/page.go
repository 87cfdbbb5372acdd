package site

import (
	"bufio"
	"os"
	"path"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/inful/mdfp"
	"github.com/russross/blackfriday/v2"

	"git.home.luguber.info/inful/docsite-commonmark/internal/config"
	"git.home.luguber.info/inful/docsite-commonmark/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite-commonmark/internal/frontmatter"
	"git.home.luguber.info/inful/docsite-commonmark/internal/toc"
)

// Page is a documentation file on its way to HTML. Render fills Content and TOC.
type Page struct {
	File  *File
	Title string
	Meta  map[string]any

	// Markdown is the page body with front matter removed.
	Markdown string

	Content string
	TOC     toc.TOC
	// Renderer names the render hook owner that produced Content.
	Renderer string

	// Fingerprint identifies the page source (front matter and body).
	Fingerprint string
}

// LoadPage reads a documentation file and splits off its front matter.
func LoadPage(f *File) (*Page, error) {
	data, err := os.ReadFile(f.AbsSrcPath)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read page").
			WithContext("page", f.SrcPath).
			Build()
	}
	return NewPage(f, data)
}

// NewPage builds a page from raw file content.
func NewPage(f *File, data []byte) (*Page, error) {
	doc, err := frontmatter.Parse(data)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "invalid front matter").
			WithContext("page", f.SrcPath).
			Build()
	}

	p := &Page{
		File:        f,
		Meta:        doc.Meta,
		Markdown:    string(doc.Body),
		Fingerprint: mdfp.CalculateFingerprintFromParts(strings.TrimSuffix(string(doc.Raw), "\n"), string(doc.Body)),
	}
	p.Title = p.deriveTitle()
	return p, nil
}

// Render converts the page through the current page render hook.
func (p *Page) Render(cfg *config.Config, files *Files) error {
	return renderPage(p, cfg, files)
}

// IsHomepage reports whether this is the site's root index page.
func (p *Page) IsHomepage() bool {
	return p.File != nil && p.File.DestPath == "index.html"
}

// deriveTitle prefers the title meta key, then a leading level-one ATX
// heading, then the file name.
func (p *Page) deriveTitle() string {
	if t, ok := p.Meta["title"].(string); ok && strings.TrimSpace(t) != "" {
		return strings.TrimSpace(t)
	}
	if t := leadingHeading(p.Markdown); t != "" {
		return t
	}
	if p.IsHomepage() {
		return "Home"
	}
	return titleFromFilename(p.File.SrcPath)
}

func leadingHeading(markdown string) string {
	sc := bufio.NewScanner(strings.NewReader(markdown))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "# ") {
			title := strings.TrimSpace(line[2:])
			// A closing sequence only counts when separated by a space.
			if trimmed := strings.TrimRight(title, "#"); trimmed != title && (trimmed == "" || strings.HasSuffix(trimmed, " ")) {
				title = strings.TrimSpace(trimmed)
			}
			return headingText(title)
		}
		return ""
	}
	return ""
}

// headingText strips inline markup from ATX heading content. The trailing
// closing sequence keeps blackfriday from eating hashes that belong to the text.
func headingText(content string) string {
	root := blackfriday.New(blackfriday.WithExtensions(baseExtensions)).Parse([]byte("# " + content + " #\n"))
	var title string
	root.Walk(func(n *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		if entering && n.Type == blackfriday.Heading {
			title = strings.TrimSpace(blackfridayText(n))
			return blackfriday.Terminate
		}
		return blackfriday.GoToNext
	})
	return title
}

func titleFromFilename(srcPath string) string {
	name := path.Base(srcPath)
	name = strings.TrimSuffix(name, path.Ext(name))
	if strings.EqualFold(name, "index") || strings.EqualFold(name, "readme") {
		if dir := path.Base(path.Dir(srcPath)); dir != "." && dir != "/" {
			name = dir
		}
	}
	title := strings.NewReplacer("-", " ", "_", " ").Replace(name)
	if strings.ToLower(title) != title {
		return title
	}
	r, size := utf8.DecodeRuneInString(title)
	if r == utf8.RuneError {
		return title
	}
	return string(unicode.ToUpper(r)) + title[size:]
}
