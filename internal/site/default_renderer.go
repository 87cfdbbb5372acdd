package site

import (
	"bytes"
	"strings"

	"github.com/russross/blackfriday/v2"
	"golang.org/x/net/html"

	"git.home.luguber.info/inful/docsite-commonmark/internal/config"
	"git.home.luguber.info/inful/docsite-commonmark/internal/toc"
)

// Extensions every default render starts from. Anything else must be enabled
// through markdown_extensions.
const baseExtensions = blackfriday.NoIntraEmphasis | blackfriday.SpaceHeadings

// blackfridayOptions maps markdown_extensions names onto blackfriday settings.
// Names blackfriday has no equivalent for are ignored.
func blackfridayOptions(names []string) (blackfriday.Extensions, blackfriday.HTMLFlags) {
	ext := blackfriday.Extensions(baseExtensions)
	flags := blackfriday.UseXHTML
	for _, name := range names {
		switch name {
		case "tables":
			ext |= blackfriday.Tables
		case "fenced_code":
			ext |= blackfriday.FencedCode
		case "footnotes":
			ext |= blackfriday.Footnotes
		case "def_list":
			ext |= blackfriday.DefinitionLists
		case "attr_list":
			ext |= blackfriday.HeadingIDs
		case "nl2br":
			ext |= blackfriday.HardLineBreak
		case "extra":
			ext |= blackfriday.Tables | blackfriday.FencedCode | blackfriday.Footnotes | blackfriday.DefinitionLists | blackfriday.HeadingIDs
		case "smarty":
			flags |= blackfriday.Smartypants | blackfriday.SmartypantsDashes
		}
	}
	return ext, flags
}

// renderBlackfriday is the built-in page renderer.
func renderBlackfriday(page *Page, cfg *config.Config, files *Files) error {
	ext, flags := blackfridayOptions(cfg.MarkdownExtensions.Names())

	md := blackfriday.New(blackfriday.WithExtensions(ext))
	root := md.Parse([]byte(page.Markdown))

	links := NewLinkResolver(page.File, files)
	ids := toc.NewIDSet()
	root.Walk(func(n *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		if !entering {
			return blackfriday.GoToNext
		}
		switch n.Type {
		case blackfriday.Link, blackfriday.Image:
			n.LinkData.Destination = []byte(links.ResolveLink(string(n.LinkData.Destination)))
		case blackfriday.Heading:
			if n.HeadingID != "" {
				ids.Reserve(n.HeadingID)
			} else {
				n.HeadingID = ids.Unique(toc.Slugify(blackfridayText(n)))
			}
		}
		return blackfriday.GoToNext
	})

	r := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{Flags: flags})
	var buf bytes.Buffer
	r.RenderHeader(&buf, root)
	root.Walk(func(n *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		return r.RenderNode(&buf, n, entering)
	})
	r.RenderFooter(&buf, root)

	headings, err := HeadingsFromHTML(buf.String())
	if err != nil {
		return err
	}
	page.Content = buf.String()
	page.TOC = toc.Build(headings)
	return nil
}

// blackfridayText is the text of n with entity references decoded outside
// code spans; raw HTML spans are dropped.
func blackfridayText(n *blackfriday.Node) string {
	var b strings.Builder
	n.Walk(func(c *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		if !entering {
			return blackfriday.GoToNext
		}
		switch c.Type {
		case blackfriday.Text:
			b.WriteString(html.UnescapeString(string(c.Literal)))
		case blackfriday.Code:
			b.Write(c.Literal)
		}
		return blackfriday.GoToNext
	})
	return b.String()
}

// HeadingsFromHTML lists the h1-h6 elements of an HTML fragment that carry an
// id, in document order.
func HeadingsFromHTML(fragment string) ([]toc.Heading, error) {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return nil, err
	}

	var headings []toc.Heading
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && len(n.Data) == 2 && n.Data[0] == 'h' && n.Data[1] >= '1' && n.Data[1] <= '6' {
			if id := attr(n, "id"); id != "" {
				headings = append(headings, toc.Heading{
					Level: int(n.Data[1] - '0'),
					ID:    id,
					Title: strings.TrimSpace(textContent(n)),
				})
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return headings, nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
