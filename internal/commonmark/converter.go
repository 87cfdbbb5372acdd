package commonmark

import (
	"bytes"
	"log/slog"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"git.home.luguber.info/inful/docsite-commonmark/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite-commonmark/internal/logfields"
	"git.home.luguber.info/inful/docsite-commonmark/internal/toc"
)

// ErrUnsupportedExtension is returned by New in strict mode when the site
// enables an extension or extension setting goldmark cannot honour.
var ErrUnsupportedExtension = errors.ConfigError("unsupported markdown extension").Build()

// Options configures a Converter.
type Options struct {
	// Extensions are site extension names, in config order.
	Extensions []string
	// ExtensionConfigs holds per-extension settings keyed by extension name.
	ExtensionConfigs map[string]map[string]any
	// Unsafe lets raw HTML through. Without it goldmark omits raw HTML.
	Unsafe bool
	// Strict turns unsupported extensions into an error instead of a warning.
	Strict bool
}

// Result is one rendered document.
type Result struct {
	HTML     string
	Headings []toc.Heading
}

// Converter renders Markdown documents with a fixed goldmark configuration.
// It is safe for sequential use; each Render gets its own parser context.
type Converter struct {
	md          goldmark.Markdown
	permalink   string
	unsupported []string
}

// New builds a converter for the given options.
func New(opts Options, logger *slog.Logger) (*Converter, error) {
	if logger == nil {
		logger = slog.Default()
	}

	b := &engineBuilder{enabled: make(map[string]bool)}
	b.apply(opts.Extensions, opts.ExtensionConfigs)

	if len(b.unsupported) > 0 {
		if opts.Strict {
			return nil, ErrUnsupportedExtension.WithContext("extensions", strings.Join(b.unsupported, ", "))
		}
		for _, name := range b.unsupported {
			logger.Warn("Ignoring markdown extension not supported by goldmark", logfields.Extension(name))
		}
	}

	parserOpts := append([]parser.Option{
		parser.WithASTTransformers(util.Prioritized(linkTransformer{}, 100)),
	}, b.parserOpts...)
	if b.attributes {
		parserOpts = append(parserOpts, parser.WithAttribute())
	}

	rendererOpts := b.rendererOpts
	if opts.Unsafe {
		rendererOpts = append(rendererOpts, html.WithUnsafe())
	}

	md := goldmark.New(
		goldmark.WithExtensions(b.extenders...),
		goldmark.WithParserOptions(parserOpts...),
		goldmark.WithRendererOptions(rendererOpts...),
	)

	return &Converter{
		md:          md,
		permalink:   b.permalink,
		unsupported: b.unsupported,
	}, nil
}

// Unsupported lists the extension names and settings that were ignored.
func (c *Converter) Unsupported() []string {
	return append([]string(nil), c.unsupported...)
}

// Render converts src to HTML and lists its headings. links may be nil, in
// which case destinations are emitted as written. Renderer errors are
// returned as-is.
func (c *Converter) Render(src []byte, links LinkResolver) (Result, error) {
	pc := parser.NewContext()
	if links != nil {
		pc.Set(linkResolverKey, links)
	}
	doc := c.md.Parser().Parse(text.NewReader(src), parser.WithContext(pc))
	assignHeadingIDs(doc, src)

	headings, nodes := collectHeadings(doc, src)
	if c.permalink != "" {
		for i, n := range nodes {
			n.AppendChild(n, permalink(headings[i].ID, c.permalink))
		}
	}

	var buf bytes.Buffer
	if err := c.md.Renderer().Render(&buf, src, doc); err != nil {
		return Result{}, err
	}
	return Result{HTML: buf.String(), Headings: headings}, nil
}

// collectHeadings returns every heading that carries an id, in document order.
func collectHeadings(doc ast.Node, src []byte) ([]toc.Heading, []*ast.Heading) {
	var (
		headings []toc.Heading
		nodes    []*ast.Heading
	)
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if id := headingID(h); id != "" {
			headings = append(headings, toc.Heading{Level: h.Level, ID: id, Title: plainText(h, src)})
			nodes = append(nodes, h)
		}
		return ast.WalkSkipChildren, nil
	})
	return headings, nodes
}

func permalink(id, symbol string) *ast.Link {
	link := ast.NewLink()
	link.Destination = []byte("#" + id)
	link.Title = []byte("Permanent link")
	link.SetAttributeString("class", []byte("headerlink"))
	link.AppendChild(link, ast.NewString([]byte(symbol)))
	return link
}
