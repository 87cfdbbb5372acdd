package commonmark

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// LinkResolver maps a link destination as written in Markdown to the one
// emitted in HTML.
type LinkResolver interface {
	ResolveLink(dest string) string
}

var linkResolverKey = parser.NewContextKey()

// linkTransformer rewrites link and image destinations through the
// LinkResolver stored in the parser context, if any.
type linkTransformer struct{}

func (linkTransformer) Transform(doc *ast.Document, _ text.Reader, pc parser.Context) {
	links, ok := pc.Get(linkResolverKey).(LinkResolver)
	if !ok || links == nil {
		return
	}

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Link:
			node.Destination = []byte(links.ResolveLink(string(node.Destination)))
		case *ast.Image:
			node.Destination = []byte(links.ResolveLink(string(node.Destination)))
		}
		return ast.WalkContinue, nil
	})
}
