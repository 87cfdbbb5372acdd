package commonmark

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/util"

	"git.home.luguber.info/inful/docsite-commonmark/internal/toc"
)

// assignHeadingIDs gives every heading without an explicit id one slugged
// from its text. Explicit ids are reserved first so generated ones never
// collide with them. Each call starts a fresh id set.
func assignHeadingIDs(doc ast.Node, src []byte) {
	var headings []*ast.Heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok {
			headings = append(headings, h)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	ids := toc.NewIDSet()
	for _, h := range headings {
		if id := headingID(h); id != "" {
			ids.Reserve(id)
		}
	}
	for _, h := range headings {
		if headingID(h) != "" {
			continue
		}
		h.SetAttributeString("id", []byte(ids.Unique(toc.Slugify(plainText(h, src)))))
	}
}

func headingID(h *ast.Heading) string {
	v, ok := h.AttributeString("id")
	if !ok {
		return ""
	}
	switch id := v.(type) {
	case []byte:
		return string(id)
	case string:
		return id
	}
	return ""
}

// plainText is the text a reader sees for n: link labels without their
// destinations, raw HTML tags and images dropped, escapes and entity
// references decoded, line breaks as spaces.
func plainText(n ast.Node, src []byte) string {
	var b, run strings.Builder
	// Adjacent text nodes are decoded together so an escape split across
	// segments still resolves.
	flush := func() {
		b.Write(decode([]byte(run.String())))
		run.Reset()
	}
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.CodeSpan:
			flush()
			for s := t.FirstChild(); s != nil; s = s.NextSibling() {
				if txt, ok := s.(*ast.Text); ok {
					b.Write(txt.Segment.Value(src))
				}
			}
			return ast.WalkSkipChildren, nil
		case *ast.Text:
			run.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				run.WriteByte(' ')
			}
		case *ast.String:
			if t.IsCode() || t.IsRaw() {
				flush()
				b.Write(t.Value)
			} else {
				run.Write(t.Value)
			}
		case *ast.AutoLink:
			run.Write(t.Label(src))
		case *ast.RawHTML, *ast.Image:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	flush()
	return strings.TrimSpace(b.String())
}

// decode applies the same unescaping goldmark's HTML writer does to text.
func decode(v []byte) []byte {
	return util.ResolveEntityNames(util.ResolveNumericReferences(util.UnescapePunctuations(v)))
}
