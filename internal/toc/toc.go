// Package toc builds page tables of contents from flat heading lists and
// generates the anchor ids headings are linked by.
//
// Both the host's default renderer and the CommonMark renderer feed headings
// through this package, so a theme sees the same TOC shape whichever parser
// produced the page.
package toc

// Heading is a single heading as it appears in rendered HTML.
type Heading struct {
	Level int
	ID    string
	Title string
}

// AnchorLink is one entry of a table of contents.
type AnchorLink struct {
	Title    string
	ID       string
	Level    int
	Children []*AnchorLink
}

// URL returns the in-page link for the entry.
func (a *AnchorLink) URL() string {
	return "#" + a.ID
}

// TOC is the ordered list of top-level entries.
type TOC []*AnchorLink

// Build nests a flat heading list. A heading becomes the child of the closest
// preceding heading with a lower level; skipped levels are not padded.
func Build(headings []Heading) TOC {
	var root TOC
	var stack []*AnchorLink

	for _, h := range headings {
		link := &AnchorLink{Title: h.Title, ID: h.ID, Level: h.Level}
		for len(stack) > 0 && stack[len(stack)-1].Level >= h.Level {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			root = append(root, link)
		} else {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, link)
		}
		stack = append(stack, link)
	}

	return root
}

// Len counts all entries, nested ones included.
func (t TOC) Len() int {
	n := 0
	for _, link := range t {
		n += 1 + TOC(link.Children).Len()
	}
	return n
}

// First returns the first top-level entry, or nil for an empty TOC.
func (t TOC) First() *AnchorLink {
	if len(t) == 0 {
		return nil
	}
	return t[0]
}
