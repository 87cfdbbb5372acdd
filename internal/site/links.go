package site

import (
	"log/slog"
	"net/url"
	"path"
	"strings"

	"git.home.luguber.info/inful/docsite-commonmark/internal/logfields"
)

// RelativeURL returns url relative to the page at other. Both are
// site-relative URLs; a trailing slash on url is kept.
func RelativeURL(target, other string) string {
	if other != "." {
		dir, name := path.Split(other)
		if strings.Contains(name, ".") {
			other = dir
		}
	}

	rel := relPath(target, other)
	if strings.HasSuffix(target, "/") {
		if rel == "." {
			return "./"
		}
		return rel + "/"
	}
	return rel
}

func relPath(target, base string) string {
	t := segments(target)
	b := segments(base)

	common := 0
	for common < len(t) && common < len(b) && t[common] == b[common] {
		common++
	}

	parts := make([]string, 0, len(b)-common+len(t)-common)
	for range b[common:] {
		parts = append(parts, "..")
	}
	parts = append(parts, t[common:]...)
	if len(parts) == 0 {
		return "."
	}
	return strings.Join(parts, "/")
}

func segments(p string) []string {
	clean := path.Clean("/" + p)
	if clean == "/" {
		return nil
	}
	return strings.Split(strings.TrimPrefix(clean, "/"), "/")
}

// LinkResolver rewrites links between source documents into links between
// built pages, relative to the page being rendered.
type LinkResolver struct {
	file   *File
	files  *Files
	logger *slog.Logger
}

// NewLinkResolver binds a resolver to the page file being rendered.
func NewLinkResolver(file *File, files *Files) *LinkResolver {
	return &LinkResolver{file: file, files: files, logger: slog.Default()}
}

// ResolveLink maps a link destination as written in Markdown to the URL it
// must have in the page's HTML. External URLs, absolute paths, in-page
// anchors and targets that are not part of the site are returned unchanged.
func (r *LinkResolver) ResolveLink(dest string) string {
	if r == nil || r.file == nil || dest == "" {
		return dest
	}
	u, err := url.Parse(dest)
	if err != nil || u.Scheme != "" || u.Host != "" || u.Opaque != "" {
		return dest
	}
	if u.Path == "" || strings.HasPrefix(u.Path, "/") {
		return dest
	}

	targetSrc := path.Clean(path.Join(path.Dir(r.file.SrcPath), u.Path))
	target := r.files.Get(targetSrc)
	if target == nil {
		if markdownExtensions[strings.ToLower(path.Ext(u.Path))] {
			r.logger.Warn("Documentation file links to a target not found in docs",
				logfields.Page(r.file.SrcPath), logfields.Link(dest))
		}
		return dest
	}

	out := target.URLRelativeTo(r.file)
	if u.RawQuery != "" {
		out += "?" + u.RawQuery
	}
	if u.Fragment != "" {
		out += "#" + u.EscapedFragment()
	}
	return out
}
