// Package site is the documentation site generator: it discovers Markdown
// files under docs_dir, renders them to HTML, wraps them in the theme and
// writes the result to site_dir.
//
// Rendering goes through a single package-level hook, reachable by plugins via
// Internals(). The default hook renders with blackfriday; plugins may replace
// it for the duration of a build. The table is versioned by InternalsVersion so
// a plugin can refuse to bind to internals it was not written against.
package site
