// Package commonmark renders page Markdown with goldmark, a CommonMark
// compliant parser.
//
// A Converter is built once per build from the site's markdown_extensions and
// reused for every page. Extension names are those of the site config; New
// maps each onto goldmark extenders and options. Names with no goldmark
// counterpart are reported by Unsupported and logged, or rejected when
// Options.Strict is set.
//
// Heading ids follow the site's slug rules (see package toc), and link and
// image destinations are passed through a LinkResolver so links between
// Markdown sources point at the built pages.
package commonmark
