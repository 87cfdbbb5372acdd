// Package shim substitutes the site generator's page renderer with the
// CommonMark converter from package commonmark.
//
// The generator exposes its page render hook through a versioned internals
// table (site.Internals). Install checks that the table still has the shape
// this package was written against, then rebinds the hook to a wrapper that
// renders with goldmark. The swap is all or nothing and is recorded in the
// table, so a second install fails instead of stacking wrappers.
//
// Plugin is the site plugin ("commonmark" in the plugins list) that installs
// the shim before a build and restores the default renderer after it.
package shim
