package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID     = "build_id"
	KeyPage        = "page"
	KeyPath        = "path"
	KeyURL         = "url"
	KeyPlugin      = "plugin"
	KeyRenderer    = "renderer"
	KeyTarget      = "target"
	KeyHostVersion = "host_version"
	KeyExtension   = "extension"
	KeyLink        = "link"
	KeyStage       = "stage"
	KeyDurationMS  = "duration_ms"
	KeyCount       = "count"
	KeyError       = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Page(src string) slog.Attr       { return slog.String(KeyPage, src) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Plugin(name string) slog.Attr    { return slog.String(KeyPlugin, name) }
func Renderer(name string) slog.Attr  { return slog.String(KeyRenderer, name) }
func Target(name string) slog.Attr    { return slog.String(KeyTarget, name) }
func HostVersion(v string) slog.Attr  { return slog.String(KeyHostVersion, v) }
func Extension(name string) slog.Attr { return slog.String(KeyExtension, name) }
func Link(dest string) slog.Attr      { return slog.String(KeyLink, dest) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
