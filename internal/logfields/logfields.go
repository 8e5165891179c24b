package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeySlug       = "slug"
	KeyTag        = "tag"
	KeyFragment   = "fragment"
	KeyPage       = "page"
	KeyCount      = "count"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Slug(s string) slog.Attr         { return slog.String(KeySlug, s) }
func Tag(name string) slog.Attr       { return slog.String(KeyTag, name) }
func Fragment(name string) slog.Attr  { return slog.String(KeyFragment, name) }
func Page(p string) slog.Attr         { return slog.String(KeyPage, p) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
