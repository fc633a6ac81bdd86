package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyProject    = "project"
	KeyPage       = "page"
	KeyTemplate   = "template"
	KeyOutput     = "output"
	KeyBuildID    = "build_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyCount      = "count"
	KeyPath       = "path"
	KeyError      = "error"
	KeyReason     = "reason"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Project(root string) slog.Attr   { return slog.String(KeyProject, root) }
func Page(id string) slog.Attr        { return slog.String(KeyPage, id) }
func Template(name string) slog.Attr  { return slog.String(KeyTemplate, name) }
func Output(path string) slog.Attr    { return slog.String(KeyOutput, path) }
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Reason(r string) slog.Attr       { return slog.String(KeyReason, r) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
