package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRequestID  = "request_id"
	KeyMethod     = "method"
	KeyPath       = "path"
	KeyStatus     = "status"
	KeyUserAgent  = "user_agent"
	KeyRemoteAddr = "remote_addr"
	KeySlug       = "slug"
	KeyPageID     = "page_id"
	KeyCacheKey   = "cache_key"
	KeyEventType  = "event_type"
	KeyOperation  = "operation"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RequestID(id string) slog.Attr    { return slog.String(KeyRequestID, id) }
func Method(m string) slog.Attr        { return slog.String(KeyMethod, m) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func Status(code int) slog.Attr        { return slog.Int(KeyStatus, code) }
func UserAgent(ua string) slog.Attr    { return slog.String(KeyUserAgent, ua) }
func RemoteAddr(addr string) slog.Attr { return slog.String(KeyRemoteAddr, addr) }
func Slug(s string) slog.Attr          { return slog.String(KeySlug, s) }
func PageID(id string) slog.Attr       { return slog.String(KeyPageID, id) }
func CacheKey(k string) slog.Attr      { return slog.String(KeyCacheKey, k) }
func EventType(t string) slog.Attr     { return slog.String(KeyEventType, t) }
func Operation(op string) slog.Attr    { return slog.String(KeyOperation, op) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
