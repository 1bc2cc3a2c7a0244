package logger

import (
	"log/slog"
	"time"
)

// Attribute helpers return an empty Attr for zero values so call sites can
// pass them unconditionally, e.g. log.Info("login", logger.Error(err)).

// Error creates an attribute for a single error under the key "error".
// Returns an empty Attr for nil errors.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component creates an attribute naming the emitting component
// (session, gate, wallet, storage).
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event creates an attribute for event names (login, logout, rehydrate).
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// Duration creates an attribute for a duration.
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Elapsed calculates and logs the duration since the start time.
func Elapsed(start time.Time) slog.Attr {
	return slog.Duration("elapsed", time.Since(start))
}

// UserID creates an attribute for the authenticated user's identifier.
// Returns an empty Attr when the ID is empty, e.g. for anonymous sessions.
func UserID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("user_id", id)
}

// Feature creates an attribute for a gated feature key.
func Feature(key string) slog.Attr {
	return slog.String("feature", key)
}

// KYCStatus creates an attribute for the identity-verification status.
func KYCStatus(status string) slog.Attr {
	return slog.String("kyc_status", status)
}

// StatusCode creates an attribute for an HTTP status code.
func StatusCode(code int) slog.Attr {
	return slog.Int("status_code", code)
}

// Method creates an attribute for an HTTP method.
func Method(method string) slog.Attr {
	return slog.String("method", method)
}

// Path creates an attribute for a request path.
func Path(path string) slog.Attr {
	return slog.String("path", path)
}
