package session

import "errors"

var (
	// ErrAuthenticationFailed is returned when the backend rejects the
	// supplied credentials. The joined error carries the server-supplied
	// message when one was given.
	ErrAuthenticationFailed = errors.New("authentication failed")
	// ErrSessionExpired is returned when any authenticated call receives
	// an authorization failure. Observing it always coincides with the
	// session being cleared.
	ErrSessionExpired = errors.New("session expired")
	// ErrNotAuthenticated is returned by operations that require an
	// active session.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrLoginSuperseded is returned when a login response resolved after
	// a newer logout or login had already changed the session.
	ErrLoginSuperseded = errors.New("login superseded by a newer session change")
	// ErrStatusFetch is returned when the KYC status could not be
	// refreshed; the session degrades to StatusError rather than keeping
	// a stale value.
	ErrStatusFetch = errors.New("kyc status fetch failed")
)
