package session

// EventType identifies a navigation signal emitted by the Store.
type EventType int

const (
	// EventLoggedIn signals that the authenticated area can be entered.
	EventLoggedIn EventType = iota + 1
	// EventLoggedOut signals that the caller must return to the login
	// entry point.
	EventLoggedOut
)

// LogoutReason distinguishes an explicit logout from a forced one.
type LogoutReason string

const (
	// ReasonUserLogout is an explicit logout call.
	ReasonUserLogout LogoutReason = "user"
	// ReasonSessionExpired is a logout forced by an authorization
	// failure on any authenticated call.
	ReasonSessionExpired LogoutReason = "expired"
)

// Event is a navigation signal. Reason is set for EventLoggedOut only.
type Event struct {
	Type   EventType
	Reason LogoutReason
}
