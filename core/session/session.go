package session

import "strings"

// Status is the server-authoritative KYC verification state. The zero
// value means the status has not been fetched for the current session.
type Status string

const (
	// StatusUnset means no fetch has completed for this session.
	StatusUnset Status = ""
	// StatusPending means verification documents are under review.
	StatusPending Status = "pending"
	// StatusApproved unlocks the KYC-gated features.
	StatusApproved Status = "approved"
	// StatusRejected means verification was declined.
	StatusRejected Status = "rejected"
	// StatusError is the local sentinel for a failed status fetch. It is
	// never sent by the backend; gating treats it as not approved.
	StatusError Status = "error"
)

// ParseStatus normalizes a backend status string. Anything outside the
// known set maps to StatusError so gating stays conservative.
func ParseStatus(raw string) Status {
	switch Status(strings.ToLower(strings.TrimSpace(raw))) {
	case StatusPending:
		return StatusPending
	case StatusApproved:
		return StatusApproved
	case StatusRejected:
		return StatusRejected
	default:
		return StatusError
	}
}

// User is the identity record returned by the authentication endpoint and
// persisted alongside the token.
type User struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// FullName joins the name parts for display.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Credentials is the result of a successful login.
type Credentials struct {
	Token string
	User  User
}

// Session is an immutable snapshot of the current authentication state.
// Token and User are always set together; KYC is meaningful only while
// Token is present.
type Session struct {
	Token string
	User  User
	KYC   Status
}

// IsAuthenticated reports whether the snapshot carries a usable credential.
func (s Session) IsAuthenticated() bool {
	return s.Token != "" && s.User.ID != ""
}

// KYCApproved reports whether the gated features are unlocked.
func (s Session) KYCApproved() bool {
	return s.IsAuthenticated() && s.KYC == StatusApproved
}
