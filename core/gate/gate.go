package gate

import "github.com/finwallet/walletkit/core/session"

// Feature identifies a navigable application section.
type Feature string

const (
	FeatureHome          Feature = "home"
	FeatureAccounts      Feature = "accounts"
	FeatureTransactions  Feature = "transactions"
	FeatureStorePurchase Feature = "store-purchase"
	FeatureNotifications Feature = "notifications"
	FeatureProfile       Feature = "profile"
	FeatureSettings      Feature = "settings"
)

// Requirement is the capability a feature demands from the session.
type Requirement int

const (
	// AlwaysAvailable features only require an authenticated session.
	AlwaysAvailable Requirement = iota
	// RequiresKYCApproved features additionally require an approved
	// verification status.
	RequiresKYCApproved
)

// requirements is the immutable feature gate table. Money-moving sections
// are locked until identity verification is approved.
var requirements = map[Feature]Requirement{
	FeatureHome:          AlwaysAvailable,
	FeatureAccounts:      RequiresKYCApproved,
	FeatureTransactions:  RequiresKYCApproved,
	FeatureStorePurchase: RequiresKYCApproved,
	FeatureNotifications: AlwaysAvailable,
	FeatureProfile:       AlwaysAvailable,
	FeatureSettings:      AlwaysAvailable,
}

// Features lists every known feature key in a stable order, for callers
// that render navigation.
func Features() []Feature {
	return []Feature{
		FeatureHome,
		FeatureAccounts,
		FeatureTransactions,
		FeatureStorePurchase,
		FeatureNotifications,
		FeatureProfile,
		FeatureSettings,
	}
}

// Requires returns the requirement for a feature. Unknown feature keys
// report RequiresKYCApproved so a typo locks rather than exposes.
func Requires(feature Feature) Requirement {
	req, ok := requirements[feature]
	if !ok {
		return RequiresKYCApproved
	}
	return req
}

// Outcome is the gate's verdict.
type Outcome int

const (
	// Allow renders the feature.
	Allow Outcome = iota
	// RedirectToLogin means there is no valid session.
	RedirectToLogin
	// Locked means the session is valid but verification has not
	// approved this feature.
	Locked
)

// LockReason refines a Locked outcome. Each reason maps to a distinct
// user-facing message; the outcome is the same.
type LockReason string

const (
	// ReasonNone accompanies non-Locked outcomes.
	ReasonNone LockReason = ""
	// ReasonPending: verification is under review.
	ReasonPending LockReason = "pending"
	// ReasonRejected: verification was declined.
	ReasonRejected LockReason = "rejected"
	// ReasonMissing: no verification status is known for this session.
	ReasonMissing LockReason = "missing"
	// ReasonUnknownError: the status fetch failed; treated as not
	// approved rather than trusting a stale value.
	ReasonUnknownError LockReason = "unknown-error"
)

// Decision is the result of evaluating a feature against a session.
type Decision struct {
	Outcome Outcome
	Reason  LockReason
}

// Allowed reports whether the feature can be rendered.
func (d Decision) Allowed() bool {
	return d.Outcome == Allow
}

// Message returns the user-facing explanation for the decision.
func (d Decision) Message() string {
	switch d.Outcome {
	case Allow:
		return ""
	case RedirectToLogin:
		return "Please log in to continue."
	}

	switch d.Reason {
	case ReasonPending:
		return "Your account is still waiting for KYC approval."
	case ReasonRejected:
		return "Your identity verification was declined. Please contact support."
	case ReasonMissing:
		return "Complete identity verification to unlock this feature."
	default:
		return "We couldn't confirm your verification status. Please try again."
	}
}

// Decide evaluates a feature key against a session snapshot. It has no
// side effects and must be re-evaluated on every render.
func Decide(sess session.Session, feature Feature) Decision {
	if !sess.IsAuthenticated() {
		return Decision{Outcome: RedirectToLogin}
	}

	if Requires(feature) == AlwaysAvailable {
		return Decision{Outcome: Allow}
	}

	switch sess.KYC {
	case session.StatusApproved:
		return Decision{Outcome: Allow}
	case session.StatusPending:
		return Decision{Outcome: Locked, Reason: ReasonPending}
	case session.StatusRejected:
		return Decision{Outcome: Locked, Reason: ReasonRejected}
	case session.StatusError:
		return Decision{Outcome: Locked, Reason: ReasonUnknownError}
	default:
		return Decision{Outcome: Locked, Reason: ReasonMissing}
	}
}
