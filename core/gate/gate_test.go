package gate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/finwallet/walletkit/core/gate"
	"github.com/finwallet/walletkit/core/session"
)

func authedSession(status session.Status) session.Session {
	return session.Session{
		Token: "abc",
		User:  session.User{ID: "1", Email: "test@example.com"},
		KYC:   status,
	}
}

var gatedFeatures = []gate.Feature{
	gate.FeatureAccounts,
	gate.FeatureTransactions,
	gate.FeatureStorePurchase,
}

var openFeatures = []gate.Feature{
	gate.FeatureHome,
	gate.FeatureNotifications,
	gate.FeatureProfile,
	gate.FeatureSettings,
}

func TestDecide(t *testing.T) {
	t.Parallel()

	t.Run("no session redirects to login for every feature", func(t *testing.T) {
		t.Parallel()

		for _, feature := range gate.Features() {
			decision := gate.Decide(session.Session{}, feature)
			assert.Equal(t, gate.RedirectToLogin, decision.Outcome, "feature %s", feature)
		}
	})

	t.Run("approved status allows every feature", func(t *testing.T) {
		t.Parallel()

		sess := authedSession(session.StatusApproved)
		for _, feature := range gate.Features() {
			assert.True(t, gate.Decide(sess, feature).Allowed(), "feature %s", feature)
		}
	})

	t.Run("non-approved statuses lock every gated feature", func(t *testing.T) {
		t.Parallel()

		statuses := []session.Status{
			session.StatusUnset,
			session.StatusPending,
			session.StatusRejected,
			session.StatusError,
		}
		for _, status := range statuses {
			sess := authedSession(status)
			for _, feature := range gatedFeatures {
				decision := gate.Decide(sess, feature)
				assert.Equal(t, gate.Locked, decision.Outcome,
					"status %q feature %s", status, feature)
			}
			for _, feature := range openFeatures {
				assert.True(t, gate.Decide(sess, feature).Allowed(),
					"status %q feature %s", status, feature)
			}
		}
	})

	t.Run("lock reasons follow the status", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			status session.Status
			reason gate.LockReason
		}{
			{session.StatusPending, gate.ReasonPending},
			{session.StatusRejected, gate.ReasonRejected},
			{session.StatusError, gate.ReasonUnknownError},
			{session.StatusUnset, gate.ReasonMissing},
		}
		for _, tt := range tests {
			decision := gate.Decide(authedSession(tt.status), gate.FeatureAccounts)
			assert.Equal(t, gate.Locked, decision.Outcome)
			assert.Equal(t, tt.reason, decision.Reason, "status %q", tt.status)
			assert.NotEmpty(t, decision.Message())
		}
	})

	t.Run("distinct messages per lock reason", func(t *testing.T) {
		t.Parallel()

		seen := map[string]gate.LockReason{}
		for _, status := range []session.Status{
			session.StatusPending,
			session.StatusRejected,
			session.StatusError,
			session.StatusUnset,
		} {
			decision := gate.Decide(authedSession(status), gate.FeatureAccounts)
			previous, duplicate := seen[decision.Message()]
			assert.False(t, duplicate, "message for %q duplicates %q", decision.Reason, previous)
			seen[decision.Message()] = decision.Reason
		}
	})

	t.Run("unknown features lock rather than expose", func(t *testing.T) {
		t.Parallel()

		decision := gate.Decide(authedSession(session.StatusPending), gate.Feature("mystery"))
		assert.Equal(t, gate.Locked, decision.Outcome)

		decision = gate.Decide(authedSession(session.StatusApproved), gate.Feature("mystery"))
		assert.True(t, decision.Allowed())
	})
}

func TestRequires(t *testing.T) {
	t.Parallel()

	for _, feature := range gatedFeatures {
		assert.Equal(t, gate.RequiresKYCApproved, gate.Requires(feature), "feature %s", feature)
	}
	for _, feature := range openFeatures {
		assert.Equal(t, gate.AlwaysAvailable, gate.Requires(feature), "feature %s", feature)
	}
}
