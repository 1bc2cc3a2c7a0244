// Package gate decides whether a navigable feature of the wallet UI is
// available for the current session.
//
// Decisions are pure: given a session snapshot and a feature key, Decide
// returns Allow, RedirectToLogin, or Locked with a reason. Because the
// KYC status can change underneath a mounted view, callers must re-run
// Decide on every render or navigation instead of caching the outcome.
//
//	decision := gate.Decide(store.Current(), gate.FeatureAccounts)
//	switch decision.Outcome {
//	case gate.Allow:
//		// render the view
//	case gate.RedirectToLogin:
//		// navigate to the login entry point
//	case gate.Locked:
//		// show decision.Message() with a retry affordance
//	}
//
// The feature table is fixed at compile time; there is exactly one place
// in the codebase that knows which features require KYC approval.
package gate
