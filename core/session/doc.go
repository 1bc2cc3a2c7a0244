// Package session owns the wallet client's authenticated session: the
// bearer token, the user identity record, and the server-authoritative
// KYC verification status.
//
// The Store is the single source of truth for "who is the caller and may
// they reach the backend". It persists the token and user record through a
// storage port, rehydrates them on startup, and clears everything on
// logout or on any authorization failure reported by the API client, so a
// single rejected request anywhere in the application cannot leave a
// dangling authenticated view.
//
//	store, err := session.New(fileStorage, apiClient,
//		session.WithLogger(log),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer store.Close()
//
//	restored, _ := store.Rehydrate(ctx)
//	if !restored {
//		err = store.Login(ctx, email, password)
//	}
//
// Navigation signals (logged in, logged out) are delivered on the Events
// channel; the UI layer decides what a signal means for routing.
//
// Session changes are guarded by a generation counter: a login or KYC
// response that resolves after a newer logout or login began is discarded
// instead of resurrecting stale state.
package session
