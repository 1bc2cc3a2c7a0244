// Package wallet is the HTTP client for the DigiWallet backend API. It is
// the only sanctioned path to the backend: every authenticated call
// attaches the bearer token from the injected token provider, and any
// authorization failure triggers the registered unauthorized handler
// before the error is returned, so a single rejected request anywhere in
// the application tears down the session centrally.
//
//	client, err := wallet.New(wallet.Config{BaseURL: baseURL}, tokenProvider,
//		wallet.WithUnauthorizedHandler(handler),
//		wallet.WithLogger(log),
//	)
//
// Login and Register are the only unauthenticated calls; a rejected login
// surfaces session.ErrAuthenticationFailed with the server-supplied
// message instead of tearing anything down.
//
// Money-moving operations (deposit, withdraw, transfer, QR payments) send
// a client-generated idempotency key so a retried request cannot double
// apply, and validate their input locally before any network call.
package wallet
