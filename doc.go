// Package walletkit is a client SDK for the DigiWallet backend. It owns
// the authenticated session, decides which application features the
// current user may reach, and exposes a typed client for every backend
// operation.
//
// The three layers compose bottom-up and can be used separately:
//
//   - core/session persists and guards the token + identity + KYC state
//   - core/gate turns a session snapshot into a per-feature verdict
//   - integration/wallet performs the HTTP and websocket calls
//
// This package wires them from environment configuration:
//
//	var cfg walletkit.Config
//	config.MustLoad(&cfg)
//
//	app, err := walletkit.New(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer app.Close()
//
//	if restored, _ := app.Rehydrate(ctx); !restored {
//		if err := app.Login(ctx, email, password); err != nil {
//			return err
//		}
//	}
//
//	if d := app.Access(gate.FeatureAccounts); d.Allowed() {
//		accounts, err := app.Wallet().Accounts(ctx)
//		...
//	}
//
// Any backend call rejected for authorization tears the session down
// centrally; subscribe to Events to react to the forced logout.
package walletkit
