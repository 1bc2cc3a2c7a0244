package walletkit

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/finwallet/walletkit/core/gate"
	"github.com/finwallet/walletkit/core/logger"
	"github.com/finwallet/walletkit/core/session"
	"github.com/finwallet/walletkit/core/storage"
	redisstorage "github.com/finwallet/walletkit/integration/storage/redis"
	"github.com/finwallet/walletkit/integration/wallet"
)

// ErrInvalidConfig is returned by New for unusable configuration.
var ErrInvalidConfig = errors.New("invalid walletkit config")

// App wires the session store, feature gate and backend client into one
// ready-to-use unit. Safe for concurrent use.
type App struct {
	store   *session.Store
	client  *wallet.Client
	closers []io.Closer
}

// New assembles the application from configuration. The returned App owns
// the session store and any storage connections; release them with Close.
func New(ctx context.Context, cfg Config) (*App, error) {
	log := newLogger(cfg)

	st, closers, err := newStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	// The store and the client reference each other: the client reads the
	// current token from the store, and a rejected call tears the store
	// down. Closures over the store variable break the cycle.
	var store *session.Store

	client, err := wallet.New(
		wallet.Config{BaseURL: cfg.APIBaseURL, Timeout: cfg.APITimeout},
		wallet.TokenFunc(func() string {
			if store == nil {
				return ""
			}
			return store.Token()
		}),
		wallet.WithLogger(log),
		wallet.WithUnauthorizedHandler(wallet.UnauthorizedFunc(func(ctx context.Context) {
			if store != nil {
				store.HandleUnauthorized(ctx)
			}
		})),
	)
	if err != nil {
		closeAll(closers)
		return nil, err
	}

	store, err = session.New(st, client, session.WithLogger(log))
	if err != nil {
		closeAll(closers)
		return nil, err
	}

	return &App{
		store:   store,
		client:  client,
		closers: closers,
	}, nil
}

func newLogger(cfg Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	mode := logger.WithProduction(cfg.AppName)
	if cfg.Environment == "development" {
		mode = logger.WithDevelopment(cfg.AppName)
	}
	return logger.New(mode, logger.WithLevel(level))
}

// newStorage selects the persistence backend: Redis when configured, a
// state directory next, in-memory otherwise. An encryption key wraps
// whichever backend was chosen.
func newStorage(ctx context.Context, cfg Config) (storage.Storage, []io.Closer, error) {
	var (
		st      storage.Storage
		closers []io.Closer
	)
	switch {
	case cfg.RedisURL != "":
		rs, err := redisstorage.Connect(ctx, redisstorage.Config{
			ConnectionURL: cfg.RedisURL,
			KeyPrefix:     "walletkit:" + cfg.ProfileID,
		})
		if err != nil {
			return nil, nil, err
		}
		st = rs
		closers = append(closers, rs)
	case cfg.StateDir != "":
		fs, err := storage.NewFileStorage(cfg.StateDir)
		if err != nil {
			return nil, nil, err
		}
		st = fs
	default:
		st = storage.NewMemoryStorage()
	}

	if cfg.EncryptionKey != "" {
		key, err := base64.StdEncoding.DecodeString(cfg.EncryptionKey)
		if err != nil {
			closeAll(closers)
			return nil, nil, fmt.Errorf("%w: EncryptionKey must be base64", ErrInvalidConfig)
		}
		// The profile id is free-form; hash it into the fixed-size
		// per-profile key the encryption layer demands.
		profileKey := sha256.Sum256([]byte(cfg.ProfileID))
		es, err := storage.NewEncryptedStorage(st, key, profileKey[:])
		if err != nil {
			closeAll(closers)
			return nil, nil, errors.Join(ErrInvalidConfig, err)
		}
		st = es
	}
	return st, closers, nil
}

func closeAll(closers []io.Closer) {
	for _, c := range closers {
		_ = c.Close()
	}
}

// Rehydrate restores a persisted session, typically at startup. It
// reports whether a session was restored; a restored session gets its
// verification status refreshed in the background.
func (a *App) Rehydrate(ctx context.Context) (bool, error) {
	return a.store.Rehydrate(ctx)
}

// Login authenticates and establishes the session.
func (a *App) Login(ctx context.Context, email, password string) error {
	return a.store.Login(ctx, email, password)
}

// Logout ends the session and clears persisted state.
func (a *App) Logout(ctx context.Context) error {
	return a.store.Logout(ctx)
}

// Session returns a snapshot of the current session.
func (a *App) Session() session.Session {
	return a.store.Current()
}

// RefreshKYC re-fetches the verification status from the backend.
func (a *App) RefreshKYC(ctx context.Context) error {
	return a.store.RefreshKYCStatus(ctx)
}

// Access evaluates a feature against the current session. Evaluate on
// every render; the verdict changes as the session does.
func (a *App) Access(feature gate.Feature) gate.Decision {
	return gate.Decide(a.store.Current(), feature)
}

// Wallet exposes the backend client for feature calls. Callers are
// expected to consult Access first; the backend enforces the same rules
// regardless.
func (a *App) Wallet() *wallet.Client {
	return a.client
}

// Events returns the session lifecycle event channel, e.g. for a UI that
// must react to a forced logout.
func (a *App) Events() <-chan session.Event {
	return a.store.Events()
}

// Close releases the session store and any storage connections.
func (a *App) Close() {
	a.store.Close()
	closeAll(a.closers)
}
