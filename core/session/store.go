package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/finwallet/walletkit/core/logger"
	"github.com/finwallet/walletkit/core/storage"
)

// Storage keys, mirroring the two values the browser front end kept in
// local storage.
const (
	tokenKey = "authToken"
	userKey  = "userInfo"
)

// refreshTimeout bounds the background KYC refresh triggered by login and
// rehydrate.
const refreshTimeout = 15 * time.Second

// Backend is the slice of the API client the Store depends on. The
// KYCStatus call authenticates with the current token and reports an
// authorization failure as ErrSessionExpired like every other
// authenticated call.
type Backend interface {
	Login(ctx context.Context, email, password string) (Credentials, error)
	KYCStatus(ctx context.Context) (Status, error)
}

// Store is the single owner of the session. All methods are safe for
// concurrent use; persistence goes through the injected storage port and
// nowhere else.
type Store struct {
	storage storage.Storage
	backend Backend
	log     *slog.Logger

	mu      sync.RWMutex
	current Session
	// gen increments on every transition that invalidates in-flight
	// responses (logout, forced logout, each login attempt, rehydrate).
	gen uint64

	events chan Event
	wg     sync.WaitGroup
}

// Option configures the Store.
type Option func(*Store)

// WithLogger sets the logger. Defaults to slog.Default.
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// WithEventBuffer sets the navigation event channel capacity. When the
// buffer is full, new events are dropped; the channel is a hint for the
// UI, not a durable queue.
func WithEventBuffer(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.events = make(chan Event, n)
		}
	}
}

// New creates a session store over the given storage port and backend.
func New(st storage.Storage, backend Backend, opts ...Option) (*Store, error) {
	if st == nil {
		return nil, errors.New("storage is required")
	}
	if backend == nil {
		return nil, errors.New("backend is required")
	}

	s := &Store{
		storage: st,
		backend: backend,
		log:     slog.Default(),
		events:  make(chan Event, 8),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Current returns a snapshot of the session. The snapshot is a value; it
// does not change when the session does, so gate decisions must re-read
// it on every evaluation.
func (s *Store) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Token implements the API client's token provider.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Token
}

// Events delivers navigation signals. The channel is never closed.
func (s *Store) Events() <-chan Event {
	return s.events
}

// Close waits for background status refreshes to finish.
func (s *Store) Close() {
	s.wg.Wait()
}

// Rehydrate restores the session from durable storage. The user record is
// trusted from storage; only the KYC status is re-fetched, in the
// background, because it can change between sessions. A half-written
// state (exactly one of the two keys) is repaired by clearing both.
// Returns true when a session was restored.
func (s *Store) Rehydrate(ctx context.Context) (bool, error) {
	tokenRaw, tokenErr := s.storage.Load(ctx, tokenKey)
	userRaw, userErr := s.storage.Load(ctx, userKey)

	tokenMissing := errors.Is(tokenErr, storage.ErrKeyNotFound)
	userMissing := errors.Is(userErr, storage.ErrKeyNotFound)

	switch {
	case tokenErr != nil && !tokenMissing:
		return false, tokenErr
	case userErr != nil && !userMissing:
		return false, userErr
	case tokenMissing && userMissing:
		return false, nil
	case tokenMissing || userMissing:
		// Never run half-authenticated: a partial write from a previous
		// crash is cleared rather than trusted.
		s.log.Warn("repairing half-written session state", logger.Component("session"))
		s.clearStorage(ctx)
		return false, nil
	}

	var user User
	if err := json.Unmarshal(userRaw, &user); err != nil {
		s.log.Warn("discarding corrupt user record",
			logger.Component("session"), logger.Error(err))
		s.clearStorage(ctx)
		return false, nil
	}

	s.mu.Lock()
	s.gen++
	s.current = Session{Token: string(tokenRaw), User: user}
	s.mu.Unlock()

	s.log.Info("session restored",
		logger.Component("session"), logger.Event("rehydrate"), logger.UserID(user.ID))

	s.refreshAsync(ctx)
	return true, nil
}

// Login exchanges credentials for a session. On success the token and user
// record are stored durably and in memory, a navigation signal fires, and
// a background KYC status fetch starts. On failure the session is
// unchanged and the returned error wraps ErrAuthenticationFailed with the
// server-supplied message. No retry is performed.
func (s *Store) Login(ctx context.Context, email, password string) error {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	creds, err := s.backend.Login(ctx, email, password)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.gen != gen {
		// A logout (or newer login) happened while this request was in
		// flight; its response must not resurrect the session.
		s.mu.Unlock()
		return ErrLoginSuperseded
	}
	s.current = Session{Token: creds.Token, User: creds.User}
	// Persisting under the lock keeps the durable write ordered with a
	// concurrent logout's clear; a straggling write can no longer put the
	// credentials back after the session ended.
	s.persist(ctx, creds)
	s.mu.Unlock()

	s.log.Info("logged in",
		logger.Component("session"), logger.Event("login"), logger.UserID(creds.User.ID))
	s.emit(Event{Type: EventLoggedIn})

	s.refreshAsync(ctx)
	return nil
}

// Logout clears the session from memory and durable storage and signals
// navigation to the login entry point. It is idempotent: with no active
// session only the signal is emitted.
func (s *Store) Logout(ctx context.Context) error {
	return s.logout(ctx, ReasonUserLogout)
}

// HandleUnauthorized implements the API client's unauthorized hook: any
// authenticated call that is rejected clears the session exactly like an
// explicit logout, with an "expired" reason on the navigation signal.
func (s *Store) HandleUnauthorized(ctx context.Context) {
	if err := s.logout(ctx, ReasonSessionExpired); err != nil {
		s.log.Warn("clearing expired session",
			logger.Component("session"), logger.Error(err))
	}
}

func (s *Store) logout(ctx context.Context, reason LogoutReason) error {
	s.mu.Lock()
	s.gen++
	userID := s.current.User.ID
	s.current = Session{}
	err := s.clearStorage(ctx)
	s.mu.Unlock()

	s.log.Info("logged out",
		logger.Component("session"), logger.Event("logout"),
		slog.String("reason", string(reason)), logger.UserID(userID))
	s.emit(Event{Type: EventLoggedOut, Reason: reason})
	return err
}

// RefreshKYCStatus fetches the current verification status. On any
// transport or server failure the status degrades to StatusError so
// downstream gating reflects the failed fetch instead of a stale
// approval. The result is discarded if the session changed while the
// fetch was in flight.
func (s *Store) RefreshKYCStatus(ctx context.Context) error {
	s.mu.RLock()
	gen := s.gen
	authenticated := s.current.IsAuthenticated()
	s.mu.RUnlock()

	if !authenticated {
		return ErrNotAuthenticated
	}

	status, fetchErr := s.backend.KYCStatus(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gen != gen {
		// Session was cleared or replaced mid-fetch (including a forced
		// logout triggered by this very call receiving a 401).
		return nil
	}

	if fetchErr != nil {
		s.current.KYC = StatusError
		s.log.Warn("kyc status fetch failed",
			logger.Component("session"), logger.Error(fetchErr))
		return errors.Join(ErrStatusFetch, fetchErr)
	}

	s.current.KYC = status
	s.log.Debug("kyc status refreshed",
		logger.Component("session"), logger.KYCStatus(string(status)))
	return nil
}

// refreshAsync runs RefreshKYCStatus in the background, detached from the
// caller's context so a short-lived request context does not abort it.
func (s *Store) refreshAsync(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		refreshCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), refreshTimeout)
		defer cancel()
		// Degrading to StatusError is already handled and logged inside.
		_ = s.RefreshKYCStatus(refreshCtx)
	}()
}

// persist writes both session keys. Persistence failures do not undo a
// successful login; the session stays usable in memory and the next
// rehydrate simply starts unauthenticated.
func (s *Store) persist(ctx context.Context, creds Credentials) {
	userRaw, err := json.Marshal(creds.User)
	if err == nil {
		err = errors.Join(
			s.storage.Save(ctx, tokenKey, []byte(creds.Token)),
			s.storage.Save(ctx, userKey, userRaw),
		)
	}
	if err != nil {
		s.log.Warn("persisting session failed",
			logger.Component("session"), logger.Error(err))
	}
}

func (s *Store) clearStorage(ctx context.Context) error {
	return errors.Join(
		s.storage.Delete(ctx, tokenKey),
		s.storage.Delete(ctx, userKey),
	)
}

// emit delivers an event without blocking; when the buffer is full the
// event is dropped.
func (s *Store) emit(event Event) {
	select {
	case s.events <- event:
	default:
		s.log.Debug("event buffer full, dropping navigation signal",
			logger.Component("session"))
	}
}
