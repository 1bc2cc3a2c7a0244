package session_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finwallet/walletkit/core/session"
	"github.com/finwallet/walletkit/core/storage"
)

type stubBackend struct {
	loginFn func(ctx context.Context, email, password string) (session.Credentials, error)
	kycFn   func(ctx context.Context) (session.Status, error)
}

func (b *stubBackend) Login(ctx context.Context, email, password string) (session.Credentials, error) {
	if b.loginFn == nil {
		return session.Credentials{}, session.ErrAuthenticationFailed
	}
	return b.loginFn(ctx, email, password)
}

func (b *stubBackend) KYCStatus(ctx context.Context) (session.Status, error) {
	if b.kycFn == nil {
		return session.StatusPending, nil
	}
	return b.kycFn(ctx)
}

var testUser = session.User{
	ID:        "1",
	FirstName: "A",
	LastName:  "B",
	Email:     "test@example.com",
}

func approvedBackend() *stubBackend {
	return &stubBackend{
		loginFn: func(_ context.Context, email, password string) (session.Credentials, error) {
			if email == "test@example.com" && password == "password123" {
				return session.Credentials{Token: "abc", User: testUser}, nil
			}
			return session.Credentials{}, fmt.Errorf("%w: Invalid credentials", session.ErrAuthenticationFailed)
		},
		kycFn: func(context.Context) (session.Status, error) {
			return session.StatusApproved, nil
		},
	}
}

func newStore(t *testing.T, backend session.Backend) (*session.Store, *storage.MemoryStorage) {
	t.Helper()
	st := storage.NewMemoryStorage()
	store, err := session.New(st, backend)
	require.NoError(t, err)
	t.Cleanup(store.Close)
	return store, st
}

func expectEvent(t *testing.T, store *session.Store) session.Event {
	t.Helper()
	select {
	case event := <-store.Events():
		return event
	case <-time.After(time.Second):
		t.Fatal("expected a navigation signal")
		return session.Event{}
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("success populates and persists the session", func(t *testing.T) {
		t.Parallel()

		store, st := newStore(t, approvedBackend())
		require.NoError(t, store.Login(ctx, "test@example.com", "password123"))

		current := store.Current()
		assert.Equal(t, "abc", current.Token)
		assert.Equal(t, testUser, current.User)

		event := expectEvent(t, store)
		assert.Equal(t, session.EventLoggedIn, event.Type)

		// Exactly one navigation signal.
		select {
		case extra := <-store.Events():
			t.Fatalf("unexpected second signal: %+v", extra)
		default:
		}

		token, err := st.Load(ctx, "authToken")
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), token)

		// Background status refresh lands without another login.
		assert.Eventually(t, func() bool {
			return store.Current().KYC == session.StatusApproved
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("wrong credentials leave the session empty", func(t *testing.T) {
		t.Parallel()

		store, _ := newStore(t, approvedBackend())
		err := store.Login(ctx, "test@example.com", "wrong")

		require.Error(t, err)
		assert.ErrorIs(t, err, session.ErrAuthenticationFailed)
		assert.Contains(t, err.Error(), "Invalid credentials")
		assert.False(t, store.Current().IsAuthenticated())

		select {
		case event := <-store.Events():
			t.Fatalf("unexpected signal: %+v", event)
		default:
		}
	})

	t.Run("stale login cannot resurrect a session after logout", func(t *testing.T) {
		t.Parallel()

		entered := make(chan struct{})
		release := make(chan struct{})
		backend := approvedBackend()
		backend.loginFn = func(context.Context, string, string) (session.Credentials, error) {
			close(entered)
			<-release
			return session.Credentials{Token: "stale", User: testUser}, nil
		}
		store, _ := newStore(t, backend)

		done := make(chan error, 1)
		go func() {
			done <- store.Login(ctx, "test@example.com", "password123")
		}()

		// Logout while the login request is still in flight, then let the
		// login response arrive.
		<-entered
		require.NoError(t, store.Logout(ctx))
		close(release)

		assert.ErrorIs(t, <-done, session.ErrLoginSuperseded)
		assert.False(t, store.Current().IsAuthenticated())
	})

	t.Run("logout during the persist step cannot resurrect the session", func(t *testing.T) {
		t.Parallel()

		// Stall the durable write so a logout arrives while the login is
		// mid-persist. The clear must end up ordered after the write, not
		// interleaved inside it.
		st := &gatedStorage{
			Storage: storage.NewMemoryStorage(),
			entered: make(chan struct{}),
			release: make(chan struct{}),
		}
		store, err := session.New(st, approvedBackend())
		require.NoError(t, err)
		t.Cleanup(store.Close)

		loginDone := make(chan error, 1)
		go func() {
			loginDone <- store.Login(ctx, "test@example.com", "password123")
		}()

		<-st.entered
		logoutDone := make(chan error, 1)
		go func() {
			logoutDone <- store.Logout(ctx)
		}()
		// Give the logout time to contend with the stalled persist.
		time.Sleep(50 * time.Millisecond)
		close(st.release)

		require.NoError(t, <-logoutDone)
		<-loginDone

		assert.False(t, store.Current().IsAuthenticated())

		restored, err := store.Rehydrate(ctx)
		require.NoError(t, err)
		assert.False(t, restored, "storage must stay empty after the logout")
		assert.False(t, store.Current().IsAuthenticated())
	})
}

// gatedStorage stalls Save calls until released, signalling the first one.
type gatedStorage struct {
	storage.Storage
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (g *gatedStorage) Save(ctx context.Context, key string, value []byte) error {
	g.once.Do(func() { close(g.entered) })
	<-g.release
	return g.Storage.Save(ctx, key, value)
}

func TestLogout(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("clears memory and storage", func(t *testing.T) {
		t.Parallel()

		store, st := newStore(t, approvedBackend())
		require.NoError(t, store.Login(ctx, "test@example.com", "password123"))
		expectEvent(t, store)

		require.NoError(t, store.Logout(ctx))

		assert.False(t, store.Current().IsAuthenticated())
		assert.Empty(t, store.Current().KYC)

		event := expectEvent(t, store)
		assert.Equal(t, session.EventLoggedOut, event.Type)
		assert.Equal(t, session.ReasonUserLogout, event.Reason)

		_, err := st.Load(ctx, "authToken")
		assert.ErrorIs(t, err, storage.ErrKeyNotFound)
		_, err = st.Load(ctx, "userInfo")
		assert.ErrorIs(t, err, storage.ErrKeyNotFound)
	})

	t.Run("is idempotent without a session", func(t *testing.T) {
		t.Parallel()

		store, _ := newStore(t, approvedBackend())
		require.NoError(t, store.Logout(ctx))

		event := expectEvent(t, store)
		assert.Equal(t, session.EventLoggedOut, event.Type)
		assert.False(t, store.Current().IsAuthenticated())
	})

	t.Run("logout then rehydrate yields an empty session", func(t *testing.T) {
		t.Parallel()

		store, _ := newStore(t, approvedBackend())
		require.NoError(t, store.Login(ctx, "test@example.com", "password123"))
		require.NoError(t, store.Logout(ctx))

		restored, err := store.Rehydrate(ctx)
		require.NoError(t, err)
		assert.False(t, restored)
		assert.False(t, store.Current().IsAuthenticated())
	})
}

func TestRehydrate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("restores a persisted session and refreshes status", func(t *testing.T) {
		t.Parallel()

		st := storage.NewMemoryStorage()
		require.NoError(t, st.Save(ctx, "authToken", []byte("abc")))
		require.NoError(t, st.Save(ctx, "userInfo",
			[]byte(`{"id":"1","firstName":"A","lastName":"B","email":"test@example.com"}`)))

		store, err := session.New(st, approvedBackend())
		require.NoError(t, err)
		t.Cleanup(store.Close)

		restored, err := store.Rehydrate(ctx)
		require.NoError(t, err)
		assert.True(t, restored)

		current := store.Current()
		assert.Equal(t, "abc", current.Token)
		assert.Equal(t, testUser, current.User)

		assert.Eventually(t, func() bool {
			return store.Current().KYC == session.StatusApproved
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("empty storage restores nothing", func(t *testing.T) {
		t.Parallel()

		store, _ := newStore(t, approvedBackend())
		restored, err := store.Rehydrate(ctx)
		require.NoError(t, err)
		assert.False(t, restored)
	})

	t.Run("half-written state is repaired", func(t *testing.T) {
		t.Parallel()

		st := storage.NewMemoryStorage()
		require.NoError(t, st.Save(ctx, "authToken", []byte("abc")))

		store, err := session.New(st, approvedBackend())
		require.NoError(t, err)
		t.Cleanup(store.Close)

		restored, err := store.Rehydrate(ctx)
		require.NoError(t, err)
		assert.False(t, restored)
		assert.False(t, store.Current().IsAuthenticated())

		_, err = st.Load(ctx, "authToken")
		assert.ErrorIs(t, err, storage.ErrKeyNotFound)
	})

	t.Run("corrupt user record is discarded", func(t *testing.T) {
		t.Parallel()

		st := storage.NewMemoryStorage()
		require.NoError(t, st.Save(ctx, "authToken", []byte("abc")))
		require.NoError(t, st.Save(ctx, "userInfo", []byte("{not json")))

		store, err := session.New(st, approvedBackend())
		require.NoError(t, err)
		t.Cleanup(store.Close)

		restored, err := store.Rehydrate(ctx)
		require.NoError(t, err)
		assert.False(t, restored)
	})
}

func TestHandleUnauthorized(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store, st := newStore(t, approvedBackend())
	require.NoError(t, store.Login(ctx, "test@example.com", "password123"))
	expectEvent(t, store)

	store.HandleUnauthorized(ctx)

	assert.False(t, store.Current().IsAuthenticated())
	event := expectEvent(t, store)
	assert.Equal(t, session.EventLoggedOut, event.Type)
	assert.Equal(t, session.ReasonSessionExpired, event.Reason)

	_, err := st.Load(ctx, "authToken")
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)
}

func TestRefreshKYCStatus(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("requires an active session", func(t *testing.T) {
		t.Parallel()

		store, _ := newStore(t, approvedBackend())
		assert.ErrorIs(t, store.RefreshKYCStatus(ctx), session.ErrNotAuthenticated)
	})

	t.Run("failure degrades status to error sentinel", func(t *testing.T) {
		t.Parallel()

		backend := approvedBackend()
		store, _ := newStore(t, backend)
		require.NoError(t, store.Login(ctx, "test@example.com", "password123"))

		assert.Eventually(t, func() bool {
			return store.Current().KYC == session.StatusApproved
		}, time.Second, 10*time.Millisecond)

		backend.kycFn = func(context.Context) (session.Status, error) {
			return "", fmt.Errorf("backend unavailable")
		}

		err := store.RefreshKYCStatus(ctx)
		assert.ErrorIs(t, err, session.ErrStatusFetch)
		assert.Equal(t, session.StatusError, store.Current().KYC)
	})

	t.Run("status can improve without re-login", func(t *testing.T) {
		t.Parallel()

		backend := approvedBackend()
		backend.kycFn = func(context.Context) (session.Status, error) {
			return session.StatusPending, nil
		}
		store, _ := newStore(t, backend)
		require.NoError(t, store.Login(ctx, "test@example.com", "password123"))

		assert.Eventually(t, func() bool {
			return store.Current().KYC == session.StatusPending
		}, time.Second, 10*time.Millisecond)

		backend.kycFn = func(context.Context) (session.Status, error) {
			return session.StatusApproved, nil
		}
		require.NoError(t, store.RefreshKYCStatus(ctx))
		assert.Equal(t, session.StatusApproved, store.Current().KYC)
	})
}

func TestSessionInvariants(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	// user present iff token present, across every transition.
	store, _ := newStore(t, approvedBackend())

	check := func() {
		current := store.Current()
		assert.Equal(t, current.Token != "", current.User.ID != "",
			"token and user must be set together")
	}

	check()
	require.NoError(t, store.Login(ctx, "test@example.com", "password123"))
	check()
	require.NoError(t, store.Logout(ctx))
	check()
	store.HandleUnauthorized(ctx)
	check()
}
