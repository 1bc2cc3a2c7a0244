package wallet_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finwallet/walletkit/core/session"
	"github.com/finwallet/walletkit/integration/wallet"
)

func staticToken(token string) wallet.TokenProvider {
	return wallet.TokenFunc(func() string { return token })
}

func newTestClient(t *testing.T, handler http.Handler, opts ...wallet.Option) *wallet.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	tokens := staticToken("test-token")
	client, err := wallet.New(wallet.Config{BaseURL: srv.URL}, tokens, opts...)
	require.NoError(t, err)
	return client
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires base URL", func(t *testing.T) {
		t.Parallel()

		_, err := wallet.New(wallet.Config{}, staticToken(""))
		require.ErrorIs(t, err, wallet.ErrInvalidConfig)
	})

	t.Run("requires absolute base URL", func(t *testing.T) {
		t.Parallel()

		_, err := wallet.New(wallet.Config{BaseURL: "/api"}, staticToken(""))
		require.ErrorIs(t, err, wallet.ErrInvalidConfig)
	})

	t.Run("requires token provider", func(t *testing.T) {
		t.Parallel()

		_, err := wallet.New(wallet.Config{BaseURL: "http://localhost:3000/api"}, nil)
		require.ErrorIs(t, err, wallet.ErrInvalidConfig)
	})
}

func TestAuthenticatedCalls(t *testing.T) {
	t.Parallel()

	t.Run("attaches bearer token", func(t *testing.T) {
		t.Parallel()

		var gotAuth string
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			_ = json.NewEncoder(w).Encode(map[string]any{"accounts": []any{}})
		}))

		_, err := client.Accounts(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Bearer test-token", gotAuth)
	})

	t.Run("fails fast without token", func(t *testing.T) {
		t.Parallel()

		var called atomic.Bool
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called.Store(true)
		}))
		t.Cleanup(srv.Close)

		client, err := wallet.New(wallet.Config{BaseURL: srv.URL}, staticToken(""))
		require.NoError(t, err)

		_, err = client.Accounts(context.Background())
		require.ErrorIs(t, err, session.ErrNotAuthenticated)
		assert.False(t, called.Load(), "no request should leave the client")
	})

	t.Run("unauthorized response triggers handler", func(t *testing.T) {
		t.Parallel()

		var torn atomic.Bool
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "token expired"})
		}), wallet.WithUnauthorizedHandler(wallet.UnauthorizedFunc(func(ctx context.Context) {
			torn.Store(true)
		})))

		_, err := client.Accounts(context.Background())
		require.ErrorIs(t, err, session.ErrSessionExpired)
		assert.Contains(t, err.Error(), "token expired")
		assert.True(t, torn.Load())
	})

	t.Run("server error carries message", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "account not empty"})
		}))

		err := client.DeleteAccount(context.Background(), "acc-1")
		require.ErrorIs(t, err, wallet.ErrRequestFailed)
		require.NotErrorIs(t, err, session.ErrSessionExpired)
		assert.Contains(t, err.Error(), "account not empty")
	})

	t.Run("server error without body falls back to status text", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))

		err := client.DeleteAccount(context.Background(), "acc-1")
		require.ErrorIs(t, err, wallet.ErrRequestFailed)
		assert.Contains(t, err.Error(), http.StatusText(http.StatusBadGateway))
	})
}

func TestLogin(t *testing.T) {
	t.Parallel()

	t.Run("success returns credentials", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/auth/login", r.URL.Path)
			assert.Empty(t, r.Header.Get("Authorization"), "login is a public call")

			var body struct {
				Email    string `json:"email"`
				Password string `json:"password"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "jane@example.com", body.Email)

			_ = json.NewEncoder(w).Encode(map[string]any{
				"token": "tok-1",
				"user": map[string]string{
					"id":        "u1",
					"firstName": "Jane",
					"lastName":  "Doe",
					"email":     "jane@example.com",
				},
			})
		}))

		creds, err := client.Login(context.Background(), "jane@example.com", "secret123")
		require.NoError(t, err)
		assert.Equal(t, "tok-1", creds.Token)
		assert.Equal(t, "u1", creds.User.ID)
		assert.Equal(t, "jane@example.com", creds.User.Email)
	})

	t.Run("rejected login maps to authentication failure", func(t *testing.T) {
		t.Parallel()

		var torn atomic.Bool
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
		}), wallet.WithUnauthorizedHandler(wallet.UnauthorizedFunc(func(ctx context.Context) {
			torn.Store(true)
		})))

		_, err := client.Login(context.Background(), "jane@example.com", "wrong-pass")
		require.ErrorIs(t, err, session.ErrAuthenticationFailed)
		require.NotErrorIs(t, err, session.ErrSessionExpired)
		assert.Contains(t, err.Error(), "invalid credentials")
		assert.False(t, torn.Load(), "a failed login must not tear down the session")
	})

	t.Run("rejected login without message gets generic one", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))

		_, err := client.Login(context.Background(), "jane@example.com", "wrong-pass")
		require.ErrorIs(t, err, session.ErrAuthenticationFailed)
		assert.Contains(t, err.Error(), "login failed")
	})

	t.Run("malformed success body is an authentication failure", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]string{"token": ""})
		}))

		_, err := client.Login(context.Background(), "jane@example.com", "secret123")
		require.ErrorIs(t, err, session.ErrAuthenticationFailed)
	})

	t.Run("rejects invalid input locally", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request should be sent")
		}))

		_, err := client.Login(context.Background(), "not-an-email", "secret123")
		require.ErrorIs(t, err, wallet.ErrValidation)

		_, err = client.Login(context.Background(), "jane@example.com", "")
		require.ErrorIs(t, err, wallet.ErrValidation)
	})
}

func TestKYCStatus(t *testing.T) {
	t.Parallel()

	t.Run("parses known statuses", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/kyc/status", r.URL.Path)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "approved"})
		}))

		status, err := client.KYCStatus(context.Background())
		require.NoError(t, err)
		assert.Equal(t, session.StatusApproved, status)
	})

	t.Run("unknown status degrades to error", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "vibes"})
		}))

		status, err := client.KYCStatus(context.Background())
		require.NoError(t, err)
		assert.Equal(t, session.StatusError, status)
	})
}
