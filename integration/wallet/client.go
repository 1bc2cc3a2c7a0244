package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/finwallet/walletkit/core/logger"
	"github.com/finwallet/walletkit/core/session"
)

var (
	// ErrInvalidConfig is returned by New for unusable configuration.
	ErrInvalidConfig = errors.New("invalid wallet client config")
	// ErrRequestFailed wraps non-success responses other than
	// authorization failures. The joined message is server-supplied when
	// available.
	ErrRequestFailed = errors.New("wallet request failed")
	// ErrValidation is returned for malformed local input, before any
	// network call is made.
	ErrValidation = errors.New("validation failed")
)

// Config holds the backend endpoint configuration.
type Config struct {
	BaseURL string        `env:"WALLET_API_BASE_URL" envDefault:"http://localhost:3000/api"`
	Timeout time.Duration `env:"WALLET_API_TIMEOUT" envDefault:"30s"`
}

// TokenProvider supplies the current bearer token; an empty string means
// no active session.
type TokenProvider interface {
	Token() string
}

// TokenFunc adapts a function to the TokenProvider interface.
type TokenFunc func() string

// Token implements TokenProvider.
func (f TokenFunc) Token() string { return f() }

// UnauthorizedHandler is notified when any authenticated call is rejected
// with an authorization failure.
type UnauthorizedHandler interface {
	HandleUnauthorized(ctx context.Context)
}

// UnauthorizedFunc adapts a function to the UnauthorizedHandler interface.
type UnauthorizedFunc func(ctx context.Context)

// HandleUnauthorized implements UnauthorizedHandler.
func (f UnauthorizedFunc) HandleUnauthorized(ctx context.Context) { f(ctx) }

// Client talks to the DigiWallet backend. Safe for concurrent use.
type Client struct {
	baseURL      *url.URL
	http         *http.Client
	log          *slog.Logger
	tokens       TokenProvider
	unauthorized UnauthorizedHandler
}

// Option configures the Client.
type Option func(*Client)

// WithLogger sets the logger. Defaults to slog.Default.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client, e.g. to add a
// custom transport in tests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.http = httpClient
		}
	}
}

// WithUnauthorizedHandler registers the handler invoked on authorization
// failures. Without one, failures are still reported as
// session.ErrSessionExpired but nothing is torn down.
func WithUnauthorizedHandler(h UnauthorizedHandler) Option {
	return func(c *Client) {
		c.unauthorized = h
	}
}

// New creates a backend client. The base URL is required; the token
// provider is required because all but the auth endpoints authenticate.
func New(cfg Config, tokens TokenProvider, opts ...Option) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: BaseURL is required", ErrInvalidConfig)
	}
	base, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: BaseURL must be an absolute URL", ErrInvalidConfig)
	}
	if tokens == nil {
		return nil, fmt.Errorf("%w: token provider is required", ErrInvalidConfig)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	c := &Client{
		baseURL: base,
		http:    &http.Client{Timeout: timeout},
		log:     slog.Default(),
		tokens:  tokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// call bundles request parameters for the shared request path.
type call struct {
	method string
	path   string
	body   any
	out    any
	// public requests skip the bearer token and never trigger the
	// unauthorized handler; their 401s belong to the caller.
	public bool
	// idempotent requests carry a client-generated idempotency key so a
	// retried money movement cannot double apply.
	idempotent bool
}

func (c *Client) do(ctx context.Context, req call) error {
	var token string
	if !req.public {
		token = c.tokens.Token()
		if token == "" {
			return session.ErrNotAuthenticated
		}
	}

	var body io.Reader
	if req.body != nil {
		raw, err := json.Marshal(req.body)
		if err != nil {
			return errors.Join(ErrRequestFailed, err)
		}
		body = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL.String()+req.path, body)
	if err != nil {
		return errors.Join(ErrRequestFailed, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}
	if req.idempotent {
		httpReq.Header.Set("Idempotency-Key", uuid.NewString())
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return errors.Join(ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized && !req.public {
		c.log.Info("authenticated call rejected",
			logger.Component("wallet"), logger.Method(req.method), logger.Path(req.path))
		if c.unauthorized != nil {
			c.unauthorized.HandleUnauthorized(ctx)
		}
		return fmt.Errorf("%w: %s", session.ErrSessionExpired, apiMessage(resp.Body, "credential rejected"))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Debug("request failed",
			logger.Component("wallet"), logger.Method(req.method),
			logger.Path(req.path), logger.StatusCode(resp.StatusCode))
		return &statusError{status: resp.StatusCode, message: apiMessage(resp.Body, "")}
	}

	if req.out != nil {
		if err := json.NewDecoder(resp.Body).Decode(req.out); err != nil {
			return errors.Join(ErrRequestFailed, err)
		}
	}
	return nil
}

// statusError is a non-success HTTP response with its server-supplied
// message. It unwraps to ErrRequestFailed so callers can branch with
// errors.Is without caring about the concrete type.
type statusError struct {
	status  int
	message string
}

func (e *statusError) Error() string {
	msg := e.message
	if msg == "" {
		msg = http.StatusText(e.status)
	}
	return fmt.Sprintf("%s: %s", ErrRequestFailed.Error(), msg)
}

func (e *statusError) Unwrap() error { return ErrRequestFailed }

// requestMessage reports the server-supplied message when err is an HTTP
// status failure, distinguishing it from transport-level failures.
func requestMessage(err error) (string, bool) {
	var se *statusError
	if errors.As(err, &se) {
		return se.message, true
	}
	return "", false
}

// apiMessage extracts the server-supplied error message from the
// conventional {"error": "..."} body, falling back when absent.
func apiMessage(body io.Reader, fallback string) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(body, 4096)).Decode(&payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return fallback
}
