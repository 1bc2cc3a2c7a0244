package wallet

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/finwallet/walletkit/core/logger"
	"github.com/finwallet/walletkit/core/session"
)

const streamHandshakeTimeout = 10 * time.Second

// NotificationStream delivers live notifications pushed by the backend.
// Close releases the connection; Notifications is closed when the stream
// ends for any reason, after which Err reports the cause.
type NotificationStream struct {
	conn          *websocket.Conn
	notifications chan Notification
	done          chan struct{}
	closed        chan struct{}
	closeOnce     sync.Once
	err           error
}

// Notifications returns the delivery channel. It is closed when the
// stream terminates.
func (s *NotificationStream) Notifications() <-chan Notification {
	return s.notifications
}

// Err reports why the stream ended. It is only meaningful after the
// Notifications channel is closed; nil means an orderly close.
func (s *NotificationStream) Err() error {
	select {
	case <-s.done:
		return s.err
	default:
		return nil
	}
}

// Close terminates the stream, unblocking the reader even when the
// consumer stopped draining Notifications. Safe to call more than once.
func (s *NotificationStream) Close() error {
	s.closeOnce.Do(func() { close(s.closed) })
	return s.conn.Close()
}

// StreamNotifications opens a live notification stream. The connection
// authenticates with the current bearer token during the handshake; a
// rejected handshake tears down the session the same way a rejected HTTP
// call does.
func (c *Client) StreamNotifications(ctx context.Context) (*NotificationStream, error) {
	token := c.tokens.Token()
	if token == "" {
		return nil, session.ErrNotAuthenticated
	}

	wsURL := *c.baseURL
	switch wsURL.Scheme {
	case "https":
		wsURL.Scheme = "wss"
	default:
		wsURL.Scheme = "ws"
	}
	wsURL.Path += "/user/notifications/stream"

	dialer := websocket.Dialer{HandshakeTimeout: streamHandshakeTimeout}
	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)

	conn, resp, err := dialer.DialContext(ctx, wsURL.String(), header)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnauthorized {
			c.log.Info("notification stream handshake rejected", logger.Component("wallet"))
			if c.unauthorized != nil {
				c.unauthorized.HandleUnauthorized(ctx)
			}
			return nil, fmt.Errorf("%w: stream handshake rejected", session.ErrSessionExpired)
		}
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}

	stream := &NotificationStream{
		conn:          conn,
		notifications: make(chan Notification, 16),
		done:          make(chan struct{}),
		closed:        make(chan struct{}),
	}
	go stream.readLoop(c.log)
	return stream, nil
}

func (s *NotificationStream) readLoop(log *slog.Logger) {
	defer func() {
		_ = s.conn.Close()
		close(s.notifications)
		close(s.done)
	}()
	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.err = fmt.Errorf("%w: %w", ErrRequestFailed, err)
			}
			return
		}
		var n Notification
		if err := json.Unmarshal(raw, &n); err != nil {
			log.Debug("dropping malformed stream payload", logger.Component("wallet"), logger.Error(err))
			continue
		}
		// The consumer may have walked away with the buffer full; Close
		// must still be able to end the loop.
		select {
		case s.notifications <- n:
		case <-s.closed:
			return
		}
	}
}
