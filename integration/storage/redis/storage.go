package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/finwallet/walletkit/core/storage"
)

var (
	// ErrEmptyConnectionURL is returned when no Redis URL is configured.
	ErrEmptyConnectionURL = errors.New("empty redis connection URL")
	// ErrFailedToParseConnString is returned for malformed Redis URLs.
	ErrFailedToParseConnString = errors.New("failed to parse redis connection string")
	// ErrNotReady is returned when Redis does not answer a ping within the
	// configured attempts.
	ErrNotReady = errors.New("redis did not become ready within the given time period")
)

// Config holds the Redis connection settings.
type Config struct {
	ConnectionURL  string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
	// KeyPrefix namespaces all stored keys, e.g. one prefix per device
	// profile sharing a Redis instance.
	KeyPrefix string `env:"REDIS_KEY_PREFIX" envDefault:"walletkit"`
}

// Storage is a Redis-backed implementation of the session persistence
// port. Values survive process restarts and can be shared across hosts.
type Storage struct {
	client *redis.Client
	prefix string
}

// Connect validates the URL, establishes a verified connection with
// retries, and returns the storage bound to it.
func Connect(ctx context.Context, cfg Config) (*Storage, error) {
	if cfg.ConnectionURL == "" {
		return nil, ErrEmptyConnectionURL
	}
	opts, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseConnString, err)
	}

	attempts := cfg.RetryAttempts
	if attempts <= 0 {
		attempts = 1
	}
	interval := cfg.RetryInterval
	if interval <= 0 {
		interval = time.Second
	}
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	client := redis.NewClient(opts)
	var pingErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				_ = client.Close()
				return nil, errors.Join(ErrNotReady, ctx.Err())
			case <-time.After(interval):
			}
		}
		if pingErr = client.Ping(ctx).Err(); pingErr == nil {
			return New(client, cfg.KeyPrefix), nil
		}
	}
	_ = client.Close()
	return nil, errors.Join(ErrNotReady, pingErr)
}

// New wraps an existing client. Useful in tests and when the caller
// manages the connection lifecycle.
func New(client *redis.Client, prefix string) *Storage {
	return &Storage{client: client, prefix: prefix}
}

// Load implements storage.Storage.
func (s *Storage) Load(ctx context.Context, key string) ([]byte, error) {
	name, err := s.key(key)
	if err != nil {
		return nil, err
	}
	value, err := s.client.Get(ctx, name).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, storage.ErrKeyNotFound
		}
		return nil, errors.Join(storage.ErrStorageFailed, err)
	}
	return value, nil
}

// Save implements storage.Storage. Values are stored without expiration;
// logout removes them explicitly.
func (s *Storage) Save(ctx context.Context, key string, value []byte) error {
	name, err := s.key(key)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, name, value, 0).Err(); err != nil {
		return errors.Join(storage.ErrStorageFailed, err)
	}
	return nil
}

// Delete implements storage.Storage.
func (s *Storage) Delete(ctx context.Context, key string) error {
	name, err := s.key(key)
	if err != nil {
		return err
	}
	if err := s.client.Del(ctx, name).Err(); err != nil {
		return errors.Join(storage.ErrStorageFailed, err)
	}
	return nil
}

// Close releases the underlying connection.
func (s *Storage) Close() error {
	return s.client.Close()
}

func (s *Storage) key(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, " \t\n") {
		return "", fmt.Errorf("%w: %q", storage.ErrInvalidKey, key)
	}
	if s.prefix == "" {
		return key, nil
	}
	return s.prefix + ":" + key, nil
}
