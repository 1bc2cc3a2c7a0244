package walletkit

import (
	"time"
)

// Config is the top-level application configuration, loaded from the
// environment via config.Load.
type Config struct {
	// AppName tags log output.
	AppName string `env:"APP_NAME" envDefault:"walletkit"`
	// Environment selects the log format: "development" gets colored
	// text, anything else gets JSON.
	Environment string `env:"APP_ENV" envDefault:"development"`
	// LogLevel is parsed by slog ("debug", "info", "warn", "error").
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// APIBaseURL is the DigiWallet backend endpoint.
	APIBaseURL string `env:"WALLET_API_BASE_URL" envDefault:"http://localhost:3000/api"`
	// APITimeout bounds every backend call.
	APITimeout time.Duration `env:"WALLET_API_TIMEOUT" envDefault:"30s"`

	// StateDir is where the session persists between runs. Empty keeps
	// the session in memory only.
	StateDir string `env:"WALLET_STATE_DIR"`
	// RedisURL switches session persistence to Redis when set,
	// overriding StateDir.
	RedisURL string `env:"WALLET_REDIS_URL"`

	// EncryptionKey encrypts the persisted session at rest when set.
	// Must be 32 bytes, base64-encoded.
	EncryptionKey string `env:"WALLET_ENCRYPTION_KEY"`
	// ProfileID separates sessions of different device profiles sharing
	// one state directory or Redis instance.
	ProfileID string `env:"WALLET_PROFILE_ID" envDefault:"default"`
}
