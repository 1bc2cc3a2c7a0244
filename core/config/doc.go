// Package config provides type-safe environment variable loading with
// per-type caching using Go generics. Each configuration type is loaded
// once and cached for subsequent calls.
//
// The package automatically loads a .env file on first use and relies on
// the caarlos0/env library for parsing environment variables into struct
// fields.
//
//	type APIConfig struct {
//		BaseURL string `env:"WALLET_API_BASE_URL" envDefault:"http://localhost:3000/api"`
//		Timeout int    `env:"WALLET_API_TIMEOUT" envDefault:"30"`
//	}
//
//	var cfg APIConfig
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
//	// Or panic on failure during startup:
//	config.MustLoad(&cfg)
package config
