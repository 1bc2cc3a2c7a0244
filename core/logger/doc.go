// Package logger provides structured logging built on the standard slog
// package, with environment presets and attribute helpers for the wallet
// client's common logging scenarios.
//
// Create loggers with the factory function and functional options:
//
//	log := logger.New(
//		logger.WithDevelopment("walletkit"),
//		logger.WithLevel(slog.LevelDebug),
//	)
//
//	log.Info("session restored",
//		logger.Component("session"),
//		logger.Event("rehydrate"),
//	)
//
// The development preset writes human-readable text at debug level; the
// production preset writes JSON at info level. Both can be overridden by
// further options.
package logger
