// Package redis provides a Redis-backed implementation of the session
// persistence port for deployments where sessions must survive the local
// filesystem, e.g. kiosk fleets sharing a profile store.
//
// Connect validates the Redis URL, establishes the connection with retry
// and a ping verification, and returns a storage namespaced by the
// configured key prefix:
//
//	store, err := redis.Connect(ctx, redis.Config{
//		ConnectionURL: "redis://localhost:6379/0",
//		KeyPrefix:     "walletkit",
//	})
//	if err != nil {
//		return err
//	}
//	defer store.Close()
//
// Missing keys map to storage.ErrKeyNotFound so the session layer treats
// this backend exactly like the in-memory and file ones.
package redis
