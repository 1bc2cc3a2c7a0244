// Package storage defines the durable key-value port used to persist the
// wallet client's session credentials across process restarts, together
// with file-backed and in-memory implementations.
//
// The session store is the only writer; it keeps exactly two keys (the
// bearer token and the serialized user record). Implementations must be
// safe for concurrent use within a single process, but no cross-process
// coordination is provided: when two clients share a backend, the last
// writer wins and each client observes the winning value on its next
// rehydrate.
//
//	store, err := storage.NewFileStorage(dir)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	err = store.Save(ctx, "authToken", []byte(token))
//	data, err := store.Load(ctx, "authToken")
//	err = store.Delete(ctx, "authToken")
//
// Wrap any backend with NewEncryptedStorage to keep values encrypted at
// rest using the pkg/secrets compound-key scheme.
package storage
