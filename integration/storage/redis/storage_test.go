package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finwallet/walletkit/core/storage"
	"github.com/finwallet/walletkit/integration/storage/redis"
)

func newTestStorage(t *testing.T, prefix string) (*redis.Storage, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return redis.New(client, prefix), mr
}

func TestStorage(t *testing.T) {
	t.Parallel()

	t.Run("save load delete round trip", func(t *testing.T) {
		t.Parallel()

		store, _ := newTestStorage(t, "walletkit")
		ctx := context.Background()

		require.NoError(t, store.Save(ctx, "authToken", []byte("tok-1")))

		got, err := store.Load(ctx, "authToken")
		require.NoError(t, err)
		assert.Equal(t, []byte("tok-1"), got)

		require.NoError(t, store.Delete(ctx, "authToken"))
		_, err = store.Load(ctx, "authToken")
		require.ErrorIs(t, err, storage.ErrKeyNotFound)
	})

	t.Run("missing key", func(t *testing.T) {
		t.Parallel()

		store, _ := newTestStorage(t, "walletkit")
		_, err := store.Load(context.Background(), "nope")
		require.ErrorIs(t, err, storage.ErrKeyNotFound)
	})

	t.Run("deleting missing key is a no-op", func(t *testing.T) {
		t.Parallel()

		store, _ := newTestStorage(t, "walletkit")
		require.NoError(t, store.Delete(context.Background(), "nope"))
	})

	t.Run("prefix namespaces keys", func(t *testing.T) {
		t.Parallel()

		store, mr := newTestStorage(t, "profile-a")
		ctx := context.Background()

		require.NoError(t, store.Save(ctx, "userInfo", []byte("{}")))
		assert.True(t, mr.Exists("profile-a:userInfo"))
		assert.False(t, mr.Exists("userInfo"))
	})

	t.Run("rejects invalid keys", func(t *testing.T) {
		t.Parallel()

		store, _ := newTestStorage(t, "walletkit")
		_, err := store.Load(context.Background(), "")
		require.ErrorIs(t, err, storage.ErrInvalidKey)

		err = store.Save(context.Background(), "bad key", nil)
		require.ErrorIs(t, err, storage.ErrInvalidKey)
	})

	t.Run("overwrite replaces value", func(t *testing.T) {
		t.Parallel()

		store, _ := newTestStorage(t, "walletkit")
		ctx := context.Background()

		require.NoError(t, store.Save(ctx, "authToken", []byte("old")))
		require.NoError(t, store.Save(ctx, "authToken", []byte("new")))

		got, err := store.Load(ctx, "authToken")
		require.NoError(t, err)
		assert.Equal(t, []byte("new"), got)
	})
}

func TestConnect(t *testing.T) {
	t.Parallel()

	t.Run("empty URL", func(t *testing.T) {
		t.Parallel()

		_, err := redis.Connect(context.Background(), redis.Config{})
		require.ErrorIs(t, err, redis.ErrEmptyConnectionURL)
	})

	t.Run("malformed URL", func(t *testing.T) {
		t.Parallel()

		_, err := redis.Connect(context.Background(), redis.Config{ConnectionURL: "not-a-url"})
		require.ErrorIs(t, err, redis.ErrFailedToParseConnString)
	})

	t.Run("connects and pings", func(t *testing.T) {
		t.Parallel()

		mr := miniredis.RunT(t)
		store, err := redis.Connect(context.Background(), redis.Config{
			ConnectionURL: "redis://" + mr.Addr(),
			RetryAttempts: 1,
			KeyPrefix:     "walletkit",
		})
		require.NoError(t, err)
		t.Cleanup(func() { _ = store.Close() })

		require.NoError(t, store.Save(context.Background(), "authToken", []byte("tok")))
	})
}
