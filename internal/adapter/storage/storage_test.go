package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/niksmo/bloomora/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLKV(t *testing.T) SQLKV {
	t.Helper()
	db, err := NewSQLDB(t.Context(), DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(db.Close)
	return NewSQLKV(db)
}

func newTestRedisKV(t *testing.T) (RedisKV, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	cl := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = cl.Close() })
	return NewRedisKVFromClient(cl), mr
}

func testKV(t *testing.T, kv kvStorage) {
	ctx := t.Context()

	_, err := kv.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, kv.Set(ctx, "k", "v1"))
	v, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v1", v)

	require.NoError(t, kv.Set(ctx, "k", "v2"))
	v, err = kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v2", v)

	require.NoError(t, kv.Delete(ctx, "k"))
	_, err = kv.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, kv.Delete(ctx, "k"))
}

func TestSQLKV(t *testing.T) {
	testKV(t, newTestSQLKV(t))

	t.Run("CanceledContext", func(t *testing.T) {
		kv := newTestSQLKV(t)
		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		assert.ErrorIs(t, kv.Set(ctx, "k", "v"), context.Canceled)
	})
}

func TestRedisKV(t *testing.T) {
	kv, _ := newTestRedisKV(t)
	testKV(t, kv)
}

func TestNewRedisKV(t *testing.T) {
	mr := miniredis.RunT(t)
	kv, err := NewRedisKV(t.Context(), "redis://"+mr.Addr())
	require.NoError(t, err)
	defer kv.Close()

	require.NoError(t, kv.Set(t.Context(), "k", "v"))
	assert.True(t, mr.Exists("k"))
}

func TestNewSQLDBUnsupportedDriver(t *testing.T) {
	_, err := NewSQLDB(t.Context(), "oracle", "dsn")
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}

func TestIdentityRepository(t *testing.T) {
	const key = "bloomora_user"

	t.Run("RoundTrip", func(t *testing.T) {
		repo := NewIdentityRepository(newTestSQLKV(t), key)
		identity := domain.Identity{
			Name:     "Alex Smith",
			Email:    "alex.smith@gmail.com",
			Avatar:   "https://example.com/alex.png",
			IsGoogle: true,
		}

		require.NoError(t, repo.StoreIdentity(t.Context(), identity))
		got, err := repo.LoadIdentity(t.Context())
		require.NoError(t, err)
		assert.Equal(t, identity, got)

		require.NoError(t, repo.DeleteIdentity(t.Context()))
		_, err = repo.LoadIdentity(t.Context())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("StoredFormat", func(t *testing.T) {
		kv, mr := newTestRedisKV(t)
		repo := NewIdentityRepository(kv, key)

		err := repo.StoreIdentity(t.Context(), domain.Identity{
			Name: "Plant Lover", Email: "jane@example.com",
		})
		require.NoError(t, err)

		v, err := mr.Get(key)
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"Plant Lover","email":"jane@example.com"}`, v)
	})

	t.Run("Malformed", func(t *testing.T) {
		tests := []struct {
			name  string
			value string
		}{
			{"NotJSON", "{name: jane"},
			{"WrongType", `["jane"]`},
			{"Empty", `{}`},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				kv, mr := newTestRedisKV(t)
				require.NoError(t, mr.Set(key, tt.value))

				_, err := NewIdentityRepository(kv, key).LoadIdentity(t.Context())
				assert.ErrorIs(t, err, ErrMalformed)
			})
		}
	})
}
