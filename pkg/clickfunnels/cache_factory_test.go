package clickfunnels_test

import (
	"context"
	"testing"
	"time"

	"github.com/fivetwenty-io/clickfunnels-node/pkg/clickfunnels"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCacheType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected clickfunnels.CacheType
		wantErr  bool
	}{
		{input: "", expected: clickfunnels.CacheTypeMemory},
		{input: "memory", expected: clickfunnels.CacheTypeMemory},
		{input: " NATS ", expected: clickfunnels.CacheTypeNATS},
		{input: "tiered", expected: clickfunnels.CacheTypeTiered},
		{input: "none", expected: clickfunnels.CacheTypeNone},
		{input: "redis", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			cacheType, err := clickfunnels.ParseCacheType(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, clickfunnels.ErrUnsupportedCacheType)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, cacheType)
		})
	}
}

func TestNewCacheFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("nil config uses memory", func(t *testing.T) {
		t.Parallel()

		cache, err := clickfunnels.NewCacheFromConfig(nil)
		require.NoError(t, err)
		assert.IsType(t, &clickfunnels.MemoryCache{}, cache)
	})

	t.Run("none", func(t *testing.T) {
		t.Parallel()

		cache, err := clickfunnels.NewCacheFromConfig(&clickfunnels.CacheConfig{Type: clickfunnels.CacheTypeNone})
		require.NoError(t, err)
		assert.IsType(t, &clickfunnels.NoOpCache{}, cache)
	})

	t.Run("nats without config", func(t *testing.T) {
		t.Parallel()

		_, err := clickfunnels.NewCacheFromConfig(&clickfunnels.CacheConfig{Type: clickfunnels.CacheTypeNATS})
		require.ErrorIs(t, err, clickfunnels.ErrNATSConfigRequired)

		_, err = clickfunnels.NewCacheFromConfig(&clickfunnels.CacheConfig{Type: clickfunnels.CacheTypeTiered})
		require.ErrorIs(t, err, clickfunnels.ErrNATSConfigRequired)
	})

	t.Run("nats without url", func(t *testing.T) {
		t.Parallel()

		_, err := clickfunnels.NewCacheFromConfig(&clickfunnels.CacheConfig{
			Type: clickfunnels.CacheTypeNATS,
			NATS: &clickfunnels.NATSKVConfig{Bucket: "options"},
		})
		require.ErrorIs(t, err, clickfunnels.ErrNATSURLRequired)
	})

	t.Run("unsupported", func(t *testing.T) {
		t.Parallel()

		_, err := clickfunnels.NewCacheFromConfig(&clickfunnels.CacheConfig{Type: "redis"})
		require.ErrorIs(t, err, clickfunnels.ErrUnsupportedCacheType)
	})
}

func TestNoOpCache(t *testing.T) {
	t.Parallel()

	cache := clickfunnels.NewNoOpCache()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", &clickfunnels.CacheEntry{Data: []byte("v")}))
	assert.False(t, cache.Has(ctx, "k"))

	_, err := cache.Get(ctx, "k")
	require.ErrorIs(t, err, clickfunnels.ErrCacheDisabled)
	require.NoError(t, cache.Delete(ctx, "k"))
	require.NoError(t, cache.Clear(ctx))
}

func TestCacheBuilder(t *testing.T) {
	t.Parallel()

	options := &clickfunnels.CacheOptions{DefaultTTL: 2 * time.Minute, KeyPrefix: "test"}

	builder := clickfunnels.NewCacheBuilder().
		WithType(clickfunnels.CacheTypeMemory).
		WithMemoryConfig(5).
		WithOptions(options)

	assert.Equal(t, 5, builder.Config().Memory.MaxSize)

	manager, err := builder.BuildManager()
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, manager.Set(ctx, "a", []byte("1"), 0))

	data, err := manager.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), data)

	_, err = clickfunnels.NewCacheBuilder().
		WithType(clickfunnels.CacheTypeNATS).
		WithNATSConfig(nil).
		Build()
	require.ErrorIs(t, err, clickfunnels.ErrNATSConfigRequired)
}

func TestCacheChain(t *testing.T) {
	t.Parallel()

	front := clickfunnels.NewMemoryCache(10)
	back := clickfunnels.NewMemoryCache(10)
	chain := clickfunnels.NewCacheChain(front, back)
	ctx := context.Background()

	entry := &clickfunnels.CacheEntry{Data: []byte("teams"), ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, back.Set(ctx, "k", entry))
	assert.False(t, front.Has(ctx, "k"))
	assert.True(t, chain.Has(ctx, "k"))

	got, err := chain.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("teams"), got.Data)
	assert.True(t, front.Has(ctx, "k"), "hit in a later cache populates earlier ones")

	require.NoError(t, chain.Delete(ctx, "k"))
	assert.False(t, chain.Has(ctx, "k"))

	_, err = chain.Get(ctx, "k")
	require.ErrorIs(t, err, clickfunnels.ErrKeyNotFoundInAnyCache)

	require.NoError(t, chain.Set(ctx, "x", entry))
	assert.True(t, front.Has(ctx, "x"))
	assert.True(t, back.Has(ctx, "x"))

	require.NoError(t, chain.Clear(ctx))
	assert.Equal(t, 0, front.Len()+back.Len())
}
