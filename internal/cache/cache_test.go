package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheGetSetMiss(t *testing.T) {
	c := NewMemoryCache(DefaultConfig())
	defer c.Close()

	ctx := context.Background()
	_, err := c.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrMiss)

	entry := Entry{Valid: false, Op: "$mod", Path: "n", Message: "bad"}
	require.NoError(t, c.Set(ctx, "k", entry, time.Minute))

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, entry, got)
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache(Config{Type: "memory"})
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", Entry{Valid: true}, time.Nanosecond))
	time.Sleep(time.Millisecond)

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestMemoryCacheEvictsLRU(t *testing.T) {
	c := NewMemoryCache(Config{Type: "memory", MaxItems: 2, DefaultTTL: time.Minute})
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", Entry{Valid: true}, 0))
	require.NoError(t, c.Set(ctx, "b", Entry{Valid: true}, 0))
	require.NoError(t, c.Set(ctx, "c", Entry{Valid: true}, 0))

	_, err := c.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrMiss, "oldest entry should have been evicted")

	_, err = c.Get(ctx, "c")
	assert.NoError(t, err)
}

func TestKeyIsStableAcrossMapOrdering(t *testing.T) {
	a := map[string]any{"x": 1, "y": 2}
	b := map[string]any{"y": 2, "x": 1}
	assert.Equal(t, Key(a), Key(b))
}

func TestKeyDiffersOnContent(t *testing.T) {
	assert.NotEqual(t, Key(map[string]any{"x": 1}), Key(map[string]any{"x": 2}))
}

func TestNewUnsupportedBackend(t *testing.T) {
	_, err := New(Config{Type: "bogus"})
	assert.Error(t, err)
}
