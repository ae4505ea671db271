package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryTakeIsSingleUse(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "refresh:abc", "user-1", time.Minute))

	v, ok, err := s.Take(ctx, "refresh:abc")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "user-1", v)

	_, ok, err = s.Take(ctx, "refresh:abc")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryExpiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewMemoryStore()
	s.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", "v", time.Second))
	now = now.Add(2 * time.Second)

	_, ok, _ := s.Take(ctx, "k")
	assert.False(t, ok)
}

func TestMemoryIncrWindow(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewMemoryStore()
	s.now = func() time.Time { return now }
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		n, err := s.Incr(ctx, "ip", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, want, n)
	}

	now = now.Add(61 * time.Second)
	n, err := s.Incr(ctx, "ip", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
