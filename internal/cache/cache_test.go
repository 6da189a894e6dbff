package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/ohitsming/guapital-sub001/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey_StableAndDistinct(t *testing.T) {
	a := domain.Snapshot{UserID: "u1", MonthlyIncome: decimal.NewFromInt(5000)}
	b := domain.Snapshot{UserID: "u1", MonthlyIncome: decimal.RequireFromString("5000.00")}
	c := domain.Snapshot{UserID: "u1", MonthlyIncome: decimal.NewFromInt(5001)}

	ka, err := Key("trajectory", a)
	require.NoError(t, err)
	kb, err := Key("trajectory", b)
	require.NoError(t, err)
	kc, err := Key("trajectory", c)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(ka, "trajectory:"))
	assert.Len(t, ka, len("trajectory:")+64)
	assert.Equal(t, ka, kb, "equal amounts hash the same")
	assert.NotEqual(t, ka, kc)

	_, err = Key("bad", make(chan int))
	assert.Error(t, err)
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	c := NewMemoryCache(time.Minute)
	c.now = func() time.Time { return now }

	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "k", "v"))
	v, ok := c.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	now = now.Add(time.Minute)
	_, ok = c.Get(ctx, "k")
	assert.False(t, ok, "entry expires at its TTL")
	assert.Equal(t, 0, c.Len())
}

func TestMemoryCache_NoTTL(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(0)
	require.NoError(t, c.Set(ctx, "k", "v"))
	c.now = func() time.Time { return time.Now().Add(24 * 365 * time.Hour) }

	_, ok := c.Get(ctx, "k")
	assert.True(t, ok)
}

func TestRedisCache_UnreachableIsAMiss(t *testing.T) {
	c := NewRedisCache("127.0.0.1:1", time.Minute)
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
	assert.Error(t, c.Set(ctx, "k", "v"))
	assert.Error(t, c.Ping(ctx))
}

func TestCacheImplementations(t *testing.T) {
	var _ Cache = (*MemoryCache)(nil)
	var _ Cache = (*RedisCache)(nil)
}
