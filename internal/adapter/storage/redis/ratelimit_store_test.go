package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimitStore_UnderLimit(t *testing.T) {
	client, _ := newTestClient(t)
	store := NewRateLimitStore(client)

	for i := 0; i < 5; i++ {
		res, err := store.Allow(context.Background(), "owner-1", 10, time.Minute)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
	}

	res, err := store.Allow(context.Background(), "owner-1", 10, time.Minute)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, int64(10), res.Limit)
	assert.Equal(t, int64(4), res.Remaining)
}

func TestRateLimitStore_OverLimit(t *testing.T) {
	client, _ := newTestClient(t)
	store := NewRateLimitStore(client)

	for i := 0; i < 3; i++ {
		_, err := store.Allow(context.Background(), "owner-2", 3, time.Minute)
		require.NoError(t, err)
	}

	res, err := store.Allow(context.Background(), "owner-2", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, int64(0), res.Remaining)
}

func TestRateLimitStore_KeysAreIndependent(t *testing.T) {
	client, _ := newTestClient(t)
	store := NewRateLimitStore(client)

	for i := 0; i < 3; i++ {
		_, err := store.Allow(context.Background(), "owner-3", 3, time.Minute)
		require.NoError(t, err)
	}

	// A different key starts its own counter.
	res, err := store.Allow(context.Background(), "owner-4", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, int64(2), res.Remaining)
}

func TestHealthCheck_Ping(t *testing.T) {
	client, _ := newTestClient(t)
	hc := NewHealthCheck(client)

	assert.NoError(t, hc.Ping(context.Background()))
	assert.Equal(t, "redis", hc.Name())
}
