package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*goredis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client, mr
}

func payloadDigest(body string) string {
	sum := sha256.Sum256([]byte(body))
	return hex.EncodeToString(sum[:])
}

func TestIPNReplayStore_FirstDelivery(t *testing.T) {
	client, _ := newTestClient(t)
	store := NewIPNReplayStore(client)

	digest := payloadDigest("txn_id=CP123&status=100")
	fresh, err := store.MarkProcessed(context.Background(), digest, time.Hour)
	require.NoError(t, err)
	assert.True(t, fresh)
}

func TestIPNReplayStore_ExactReplay(t *testing.T) {
	client, _ := newTestClient(t)
	store := NewIPNReplayStore(client)

	digest := payloadDigest("txn_id=CP123&status=100")

	fresh, err := store.MarkProcessed(context.Background(), digest, time.Hour)
	require.NoError(t, err)
	require.True(t, fresh)

	// Same bytes again: must be flagged as a replay.
	fresh, err = store.MarkProcessed(context.Background(), digest, time.Hour)
	require.NoError(t, err)
	assert.False(t, fresh)
}

func TestIPNReplayStore_DifferentPayloads(t *testing.T) {
	client, _ := newTestClient(t)
	store := NewIPNReplayStore(client)

	fresh1, err := store.MarkProcessed(context.Background(), payloadDigest("txn_id=CP123&status=100"), time.Hour)
	require.NoError(t, err)
	fresh2, err2 := store.MarkProcessed(context.Background(), payloadDigest("txn_id=CP456&status=-1"), time.Hour)
	require.NoError(t, err2)

	assert.True(t, fresh1)
	assert.True(t, fresh2)
}

func TestIPNReplayStore_ForgetReleasesDigest(t *testing.T) {
	client, _ := newTestClient(t)
	store := NewIPNReplayStore(client)

	digest := payloadDigest("txn_id=CP123&status=100")

	fresh, err := store.MarkProcessed(context.Background(), digest, time.Hour)
	require.NoError(t, err)
	require.True(t, fresh)

	// Processing failed after the digest was recorded: releasing it lets
	// the provider's retry of the same bytes go through.
	require.NoError(t, store.Forget(context.Background(), digest))

	fresh, err = store.MarkProcessed(context.Background(), digest, time.Hour)
	require.NoError(t, err)
	assert.True(t, fresh)
}

func TestIPNReplayStore_TTLExpiry(t *testing.T) {
	client, mr := newTestClient(t)
	store := NewIPNReplayStore(client)

	digest := payloadDigest("txn_id=CP123&status=100")

	fresh, err := store.MarkProcessed(context.Background(), digest, time.Minute)
	require.NoError(t, err)
	require.True(t, fresh)

	// After the TTL passes the digest is forgotten; replay protection for
	// stale callbacks is carried by the pending-status guard instead.
	mr.FastForward(2 * time.Minute)

	fresh, err = store.MarkProcessed(context.Background(), digest, time.Minute)
	require.NoError(t, err)
	assert.True(t, fresh)
}
