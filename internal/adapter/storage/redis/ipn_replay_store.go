package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// IPNReplayStore implements ports.IPNReplayStore using Redis SET NX.
// Keys are payload digests; a hit means the exact callback bytes were
// already processed.
type IPNReplayStore struct {
	client *goredis.Client
	prefix string
}

// NewIPNReplayStore creates a new Redis-backed IPN replay store.
func NewIPNReplayStore(client *goredis.Client) *IPNReplayStore {
	return &IPNReplayStore{
		client: client,
		prefix: "ipn:",
	}
}

// MarkProcessed atomically records a payload digest.
// Returns true if the digest is new, false if already processed.
func (s *IPNReplayStore) MarkProcessed(ctx context.Context, digest string, ttl time.Duration) (bool, error) {
	key := s.prefix + digest
	result, err := s.client.SetArgs(ctx, key, 1, goredis.SetArgs{
		Mode: "NX",
		TTL:  ttl,
	}).Result()
	if err != nil {
		if err == goredis.Nil {
			// Key already exists — this exact callback was already handled
			return false, nil
		}
		return false, fmt.Errorf("redis ipn replay check: %w", err)
	}
	return result == "OK", nil
}

// Forget removes a recorded digest. Called when processing a marked callback
// failed, so the provider's retry of the same bytes goes through again.
func (s *IPNReplayStore) Forget(ctx context.Context, digest string) error {
	if err := s.client.Del(ctx, s.prefix+digest).Err(); err != nil {
		return fmt.Errorf("redis ipn replay forget: %w", err)
	}
	return nil
}
