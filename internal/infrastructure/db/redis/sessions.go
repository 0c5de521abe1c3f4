package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore tracks session revocations backed by Redis.
// Key format: session_revoked:<user_id> → unix timestamp of the revocation.
// Tokens issued before that instant are rejected by the auth middleware.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore creates a SessionStore. ttl should match the session token
// lifetime; a revocation marker older than every live token is useless.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionStore{client: client, ttl: ttl}
}

// Revoke invalidates every session token of the user issued at or before at.
func (s *SessionStore) Revoke(ctx context.Context, userID string, at time.Time) error {
	if err := s.client.Set(ctx, s.key(userID), at.Unix(), s.ttl).Err(); err != nil {
		return fmt.Errorf("session revoke: %w", err)
	}
	return nil
}

// RevokedSince reports whether a token issued at issuedAt is revoked for the
// user. A missing marker means nothing was revoked.
func (s *SessionStore) RevokedSince(ctx context.Context, userID string, issuedAt time.Time) (bool, error) {
	val, err := s.client.Get(ctx, s.key(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("session check: %w", err)
	}

	revokedAt, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return false, fmt.Errorf("session check: bad marker %q", val)
	}
	return issuedAt.Unix() <= revokedAt, nil
}

func (s *SessionStore) key(userID string) string {
	return "session_revoked:" + userID
}
