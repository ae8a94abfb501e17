package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps sessions in Redis so that revocation and expiry are
// shared across server instances. The key TTL mirrors the session's
// inactivity window, so Redis evicts what the gate would reject anyway.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, prefix: "session:"}
}

func (r *RedisStore) key(token string) string {
	return r.prefix + token
}

func (r *RedisStore) Create(ctx context.Context, s *Session) error {
	if s.Token == "" || s.AccountID == uuid.Nil {
		return fmt.Errorf("session: missing token or account id")
	}

	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session: expiry must be in the future")
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("session: marshal: %w", err)
	}
	return r.client.Set(ctx, r.key(s.Token), data, ttl).Err()
}

func (r *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	val, err := r.client.Get(ctx, r.key(token)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var s Session
	if err := json.Unmarshal([]byte(val), &s); err != nil {
		return nil, fmt.Errorf("session: unmarshal: %w", err)
	}

	// The TTL should have evicted it already; guard against clock skew.
	if s.Expired(time.Now()) {
		_ = r.client.Del(ctx, r.key(token)).Err()
		return nil, nil
	}
	return &s, nil
}

func (r *RedisStore) Touch(ctx context.Context, token string, expiresAt time.Time) error {
	val, err := r.client.Get(ctx, r.key(token)).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return err
	}

	var s Session
	if err := json.Unmarshal([]byte(val), &s); err != nil {
		return fmt.Errorf("session: unmarshal: %w", err)
	}
	s.ExpiresAt = expiresAt

	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return r.client.Del(ctx, r.key(token)).Err()
	}

	data, err := json.Marshal(&s)
	if err != nil {
		return fmt.Errorf("session: marshal: %w", err)
	}
	return r.client.Set(ctx, r.key(token), data, ttl).Err()
}

func (r *RedisStore) Delete(ctx context.Context, token string) error {
	return r.client.Del(ctx, r.key(token)).Err()
}
