package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisStore keeps sessions in Redis so several console replicas can share
// logins. Entries expire after the configured TTL; an expired session just
// forces a fresh login.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func key(id string) string {
	return "console:session:" + id
}

func (r *RedisStore) Create(ctx context.Context, token, username, role string) (*Session, error) {
	session := newSession(token, username, role)

	data, err := json.Marshal(session)
	if err != nil {
		return nil, err
	}

	if err := r.client.Set(ctx, key(session.ID), data, r.ttl).Err(); err != nil {
		return nil, err
	}
	return session, nil
}

func (r *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	data, err := r.client.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, key(id)).Err()
}
