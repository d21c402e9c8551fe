package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix        = "session:"
	maxUpdateRetries = 5
)

// RedisStore keeps sessions in Redis with a sliding TTL. Update uses
// WATCH/MULTI so concurrent writers to one session never lose changes.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
	}
}

func (r *RedisStore) Create(ctx context.Context) (*Session, error) {
	s := New()
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	if err := r.client.Set(ctx, keyPrefix+s.ID, data, r.ttl).Err(); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	return s, nil
}

func (r *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	return r.get(ctx, r.client, id)
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (r *RedisStore) get(ctx context.Context, g getter, id string) (*Session, error) {
	data, err := g.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &s, nil
}

func (r *RedisStore) Update(ctx context.Context, id string, fn func(*Session) error) (*Session, error) {
	key := keyPrefix + id

	for i := 0; i < maxUpdateRetries; i++ {
		var (
			updated *Session
			fnErr   error
		)

		err := r.client.Watch(ctx, func(tx *redis.Tx) error {
			s, err := r.get(ctx, tx, id)
			if err != nil {
				return err
			}
			fnErr = fn(s)
			s.UpdatedAt = time.Now().UTC()

			data, err := json.Marshal(s)
			if err != nil {
				return err
			}
			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, data, r.ttl)
				return nil
			})
			if err == nil {
				updated = s
			}
			return err
		}, key)

		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return updated, fnErr
	}

	return nil, fmt.Errorf("session %s: too many concurrent updates", id)
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, keyPrefix+id).Err()
}
