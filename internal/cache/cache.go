package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores search results as JSON under caller-built keys.
type Cache interface {
	Get(ctx context.Context, key string, dst any) bool
	Set(ctx context.Context, key string, value any) error
	Close() error
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Host: "localhost",
		Port: "6379",
		DB:   0,
		TTL:  5 * time.Minute,
	}
}

// NewRedisClient connects and pings once so a bad address fails at startup.
func NewRedisClient(cfg RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *RedisCache) Get(ctx context.Context, key string, dst any) bool {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dst) == nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

// Close is a no-op; the client is shared with the session store and closed
// by whoever opened it.
func (c *RedisCache) Close() error {
	return nil
}

type NoOpCache struct{}

func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) Get(ctx context.Context, key string, dst any) bool {
	return false
}

func (c *NoOpCache) Set(ctx context.Context, key string, value any) error {
	return nil
}

func (c *NoOpCache) Close() error {
	return nil
}

// Key hashes the JSON form of a request under a prefix such as "flights".
func Key(prefix string, req any) string {
	data, _ := json.Marshal(req)
	hash := sha256.Sum256(data)
	return prefix + ":" + hex.EncodeToString(hash[:])
}
