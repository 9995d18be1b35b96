package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisPersister keeps the session record in Redis under "<prefix>:<key>".
type RedisPersister struct {
	client *redis.Client
	prefix string
	ttl    time.Duration // zero keeps records until logout
}

// NewRedisPersister wraps an existing client.
func NewRedisPersister(client *redis.Client, prefix string, ttl time.Duration) *RedisPersister {
	if prefix == "" {
		prefix = "coach:session"
	}
	return &RedisPersister{client: client, prefix: prefix, ttl: ttl}
}

func (p *RedisPersister) redisKey(key string) string {
	return p.prefix + ":" + key
}

func (p *RedisPersister) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := p.client.Get(ctx, p.redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoRecord
	}
	return data, err
}

func (p *RedisPersister) Save(ctx context.Context, key string, data []byte) error {
	return p.client.Set(ctx, p.redisKey(key), data, p.ttl).Err()
}

func (p *RedisPersister) Delete(ctx context.Context, key string) error {
	return p.client.Del(ctx, p.redisKey(key)).Err()
}
