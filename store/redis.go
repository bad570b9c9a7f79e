package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisKV implements KV on Redis, for deployments running more than one
// gateway instance against shared session state.
type redisKV struct {
	client *redis.Client
	ttl    time.Duration
}

func (r *redisKV) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (r *redisKV) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, key, value, r.ttl).Err()
}

func (r *redisKV) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *redisKV) Close() error {
	return r.client.Close()
}
