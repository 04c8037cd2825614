package storage

import (
	"context"

	goredis "github.com/redis/go-redis/v9"

	"github.com/octabyte/quizmaster-client/db/redis"
)

// Redis stores values under "<prefix>:<key>" with no expiry. Useful when several client
// processes on different hosts share one login.
type Redis struct {
	client goredis.UniversalClient
	prefix string
}

func NewRedis(client goredis.UniversalClient, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix}
}

func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	value, ok, err := redis.Get(ctx, r.client, redis.Key(r.prefix, key))
	if err != nil {
		return "", false, wrap("get", key, err)
	}
	return value, ok, nil
}

func (r *Redis) Set(ctx context.Context, key, value string) error {
	if err := redis.Set(ctx, r.client, redis.Key(r.prefix, key), value, 0); err != nil {
		return wrap("set", key, err)
	}
	return nil
}

func (r *Redis) Remove(ctx context.Context, key string) error {
	if err := redis.Del(ctx, r.client, redis.Key(r.prefix, key)); err != nil {
		return wrap("remove", key, err)
	}
	return nil
}
