package infra

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// NewRedis crea y valida el cliente go-redis.
func NewRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)

	// La conectividad se valida en el arranque, no en el primer uso.
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return rdb, nil
}
