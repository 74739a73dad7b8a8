package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type redisKeyValue struct {
	client *redis.Client
}

func NewRedisKeyValue(client *redis.Client) KeyValue {
	return &redisKeyValue{
		client: client,
	}
}

func (that *redisKeyValue) Get(ctx context.Context, key string) (string, error) {
	response, err := that.client.Get(ctx, key).Result()

	if errors.Is(err, redis.Nil) {
		return "", ErrKeyNotFound
	}

	if err != nil {
		return "", fmt.Errorf("failed to get key %s: %w", key, err)
	}

	return response, nil
}

func (that *redisKeyValue) Set(ctx context.Context, key, value string) error {
	err := that.client.Set(ctx, key, value, 0).Err()
	if err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}

	return nil
}
