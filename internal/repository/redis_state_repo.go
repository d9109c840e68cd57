package repository

import (
	"context"

	"github.com/redis/go-redis/v9"
)

type redisStateRepo struct {
	client *redis.Client
	key    string
}

// NewRedisStateRepo stores the document as a single Redis string without expiry
func NewRedisStateRepo(client *redis.Client, key string) StateRepo {
	if key == "" {
		key = DefaultStateKey
	}
	return &redisStateRepo{client: client, key: key}
}

func (r *redisStateRepo) Load(ctx context.Context) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (r *redisStateRepo) Save(ctx context.Context, data []byte) error {
	return r.client.Set(ctx, r.key, data, 0).Err()
}
