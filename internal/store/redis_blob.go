package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/neuralease/neuralease/internal/utils"
)

const redisKeyPrefix = "conv:"

type redisBlobStore struct {
	client *redis.Client
}

func NewRedisBlobStore(client *redis.Client) BlobStore {
	return &redisBlobStore{client: client}
}

func (s *redisBlobStore) Put(ctx context.Context, id string, data []byte) error {
	return s.client.Set(ctx, redisKeyPrefix+id, data, 0).Err()
}

func (s *redisBlobStore) Get(ctx context.Context, id string) ([]byte, error) {
	data, err := s.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *redisBlobStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, redisKeyPrefix+id).Err()
}
