package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"carpool/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned by Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
}

type cacheService struct {
	client    *redis.Client
	keyPrefix string
	logger    *logger.Logger
}

func NewCacheService(client *redis.Client, keyPrefix string, log *logger.Logger) CacheService {
	return &cacheService{
		client:    client,
		keyPrefix: keyPrefix,
		logger:    log,
	}
}

func (s *cacheService) key(k string) string {
	return fmt.Sprintf("%s:%s", s.keyPrefix, k)
}

func (s *cacheService) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := s.client.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return fmt.Errorf("failed to get cache key %s: %w", key, err)
	}

	return json.Unmarshal([]byte(data), dest)
}

func (s *cacheService) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}

	if err := s.client.Set(ctx, s.key(key), data, expiration).Err(); err != nil {
		return fmt.Errorf("failed to set cache key %s: %w", key, err)
	}

	return nil
}

func (s *cacheService) Delete(ctx context.Context, keys ...string) error {
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = s.key(k)
	}

	if err := s.client.Del(ctx, prefixed...).Err(); err != nil {
		return fmt.Errorf("failed to delete cache keys: %w", err)
	}

	return nil
}

func (s *cacheService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
