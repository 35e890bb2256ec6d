package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"stockcast/internal/domain"

	"github.com/redis/go-redis/v9"
)

// RedisClient is the subset of redis.Client the store depends on.
type RedisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Keys(ctx context.Context, pattern string) *redis.StringSliceCmd
}

// RedisStore keeps prediction entries in Redis with the same TTL semantics
// as the in-memory store. Used when REDIS_URL is configured so cached
// predictions survive across replicas.
type RedisStore struct {
	client RedisClient
}

func NewRedisStore(client RedisClient) *RedisStore {
	return &RedisStore{client: client}
}

// Connect builds and pings a redis client from an address or redis:// URL.
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	opts := &redis.Options{Addr: addr}
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		opts = parsed
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func (s *RedisStore) GetPrediction(ctx context.Context, symbol string) (*domain.PredictionResult, error) {
	data, err := s.client.Get(ctx, predictionKey(symbol)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var result domain.PredictionResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *RedisStore) SetPrediction(ctx context.Context, symbol string, result domain.PredictionResult, ttl time.Duration) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, predictionKey(symbol), data, ttl).Err()
}

func (s *RedisStore) DeletePrediction(ctx context.Context, symbol string) error {
	return s.client.Del(ctx, predictionKey(symbol)).Err()
}

// Size counts prediction keys. Entry cardinality is bounded by distinct
// symbols, so KEYS is acceptable here.
func (s *RedisStore) Size(ctx context.Context) int {
	keys, err := s.client.Keys(ctx, "prediction:*").Result()
	if err != nil {
		return 0
	}
	return len(keys)
}
