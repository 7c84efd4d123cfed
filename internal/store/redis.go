package store

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore is the production Store backed by a Redis-compatible server.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore dials addr (a redis:// URL) and returns a Store.
func NewRedisStore(addr string) (*RedisStore, error) {
	opts, err := redis.ParseURL(addr)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &RedisStore{client: redis.NewClient(opts)}, nil
}

func (s *RedisStore) AddRecord(ctx context.Context, rec TokenRecord) error {
	return s.client.HSet(ctx, TokenInfoSetKey, rec.Mint, rec.Encode()).Err()
}

func (s *RedisStore) UpdateMarketCap(ctx context.Context, mint string, marketCap float64, pool string) error {
	raw, err := s.client.HGet(ctx, TokenInfoSetKey, mint).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("hget %s: %w", mint, err)
	}
	rec, ok := DecodeRecord(raw)
	if !ok {
		// Schema violation: never deleted, but also never overwritten with
		// a guess at the missing fields.
		return nil
	}
	rec.MarketCap = marketCap
	rec.Pool = pool
	return s.client.HSet(ctx, TokenInfoSetKey, mint, rec.Encode()).Err()
}

func (s *RedisStore) Query(ctx context.Context, mint string) (TokenRecord, bool, error) {
	raw, err := s.client.HGet(ctx, TokenInfoSetKey, mint).Result()
	if err == redis.Nil {
		return TokenRecord{}, false, nil
	}
	if err != nil {
		return TokenRecord{}, false, fmt.Errorf("hget %s: %w", mint, err)
	}
	rec, ok := DecodeRecord(raw)
	return rec, ok, nil
}

func (s *RedisStore) Enumerate(ctx context.Context) (map[string]string, error) {
	all, err := s.client.HGetAll(ctx, TokenInfoSetKey).Result()
	if err != nil {
		return nil, fmt.Errorf("hgetall: %w", err)
	}
	return all, nil
}

func (s *RedisStore) Delete(ctx context.Context, mint string) error {
	return s.client.HDel(ctx, TokenInfoSetKey, mint).Err()
}

func (s *RedisStore) MarkAlertSent(ctx context.Context, mint string) error {
	return s.client.Set(ctx, alertSentKey(mint), "1", 0).Err()
}

func (s *RedisStore) IsAlertSent(ctx context.Context, mint string) (bool, error) {
	n, err := s.client.Exists(ctx, alertSentKey(mint)).Result()
	if err != nil {
		return false, fmt.Errorf("exists %s: %w", mint, err)
	}
	return n > 0, nil
}

func (s *RedisStore) SetBlockhash(ctx context.Context, hash string) error {
	return s.client.Set(ctx, BlockhashKey, hash, 0).Err()
}

func (s *RedisStore) GetBlockhash(ctx context.Context) (string, error) {
	v, err := s.client.Get(ctx, BlockhashKey).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get blockhash: %w", err)
	}
	return v, nil
}
