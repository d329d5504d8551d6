package storage

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	domainRepo "mediconnect/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

// compareAndSwapScript writes the value and bumps the version only when the
// stored version still equals ARGV[2]. It runs atomically inside Redis, so
// several processes sharing one Redis never lose an update.
//
// Returns the new version, or -1 on a version mismatch.
var compareAndSwapScript = redis.NewScript(`
	local current = tonumber(redis.call('HGET', KEYS[1], 'version') or '0')
	if current ~= tonumber(ARGV[2]) then
		return -1
	end
	local next = current + 1
	redis.call('HSET', KEYS[1], 'value', ARGV[1], 'version', next)
	return next
`)

const (
	redisValueField   = "value"
	redisVersionField = "version"
)

type RedisBlobStore struct {
	client *redis.Client
	prefix string
}

func NewRedisBlobStore(client *redis.Client, prefix string) *RedisBlobStore {
	return &RedisBlobStore{client: client, prefix: prefix}
}

func (s *RedisBlobStore) key(key string) string {
	if s.prefix == "" {
		return "blob:" + key
	}
	return s.prefix + ":blob:" + key
}

func (s *RedisBlobStore) Get(ctx context.Context, key string) ([]byte, int64, error) {
	fields, err := s.client.HMGet(ctx, s.key(key), redisValueField, redisVersionField).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("redis get blob %s: %w", key, err)
	}
	if len(fields) != 2 || fields[0] == nil {
		return nil, 0, domainRepo.ErrBlobNotFound
	}

	value, ok := fields[0].(string)
	if !ok {
		return nil, 0, fmt.Errorf("redis blob %s: unexpected value type %T", key, fields[0])
	}

	var version int64
	if raw, ok := fields[1].(string); ok {
		version, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, 0, fmt.Errorf("redis blob %s: bad version %q: %w", key, raw, err)
		}
	}
	return []byte(value), version, nil
}

func (s *RedisBlobStore) CompareAndSwap(ctx context.Context, key string, value []byte, expected int64) (int64, error) {
	// Uses package-level compareAndSwapScript so go-redis can switch to EVALSHA
	next, err := compareAndSwapScript.Run(ctx, s.client, []string{s.key(key)}, value, expected).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, domainRepo.ErrVersionConflict
		}
		return 0, fmt.Errorf("redis cas blob %s: %w", key, err)
	}
	if next == -1 {
		return 0, domainRepo.ErrVersionConflict
	}
	return next, nil
}

func (s *RedisBlobStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("redis delete blob %s: %w", key, err)
	}
	return nil
}
