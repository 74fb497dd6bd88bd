package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const claimRecordScript = `
local data = redis.call("GET", KEYS[1])
if not data then
  return 0
end
local version = string.byte(data, 1)
if version == 1 then
  local rv_len = string.byte(data, 2)
  if rv_len and #data >= 2 + rv_len then
    local rv = string.sub(data, 3, 2 + rv_len)
    if #rv > 0 then
      redis.call("DEL", ARGV[1] .. rv)
    end
  end
end
redis.call("DEL", KEYS[1])
return 1
`

var claimRecordLua = redis.NewScript(claimRecordScript)

// RedisStore is a Redis-backed [Store]. Records live under an id key with a
// refresh-value index key pointing back at the id; both carry the same TTL so
// expired records vanish without a sweeper.
//
// DeleteByID runs a Lua script that removes the record and its index in one
// atomic step and reports whether the record existed, which is what gives
// concurrent rotations exactly one winner.
type RedisStore struct {
	redis  redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewRedisStore creates a [RedisStore] with the given key namespace prefix
// and record TTL. An empty prefix defaults to "rt".
func NewRedisStore(redisClient redis.UniversalClient, prefix string, ttl time.Duration) *RedisStore {
	if prefix == "" {
		prefix = "rt"
	}
	return &RedisStore{
		redis:  redisClient,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (s *RedisStore) idKey(id string) string {
	return s.prefix + ":id:" + id
}

func (s *RedisStore) refreshKeyPrefix() string {
	return s.prefix + ":rv:"
}

func (s *RedisStore) refreshKey(refreshValue string) string {
	return s.refreshKeyPrefix() + refreshValue
}

// Put describes the put operation and its observable behavior.
//
// Put may return an error when input validation, dependency calls, or security checks fail.
// Put does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *RedisStore) Put(ctx context.Context, record *Record) error {
	if record == nil || record.ID == "" || record.RefreshValue == "" {
		return errors.New("incomplete token record")
	}

	encoded, err := encodeRecord(record)
	if err != nil {
		return err
	}

	ttl := s.ttl
	if expiry := time.Until(time.Unix(record.ExpiresAt, 0)); expiry > 0 && expiry < ttl {
		ttl = expiry
	}

	_, err = s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.idKey(record.ID), encoded, ttl)
		pipe.Set(ctx, s.refreshKey(record.RefreshValue), record.ID, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return nil
}

// GetByID describes the getbyid operation and its observable behavior.
//
// GetByID may return an error when input validation, dependency calls, or security checks fail.
// GetByID does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *RedisStore) GetByID(ctx context.Context, id string) (*Record, error) {
	data, err := s.redis.Get(ctx, s.idKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return decodeRecord(data)
}

// GetByRefreshValue describes the getbyrefreshvalue operation and its observable behavior.
//
// GetByRefreshValue may return an error when input validation, dependency calls, or security checks fail.
// GetByRefreshValue does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *RedisStore) GetByRefreshValue(ctx context.Context, refreshValue string) (*Record, error) {
	id, err := s.redis.Get(ctx, s.refreshKey(refreshValue)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	record, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// A dangling index entry can only point at a claimed or expired record.
	if record.RefreshValue != refreshValue {
		return nil, ErrNotFound
	}

	return record, nil
}

// DeleteByID describes the deletebyid operation and its observable behavior.
//
// DeleteByID may return an error when input validation, dependency calls, or security checks fail.
// DeleteByID does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *RedisStore) DeleteByID(ctx context.Context, id string) (bool, error) {
	result, err := claimRecordLua.Run(
		ctx,
		s.redis,
		[]string{s.idKey(id)},
		s.refreshKeyPrefix(),
	).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	existed, ok := result.(int64)
	if !ok {
		return false, fmt.Errorf("%w: invalid claim script response", ErrUnavailable)
	}

	return existed == 1, nil
}

// Ping returns a point-in-time Redis availability check and latency.
func (s *RedisStore) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if err := s.redis.Ping(ctx).Err(); err != nil {
		return time.Since(start), fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return time.Since(start), nil
}
