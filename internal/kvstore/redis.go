package kvstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	rdb "github.com/redis/go-redis/v9"
)

// RedisStore persists UI state in redis, letting several workstations share
// bookmarks and selection through one server.
type RedisStore struct {
	c       *rdb.Client
	prefix  string
	timeout time.Duration
}

// NewRedisStore connects to addr and verifies the connection with a PING.
func NewRedisStore(addr string, db int, prefix string, timeout time.Duration) (*RedisStore, error) {
	client := rdb.NewClient(&rdb.Options{Addr: addr, DB: db})
	s := &RedisStore{c: client, prefix: prefix, timeout: timeout}

	ctx, cancel := s.ctx()
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return s, nil
}

func (s *RedisStore) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}

// Read implements Store.
func (s *RedisStore) Read(key string) (string, bool, error) {
	ctx, cancel := s.ctx()
	defer cancel()

	v, err := s.c.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if errors.Is(err, rdb.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return v, true, nil
}

// Write implements Store.
func (s *RedisStore) Write(key, value string) error {
	ctx, cancel := s.ctx()
	defer cancel()

	if err := s.c.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

// Close implements Store.
func (s *RedisStore) Close() error {
	return s.c.Close()
}
