// internal/session/redis.go
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// sessionTTL is how long an idle session survives in Redis. Every Save
// renews it.
const sessionTTL = 30 * 24 * time.Hour

// RedisStore keeps each session as a JSON blob under an app-prefixed key.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore connects a Redis client from environment variables:
//   - REDIS_ADDR (default "localhost:6379")
//   - REDIS_DB (optional, default 0)
func NewRedisStore() (*RedisStore, error) {
	addr := getEnv("REDIS_ADDR", "localhost:6379")
	dbIdx := getEnvInt("REDIS_DB", 0)

	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   dbIdx,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return &RedisStore{rdb: rdb}, nil
}

func sessionKey(sid string) string {
	return "bdaybook:session:" + sid
}

// Get loads the session blob. A missing key is found=false, not an error.
func (s *RedisStore) Get(ctx context.Context, sid string) (Data, bool, error) {
	raw, err := s.rdb.Get(ctx, sessionKey(sid)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Data{}, false, nil
	}
	if err != nil {
		return Data{}, false, fmt.Errorf("failed to read session %s: %w", sid, err)
	}
	var d Data
	if err := json.Unmarshal(raw, &d); err != nil {
		return Data{}, false, fmt.Errorf("failed to decode session %s: %w", sid, err)
	}
	return d, true, nil
}

// Save writes the session blob and renews its TTL.
func (s *RedisStore) Save(ctx context.Context, sid string, d Data) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to encode session %s: %w", sid, err)
	}
	if err := s.rdb.Set(ctx, sessionKey(sid), raw, sessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to write session %s: %w", sid, err)
	}
	return nil
}

// getEnv is a helper to read an environment variable or return a default value.
func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// getEnvInt is a helper to parse an environment variable as integer, else a default value.
func getEnvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
