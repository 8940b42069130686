// Package session keeps the current session id per account for the
// single-active-session policy. The latest login overwrites the previous one.
package session

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "session:"

type Store interface {
	Save(ctx context.Context, accountID int64, sessionID string, ttl time.Duration) error
	// Current returns the active session id, or "" when none is recorded.
	Current(ctx context.Context, accountID int64) (string, error)
}

type redisStore struct {
	client redis.Cmdable
}

func NewRedisStore(client redis.Cmdable) Store {
	return &redisStore{client: client}
}

func key(accountID int64) string {
	return keyPrefix + strconv.FormatInt(accountID, 10)
}

func (s *redisStore) Save(ctx context.Context, accountID int64, sessionID string, ttl time.Duration) error {
	if ttl <= 0 {
		return errors.New("session: ttl must be positive")
	}
	return s.client.Set(ctx, key(accountID), sessionID, ttl).Err()
}

func (s *redisStore) Current(ctx context.Context, accountID int64) (string, error) {
	value, err := s.client.Get(ctx, key(accountID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// Connect opens a redis client and pings it.
func Connect(ctx context.Context, address, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	if _, err := client.Ping(ctx).Result(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
