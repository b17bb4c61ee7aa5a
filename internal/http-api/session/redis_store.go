package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"artshare/internal/http-api/models"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "session:"

// NewRedisClient connects to the server named by a redis:// URL and pings it.
func NewRedisClient(ctx context.Context, url, password string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return rdb, nil
}

// RedisStore keeps each session in a hash that expires with the session.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func key(id string) string {
	return redisKeyPrefix + id
}

func (r *RedisStore) Create(ctx context.Context, s *Session) error {
	fields := map[string]any{
		"account_id": s.AccountID,
		"username":   s.Username,
		"role":       string(s.Role),
		"expires_at": s.ExpiresAt.UTC().Format(time.RFC3339Nano),
	}

	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, key(s.ID), fields)
	pipe.ExpireAt(ctx, key(s.ID), s.ExpiresAt)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (r *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	result, err := r.client.HGetAll(ctx, key(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	// HGETALL on a missing key is an empty map, not redis.Nil
	if len(result) == 0 {
		return nil, ErrNotFound
	}

	accountID, err := strconv.ParseUint(result["account_id"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("corrupt session %s: %w", id, err)
	}
	expiresAt, err := time.Parse(time.RFC3339Nano, result["expires_at"])
	if err != nil {
		return nil, fmt.Errorf("corrupt session %s: %w", id, err)
	}

	s := &Session{
		ID:        id,
		AccountID: uint(accountID),
		Username:  result["username"],
		Role:      models.Role(result["role"]),
		ExpiresAt: expiresAt,
	}
	if s.Expired(time.Now()) {
		return nil, ErrNotFound
	}
	return s, nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, key(id)).Err()
}
