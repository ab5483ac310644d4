package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jpillora/backoff"
)

// RedisStorage は Redis の文字列キーにカートを保存する。
type RedisStorage struct {
	client *redis.Client
	log    *slog.Logger
}

// NewRedisStorage は "host:port" か "redis://..." を受け取る。
func NewRedisStorage(addr string, log *slog.Logger) *RedisStorage {
	opts, err := redis.ParseURL(addr)
	if err != nil {
		// "redis://..." 形式でなければ Addr として使う
		opts = &redis.Options{
			Addr:         addr,
			MinIdleConns: 1,
			MaxRetries:   3,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			PoolSize:     4,
		}
	}
	if log == nil {
		log = slog.Default()
	}
	return &RedisStorage{client: redis.NewClient(opts), log: log}
}

// Initialize は Ping が通るまでバックオフしながら待つ。
func (r *RedisStorage) Initialize(ctx context.Context, attempts int) error {
	b := backoff.Backoff{Min: 200 * time.Millisecond, Max: 5 * time.Second, Factor: 2}
	for i := 0; i < attempts; i++ {
		err := r.Ping(ctx)
		if err == nil {
			return nil
		}
		r.log.DebugContext(ctx, "redis ping failed", slog.Int("attempt", i+1), slog.Any("err", err))
		if i == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(b.Duration()):
		}
	}
	return fmt.Errorf("redis not reachable after %d attempts", attempts)
}

func (r *RedisStorage) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return r.client.Ping(pingCtx).Err()
}

func (r *RedisStorage) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis GET: %w", err)
	}
	return val, true, nil
}

func (r *RedisStorage) Set(ctx context.Context, key string, value string) error {
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis SET: %w", err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	return r.client.Close()
}
