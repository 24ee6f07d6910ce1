package redisx

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Config struct {
	Address   string
	Password  string
	DB        int
	PoolSize  int
	KeyPrefix string
}

func NewClient(conf Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         conf.Address,
		Password:     conf.Password,
		DB:           conf.DB,
		PoolSize:     conf.PoolSize,
		ReadTimeout:  2 * time.Second, //nolint:gomnd
		WriteTimeout: 2 * time.Second, //nolint:gomnd
	})
}

func Ping(ctx context.Context, client *redis.Client) error {
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}

	return nil
}

// DB is a key-value slot backed by plain Redis strings without expiry.
type DB struct {
	client *redis.Client
	prefix string
}

func New(client *redis.Client, prefix string) *DB {
	return &DB{client: client, prefix: prefix}
}

func (db *DB) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := db.client.Get(ctx, db.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}

	if err != nil {
		return "", false, fmt.Errorf("get redis key %s: %w", db.prefix+key, err)
	}

	return v, true, nil
}

func (db *DB) Set(ctx context.Context, key, value string) error {
	if err := db.client.Set(ctx, db.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("set redis key %s: %w", db.prefix+key, err)
	}

	return nil
}
