package library

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// RedisSlot stores the collection under one key of a Redis server.
type RedisSlot struct {
	client  *redis.Client
	key     string
	timeout time.Duration
}

// NewRedisClient returns a client for the given server. The connection is
// established lazily on first use.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func NewRedisSlot(client *redis.Client, key string, timeout time.Duration) *RedisSlot {
	if key == "" {
		key = DefaultSlot
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &RedisSlot{client: client, key: key, timeout: timeout}
}

func (s *RedisSlot) LoadAll() ([]Book, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return []Book{}, nil
	}
	if err != nil {
		return nil, errors.WithStack(StoreUnavailable(s.key, err))
	}
	return decodeBooks(s.key, data)
}

// SaveAll overwrites the key with a single SET.
func (s *RedisSlot) SaveAll(books []Book) error {
	data, err := encodeBooks(books)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return errors.WithStack(StoreUnavailable(s.key, err))
	}
	return nil
}

func (s *RedisSlot) Close() error {
	return s.client.Close()
}
