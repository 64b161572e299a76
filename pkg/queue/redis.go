package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultRedisKey matches the browser's local storage key.
	DefaultRedisKey = "vck_post_queue"

	maxTxRetries = 5
)

// Connect opens a Redis client and checks it with a ping.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}

	log.Info().Str("addr", addr).Msg("redis connected")
	return client, nil
}

// RedisStore keeps the queue as a JSON string under one key. Updates use
// WATCH so concurrent writers never lose each other's records.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{client: client, key: key}
}

func (s *RedisStore) Key() string { return s.key }

func (s *RedisStore) Load(ctx context.Context) ([]Record, error) {
	return s.get(ctx, s.client)
}

func (s *RedisStore) get(ctx context.Context, c redis.Cmdable) ([]Record, error) {
	data, err := c.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return []Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", s.key, err)
	}
	return decodeRecords(data)
}

func (s *RedisStore) Update(ctx context.Context, fn func([]Record) ([]Record, error)) error {
	txf := func(tx *redis.Tx) error {
		recs, err := s.get(ctx, tx)
		if err != nil {
			return err
		}
		recs, err = fn(recs)
		if err != nil {
			return err
		}
		data, err := json.Marshal(recs)
		if err != nil {
			return fmt.Errorf("encode queue: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, s.key, data, 0)
			return nil
		})
		return err
	}

	for range maxTxRetries {
		err := s.client.Watch(ctx, txf, s.key)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
		log.Debug().Str("key", s.key).Msg("queue changed during update, retrying")
	}
	return fmt.Errorf("redis update %s: too many concurrent writers", s.key)
}
