package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOptions configures a RedisStore.
type RedisOptions struct {
	Addr      string
	DB        int
	Password  string
	KeyPrefix string
	// TTL of each blob; zero keeps them forever
	TTL time.Duration
}

// RedisStore keeps blobs as plain string keys under a prefix.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisStore(opts RedisOptions) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		DB:       opts.DB,
		Password: opts.Password,
	})
	return NewRedisStoreWithClient(rdb, opts.KeyPrefix, opts.TTL)
}

// NewRedisStoreWithClient wraps an existing client.
func NewRedisStoreWithClient(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (r *RedisStore) key(id string) string { return r.prefix + id }

func (r *RedisStore) Save(ctx context.Context, s *Snapshot) error {
	data, err := Encode(s)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key(s.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis save %s: %w", s.ID, err)
	}
	return nil
}

func (r *RedisStore) Load(ctx context.Context, id string) (*Snapshot, error) {
	data, err := r.client.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis load %s: %w", id, err)
	}
	return Decode(data)
}

func (r *RedisStore) List(ctx context.Context) ([]Summary, error) {
	var out []Summary
	iter := r.client.Scan(ctx, 0, r.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		data, err := r.client.Get(ctx, iter.Val()).Bytes()
		if err != nil {
			// expired between SCAN and GET
			continue
		}
		s, err := Decode(data)
		if err != nil {
			continue
		}
		out = append(out, s.Summary())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis list: %w", err)
	}
	sortSummaries(out)
	return out, nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	n, err := r.client.Del(ctx, r.key(id)).Result()
	if err != nil {
		return fmt.Errorf("redis delete %s: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RedisStore) Close() error { return r.client.Close() }
