// Package redis implements cache.Store on Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	backend "github.com/redis/go-redis/v9"

	"github.com/24dai03-saifchaus/algonexus/internal/trace"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const defaultPrefix = "algonexus:trace:"

// Store keeps encoded traces under prefix+key.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for cached traces.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: defaultPrefix,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(k string) string {
	return s.prefix + k
}

func (s *Store) Get(ctx context.Context, key string) (trace.Trace, bool, error) {
	val, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to load trace from redis: %w", err)
	}

	var tr trace.Trace
	if err := json.Unmarshal(val, &tr); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal trace: %w", err)
	}
	return tr, true, nil
}

func (s *Store) Put(ctx context.Context, key string, tr trace.Trace) error {
	if len(tr) == 0 {
		return trace.ErrEmptyTrace
	}
	data, err := json.Marshal(tr)
	if err != nil {
		return fmt.Errorf("failed to marshal trace: %w", err)
	}
	if err := s.client.Set(ctx, s.key(key), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.client.Close()
}
