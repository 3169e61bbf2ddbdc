package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/schema"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix is the key prefix used when none is configured.
const DefaultPrefix = "automata:definition:"

// Definitions live under prefix+"def:" so no name can collide with the index key.
const definitionNamespace = "def:"

// Store implements ports.DefinitionStore using Redis.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for definitions.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for definitions.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: DefaultPrefix,
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) key(name string) string {
	return s.prefix + definitionNamespace + name
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Save persists the definition as JSON and indexes its name.
func (s *Store) Save(ctx context.Context, name string, def schema.Definition) error {
	data, err := json.Marshal(def)
	if err != nil {
		return fmt.Errorf("failed to marshal definition: %w", err)
	}

	pipe := s.client.Pipeline()

	pipe.Set(ctx, s.key(name), data, s.ttl)

	// Score is the expiry time; definitions without TTL never leave the index.
	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = 4102444800 // 2100-01-01
	}

	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  score,
		Member: name,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}

	return nil
}

// Load retrieves the definition from Redis.
func (s *Store) Load(ctx context.Context, name string) (schema.Definition, error) {
	val, err := s.client.Get(ctx, s.key(name)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return schema.Definition{}, domain.ErrDefinitionNotFound
		}
		return schema.Definition{}, fmt.Errorf("failed to get from redis: %w", err)
	}

	// Parse keeps integer outputs as ints.
	def, err := schema.Parse(val, schema.FormatJSON)
	if err != nil {
		return schema.Definition{}, fmt.Errorf("failed to decode stored definition %q: %w", name, err)
	}

	return def, nil
}

// Delete removes the definition and its index entry.
func (s *Store) Delete(ctx context.Context, name string) error {
	pipe := s.client.Pipeline()

	pipe.Del(ctx, s.key(name))
	pipe.ZRem(ctx, s.indexKey(), name)

	_, err := pipe.Exec(ctx)
	return err
}

// List returns the indexed names after pruning expired entries.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())

	err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired definitions: %w", err)
	}

	names, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list definitions: %w", err)
	}
	sort.Strings(names)

	return names, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
