package offline

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
)

// CacheKey is the durable storage key holding the offline snapshot record.
const CacheKey = "civictrack_offline_cache"

// Store is the durable byte-level storage under the offline cache. Read
// reports ok=false when no record has ever been written.
type Store interface {
	Read(ctx context.Context) (data []byte, ok bool, err error)
	Write(ctx context.Context, data []byte) error
	Delete(ctx context.Context) error
}

// RedisStore keeps the snapshot record in a single Redis key.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore wires a store onto client under the canonical cache key.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, key: CacheKey}
}

func (s *RedisStore) Read(ctx context.Context) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (s *RedisStore) Write(ctx context.Context, data []byte) error {
	return s.client.Set(ctx, s.key, data, 0).Err()
}

func (s *RedisStore) Delete(ctx context.Context) error {
	return s.client.Del(ctx, s.key).Err()
}

// MemoryStore is the in-process Store used in development mode and tests.
type MemoryStore struct {
	mu   sync.Mutex
	data []byte
	ok   bool
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) Read(ctx context.Context) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ok {
		return nil, false, nil
	}
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out, true, nil
}

func (s *MemoryStore) Write(ctx context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append([]byte(nil), data...)
	s.ok = true
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = nil
	s.ok = false
	return nil
}
