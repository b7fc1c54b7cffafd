package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "cache_"

var ErrCacheMiss = errors.New("cache entry not found")

// CacheStore is the persistence behind the cache service: opaque bytes
// under namespaced keys. Entries carry their own timestamps, so stores
// must not expire them server-side; stale entries are kept around as a
// fallback for failed fetches.
type CacheStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	DeleteAll(ctx context.Context, prefix string) error
}

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	return val, err
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, key, value, 0).Err()
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

func (s *RedisStore) DeleteAll(ctx context.Context, prefix string) error {
	iter := s.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// MemoryStore backs the cache when Redis is not configured, and in tests.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: map[string][]byte{}}
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	val, ok := s.entries[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	return val, nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = value
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

func (s *MemoryStore) DeleteAll(ctx context.Context, prefix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
		}
	}
	return nil
}

type cacheEntry struct {
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"` // unix milliseconds at write time
}

// CacheService implements a TTL cache over a CacheStore. The clock is
// injected so expiry can be tested deterministically.
type CacheService struct {
	store CacheStore
	ttl   time.Duration
	now   func() time.Time
}

func NewCacheService(store CacheStore, ttl time.Duration) *CacheService {
	return &CacheService{
		store: store,
		ttl:   ttl,
		now:   time.Now,
	}
}

func (c *CacheService) ClearCacheItem(ctx context.Context, key string) error {
	return c.store.Delete(ctx, cacheKeyPrefix+key)
}

func (c *CacheService) ClearAllCache(ctx context.Context) error {
	return c.store.DeleteAll(ctx, cacheKeyPrefix)
}

func (c *CacheService) getEntry(ctx context.Context, key string) *cacheEntry {
	raw, err := c.store.Get(ctx, cacheKeyPrefix+key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			log.Printf("[cache] store read failed for %s: %v", key, err)
		}
		return nil
	}
	var entry cacheEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		log.Printf("[cache] corrupt entry for %s: %v", key, err)
		return nil
	}
	return &entry
}

func (c *CacheService) setEntry(ctx context.Context, key string, data json.RawMessage) {
	entry := cacheEntry{Data: data, Timestamp: c.now().UnixMilli()}
	raw, err := json.Marshal(entry)
	if err != nil {
		log.Printf("[cache] marshal failed for %s: %v", key, err)
		return
	}
	if err := c.store.Set(ctx, cacheKeyPrefix+key, raw); err != nil {
		log.Printf("[cache] store write failed for %s: %v", key, err)
	}
}

func (c *CacheService) expired(entry *cacheEntry) bool {
	return c.now().UnixMilli()-entry.Timestamp > c.ttl.Milliseconds()
}

// GetCachedData returns the cached payload for key while it is fresh,
// otherwise fetches, stores the result with a new timestamp, and returns it.
// When the fetch fails and an entry exists, even an expired one, the entry
// is served rather than the error; with no entry the error propagates.
func GetCachedData[T any](ctx context.Context, c *CacheService, key string, fetch func(context.Context) (T, error)) (T, error) {
	entry := c.getEntry(ctx, key)
	if entry != nil && !c.expired(entry) {
		var cached T
		if err := json.Unmarshal(entry.Data, &cached); err == nil {
			return cached, nil
		}
		log.Printf("[cache] undecodable payload for %s, refetching", key)
	}

	fresh, err := fetch(ctx)
	if err != nil {
		if entry != nil {
			var stale T
			if uerr := json.Unmarshal(entry.Data, &stale); uerr == nil {
				log.Printf("[cache] fetch failed for %s, serving stale entry: %v", key, err)
				return stale, nil
			}
		}
		var zero T
		return zero, err
	}

	if raw, merr := json.Marshal(fresh); merr == nil {
		c.setEntry(ctx, key, raw)
	}
	return fresh, nil
}

// RefreshCachedData re-fetches unconditionally and overwrites the entry.
func RefreshCachedData[T any](ctx context.Context, c *CacheService, key string, fetch func(context.Context) (T, error)) (T, error) {
	fresh, err := fetch(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	if raw, merr := json.Marshal(fresh); merr == nil {
		c.setEntry(ctx, key, raw)
	}
	return fresh, nil
}
