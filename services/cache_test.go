package services

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestCache(ttl time.Duration) (*CacheService, *MemoryStore, *time.Time) {
	store := NewMemoryStore()
	cache := NewCacheService(store, ttl)
	now := time.Unix(1700000000, 0)
	cache.now = func() time.Time { return now }
	return cache, store, &now
}

func TestGetCachedDataFetchesOnceWithinTTL(t *testing.T) {
	cache, _, _ := newTestCache(30 * time.Minute)
	ctx := context.Background()

	calls := 0
	fetch := func(context.Context) ([]string, error) {
		calls++
		return []string{"ring", "chain"}, nil
	}

	first, err := GetCachedData(ctx, cache, "products", fetch)
	if err != nil {
		t.Fatalf("first read: %v", err)
	}
	second, err := GetCachedData(ctx, cache, "products", fetch)
	if err != nil {
		t.Fatalf("second read: %v", err)
	}

	if calls != 1 {
		t.Errorf("fetch called %d times, want 1", calls)
	}
	if len(first) != 2 || len(second) != 2 || second[0] != "ring" {
		t.Errorf("unexpected payloads: %v, %v", first, second)
	}
}

func TestGetCachedDataRefetchesAfterTTL(t *testing.T) {
	cache, _, now := newTestCache(30 * time.Minute)
	ctx := context.Background()

	calls := 0
	fetch := func(context.Context) (int, error) {
		calls++
		return calls, nil
	}

	if _, err := GetCachedData(ctx, cache, "counter", fetch); err != nil {
		t.Fatal(err)
	}
	*now = now.Add(31 * time.Minute)

	val, err := GetCachedData(ctx, cache, "counter", fetch)
	if err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Errorf("fetch called %d times after expiry, want 2", calls)
	}
	if val != 2 {
		t.Errorf("got %d, want the refetched value 2", val)
	}
}

func TestGetCachedDataServesStaleOnFetchFailure(t *testing.T) {
	cache, _, now := newTestCache(30 * time.Minute)
	ctx := context.Background()

	ok := func(context.Context) (string, error) { return "fresh", nil }
	broken := func(context.Context) (string, error) { return "", errors.New("db down") }

	if _, err := GetCachedData(ctx, cache, "greeting", ok); err != nil {
		t.Fatal(err)
	}
	*now = now.Add(2 * time.Hour)

	val, err := GetCachedData(ctx, cache, "greeting", broken)
	if err != nil {
		t.Fatalf("expected stale fallback, got error: %v", err)
	}
	if val != "fresh" {
		t.Errorf("got %q, want the stale entry", val)
	}
}

func TestGetCachedDataPropagatesErrorWithoutEntry(t *testing.T) {
	cache, _, _ := newTestCache(time.Minute)

	wantErr := errors.New("db down")
	_, err := GetCachedData(context.Background(), cache, "empty", func(context.Context) (string, error) {
		return "", wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("got %v, want the fetch error", err)
	}
}

func TestRefreshCachedDataOverwritesFreshEntry(t *testing.T) {
	cache, _, _ := newTestCache(30 * time.Minute)
	ctx := context.Background()

	if _, err := GetCachedData(ctx, cache, "v", func(context.Context) (string, error) { return "old", nil }); err != nil {
		t.Fatal(err)
	}
	if _, err := RefreshCachedData(ctx, cache, "v", func(context.Context) (string, error) { return "new", nil }); err != nil {
		t.Fatal(err)
	}

	val, err := GetCachedData(ctx, cache, "v", func(context.Context) (string, error) {
		t.Fatal("fetch should not run for a fresh entry")
		return "", nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if val != "new" {
		t.Errorf("got %q, want the refreshed value", val)
	}
}

func TestRefreshCachedDataKeepsEntryOnFailure(t *testing.T) {
	cache, _, _ := newTestCache(30 * time.Minute)
	ctx := context.Background()

	if _, err := GetCachedData(ctx, cache, "v", func(context.Context) (string, error) { return "old", nil }); err != nil {
		t.Fatal(err)
	}
	if _, err := RefreshCachedData(ctx, cache, "v", func(context.Context) (string, error) {
		return "", errors.New("db down")
	}); err == nil {
		t.Fatal("expected the refresh error to propagate")
	}

	val, err := GetCachedData(ctx, cache, "v", func(context.Context) (string, error) { return "", errors.New("db down") })
	if err != nil {
		t.Fatal(err)
	}
	if val != "old" {
		t.Errorf("got %q, want the prior entry to survive a failed refresh", val)
	}
}

func TestClearCacheItem(t *testing.T) {
	cache, store, _ := newTestCache(time.Hour)
	ctx := context.Background()

	if _, err := GetCachedData(ctx, cache, "a", func(context.Context) (int, error) { return 1, nil }); err != nil {
		t.Fatal(err)
	}
	if err := cache.ClearCacheItem(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Get(ctx, "cache_a"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("entry still present after clear: %v", err)
	}
}

func TestClearAllCacheOnlyTouchesPrefixedKeys(t *testing.T) {
	cache, store, _ := newTestCache(time.Hour)
	ctx := context.Background()

	if _, err := GetCachedData(ctx, cache, "a", func(context.Context) (int, error) { return 1, nil }); err != nil {
		t.Fatal(err)
	}
	if _, err := GetCachedData(ctx, cache, "b", func(context.Context) (int, error) { return 2, nil }); err != nil {
		t.Fatal(err)
	}
	if err := store.Set(ctx, "session_x", []byte("keep")); err != nil {
		t.Fatal(err)
	}

	if err := cache.ClearAllCache(ctx); err != nil {
		t.Fatal(err)
	}

	if _, err := store.Get(ctx, "cache_a"); !errors.Is(err, ErrCacheMiss) {
		t.Error("cache_a survived ClearAllCache")
	}
	if _, err := store.Get(ctx, "cache_b"); !errors.Is(err, ErrCacheMiss) {
		t.Error("cache_b survived ClearAllCache")
	}
	if _, err := store.Get(ctx, "session_x"); err != nil {
		t.Error("non-cache key was deleted")
	}
}

func TestCorruptEntryFallsBackToFetch(t *testing.T) {
	cache, store, _ := newTestCache(time.Hour)
	ctx := context.Background()

	if err := store.Set(ctx, "cache_bad", []byte("not json")); err != nil {
		t.Fatal(err)
	}

	val, err := GetCachedData(ctx, cache, "bad", func(context.Context) (string, error) { return "recovered", nil })
	if err != nil {
		t.Fatal(err)
	}
	if val != "recovered" {
		t.Errorf("got %q, want the fetched value", val)
	}
}
