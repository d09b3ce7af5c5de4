package engine

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestCacheKey(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		k1 := CacheKey("profile", "https://www.linkedin.com/in/janedoe/")
		k2 := CacheKey("profile", "https://www.linkedin.com/in/janedoe/")
		if k1 != k2 {
			t.Errorf("CacheKey not deterministic: %q != %q", k1, k2)
		}
	})

	t.Run("different inputs differ", func(t *testing.T) {
		k1 := CacheKey("profile", "janedoe")
		k2 := CacheKey("profile", "johnsmith")
		if k1 == k2 {
			t.Errorf("different inputs produced same key: %q", k1)
		}
	})

	t.Run("parts are not concatenated blindly", func(t *testing.T) {
		if CacheKey("ab", "c") == CacheKey("a", "bc") {
			t.Error("CacheKey(ab, c) == CacheKey(a, bc)")
		}
	})

	t.Run("has prefix", func(t *testing.T) {
		k := CacheKey("test")
		if k[:3] != "gp:" {
			t.Errorf("expected gp: prefix, got %q", k[:3])
		}
	})
}

func TestCacheGetSet(t *testing.T) {
	InitCache("", time.Minute, 100, 5*time.Minute)

	ctx := context.Background()
	key := CacheKey("test", "round-trip")

	if _, ok := CacheGet(ctx, key); ok {
		t.Error("expected cache miss on empty cache")
	}

	CacheSet(ctx, key, []byte(`{"basic_info":{}}`))

	got, ok := CacheGet(ctx, key)
	if !ok {
		t.Fatal("expected cache hit after set")
	}
	if string(got) != `{"basic_info":{}}` {
		t.Errorf("got %q, want %q", got, `{"basic_info":{}}`)
	}

	CacheDelete(ctx, key)
	if _, ok := CacheGet(ctx, key); ok {
		t.Error("expected cache miss after delete")
	}
}

func TestCacheExpiration(t *testing.T) {
	InitCache("", time.Millisecond, 100, 5*time.Minute)

	ctx := context.Background()
	key := CacheKey("test", "expiry")

	CacheSet(ctx, key, []byte("temp"))
	time.Sleep(5 * time.Millisecond)

	if _, ok := CacheGet(ctx, key); ok {
		t.Error("expected cache miss after TTL expiry")
	}
}

func TestCacheEviction(t *testing.T) {
	InitCache("", time.Minute, 3, 5*time.Minute)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		CacheSet(ctx, CacheKey("evict", fmt.Sprintf("item-%d", i)), []byte(fmt.Sprintf("v%d", i)))
	}

	count := 0
	snapshotCache.l1.Range(func(_, _ any) bool {
		count++
		return true
	})
	if count > 3 {
		t.Errorf("expected at most 3 entries after eviction, got %d", count)
	}

	if _, ok := CacheGet(ctx, CacheKey("evict", "item-4")); !ok {
		t.Error("newest entry was evicted")
	}
}

func TestCacheStats(t *testing.T) {
	InitCache("", time.Minute, 100, 5*time.Minute)
	cacheHits.Store(0)
	cacheMisses.Store(0)

	ctx := context.Background()
	key := CacheKey("stats", "test")

	CacheGet(ctx, key)
	if _, misses := CacheStats(); misses != 1 {
		t.Errorf("misses = %d, want 1", misses)
	}

	CacheSet(ctx, key, []byte("x"))
	CacheGet(ctx, key)

	hits, misses := CacheStats()
	if hits != 1 {
		t.Errorf("hits = %d, want 1", hits)
	}
	if misses != 1 {
		t.Errorf("misses = %d, want 1", misses)
	}
}

func TestCacheInvalidRedisURLFallsBackToL1(t *testing.T) {
	InitCache("not a url", time.Minute, 10, time.Minute)
	if snapshotCache.rdb != nil {
		t.Fatal("expected L2 disabled for invalid redis URL")
	}

	ctx := context.Background()
	CacheSet(ctx, "k", []byte("v"))
	if got, ok := CacheGet(ctx, "k"); !ok || string(got) != "v" {
		t.Errorf("CacheGet = %q, %v; want %q, true", got, ok, "v")
	}
}
