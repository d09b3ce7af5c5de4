package toolutil

import (
	"context"
	"testing"
	"time"

	"github.com/anatolykoptev/go_profile/internal/engine"
)

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestCacheRoundTrip(t *testing.T) {
	engine.InitCache("", time.Minute, 10, time.Hour)
	ctx := context.Background()
	key := engine.CacheKey("toolutil", "roundtrip")

	if _, ok := CacheLoadJSON[sample](ctx, key); ok {
		t.Fatal("expected miss before store")
	}
	CacheStoreJSON(ctx, key, sample{Name: "a", Count: 2})

	got, ok := CacheLoadJSON[sample](ctx, key)
	if !ok {
		t.Fatal("expected hit after store")
	}
	if got.Name != "a" || got.Count != 2 {
		t.Errorf("got %+v", got)
	}
}

func TestCacheLoadDropsUndecodable(t *testing.T) {
	engine.InitCache("", time.Minute, 10, time.Hour)
	ctx := context.Background()
	key := engine.CacheKey("toolutil", "bad")

	engine.CacheSet(ctx, key, []byte("not json"))
	if _, ok := CacheLoadJSON[sample](ctx, key); ok {
		t.Fatal("expected miss for undecodable entry")
	}
	if _, ok := engine.CacheGet(ctx, key); ok {
		t.Error("undecodable entry was not deleted")
	}
}

func TestToMap(t *testing.T) {
	m, err := ToMap(sample{Name: "x", Count: 3})
	if err != nil {
		t.Fatalf("ToMap error: %v", err)
	}
	if m["name"] != "x" || m["count"] != float64(3) {
		t.Errorf("ToMap = %v", m)
	}

	if _, err := ToMap([]int{1}); err == nil {
		t.Error("expected error for non-object value")
	}
}
