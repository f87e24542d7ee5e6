package cache

import (
	"context"
	"errors"
	"runtime"
	"testing"
	"time"
)

type payload struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
}

func TestMemoryCacheSetGet(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	if err := mc.Set(ctx, "meta:AAPL", payload{Symbol: "AAPL", Price: 150}, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got payload
	if err := mc.Get(ctx, "meta:AAPL", &got); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Symbol != "AAPL" || got.Price != 150 {
		t.Fatalf("unexpected payload %+v", got)
	}
}

func TestMemoryCacheMiss(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()

	var got payload
	err := mc.Get(context.Background(), "meta:MSFT", &got)
	if !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss, got %v", err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	if err := mc.Set(ctx, "k", "v", 10*time.Millisecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	time.Sleep(25 * time.Millisecond)

	var got string
	if err := mc.Get(ctx, "k", &got); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss after ttl, got %v", err)
	}
}

func TestMemoryCacheLRUEviction(t *testing.T) {
	mc := NewMemoryCache(WithMemoryMaxSize(2))
	defer mc.Close()
	ctx := context.Background()

	_ = mc.Set(ctx, "a", "1", time.Minute)
	time.Sleep(2 * time.Millisecond)
	_ = mc.Set(ctx, "b", "2", time.Minute)
	time.Sleep(2 * time.Millisecond)

	// Touch "a" so "b" becomes the eviction candidate.
	var s string
	_ = mc.Get(ctx, "a", &s)
	time.Sleep(2 * time.Millisecond)

	_ = mc.Set(ctx, "c", "3", time.Minute)

	if err := mc.Get(ctx, "b", &s); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected b evicted, got %v", err)
	}
	if err := mc.Get(ctx, "a", &s); err != nil {
		t.Fatalf("expected a retained: %v", err)
	}
}

func TestMemoryCacheCloseStopsJanitor(t *testing.T) {
	before := runtime.NumGoroutine()

	mc := NewMemoryCache(WithMemoryCleanup(time.Millisecond))
	if err := mc.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := mc.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for runtime.NumGoroutine() > before && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if n := runtime.NumGoroutine(); n > before {
		t.Fatalf("janitor still running after close: %d goroutines, started with %d", n, before)
	}
}

func TestMemoryCacheDeleteExists(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	_ = mc.Set(ctx, "k", "v", time.Minute)
	ok, err := mc.Exists(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("expected exists, ok=%v err=%v", ok, err)
	}

	if err := mc.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	ok, _ = mc.Exists(ctx, "k")
	if ok {
		t.Fatalf("expected deleted")
	}
}
