package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// Requires Redis running on localhost:6379; skipped otherwise.
const testRedisAddr = "localhost:6379"

func setupTestCache(t *testing.T) *RedisCache {
	t.Helper()

	client := redis.NewClient(&redis.Options{Addr: testRedisAddr})
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available at %s: %v", testRedisAddr, err)
	}

	c := New(client, "test:"+t.Name()+":", time.Minute)
	_ = c.DeletePattern(ctx, "*")
	t.Cleanup(func() {
		_ = c.DeletePattern(ctx, "*")
		client.Close()
	})
	return c
}

type cachedProduct struct {
	ID    string `json:"id"`
	Price string `json:"price"`
}

func TestRedisCache_SetGetDelete(t *testing.T) {
	c := setupTestCache(t)
	ctx := context.Background()

	var got cachedProduct
	hit, err := c.Get(ctx, "product:1", &got)
	if err != nil || hit {
		t.Fatalf("Get(empty) = %v, %v; want miss", hit, err)
	}

	if err := c.Set(ctx, "product:1", cachedProduct{ID: "1", Price: "9.99"}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	hit, err = c.Get(ctx, "product:1", &got)
	if err != nil || !hit {
		t.Fatalf("Get() = %v, %v; want hit", hit, err)
	}
	if got.Price != "9.99" {
		t.Errorf("Price = %q, want 9.99", got.Price)
	}

	if err := c.Delete(ctx, "product:1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	hit, _ = c.Get(ctx, "product:1", &got)
	if hit {
		t.Error("Get() after Delete should miss")
	}

	s := c.Stats()
	if s.Hits != 1 || s.Misses != 2 || s.Sets != 1 {
		t.Errorf("Stats() = %+v, want 1 hit, 2 misses, 1 set", s)
	}
}

func TestRedisCache_DeletePattern(t *testing.T) {
	c := setupTestCache(t)
	ctx := context.Background()

	for _, k := range []string{"list:a", "list:b", "product:1"} {
		if err := c.Set(ctx, k, k); err != nil {
			t.Fatalf("Set(%s) error = %v", k, err)
		}
	}

	if err := c.DeletePattern(ctx, "list:*"); err != nil {
		t.Fatalf("DeletePattern() error = %v", err)
	}

	var v string
	if hit, _ := c.Get(ctx, "list:a", &v); hit {
		t.Error("list:a should be gone")
	}
	if hit, _ := c.Get(ctx, "product:1", &v); !hit {
		t.Error("product:1 should survive")
	}
}

func TestNop(t *testing.T) {
	c := Nop()
	ctx := context.Background()

	if err := c.Set(ctx, "k", 1); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	var v int
	hit, err := c.Get(ctx, "k", &v)
	if err != nil || hit {
		t.Errorf("Get() = %v, %v; want miss without error", hit, err)
	}
	if c.Stats().Misses != 1 {
		t.Errorf("Misses = %d, want 1", c.Stats().Misses)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
	if err := c.DeletePattern(ctx, "*"); err != nil {
		t.Errorf("DeletePattern() error = %v", err)
	}
}

func TestPluginPortBeforeStart(t *testing.T) {
	p := NewPluginModule(testRedisAddr, "product:", time.Minute)
	if p.Name() != "cache" {
		t.Errorf("Name() = %q, want cache", p.Name())
	}
	if p.Port() == nil {
		t.Fatal("Port() before Start should fall back to a no-op cache")
	}
	if h := p.Health(context.Background()); h.Healthy {
		t.Error("Health() before Start should be unhealthy")
	}
}

func TestLimiterStorageBeforeStart(t *testing.T) {
	p := NewPluginModule(testRedisAddr, "test:", time.Minute)
	if s := p.LimiterStorage(); s != nil {
		t.Errorf("LimiterStorage() = %v, want nil before Start", s)
	}
}

func TestParseRedisAddr(t *testing.T) {
	tests := []struct {
		addr     string
		wantHost string
		wantPort int
	}{
		{"localhost:6379", "localhost", 6379},
		{"redis.internal:6380", "redis.internal", 6380},
		{":7000", "127.0.0.1", 7000},
		{"localhost:abc", "localhost", 6379},
		{"no-port", "127.0.0.1", 6379},
	}

	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			host, port := parseRedisAddr(tt.addr)
			if host != tt.wantHost || port != tt.wantPort {
				t.Errorf("parseRedisAddr(%q) = %s, %d; want %s, %d", tt.addr, host, port, tt.wantHost, tt.wantPort)
			}
		})
	}
}
