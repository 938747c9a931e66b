package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestLimiter(t *testing.T, limit int, window time.Duration) (*FixedWindowLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewFixedWindowLimiter(client, "login_attempts", limit, window), mr
}

func TestFixedWindowLimiter_AllowsUpToLimit(t *testing.T) {
	limiter, _ := newTestLimiter(t, 5, 15*time.Minute)

	for i := 0; i < 5; i++ {
		ok, err := limiter.Allow(context.Background(), "192.0.2.10")
		if err != nil {
			t.Fatalf("attempt %d: %v", i+1, err)
		}
		if !ok {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}

	ok, err := limiter.Allow(context.Background(), "192.0.2.10")
	if err != nil {
		t.Fatalf("attempt 6: %v", err)
	}
	if ok {
		t.Fatalf("attempt 6 should be denied")
	}
}

func TestFixedWindowLimiter_KeysAreIndependent(t *testing.T) {
	limiter, _ := newTestLimiter(t, 1, 15*time.Minute)

	if ok, err := limiter.Allow(context.Background(), "192.0.2.10"); err != nil || !ok {
		t.Fatalf("first key: ok=%v err=%v", ok, err)
	}
	if ok, err := limiter.Allow(context.Background(), "192.0.2.10"); err != nil || ok {
		t.Fatalf("first key should be exhausted: ok=%v err=%v", ok, err)
	}
	if ok, err := limiter.Allow(context.Background(), "198.51.100.7"); err != nil || !ok {
		t.Fatalf("second key should have its own budget: ok=%v err=%v", ok, err)
	}
}

func TestFixedWindowLimiter_WindowResets(t *testing.T) {
	limiter, mr := newTestLimiter(t, 1, 15*time.Minute)

	if ok, _ := limiter.Allow(context.Background(), "192.0.2.10"); !ok {
		t.Fatalf("first attempt should be allowed")
	}
	if ok, _ := limiter.Allow(context.Background(), "192.0.2.10"); ok {
		t.Fatalf("second attempt should be denied")
	}

	mr.FastForward(15 * time.Minute)

	ok, err := limiter.Allow(context.Background(), "192.0.2.10")
	if err != nil {
		t.Fatalf("post-window attempt: %v", err)
	}
	if !ok {
		t.Fatalf("budget should reset after the window expires")
	}
}

func TestFixedWindowLimiter_SetsWindowTTLOnce(t *testing.T) {
	limiter, mr := newTestLimiter(t, 5, 15*time.Minute)

	if _, err := limiter.Allow(context.Background(), "192.0.2.10"); err != nil {
		t.Fatalf("first attempt: %v", err)
	}
	ttl := mr.TTL("login_attempts:192.0.2.10")
	if ttl != 15*time.Minute {
		t.Fatalf("expected 15m TTL, got %v", ttl)
	}

	mr.FastForward(5 * time.Minute)
	if _, err := limiter.Allow(context.Background(), "192.0.2.10"); err != nil {
		t.Fatalf("second attempt: %v", err)
	}
	if got := mr.TTL("login_attempts:192.0.2.10"); got != 10*time.Minute {
		t.Fatalf("second attempt should not refresh the window, got %v", got)
	}
}
