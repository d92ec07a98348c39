// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Counter records one hit for a key and reports how many hits the key has
// within the window, this one included.
type Counter interface {
	Hit(ctx context.Context, key string, window time.Duration) (int, error)
}

// RateLimiter caps unsafe requests per client IP within a window. Page
// views, event streams and other safe methods are never counted.
type RateLimiter struct {
	counter Counter
	limit   int
	window  time.Duration
	stop    func()
}

// NewRateLimiter creates a limiter that keeps its counts in process memory.
// Stop releases its cleanup goroutine.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	mc := newMemoryCounter(window)
	return &RateLimiter{counter: mc, limit: limit, window: window, stop: mc.close}
}

// NewSharedRateLimiter creates a limiter on an external counter, so every
// instance behind a load balancer shares one budget per visitor.
func NewSharedRateLimiter(counter Counter, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{counter: counter, limit: limit, window: window, stop: func() {}}
}

// Stop releases background resources.
func (rl *RateLimiter) Stop() { rl.stop() }

// Allow counts one submission for key. A counter failure lets the request
// through.
func (rl *RateLimiter) Allow(ctx context.Context, key string) bool {
	n, err := rl.counter.Hit(ctx, key, rl.window)
	if err != nil {
		slog.Warn("rate limit counter failed", "key", key, "error", err)
		return true
	}
	return n <= rl.limit
}

// Middleware returns an HTTP middleware that rate-limits unsafe methods by
// client IP and answers limited requests with a plain 429.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return rl.Limit(nil)(next)
}

// Limit is Middleware with onLimit serving the limited requests. A nil
// onLimit answers with a plain 429.
func (rl *RateLimiter) Limit(onLimit http.Handler) func(http.Handler) http.Handler {
	if onLimit == nil {
		onLimit = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
		})
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}
			if !rl.Allow(r.Context(), ClientIP(r)) {
				w.Header().Set("Retry-After", fmt.Sprintf("%d", int(rl.window.Seconds())))
				onLimit.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// memoryCounter is a sliding-window Counter.
type memoryCounter struct {
	mu      sync.Mutex
	clients map[string][]time.Time
	window  time.Duration
	now     func() time.Time
	done    chan struct{}
	once    sync.Once
}

func newMemoryCounter(window time.Duration) *memoryCounter {
	mc := &memoryCounter{
		clients: make(map[string][]time.Time),
		window:  window,
		now:     time.Now,
		done:    make(chan struct{}),
	}
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				mc.cleanup()
			case <-mc.done:
				return
			}
		}
	}()
	return mc
}

func (mc *memoryCounter) close() { mc.once.Do(func() { close(mc.done) }) }

// Hit implements Counter.
func (mc *memoryCounter) Hit(_ context.Context, key string, window time.Duration) (int, error) {
	now := mc.now()
	cutoff := now.Add(-window)

	mc.mu.Lock()
	defer mc.mu.Unlock()

	hits := recent(mc.clients[key], cutoff)
	hits = append(hits, now)
	mc.clients[key] = hits
	return len(hits), nil
}

// cleanup forgets clients with no hit inside the window.
func (mc *memoryCounter) cleanup() {
	cutoff := mc.now().Add(-mc.window)

	mc.mu.Lock()
	defer mc.mu.Unlock()

	for key, hits := range mc.clients {
		if hits = recent(hits, cutoff); len(hits) == 0 {
			delete(mc.clients, key)
		} else {
			mc.clients[key] = hits
		}
	}
}

// recent drops the hits at or before cutoff, reusing the slice.
func recent(hits []time.Time, cutoff time.Time) []time.Time {
	kept := hits[:0]
	for _, ts := range hits {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	return kept
}

// ValkeyCounter is a fixed-window Counter on a Valkey server.
type ValkeyCounter struct {
	client *redis.Client
	prefix string
}

// NewValkeyCounter creates a counter whose keys live under
// "dholera:ratelimit:<scope>:", so limiters with different budgets never
// share counts.
func NewValkeyCounter(client *redis.Client, scope string) *ValkeyCounter {
	return &ValkeyCounter{client: client, prefix: "dholera:ratelimit:" + scope + ":"}
}

// Hit implements Counter. The window starts at a key's first hit.
func (c *ValkeyCounter) Hit(ctx context.Context, key string, window time.Duration) (int, error) {
	k := c.prefix + key
	pipe := c.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.ExpireNX(ctx, k, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("rate limit hit %s: %w", key, err)
	}
	return int(incr.Val()), nil
}

// ClientIP extracts the client's IP address, checking X-Forwarded-For
// and X-Real-IP headers for proxied requests.
func ClientIP(r *http.Request) string {
	// Leftmost X-Forwarded-For entry is the original client.
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.IndexByte(xff, ','); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
