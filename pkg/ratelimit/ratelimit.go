package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter paces outbound requests. Implementations never reject work;
// Wait blocks until a slot opens or the context is cancelled.
type Limiter interface {
	Wait(ctx context.Context) error
	Allow() bool
	Remaining() int
}

// TokenBucket refills at a fixed per-second rate up to capacity.
type TokenBucket struct {
	capacity   int
	tokens     int
	refillRate int // tokens per second
	lastRefill time.Time
	mu         sync.Mutex
}

func NewTokenBucket(capacity, refillRate int) *TokenBucket {
	return &TokenBucket{
		capacity:   capacity,
		tokens:     capacity,
		refillRate: refillRate,
		lastRefill: time.Now(),
	}
}

func (tb *TokenBucket) refill() {
	now := time.Now()
	add := int(now.Sub(tb.lastRefill).Seconds()) * tb.refillRate
	if add > 0 {
		tb.tokens = min(tb.capacity, tb.tokens+add)
		tb.lastRefill = now
	}
}

func (tb *TokenBucket) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	tb.refill()
	if tb.tokens > 0 {
		tb.tokens--
		return true
	}
	return false
}

func (tb *TokenBucket) Wait(ctx context.Context) error {
	for {
		if tb.Allow() {
			return nil
		}
		wait := time.Second
		if tb.refillRate > 0 {
			wait = time.Second / time.Duration(tb.refillRate)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

func (tb *TokenBucket) Remaining() int {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	tb.refill()
	return tb.tokens
}

// SlidingWindow allows at most limit requests per window.
type SlidingWindow struct {
	limit      int
	windowSize time.Duration
	requests   []time.Time
	mu         sync.Mutex
}

func NewSlidingWindow(limit int, windowSize time.Duration) *SlidingWindow {
	return &SlidingWindow{
		limit:      limit,
		windowSize: windowSize,
	}
}

func (sw *SlidingWindow) Allow() bool {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	sw.prune(time.Now())
	if len(sw.requests) >= sw.limit {
		return false
	}
	sw.requests = append(sw.requests, time.Now())
	return true
}

// prune drops entries that fell out of the window. Callers hold the lock.
func (sw *SlidingWindow) prune(now time.Time) {
	cutoff := now.Add(-sw.windowSize)
	kept := sw.requests[:0]
	for _, req := range sw.requests {
		if req.After(cutoff) {
			kept = append(kept, req)
		}
	}
	sw.requests = kept
}

func (sw *SlidingWindow) Wait(ctx context.Context) error {
	for {
		if sw.Allow() {
			return nil
		}

		sw.mu.Lock()
		wait := 100 * time.Millisecond
		if len(sw.requests) > 0 {
			if until := sw.windowSize - time.Since(sw.requests[0]); until > 0 {
				wait = until
			}
		}
		sw.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

func (sw *SlidingWindow) Remaining() int {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	sw.prune(time.Now())
	return max(0, sw.limit-len(sw.requests))
}

// Endpoint family keys used by the gateway client.
const (
	KeyAuth    = "gateway:auth"
	KeyOrder   = "gateway:order"
	KeyHistory = "gateway:history"
	KeyGeneral = "gateway:general"
)

// Manager holds one limiter per endpoint family.
type Manager struct {
	limiters map[string]Limiter
	mu       sync.RWMutex
}

// NewManager seeds limiters with the documented gateway limits:
// 200 requests/60s for most endpoints, 50 requests/30s for bar history.
func NewManager() *Manager {
	return &Manager{
		limiters: map[string]Limiter{
			KeyAuth:    NewSlidingWindow(200, 60*time.Second),
			KeyOrder:   NewTokenBucket(200, 4),
			KeyHistory: NewSlidingWindow(50, 30*time.Second),
			KeyGeneral: NewSlidingWindow(200, 60*time.Second),
		},
	}
}

// Set replaces the limiter for a key.
func (m *Manager) Set(key string, l Limiter) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.limiters[key] = l
}

func (m *Manager) limiter(key string) Limiter {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if l, ok := m.limiters[key]; ok {
		return l
	}
	return m.limiters[KeyGeneral]
}

// Wait blocks until the family's limiter admits a request.
func (m *Manager) Wait(ctx context.Context, key string) error {
	return m.limiter(key).Wait(ctx)
}

func (m *Manager) Allow(key string) bool {
	return m.limiter(key).Allow()
}

func (m *Manager) Remaining(key string) int {
	return m.limiter(key).Remaining()
}
