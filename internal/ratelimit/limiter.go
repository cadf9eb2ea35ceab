package ratelimit

import (
	"sync"
	"time"
)

type Config struct {
	RequestsPerSecond float64
	BurstSize         int
	// IdleTTL evicts buckets unused for this long.
	IdleTTL time.Duration
}

type TokenBucket struct {
	capacity   float64
	tokens     float64
	refillRate float64
	lastRefill time.Time
	mu         sync.Mutex
}

func NewTokenBucket(capacity float64, refillRate float64, now time.Time) *TokenBucket {
	return &TokenBucket{
		capacity:   capacity,
		tokens:     capacity,
		refillRate: refillRate,
		lastRefill: now,
	}
}

// Take consumes one token if available.
func (tb *TokenBucket) Take(now time.Time) bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	elapsed := now.Sub(tb.lastRefill)
	tb.tokens = min(tb.capacity, tb.tokens+(elapsed.Seconds()*tb.refillRate))
	tb.lastRefill = now

	if tb.tokens >= 1 {
		tb.tokens--
		return true
	}
	return false
}

func (tb *TokenBucket) idleSince() time.Time {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return tb.lastRefill
}

// Limiter keeps one token bucket per key (client IP for the public API).
type Limiter struct {
	config    Config
	buckets   map[string]*TokenBucket
	mu        sync.Mutex
	lastSweep time.Time
	now       func() time.Time
}

func NewLimiter(config Config) *Limiter {
	if config.BurstSize <= 0 {
		config.BurstSize = 1
	}
	if config.IdleTTL <= 0 {
		config.IdleTTL = 10 * time.Minute
	}
	return &Limiter{
		config:  config,
		buckets: make(map[string]*TokenBucket),
		now:     time.Now,
	}
}

// Allow reports whether key may make another request now.
func (l *Limiter) Allow(key string) bool {
	now := l.now()
	return l.bucket(key, now).Take(now)
}

func (l *Limiter) bucket(key string, now time.Time) *TokenBucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= l.config.IdleTTL {
		for k, b := range l.buckets {
			if now.Sub(b.idleSince()) >= l.config.IdleTTL {
				delete(l.buckets, k)
			}
		}
		l.lastSweep = now
	}

	if b, ok := l.buckets[key]; ok {
		return b
	}
	b := NewTokenBucket(float64(l.config.BurstSize), l.config.RequestsPerSecond, now)
	l.buckets[key] = b
	return b
}

// Len returns the number of tracked keys.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}
