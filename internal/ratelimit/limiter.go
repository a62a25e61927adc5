package ratelimit

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Rate-limit headers Discord attaches to REST responses.
const (
	headerLimit      = "X-RateLimit-Limit"
	headerRemaining  = "X-RateLimit-Remaining"
	headerResetAfter = "X-RateLimit-Reset-After"
	headerBucket     = "X-RateLimit-Bucket"
	headerGlobal     = "X-RateLimit-Global"
	headerRetryAfter = "Retry-After"
)

// Config holds rate limiting configuration.
type Config struct {
	// GlobalRate caps requests per second across all routes.
	GlobalRate rate.Limit
	// GlobalBurst is the burst size of the global limiter.
	GlobalBurst int
}

// DefaultConfig matches Discord's documented 50 req/s global budget.
func DefaultConfig() Config {
	return Config{
		GlobalRate:  50,
		GlobalBurst: 50,
	}
}

// bucket tracks the server-side budget for one route bucket.
type bucket struct {
	mu        sync.Mutex
	remaining int
	limit     int
	reset     time.Time
	known     bool // headers seen at least once
}

// Limiter enforces Discord's per-route buckets plus the global request
// budget. Routes that share a server-side bucket (X-RateLimit-Bucket) are
// coalesced so a 429 on one route throttles its aliases too.
type Limiter struct {
	global *rate.Limiter

	mu          sync.Mutex
	buckets     map[string]*bucket // bucket ID -> state
	routeBucket map[string]string  // route key -> bucket ID

	globalLockout time.Time
}

// New creates a limiter with the given config.
func New(config Config) *Limiter {
	return &Limiter{
		global:      rate.NewLimiter(config.GlobalRate, config.GlobalBurst),
		buckets:     make(map[string]*bucket),
		routeBucket: make(map[string]string),
	}
}

func (l *Limiter) bucketFor(route string) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	id, ok := l.routeBucket[route]
	if !ok {
		// Unknown routes get a private bucket until headers reveal the
		// server-side bucket ID.
		id = route
		l.routeBucket[route] = id
	}
	b, ok := l.buckets[id]
	if !ok {
		b = &bucket{}
		l.buckets[id] = b
	}
	return b
}

// Acquire blocks until the route and global budgets allow one request.
func (l *Limiter) Acquire(ctx context.Context, route string) error {
	b := l.bucketFor(route)

	b.mu.Lock()
	var wait time.Duration
	if b.known && b.remaining <= 0 {
		wait = time.Until(b.reset)
	}
	if wait > 0 {
		b.mu.Unlock()
		if err := sleepCtx(ctx, wait); err != nil {
			return err
		}
		b.mu.Lock()
	}
	if b.known && b.remaining > 0 {
		b.remaining--
	}
	b.mu.Unlock()

	l.mu.Lock()
	lockout := time.Until(l.globalLockout)
	l.mu.Unlock()
	if lockout > 0 {
		if err := sleepCtx(ctx, lockout); err != nil {
			return err
		}
	}

	return l.global.Wait(ctx)
}

// Update ingests the rate-limit headers of a response for the given route.
func (l *Limiter) Update(route string, header http.Header) {
	id := header.Get(headerBucket)
	if id != "" {
		l.mu.Lock()
		old := l.routeBucket[route]
		if old != id {
			l.routeBucket[route] = id
			if b, ok := l.buckets[old]; ok && old == route {
				// Migrate the private bucket to the shared ID.
				if _, exists := l.buckets[id]; !exists {
					l.buckets[id] = b
				}
				delete(l.buckets, old)
			}
		}
		l.mu.Unlock()
	}

	remaining, errRem := strconv.Atoi(header.Get(headerRemaining))
	if errRem != nil {
		return
	}
	limit, _ := strconv.Atoi(header.Get(headerLimit))
	resetAfter, _ := strconv.ParseFloat(header.Get(headerResetAfter), 64)

	b := l.bucketFor(route)
	b.mu.Lock()
	b.known = true
	b.remaining = remaining
	b.limit = limit
	b.reset = time.Now().Add(time.Duration(resetAfter * float64(time.Second)))
	b.mu.Unlock()
}

// Exhaust marks a route's bucket empty until the given delay passes. A
// global 429 instead locks every route.
func (l *Limiter) Exhaust(route string, retryAfter time.Duration, global bool) {
	if global {
		l.mu.Lock()
		until := time.Now().Add(retryAfter)
		if until.After(l.globalLockout) {
			l.globalLockout = until
		}
		l.mu.Unlock()
		return
	}
	b := l.bucketFor(route)
	b.mu.Lock()
	b.known = true
	b.remaining = 0
	b.reset = time.Now().Add(retryAfter)
	b.mu.Unlock()
}

// RetryAfter extracts the server-advised delay from a 429 response header.
func RetryAfter(header http.Header) (time.Duration, bool) {
	v := header.Get(headerRetryAfter)
	if v == "" {
		v = header.Get(headerResetAfter)
	}
	if v == "" {
		return 0, false
	}
	secs, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return time.Duration(secs * float64(time.Second)), true
}

// IsGlobal reports whether a 429 response applies to the global budget.
func IsGlobal(header http.Header) bool {
	return header.Get(headerGlobal) == "true"
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
