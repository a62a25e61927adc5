package ratelimit

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func header(kv ...string) http.Header {
	h := http.Header{}
	for i := 0; i+1 < len(kv); i += 2 {
		h.Set(kv[i], kv[i+1])
	}
	return h
}

func TestLimiter_AcquireUnknownRoute(t *testing.T) {
	l := New(DefaultConfig())

	start := time.Now()
	require.NoError(t, l.Acquire(context.Background(), "GET /channels/1"))
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestLimiter_BlocksOnExhaustedBucket(t *testing.T) {
	l := New(DefaultConfig())
	route := "GET /channels/1/messages"

	l.Update(route, header(
		"X-RateLimit-Limit", "5",
		"X-RateLimit-Remaining", "0",
		"X-RateLimit-Reset-After", "0.2",
	))

	start := time.Now()
	require.NoError(t, l.Acquire(context.Background(), route))
	assert.GreaterOrEqual(t, time.Since(start), 150*time.Millisecond)
}

func TestLimiter_RemainingDecrements(t *testing.T) {
	l := New(DefaultConfig())
	route := "GET /channels/1"

	l.Update(route, header(
		"X-RateLimit-Limit", "5",
		"X-RateLimit-Remaining", "2",
		"X-RateLimit-Reset-After", "60",
	))

	// Two acquisitions consume the remaining budget without blocking.
	start := time.Now()
	require.NoError(t, l.Acquire(context.Background(), route))
	require.NoError(t, l.Acquire(context.Background(), route))
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestLimiter_AcquireHonorsContext(t *testing.T) {
	l := New(DefaultConfig())
	route := "GET /guilds/1"

	l.Update(route, header(
		"X-RateLimit-Remaining", "0",
		"X-RateLimit-Reset-After", "30",
	))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := l.Acquire(ctx, route)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLimiter_Exhaust(t *testing.T) {
	l := New(DefaultConfig())
	route := "POST /channels/1/messages"

	l.Exhaust(route, 200*time.Millisecond, false)

	start := time.Now()
	require.NoError(t, l.Acquire(context.Background(), route))
	assert.GreaterOrEqual(t, time.Since(start), 150*time.Millisecond)
}

func TestLimiter_GlobalExhaust(t *testing.T) {
	l := New(DefaultConfig())

	l.Exhaust("POST /channels/1/messages", 200*time.Millisecond, true)

	// A different route is also locked out by a global 429.
	start := time.Now()
	require.NoError(t, l.Acquire(context.Background(), "GET /guilds/2"))
	assert.GreaterOrEqual(t, time.Since(start), 150*time.Millisecond)
}

func TestLimiter_BucketCoalescing(t *testing.T) {
	l := New(DefaultConfig())

	// Two routes report the same server-side bucket.
	l.Update("GET /channels/1/messages", header(
		"X-RateLimit-Bucket", "abcd",
		"X-RateLimit-Remaining", "0",
		"X-RateLimit-Reset-After", "0.2",
	))
	l.Update("GET /channels/1/pins", header(
		"X-RateLimit-Bucket", "abcd",
		"X-RateLimit-Remaining", "0",
		"X-RateLimit-Reset-After", "0.2",
	))

	start := time.Now()
	require.NoError(t, l.Acquire(context.Background(), "GET /channels/1/pins"))
	assert.GreaterOrEqual(t, time.Since(start), 150*time.Millisecond)
}

func TestRetryAfter(t *testing.T) {
	d, ok := RetryAfter(header("Retry-After", "1.5"))
	require.True(t, ok)
	assert.Equal(t, 1500*time.Millisecond, d)

	d, ok = RetryAfter(header("X-RateLimit-Reset-After", "0.25"))
	require.True(t, ok)
	assert.Equal(t, 250*time.Millisecond, d)

	_, ok = RetryAfter(header())
	assert.False(t, ok)
}

func TestIsGlobal(t *testing.T) {
	assert.True(t, IsGlobal(header("X-RateLimit-Global", "true")))
	assert.False(t, IsGlobal(header()))
}
