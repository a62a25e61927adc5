package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/zap8600/go-discordapi/internal/ratelimit"
	"github.com/zap8600/go-discordapi/pkg/auth"
	"github.com/zap8600/go-discordapi/pkg/version"
)

// DefaultBaseURL is the Discord REST API v10 root.
const DefaultBaseURL = "https://discord.com/api/v10"

const defaultTimeout = 30 * time.Second

// Client is the HTTP transport shared by all resource services. It applies
// the Authorization header, honors rate-limit buckets and retries transient
// failures before handing a decoded response back to the caller.
type Client struct {
	base       string
	cred       *auth.Credential
	http       *http.Client
	userAgent  string
	limiter    *ratelimit.Limiter
	maxRetries int
	log        zerolog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithMaxRetries bounds retries of 429 and transient failures per call.
func WithMaxRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.maxRetries = n
		}
	}
}

func WithRateLimit(cfg ratelimit.Config) Option {
	return func(c *Client) {
		c.limiter = ratelimit.New(cfg)
	}
}

func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// New creates a REST client for the given API root and credential.
func New(base string, cred *auth.Credential, opts ...Option) *Client {
	if base == "" {
		base = DefaultBaseURL
	}
	c := &Client{
		base:       strings.TrimRight(base, "/"),
		cred:       cred,
		http:       &http.Client{Timeout: defaultTimeout},
		userAgent:  version.UserAgent(),
		limiter:    ratelimit.New(ratelimit.DefaultConfig()),
		maxRetries: 3,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.base
}

// errorBody is the JSON shape of Discord error responses. retry_after is
// only present on 429s.
type errorBody struct {
	Code       int     `json:"code"`
	Message    string  `json:"message"`
	RetryAfter float64 `json:"retry_after"`
	Global     bool    `json:"global"`
}

// Do performs one REST call. body (if non-nil) is JSON-encoded; out (if
// non-nil) receives the decoded 2xx response. 204 responses leave out
// untouched.
func (c *Client) Do(ctx context.Context, route Route, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("rest: encoding %s body: %w", route.Bucket, err)
		}
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxInterval = 10 * time.Second

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := c.limiter.Acquire(ctx, route.Bucket); err != nil {
			return err
		}

		retryable, err := c.do(ctx, route, payload, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retryable || attempt == c.maxRetries {
			break
		}

		wait := bo.NextBackOff()
		if apiErr, ok := err.(*APIError); ok && apiErr.Status == http.StatusTooManyRequests {
			// The limiter already knows the reset; a short pause avoids a
			// tight loop if the bucket was global.
			wait = bo.InitialInterval
		}
		c.log.Debug().
			Str("route", route.Bucket).
			Dur("backoff", wait).
			Err(err).
			Msg("retrying request")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return lastErr
}

func (c *Client) do(ctx context.Context, route Route, payload []byte, out any) (retryable bool, err error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, route.Method, c.base+route.Path, reqBody)
	if err != nil {
		return false, fmt.Errorf("rest: building %s request: %w", route.Bucket, err)
	}

	header, err := c.cred.Header(ctx)
	if err != nil {
		return false, err
	}
	req.Header.Set("Authorization", header)
	req.Header.Set("User-Agent", c.userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		return true, &APIError{Sentinel: ErrUnavailable, Operation: route.Bucket, Err: err}
	}
	defer res.Body.Close()

	c.limiter.Update(route.Bucket, res.Header)

	if res.StatusCode >= 200 && res.StatusCode < 300 {
		if out == nil || res.StatusCode == http.StatusNoContent {
			io.Copy(io.Discard, res.Body)
			return false, nil
		}
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			return false, &APIError{Sentinel: ErrBadResponse, Operation: route.Bucket, Status: res.StatusCode, Err: err}
		}
		return false, nil
	}

	raw, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
	var eb errorBody
	_ = json.Unmarshal(raw, &eb)

	if res.StatusCode == http.StatusTooManyRequests {
		retryAfter := time.Duration(eb.RetryAfter * float64(time.Second))
		if retryAfter == 0 {
			if d, ok := ratelimit.RetryAfter(res.Header); ok {
				retryAfter = d
			}
		}
		global := eb.Global || ratelimit.IsGlobal(res.Header)
		c.limiter.Exhaust(route.Bucket, retryAfter, global)
		c.log.Warn().
			Str("route", route.Bucket).
			Dur("retry_after", retryAfter).
			Bool("global", global).
			Msg("rate limited")
	}

	apiErr := &APIError{
		Sentinel:  sentinelForStatus(res.StatusCode),
		Operation: route.Bucket,
		Status:    res.StatusCode,
		Code:      eb.Code,
		Message:   eb.Message,
	}
	return res.StatusCode == http.StatusTooManyRequests || res.StatusCode >= 500, apiErr
}
