package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zap8600/go-discordapi/pkg/auth"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Do_SetsHeaders(t *testing.T) {
	var gotAuth, gotUA, gotContentType string
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotUA = r.Header.Get("User-Agent")
		gotContentType = r.Header.Get("Content-Type")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	})

	c := New(srv.URL, auth.NewBotToken("secret"))

	var out struct {
		OK bool `json:"ok"`
	}
	route := NewRoute(http.MethodPost, "/channels/%s/messages", "1")
	err := c.Do(context.Background(), route, map[string]string{"content": "hi"}, &out)
	require.NoError(t, err)

	assert.True(t, out.OK)
	assert.Equal(t, "Bot secret", gotAuth)
	assert.Contains(t, gotUA, "DiscordBot")
	assert.Equal(t, "application/json", gotContentType)
}

func TestClient_Do_NoBodyNoContentType(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusNoContent)
	})

	c := New(srv.URL, auth.NewBotToken("secret"))

	route := NewRoute(http.MethodDelete, "/channels/%s", "1")
	require.NoError(t, c.Do(context.Background(), route, nil, nil))
}

func TestClient_Do_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		code     int
		message  string
		sentinel error
	}{
		{"bad request", 400, 50035, "Invalid Form Body", ErrBadRequest},
		{"unauthorized", 401, 0, "401: Unauthorized", ErrUnauthorized},
		{"forbidden", 403, 50001, "Missing Access", ErrForbidden},
		{"not found", 404, 10003, "Unknown Channel", ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				json.NewEncoder(w).Encode(map[string]any{"code": tt.code, "message": tt.message})
			})

			c := New(srv.URL, auth.NewBotToken("secret"))

			route := NewRoute(http.MethodGet, "/channels/%s", "1")
			err := c.Do(context.Background(), route, nil, nil)
			require.Error(t, err)
			require.ErrorIs(t, err, tt.sentinel)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.code, apiErr.Code)
			assert.Equal(t, tt.message, apiErr.Message)
		})
	}
}

func TestClient_Do_RetriesServerError(t *testing.T) {
	var calls atomic.Int32
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"id":"42"}`))
	})

	c := New(srv.URL, auth.NewBotToken("secret"), WithMaxRetries(3))

	var out struct {
		ID string `json:"id"`
	}
	route := NewRoute(http.MethodGet, "/channels/%s", "1")
	require.NoError(t, c.Do(context.Background(), route, nil, &out))
	assert.Equal(t, "42", out.ID)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_Do_RetriesRateLimit(t *testing.T) {
	var calls atomic.Int32
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(map[string]any{
				"message":     "You are being rate limited.",
				"retry_after": 0.05,
				"global":      false,
			})
			return
		}
		w.Write([]byte(`{"id":"42"}`))
	})

	c := New(srv.URL, auth.NewBotToken("secret"), WithMaxRetries(2))

	var out struct {
		ID string `json:"id"`
	}
	route := NewRoute(http.MethodPost, "/channels/%s/messages", "1")
	require.NoError(t, c.Do(context.Background(), route, nil, &out))
	assert.Equal(t, "42", out.ID)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_Do_NoRetryOnClientError(t *testing.T) {
	var calls atomic.Int32
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	})

	c := New(srv.URL, auth.NewBotToken("secret"), WithMaxRetries(3))

	route := NewRoute(http.MethodGet, "/channels/%s", "1")
	err := c.Do(context.Background(), route, nil, nil)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_Do_RetryBudgetExhausted(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	c := New(srv.URL, auth.NewBotToken("secret"), WithMaxRetries(1))

	route := NewRoute(http.MethodGet, "/gateway")
	err := c.Do(context.Background(), route, nil, nil)
	require.ErrorIs(t, err, ErrServerError)
}

func TestClient_Do_BadResponseBody(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	})

	c := New(srv.URL, auth.NewBotToken("secret"))

	var out map[string]any
	route := NewRoute(http.MethodGet, "/gateway")
	err := c.Do(context.Background(), route, nil, &out)
	require.ErrorIs(t, err, ErrBadResponse)
}

func TestClient_Do_TransportFailure(t *testing.T) {
	c := New("http://127.0.0.1:1", auth.NewBotToken("secret"), WithMaxRetries(0))

	route := NewRoute(http.MethodGet, "/gateway")
	err := c.Do(context.Background(), route, nil, nil)
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestClient_Do_ContextCancelled(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	c := New(srv.URL, auth.NewBotToken("secret"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	route := NewRoute(http.MethodGet, "/gateway")
	err := c.Do(ctx, route, nil, nil)
	require.ErrorIs(t, err, context.Canceled)
}
