package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/zap8600/go-discordapi/pkg/model"
)

// MockDiscord is a configurable in-process stand-in for the Discord REST
// API, plus a mock gateway WebSocket endpoint. It keeps just enough state
// (channels, messages, guilds) for service tests to exercise real flows.
type MockDiscord struct {
	*httptest.Server

	mu       sync.RWMutex
	me       *model.User
	channels map[model.Snowflake]*model.Channel
	messages map[model.Snowflake][]*model.Message
	guilds   map[model.Snowflake]*model.Guild
	invites  map[model.Snowflake][]*model.Invite
	members  map[model.Snowflake][]*model.GuildMember
	nextID   int64

	// failures counts down 500 responses per route prefix before success.
	failures map[string]int
	// rateLimited routes answer one 429 then clear.
	rateLimited map[string]float64
	// requests records every call for assertions.
	requests []RecordedRequest

	gw *mockGateway
}

// RecordedRequest captures one REST call the mock served.
type RecordedRequest struct {
	Method string
	Path   string
	Auth   string
	Body   []byte
}

// NewMockDiscord starts the mock with default test data.
func NewMockDiscord() *MockDiscord {
	m := &MockDiscord{
		channels:    make(map[model.Snowflake]*model.Channel),
		messages:    make(map[model.Snowflake][]*model.Message),
		guilds:      make(map[model.Snowflake]*model.Guild),
		invites:     make(map[model.Snowflake][]*model.Invite),
		members:     make(map[model.Snowflake][]*model.GuildMember),
		failures:    make(map[string]int),
		rateLimited: make(map[string]float64),
		nextID:      100000000000000000,
	}
	m.gw = newMockGateway()
	m.setDefaultData()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v10/channels/{id}", m.handleGetChannel)
	mux.HandleFunc("PATCH /api/v10/channels/{id}", m.handleModifyChannel)
	mux.HandleFunc("DELETE /api/v10/channels/{id}", m.handleDeleteChannel)
	mux.HandleFunc("GET /api/v10/channels/{id}/messages", m.handleGetMessages)
	mux.HandleFunc("POST /api/v10/channels/{id}/messages", m.handleCreateMessage)
	mux.HandleFunc("GET /api/v10/channels/{id}/messages/{mid}", m.handleGetMessage)
	mux.HandleFunc("PATCH /api/v10/channels/{id}/messages/{mid}", m.handleEditMessage)
	mux.HandleFunc("DELETE /api/v10/channels/{id}/messages/{mid}", m.handleDeleteMessage)
	mux.HandleFunc("POST /api/v10/channels/{id}/messages/bulk-delete", m.handleBulkDelete)
	mux.HandleFunc("POST /api/v10/channels/{id}/messages/{mid}/crosspost", m.handleCrosspost)
	mux.HandleFunc("PUT /api/v10/channels/{id}/messages/{mid}/reactions/{emoji}/@me", m.handleReaction)
	mux.HandleFunc("DELETE /api/v10/channels/{id}/messages/{mid}/reactions/{emoji}/@me", m.handleReaction)
	mux.HandleFunc("DELETE /api/v10/channels/{id}/messages/{mid}/reactions/{emoji}/{uid}", m.handleReaction)
	mux.HandleFunc("PUT /api/v10/channels/{id}/permissions/{oid}", m.handlePermissions)
	mux.HandleFunc("DELETE /api/v10/channels/{id}/permissions/{oid}", m.handlePermissions)
	mux.HandleFunc("GET /api/v10/channels/{id}/invites", m.handleGetInvites)
	mux.HandleFunc("POST /api/v10/channels/{id}/invites", m.handleCreateInvite)
	mux.HandleFunc("POST /api/v10/guilds", m.handleCreateGuild)
	mux.HandleFunc("GET /api/v10/guilds/{id}/channels", m.handleGuildChannels)
	mux.HandleFunc("POST /api/v10/guilds/{id}/channels", m.handleCreateGuildChannel)
	mux.HandleFunc("GET /api/v10/guilds/{id}/members", m.handleGuildMembers)
	mux.HandleFunc("GET /api/v10/guilds/{id}/roles", m.handleGuildRoles)
	mux.HandleFunc("GET /api/v10/users/@me", m.handleMe)
	mux.HandleFunc("GET /api/v10/users/@me/guilds", m.handleMyGuilds)
	mux.HandleFunc("GET /api/v10/gateway", m.handleGateway)
	mux.HandleFunc("GET /api/v10/gateway/bot", m.handleGatewayBot)
	mux.HandleFunc("GET /gateway/ws", m.gw.handleWS)

	m.Server = httptest.NewServer(m.middleware(mux))
	return m
}

// APIBase returns the REST root to point clients at.
func (m *MockDiscord) APIBase() string {
	return m.URL + "/api/v10"
}

// GatewayURL returns the mock gateway WebSocket endpoint.
func (m *MockDiscord) GatewayURL() string {
	return "ws" + strings.TrimPrefix(m.URL, "http") + "/gateway/ws"
}

// Gateway exposes the mock gateway for event injection.
func (m *MockDiscord) Gateway() *mockGateway {
	return m.gw
}

func (m *MockDiscord) setDefaultData() {
	m.me = &model.User{
		ID:            "180000000000000001",
		Username:      "testbot",
		Discriminator: "0",
		Bot:           true,
	}
	guild := &model.Guild{
		ID:      "190000000000000001",
		Name:    "Test Guild",
		OwnerID: m.me.ID,
		Roles: []*model.Role{
			{ID: "190000000000000001", Name: "@everyone", Permissions: "104324673"},
		},
	}
	m.guilds[guild.ID] = guild
	channel := &model.Channel{
		ID:      "200000000000000001",
		Type:    model.ChannelTypeGuildText,
		GuildID: guild.ID,
		Name:    "general",
	}
	m.channels[channel.ID] = channel
	m.members[guild.ID] = []*model.GuildMember{
		{User: m.me, Roles: []model.Snowflake{"190000000000000001"}},
	}
}

// FailNext makes the next n requests whose path starts with prefix answer
// 500 before recovering.
func (m *MockDiscord) FailNext(prefix string, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[prefix] = n
}

// RateLimitNext makes the next request whose path starts with prefix answer
// a 429 with the given retry_after seconds.
func (m *MockDiscord) RateLimitNext(prefix string, retryAfter float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rateLimited[prefix] = retryAfter
}

// Requests returns a copy of the recorded calls.
func (m *MockDiscord) Requests() []RecordedRequest {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]RecordedRequest(nil), m.requests...)
}

// DefaultChannelID is the seeded text channel.
func (m *MockDiscord) DefaultChannelID() model.Snowflake {
	return "200000000000000001"
}

// DefaultGuildID is the seeded guild.
func (m *MockDiscord) DefaultGuildID() model.Snowflake {
	return "190000000000000001"
}

// SeedMessage inserts a message into a channel and returns it.
func (m *MockDiscord) SeedMessage(channelID model.Snowflake, content string) *model.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg := &model.Message{
		ID:        m.newIDLocked(),
		ChannelID: channelID,
		Author:    m.me,
		Content:   content,
	}
	m.messages[channelID] = append(m.messages[channelID], msg)
	return msg
}

func (m *MockDiscord) newIDLocked() model.Snowflake {
	m.nextID++
	return model.Snowflake(strconv.FormatInt(m.nextID, 10))
}

func (m *MockDiscord) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/gateway/ws") {
			next.ServeHTTP(w, r)
			return
		}

		var body []byte
		if r.Body != nil {
			body, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewReader(body))
		}

		m.mu.Lock()
		m.requests = append(m.requests, RecordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Auth:   r.Header.Get("Authorization"),
			Body:   body,
		})
		apiPath := strings.TrimPrefix(r.URL.Path, "/api/v10")
		var failNow, limitNow bool
		var retryAfter float64
		for prefix, n := range m.failures {
			if strings.HasPrefix(apiPath, prefix) && n > 0 {
				m.failures[prefix] = n - 1
				failNow = true
			}
		}
		for prefix, ra := range m.rateLimited {
			if strings.HasPrefix(apiPath, prefix) {
				delete(m.rateLimited, prefix)
				limitNow = true
				retryAfter = ra
			}
		}
		m.mu.Unlock()

		if r.Header.Get("Authorization") == "" {
			writeError(w, http.StatusUnauthorized, 0, "401: Unauthorized")
			return
		}
		if limitNow {
			w.Header().Set("X-RateLimit-Remaining", "0")
			w.Header().Set("X-RateLimit-Reset-After", fmt.Sprintf("%g", retryAfter))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(map[string]any{
				"message":     "You are being rate limited.",
				"retry_after": retryAfter,
				"global":      false,
			})
			return
		}
		if failNow {
			writeError(w, http.StatusInternalServerError, 0, "internal error")
			return
		}

		w.Header().Set("X-RateLimit-Limit", "5")
		w.Header().Set("X-RateLimit-Remaining", "4")
		w.Header().Set("X-RateLimit-Reset-After", "1.0")
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status, code int, message string) {
	writeJSON(w, status, map[string]any{"code": code, "message": message})
}
