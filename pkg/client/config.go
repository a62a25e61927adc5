package client

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/zap8600/go-discordapi/pkg/auth"
)

type Config struct {
	// APIBase overrides the REST API root, mainly for tests.
	APIBase string
	// GatewayURL skips gateway discovery, mainly for tests.
	GatewayURL string
	Auth       *AuthConfig
	HTTPClient *http.Client
	UserAgent  string
	MaxRetries int
	// GlobalRate caps requests per second across all routes; zero keeps the
	// transport default.
	GlobalRate  float64
	GlobalBurst int
	Logger      *zerolog.Logger
}

type AuthConfig struct {
	Type          auth.Type
	Token         string
	TokenProvider auth.TokenProvider
}

type ConfigOption func(*Config)

func WithAPIBase(base string) ConfigOption {
	return func(c *Config) {
		c.APIBase = base
	}
}

func WithGatewayURL(url string) ConfigOption {
	return func(c *Config) {
		c.GatewayURL = url
	}
}

func WithToken(token string) ConfigOption {
	return func(c *Config) {
		if c.Auth == nil {
			c.Auth = &AuthConfig{}
		}
		c.Auth.Token = token
	}
}

func WithAuthType(typ auth.Type) ConfigOption {
	return func(c *Config) {
		if c.Auth == nil {
			c.Auth = &AuthConfig{}
		}
		c.Auth.Type = typ
	}
}

func WithTokenProvider(provider auth.TokenProvider) ConfigOption {
	return func(c *Config) {
		if c.Auth == nil {
			c.Auth = &AuthConfig{}
		}
		c.Auth.TokenProvider = provider
	}
}

func WithHTTPClient(hc *http.Client) ConfigOption {
	return func(c *Config) {
		c.HTTPClient = hc
	}
}

func WithUserAgent(ua string) ConfigOption {
	return func(c *Config) {
		c.UserAgent = ua
	}
}

func WithMaxRetries(n int) ConfigOption {
	return func(c *Config) {
		c.MaxRetries = n
	}
}

// WithGlobalRate tunes the global request budget shared by all routes.
func WithGlobalRate(perSecond float64, burst int) ConfigOption {
	return func(c *Config) {
		c.GlobalRate = perSecond
		c.GlobalBurst = burst
	}
}

func WithLogger(log zerolog.Logger) ConfigOption {
	return func(c *Config) {
		c.Logger = &log
	}
}

func NewConfig(opts ...ConfigOption) *Config {
	cfg := &Config{MaxRetries: -1}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
