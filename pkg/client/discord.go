package client

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/zap8600/go-discordapi/pkg/auth"
)

// DiscordClient is the fluent entry point:
//
//	cl, err := client.NewDiscordClient(token).Build(ctx)
type DiscordClient struct {
	config *Config
}

// NewDiscordClient starts a builder around a bot token.
func NewDiscordClient(token string) *DiscordClient {
	config := &Config{MaxRetries: -1}
	if token != "" {
		config.Auth = &AuthConfig{
			Token: token,
			Type:  auth.TypeBot,
		}
	}
	return &DiscordClient{
		config: config,
	}
}

// WithAuthType switches the Authorization scheme, e.g. auth.TypeBearer for
// OAuth2 access tokens.
func (c *DiscordClient) WithAuthType(typ auth.Type) *DiscordClient {
	if c.config.Auth == nil {
		c.config.Auth = &AuthConfig{}
	}
	c.config.Auth.Type = typ
	return c
}

func (c *DiscordClient) WithAPIBase(base string) *DiscordClient {
	c.config.APIBase = base
	return c
}

func (c *DiscordClient) WithGatewayURL(url string) *DiscordClient {
	c.config.GatewayURL = url
	return c
}

// WithGlobalRate tunes the global request budget shared by all routes.
func (c *DiscordClient) WithGlobalRate(perSecond float64, burst int) *DiscordClient {
	c.config.GlobalRate = perSecond
	c.config.GlobalBurst = burst
	return c
}

func (c *DiscordClient) WithLogger(log zerolog.Logger) *DiscordClient {
	c.config.Logger = &log
	return c
}

func (c *DiscordClient) Build(ctx context.Context) (*DiscordBindingClient, error) {
	client := NewClient(c.config)
	conn, err := client.Connect(ctx)
	if err != nil {
		return nil, err
	}

	return NewDiscordBindingClient(c, conn), nil
}

// Connect assembles a connection from options without the binding layer.
func Connect(ctx context.Context, opts ...ConfigOption) (*Connection, error) {
	config := NewConfig(opts...)
	client := NewClient(config)
	return client.Connect(ctx)
}

// ConnectWithToken assembles a connection for a fixed bot token.
func ConnectWithToken(ctx context.Context, token string, opts ...ConfigOption) (*Connection, error) {
	allOpts := append([]ConfigOption{WithToken(token)}, opts...)
	return Connect(ctx, allOpts...)
}

// ConnectWithTokenProvider assembles a connection around a rotating token
// source.
func ConnectWithTokenProvider(ctx context.Context, provider auth.TokenProvider, opts ...ConfigOption) (*Connection, error) {
	allOpts := append([]ConfigOption{WithTokenProvider(provider)}, opts...)
	return Connect(ctx, allOpts...)
}
