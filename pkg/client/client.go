package client

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/zap8600/go-discordapi/internal/ratelimit"
	"github.com/zap8600/go-discordapi/pkg/auth"
	"github.com/zap8600/go-discordapi/pkg/rest"
	gwservice "github.com/zap8600/go-discordapi/pkg/service/gateway"
)

// Client builds the REST transport from a Config and verifies the
// credential before handing out a Connection.
type Client struct {
	config *Config
	rest   *rest.Client
}

func NewClient(config *Config) *Client {
	return &Client{
		config: config,
	}
}

// Connect assembles the transport and performs a gateway discovery call to
// verify the token works.
func (c *Client) Connect(ctx context.Context) (*Connection, error) {
	cred, err := c.buildCredential()
	if err != nil {
		return nil, err
	}

	opts := c.buildRESTOptions()
	rc := rest.New(c.config.APIBase, cred, opts...)
	c.rest = rc

	gw := gwservice.NewGatewayInfoClient(rc)
	info, err := gw.GetGatewayBot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Discord: %w", err)
	}

	gatewayURL := c.config.GatewayURL
	if gatewayURL == "" {
		gatewayURL = info.URL
	}

	return NewConnection(c, rc, gatewayURL), nil
}

func (c *Client) buildCredential() (*auth.Credential, error) {
	ac := c.config.Auth
	if ac == nil || (ac.Token == "" && ac.TokenProvider == nil) {
		return nil, fmt.Errorf("client: no token configured")
	}
	typ := ac.Type
	if typ == "" {
		typ = auth.TypeBot
	}
	if ac.TokenProvider != nil {
		return auth.NewTokenProvider(typ, ac.TokenProvider), nil
	}
	return &auth.Credential{Type: typ, Provider: auth.StaticToken(ac.Token)}, nil
}

func (c *Client) buildRESTOptions() []rest.Option {
	var opts []rest.Option

	if c.config.HTTPClient != nil {
		opts = append(opts, rest.WithHTTPClient(c.config.HTTPClient))
	}
	if c.config.UserAgent != "" {
		opts = append(opts, rest.WithUserAgent(c.config.UserAgent))
	}
	if c.config.MaxRetries >= 0 {
		opts = append(opts, rest.WithMaxRetries(c.config.MaxRetries))
	}
	if c.config.GlobalRate > 0 {
		burst := c.config.GlobalBurst
		if burst <= 0 {
			burst = 1
		}
		opts = append(opts, rest.WithRateLimit(ratelimit.Config{
			GlobalRate:  rate.Limit(c.config.GlobalRate),
			GlobalBurst: burst,
		}))
	}
	if c.config.Logger != nil {
		opts = append(opts, rest.WithLogger(*c.config.Logger))
	}
	return opts
}

// Connection carries the assembled transport plus the discovered gateway
// endpoint.
type Connection struct {
	client     *Client
	rest       *rest.Client
	gatewayURL string
}

func NewConnection(client *Client, rc *rest.Client, gatewayURL string) *Connection {
	return &Connection{
		client:     client,
		rest:       rc,
		gatewayURL: gatewayURL,
	}
}

func (c *Connection) REST() *rest.Client {
	return c.rest
}

func (c *Connection) GatewayURL() string {
	return c.gatewayURL
}

func (c *Connection) logger() zerolog.Logger {
	if c.client.config.Logger != nil {
		return *c.client.config.Logger
	}
	return zerolog.Nop()
}

// rawToken resolves the bare token for gateway IDENTIFY payloads, which
// carry the token without the Authorization scheme prefix.
func (c *Connection) rawToken(ctx context.Context) (string, error) {
	ac := c.client.config.Auth
	if ac.TokenProvider != nil {
		return ac.TokenProvider.Token(ctx)
	}
	return ac.Token, nil
}
