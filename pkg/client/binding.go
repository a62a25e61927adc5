package client

import (
	"context"

	"github.com/zap8600/go-discordapi/pkg/gateway"
	"github.com/zap8600/go-discordapi/pkg/rest"
	channelsvc "github.com/zap8600/go-discordapi/pkg/service/channel"
	gwservice "github.com/zap8600/go-discordapi/pkg/service/gateway"
	guildsvc "github.com/zap8600/go-discordapi/pkg/service/guild"
	usersvc "github.com/zap8600/go-discordapi/pkg/service/user"
)

// DiscordBindingClient exposes every REST service over one connection, plus
// session construction for the realtime gateway.
type DiscordBindingClient struct {
	client *DiscordClient
	conn   *Connection

	Channels  channelsvc.Channels
	Messages  channelsvc.Messages
	Reactions channelsvc.Reactions
	Guilds    guildsvc.Guilds
	Users     usersvc.Users
	Gateway   gwservice.GatewayInfo
}

func NewDiscordBindingClient(client *DiscordClient, conn *Connection) *DiscordBindingClient {
	rc := conn.REST()

	return &DiscordBindingClient{
		client:    client,
		conn:      conn,
		Channels:  channelsvc.NewChannelsClient(rc),
		Messages:  channelsvc.NewMessagesClient(rc),
		Reactions: channelsvc.NewReactionsClient(rc),
		Guilds:    guildsvc.NewGuildsClient(rc),
		Users:     usersvc.NewUsersClient(rc),
		Gateway:   gwservice.NewGatewayInfoClient(rc),
	}
}

// REST exposes the underlying transport for endpoints not covered by a
// service.
func (c *DiscordBindingClient) REST() *rest.Client {
	return c.conn.REST()
}

// Ping verifies the connection by fetching gateway discovery.
func (c *DiscordBindingClient) Ping(ctx context.Context) error {
	_, err := c.Gateway.GetGateway(ctx)
	return err
}

// NewSession builds an unopened realtime gateway session using the
// connection's discovered gateway URL and credential.
func (c *DiscordBindingClient) NewSession(ctx context.Context, intents gateway.Intent) (*gateway.Session, error) {
	token, err := c.conn.rawToken(ctx)
	if err != nil {
		return nil, err
	}
	return gateway.NewSession(gateway.Config{
		Token:   token,
		Intents: intents,
		URL:     c.conn.GatewayURL(),
		Logger:  c.conn.logger(),
	})
}
