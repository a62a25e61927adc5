package guild

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/zap8600/go-discordapi/pkg/model"
	"github.com/zap8600/go-discordapi/pkg/rest"
)

type Guilds interface {
	CreateGuild(ctx context.Context, create *model.GuildCreate) (*model.Guild, error)
	GetGuildChannels(ctx context.Context, guildID model.Snowflake) ([]*model.Channel, error)
	CreateGuildChannel(ctx context.Context, guildID model.Snowflake, create *model.GuildChannelCreate) (*model.Channel, error)
	ListGuildMembers(ctx context.Context, guildID model.Snowflake, limit int, after model.Snowflake) ([]*model.GuildMember, error)
	GetGuildRoles(ctx context.Context, guildID model.Snowflake) ([]*model.Role, error)
}

type guilds struct {
	rest *rest.Client
}

func NewGuildsClient(rc *rest.Client) *guilds {
	return &guilds{
		rest: rc,
	}
}

// CreateGuild creates a guild owned by the current user. Only bots in fewer
// than 10 guilds may call this.
func (c *guilds) CreateGuild(ctx context.Context, create *model.GuildCreate) (*model.Guild, error) {
	if create == nil || create.Name == "" {
		return nil, fmt.Errorf("guild: guild name is required")
	}
	route := rest.NewRoute(http.MethodPost, "/guilds")

	var g model.Guild
	if err := c.rest.Do(ctx, route, create, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (c *guilds) GetGuildChannels(ctx context.Context, guildID model.Snowflake) ([]*model.Channel, error) {
	route := rest.NewRoute(http.MethodGet, "/guilds/%s/channels", guildID)

	var chs []*model.Channel
	if err := c.rest.Do(ctx, route, nil, &chs); err != nil {
		return nil, err
	}
	return chs, nil
}

func (c *guilds) CreateGuildChannel(ctx context.Context, guildID model.Snowflake, create *model.GuildChannelCreate) (*model.Channel, error) {
	if create == nil || create.Name == "" {
		return nil, fmt.Errorf("guild: channel name is required")
	}
	route := rest.NewRoute(http.MethodPost, "/guilds/%s/channels", guildID)

	var ch model.Channel
	if err := c.rest.Do(ctx, route, create, &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

// ListGuildMembers pages through the member list. after is the highest user
// ID of the previous page; limit caps at 1000 server-side.
func (c *guilds) ListGuildMembers(ctx context.Context, guildID model.Snowflake, limit int, after model.Snowflake) ([]*model.GuildMember, error) {
	route := rest.NewRoute(http.MethodGet, "/guilds/%s/members", guildID)

	v := url.Values{}
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	if !after.IsZero() {
		v.Set("after", after.String())
	}
	if len(v) > 0 {
		route.Path += "?" + v.Encode()
	}

	var members []*model.GuildMember
	if err := c.rest.Do(ctx, route, nil, &members); err != nil {
		return nil, err
	}
	return members, nil
}

func (c *guilds) GetGuildRoles(ctx context.Context, guildID model.Snowflake) ([]*model.Role, error) {
	route := rest.NewRoute(http.MethodGet, "/guilds/%s/roles", guildID)

	var roles []*model.Role
	if err := c.rest.Do(ctx, route, nil, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}
