package channel

import (
	"context"
	"fmt"
	"net/http"

	"github.com/zap8600/go-discordapi/pkg/model"
	"github.com/zap8600/go-discordapi/pkg/rest"
)

type Channels interface {
	GetChannel(ctx context.Context, channelID model.Snowflake) (*model.Channel, error)
	ModifyChannel(ctx context.Context, channelID model.Snowflake, modify *model.ChannelModify) (*model.Channel, error)
	DeleteChannel(ctx context.Context, channelID model.Snowflake) (*model.Channel, error)
	EditChannelPermissions(ctx context.Context, channelID, overwriteID model.Snowflake, edit *model.PermissionsEdit) error
	DeleteChannelPermission(ctx context.Context, channelID, overwriteID model.Snowflake) error
	GetChannelInvites(ctx context.Context, channelID model.Snowflake) ([]*model.Invite, error)
	CreateChannelInvite(ctx context.Context, channelID model.Snowflake, create *model.InviteCreate) (*model.Invite, error)
}

type channels struct {
	rest *rest.Client
}

func NewChannelsClient(rc *rest.Client) *channels {
	return &channels{
		rest: rc,
	}
}

func (c *channels) GetChannel(ctx context.Context, channelID model.Snowflake) (*model.Channel, error) {
	route := rest.NewRoute(http.MethodGet, "/channels/%s", channelID)

	var ch model.Channel
	if err := c.rest.Do(ctx, route, nil, &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

func (c *channels) ModifyChannel(ctx context.Context, channelID model.Snowflake, modify *model.ChannelModify) (*model.Channel, error) {
	if modify == nil {
		return nil, fmt.Errorf("channel: nil modify payload")
	}
	route := rest.NewRoute(http.MethodPatch, "/channels/%s", channelID)

	var ch model.Channel
	if err := c.rest.Do(ctx, route, modify, &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

// DeleteChannel deletes a guild channel, or closes a private message. The
// deleted channel object is returned.
func (c *channels) DeleteChannel(ctx context.Context, channelID model.Snowflake) (*model.Channel, error) {
	route := rest.NewRoute(http.MethodDelete, "/channels/%s", channelID)

	var ch model.Channel
	if err := c.rest.Do(ctx, route, nil, &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

func (c *channels) EditChannelPermissions(ctx context.Context, channelID, overwriteID model.Snowflake, edit *model.PermissionsEdit) error {
	if edit == nil {
		return fmt.Errorf("channel: nil permissions payload")
	}
	route := rest.NewRoute(http.MethodPut, "/channels/%s/permissions/%s", channelID, overwriteID)

	return c.rest.Do(ctx, route, edit, nil)
}

func (c *channels) DeleteChannelPermission(ctx context.Context, channelID, overwriteID model.Snowflake) error {
	route := rest.NewRoute(http.MethodDelete, "/channels/%s/permissions/%s", channelID, overwriteID)

	return c.rest.Do(ctx, route, nil, nil)
}

func (c *channels) GetChannelInvites(ctx context.Context, channelID model.Snowflake) ([]*model.Invite, error) {
	route := rest.NewRoute(http.MethodGet, "/channels/%s/invites", channelID)

	var invites []*model.Invite
	if err := c.rest.Do(ctx, route, nil, &invites); err != nil {
		return nil, err
	}
	return invites, nil
}

func (c *channels) CreateChannelInvite(ctx context.Context, channelID model.Snowflake, create *model.InviteCreate) (*model.Invite, error) {
	if create == nil {
		create = &model.InviteCreate{}
	}
	route := rest.NewRoute(http.MethodPost, "/channels/%s/invites", channelID)

	var invite model.Invite
	if err := c.rest.Do(ctx, route, create, &invite); err != nil {
		return nil, err
	}
	return &invite, nil
}
