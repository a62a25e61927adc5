package channel

import (
	"context"
	"fmt"
	"net/http"

	"github.com/zap8600/go-discordapi/pkg/model"
	"github.com/zap8600/go-discordapi/pkg/rest"
)

type Reactions interface {
	CreateReaction(ctx context.Context, channelID, messageID model.Snowflake, emoji model.Emoji) error
	DeleteOwnReaction(ctx context.Context, channelID, messageID model.Snowflake, emoji model.Emoji) error
	DeleteUserReaction(ctx context.Context, channelID, messageID model.Snowflake, emoji model.Emoji, userID model.Snowflake) error
}

type reactions struct {
	rest *rest.Client
}

func NewReactionsClient(rc *rest.Client) *reactions {
	return &reactions{
		rest: rc,
	}
}

func (c *reactions) CreateReaction(ctx context.Context, channelID, messageID model.Snowflake, emoji model.Emoji) error {
	if emoji.Name == "" {
		return fmt.Errorf("channel: empty emoji")
	}
	route := rest.NewRoute(http.MethodPut, "/channels/%s/messages/%s/reactions/%s/@me",
		channelID, messageID, emoji.PathSegment())

	return c.rest.Do(ctx, route, nil, nil)
}

func (c *reactions) DeleteOwnReaction(ctx context.Context, channelID, messageID model.Snowflake, emoji model.Emoji) error {
	if emoji.Name == "" {
		return fmt.Errorf("channel: empty emoji")
	}
	route := rest.NewRoute(http.MethodDelete, "/channels/%s/messages/%s/reactions/%s/@me",
		channelID, messageID, emoji.PathSegment())

	return c.rest.Do(ctx, route, nil, nil)
}

func (c *reactions) DeleteUserReaction(ctx context.Context, channelID, messageID model.Snowflake, emoji model.Emoji, userID model.Snowflake) error {
	if emoji.Name == "" {
		return fmt.Errorf("channel: empty emoji")
	}
	route := rest.NewRoute(http.MethodDelete, "/channels/%s/messages/%s/reactions/%s/%s",
		channelID, messageID, emoji.PathSegment(), userID)

	return c.rest.Do(ctx, route, nil, nil)
}
