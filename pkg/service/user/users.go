package user

import (
	"context"
	"net/http"

	"github.com/zap8600/go-discordapi/pkg/model"
	"github.com/zap8600/go-discordapi/pkg/rest"
)

type Users interface {
	GetCurrentUser(ctx context.Context) (*model.User, error)
	GetCurrentUserGuilds(ctx context.Context) ([]*model.PartialGuild, error)
}

type users struct {
	rest *rest.Client
}

func NewUsersClient(rc *rest.Client) *users {
	return &users{
		rest: rc,
	}
}

func (c *users) GetCurrentUser(ctx context.Context) (*model.User, error) {
	route := rest.NewRoute(http.MethodGet, "/users/@me")

	var u model.User
	if err := c.rest.Do(ctx, route, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *users) GetCurrentUserGuilds(ctx context.Context) ([]*model.PartialGuild, error) {
	route := rest.NewRoute(http.MethodGet, "/users/@me/guilds")

	var guilds []*model.PartialGuild
	if err := c.rest.Do(ctx, route, nil, &guilds); err != nil {
		return nil, err
	}
	return guilds, nil
}
