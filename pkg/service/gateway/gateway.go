package gateway

import (
	"context"
	"net/http"

	"github.com/zap8600/go-discordapi/pkg/model"
	"github.com/zap8600/go-discordapi/pkg/rest"
)

// GatewayInfo exposes the gateway discovery endpoints. GetGatewayBot is
// authenticated and additionally reports the session start budget.
type GatewayInfo interface {
	GetGateway(ctx context.Context) (*model.GatewayInfo, error)
	GetGatewayBot(ctx context.Context) (*model.GatewayBotInfo, error)
}

type gatewayInfo struct {
	rest *rest.Client
}

func NewGatewayInfoClient(rc *rest.Client) *gatewayInfo {
	return &gatewayInfo{
		rest: rc,
	}
}

func (c *gatewayInfo) GetGateway(ctx context.Context) (*model.GatewayInfo, error) {
	route := rest.NewRoute(http.MethodGet, "/gateway")

	var info model.GatewayInfo
	if err := c.rest.Do(ctx, route, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *gatewayInfo) GetGatewayBot(ctx context.Context) (*model.GatewayBotInfo, error) {
	route := rest.NewRoute(http.MethodGet, "/gateway/bot")

	var info model.GatewayBotInfo
	if err := c.rest.Do(ctx, route, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}
