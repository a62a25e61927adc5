package gateway_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zap8600/go-discordapi/pkg/testutil"
)

func TestGetGateway(t *testing.T) {
	cl := testutil.GetClient()
	require.NotNil(t, cl)

	info, err := cl.Gateway.GetGateway(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, info.URL)
}

func TestGetGatewayBot(t *testing.T) {
	cl := testutil.GetClient()
	require.NotNil(t, cl)

	info, err := cl.Gateway.GetGatewayBot(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, info.URL)
	assert.Equal(t, 1, info.Shards)
	assert.Greater(t, info.SessionStartLimit.Total, 0)
}
