package channel_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zap8600/go-discordapi/pkg/model"
	"github.com/zap8600/go-discordapi/pkg/rest"
	"github.com/zap8600/go-discordapi/pkg/testutil"
)

func TestGetChannel(t *testing.T) {
	cl := testutil.GetClient()
	require.NotNil(t, cl)

	ch, err := cl.Channels.GetChannel(context.Background(), testutil.GetMock().DefaultChannelID())
	require.NoError(t, err)
	assert.Equal(t, "general", ch.Name)
	assert.Equal(t, model.ChannelTypeGuildText, ch.Type)
}

func TestGetChannel_Unknown(t *testing.T) {
	cl := testutil.GetClient()
	require.NotNil(t, cl)

	_, err := cl.Channels.GetChannel(context.Background(), "0")
	require.ErrorIs(t, err, rest.ErrNotFound)

	var apiErr *rest.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 10003, apiErr.Code)
}

func TestModifyChannel(t *testing.T) {
	ctx := context.Background()

	cl := testutil.GetClient()
	require.NotNil(t, cl)

	name := "renamed"
	topic := "the new topic"
	ch, err := cl.Channels.ModifyChannel(ctx, testutil.GetMock().DefaultChannelID(), &model.ChannelModify{
		Name:  &name,
		Topic: &topic,
	})
	require.NoError(t, err)
	assert.Equal(t, "renamed", ch.Name)
	assert.Equal(t, "the new topic", ch.Topic)

	_, err = cl.Channels.ModifyChannel(ctx, testutil.GetMock().DefaultChannelID(), nil)
	require.Error(t, err)
}

func TestDeleteChannel(t *testing.T) {
	ctx := context.Background()

	cl := testutil.GetClient()
	require.NotNil(t, cl)
	mock := testutil.GetMock()

	created, err := cl.Guilds.CreateGuildChannel(ctx, mock.DefaultGuildID(), &model.GuildChannelCreate{
		Name: "doomed",
		Type: model.ChannelTypeGuildText,
	})
	require.NoError(t, err)

	deleted, err := cl.Channels.DeleteChannel(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)

	_, err = cl.Channels.GetChannel(ctx, created.ID)
	require.ErrorIs(t, err, rest.ErrNotFound)
}

func TestChannelPermissions(t *testing.T) {
	ctx := context.Background()

	cl := testutil.GetClient()
	require.NotNil(t, cl)
	channelID := testutil.GetMock().DefaultChannelID()

	err := cl.Channels.EditChannelPermissions(ctx, channelID, "190000000000000001", &model.PermissionsEdit{
		Allow: "1024",
		Deny:  "0",
		Type:  model.OverwriteTypeRole,
	})
	require.NoError(t, err)

	require.Error(t, cl.Channels.EditChannelPermissions(ctx, channelID, "190000000000000001", nil))

	require.NoError(t, cl.Channels.DeleteChannelPermission(ctx, channelID, "190000000000000001"))
}

func TestChannelInvites(t *testing.T) {
	ctx := context.Background()

	cl := testutil.GetClient()
	require.NotNil(t, cl)
	channelID := testutil.GetMock().DefaultChannelID()

	invite, err := cl.Channels.CreateChannelInvite(ctx, channelID, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, invite.Code)

	invites, err := cl.Channels.GetChannelInvites(ctx, channelID)
	require.NoError(t, err)

	found := false
	for _, in := range invites {
		if in.Code == invite.Code {
			found = true
		}
	}
	assert.True(t, found)
}
