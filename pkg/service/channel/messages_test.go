package channel_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zap8600/go-discordapi/pkg/model"
	"github.com/zap8600/go-discordapi/pkg/rest"
	"github.com/zap8600/go-discordapi/pkg/service/channel"
	"github.com/zap8600/go-discordapi/pkg/testutil"
)

func TestMessageLifecycle(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cl := testutil.GetClient()
	require.NotNil(t, cl)
	channelID := testutil.GetMock().DefaultChannelID()

	msg, err := cl.Messages.CreateMessage(ctx, channelID, "hello world")
	require.NoError(t, err)
	require.NotEmpty(t, msg.ID)
	assert.Equal(t, "hello world", msg.Content)
	assert.NotEmpty(t, msg.Nonce, "a nonce should be generated when none is supplied")

	got, err := cl.Messages.GetMessage(ctx, channelID, msg.ID)
	require.NoError(t, err)
	assert.Equal(t, msg.ID, got.ID)

	edited, err := cl.Messages.EditMessage(ctx, channelID, msg.ID, "hello again")
	require.NoError(t, err)
	assert.Equal(t, "hello again", edited.Content)
	assert.NotEmpty(t, edited.EditedTimestamp)

	list, err := cl.Messages.GetMessages(ctx, channelID, &channel.MessagesQuery{Limit: 50})
	require.NoError(t, err)
	found := false
	for _, m := range list {
		if m.ID == msg.ID {
			found = true
		}
	}
	assert.True(t, found, "created message should be listed")

	require.NoError(t, cl.Messages.DeleteMessage(ctx, channelID, msg.ID))

	_, err = cl.Messages.GetMessage(ctx, channelID, msg.ID)
	require.ErrorIs(t, err, rest.ErrNotFound)
}

func TestCreateMessage_EmptyContent(t *testing.T) {
	cl := testutil.GetClient()
	require.NotNil(t, cl)

	_, err := cl.Messages.CreateMessage(context.Background(), testutil.GetMock().DefaultChannelID(), "   ")
	require.Error(t, err)
}

func TestCreateMessage_KeepsCallerNonce(t *testing.T) {
	cl := testutil.GetClient()
	require.NotNil(t, cl)

	msg, err := cl.Messages.CreateMessageComplex(context.Background(), testutil.GetMock().DefaultChannelID(), &model.MessageCreate{
		Content: "with nonce",
		Nonce:   "my-nonce",
	})
	require.NoError(t, err)
	assert.Equal(t, "my-nonce", msg.Nonce)
}

func TestGetMessages_QueryValidation(t *testing.T) {
	cl := testutil.GetClient()
	require.NotNil(t, cl)

	_, err := cl.Messages.GetMessages(context.Background(), testutil.GetMock().DefaultChannelID(), &channel.MessagesQuery{
		Before: "1",
		After:  "2",
	})
	require.Error(t, err)
}

func TestBulkDeleteMessages(t *testing.T) {
	ctx := context.Background()

	cl := testutil.GetClient()
	require.NotNil(t, cl)
	mock := testutil.GetMock()
	channelID := mock.DefaultChannelID()

	a := mock.SeedMessage(channelID, "one")
	b := mock.SeedMessage(channelID, "two")

	require.NoError(t, cl.Messages.BulkDeleteMessages(ctx, channelID, []model.Snowflake{a.ID, b.ID}))

	_, err := cl.Messages.GetMessage(ctx, channelID, a.ID)
	require.ErrorIs(t, err, rest.ErrNotFound)
}

func TestBulkDeleteMessages_CountBounds(t *testing.T) {
	cl := testutil.GetClient()
	require.NotNil(t, cl)
	channelID := testutil.GetMock().DefaultChannelID()

	err := cl.Messages.BulkDeleteMessages(context.Background(), channelID, []model.Snowflake{"1"})
	require.Error(t, err)

	tooMany := make([]model.Snowflake, 101)
	for i := range tooMany {
		tooMany[i] = "1"
	}
	err = cl.Messages.BulkDeleteMessages(context.Background(), channelID, tooMany)
	require.Error(t, err)
}

func TestCrosspostMessage(t *testing.T) {
	cl := testutil.GetClient()
	require.NotNil(t, cl)
	mock := testutil.GetMock()
	channelID := mock.DefaultChannelID()

	msg := mock.SeedMessage(channelID, "announcement")

	got, err := cl.Messages.CrosspostMessage(context.Background(), channelID, msg.ID)
	require.NoError(t, err)
	assert.Equal(t, msg.ID, got.ID)
}

func TestCreateMessage_RetriesRateLimit(t *testing.T) {
	cl := testutil.GetClient()
	require.NotNil(t, cl)
	mock := testutil.GetMock()
	channelID := mock.DefaultChannelID()

	mock.RateLimitNext("/channels/"+channelID.String()+"/messages", 0.05)

	msg, err := cl.Messages.CreateMessage(context.Background(), channelID, "after the 429")
	require.NoError(t, err)
	assert.Equal(t, "after the 429", msg.Content)
}
