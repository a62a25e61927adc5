package guild_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zap8600/go-discordapi/pkg/model"
	"github.com/zap8600/go-discordapi/pkg/rest"
	"github.com/zap8600/go-discordapi/pkg/testutil"
)

func TestCreateGuild(t *testing.T) {
	ctx := context.Background()

	cl := testutil.GetClient()
	require.NotNil(t, cl)

	g, err := cl.Guilds.CreateGuild(ctx, &model.GuildCreate{
		Name: "My Server",
		Channels: []*model.GuildChannelCreate{
			{Name: "welcome", Type: model.ChannelTypeGuildText},
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, g.ID)
	assert.Equal(t, "My Server", g.Name)
	require.Len(t, g.Channels, 1)
	assert.Equal(t, "welcome", g.Channels[0].Name)
}

func TestCreateGuild_MissingName(t *testing.T) {
	cl := testutil.GetClient()
	require.NotNil(t, cl)

	_, err := cl.Guilds.CreateGuild(context.Background(), &model.GuildCreate{})
	require.Error(t, err)

	_, err = cl.Guilds.CreateGuild(context.Background(), nil)
	require.Error(t, err)
}

func TestGetGuildChannels(t *testing.T) {
	cl := testutil.GetClient()
	require.NotNil(t, cl)

	chs, err := cl.Guilds.GetGuildChannels(context.Background(), testutil.GetMock().DefaultGuildID())
	require.NoError(t, err)
	require.NotEmpty(t, chs)
}

func TestCreateGuildChannel_UsesPost(t *testing.T) {
	ctx := context.Background()

	cl := testutil.GetClient()
	require.NotNil(t, cl)
	mock := testutil.GetMock()
	guildID := mock.DefaultGuildID()

	ch, err := cl.Guilds.CreateGuildChannel(ctx, guildID, &model.GuildChannelCreate{
		Name:  "announcements",
		Type:  model.ChannelTypeGuildAnnouncement,
		Topic: "news only",
	})
	require.NoError(t, err)
	assert.Equal(t, "announcements", ch.Name)
	assert.Equal(t, guildID, ch.GuildID)

	found := false
	for _, req := range mock.Requests() {
		if req.Method == http.MethodPost && strings.HasSuffix(req.Path, "/guilds/"+guildID.String()+"/channels") {
			found = true
		}
	}
	assert.True(t, found, "channel creation must POST")
}

func TestListGuildMembers(t *testing.T) {
	cl := testutil.GetClient()
	require.NotNil(t, cl)

	members, err := cl.Guilds.ListGuildMembers(context.Background(), testutil.GetMock().DefaultGuildID(), 100, "")
	require.NoError(t, err)
	require.NotEmpty(t, members)
	require.NotNil(t, members[0].User)
	assert.Equal(t, "testbot", members[0].User.Username)
}

func TestGetGuildRoles(t *testing.T) {
	cl := testutil.GetClient()
	require.NotNil(t, cl)

	roles, err := cl.Guilds.GetGuildRoles(context.Background(), testutil.GetMock().DefaultGuildID())
	require.NoError(t, err)
	require.NotEmpty(t, roles)
	assert.Equal(t, "@everyone", roles[0].Name)
}

func TestGuild_Unknown(t *testing.T) {
	cl := testutil.GetClient()
	require.NotNil(t, cl)

	_, err := cl.Guilds.GetGuildRoles(context.Background(), "0")
	require.ErrorIs(t, err, rest.ErrNotFound)
}
