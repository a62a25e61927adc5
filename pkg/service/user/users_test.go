package user_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zap8600/go-discordapi/pkg/testutil"
)

func TestGetCurrentUser(t *testing.T) {
	cl := testutil.GetClient()
	require.NotNil(t, cl)

	u, err := cl.Users.GetCurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "testbot", u.Username)
	assert.True(t, u.Bot)
}

func TestGetCurrentUser_RetriesServerErrors(t *testing.T) {
	cl := testutil.GetClient()
	require.NotNil(t, cl)

	// Two 500s before recovery; the transport retries through both.
	testutil.GetMock().FailNext("/users/@me", 2)

	u, err := cl.Users.GetCurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "testbot", u.Username)
}

func TestGetCurrentUserGuilds(t *testing.T) {
	cl := testutil.GetClient()
	require.NotNil(t, cl)

	guilds, err := cl.Users.GetCurrentUserGuilds(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, guilds)

	found := false
	for _, g := range guilds {
		if g.ID == testutil.GetMock().DefaultGuildID() {
			found = true
			assert.True(t, g.Owner)
		}
	}
	assert.True(t, found)
}
