package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/zap8600/go-discordapi/pkg/client"
)

// TestToken is the token the shared harness authenticates with.
const TestToken = "mock-bot-token"

var (
	once     sync.Once
	setupErr error
	mock     *MockDiscord
	cl       *client.DiscordBindingClient
)

// Setup starts the shared mock server and builds a binding client against
// it, once per test binary.
func Setup(ctx context.Context) error {
	once.Do(func() {
		ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		mock = NewMockDiscord()

		cl, setupErr = client.NewDiscordClient(TestToken).
			WithAPIBase(mock.APIBase()).
			Build(ctx)
		if setupErr != nil {
			log.Error().Err(setupErr).Msg("failed to build client against mock server")
			return
		}

		log.Info().Str("base", mock.APIBase()).Msg("mock Discord server ready")
	})
	return setupErr
}

// GetClient returns the shared binding client, setting up the harness if
// needed.
func GetClient() *client.DiscordBindingClient {
	if err := Setup(context.Background()); err != nil {
		return nil
	}
	return cl
}

// GetMock returns the shared mock server.
func GetMock() *MockDiscord {
	if err := Setup(context.Background()); err != nil {
		return nil
	}
	return mock
}

// Teardown stops the shared mock server.
func Teardown() {
	if mock != nil {
		mock.Close()
	}
}
