package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zap8600/go-discordapi/pkg/client"
	"github.com/zap8600/go-discordapi/pkg/gateway"
	"github.com/zap8600/go-discordapi/pkg/model"
	"github.com/zap8600/go-discordapi/pkg/version"
)

var (
	channelID string
	debug     bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "godiscord",
		Short:   "Discord API command line client",
		Version: version.Version,
		Long: `A command-line interface for the Discord REST and gateway APIs.

The bot token is read from --token, the DISCORD_TOKEN environment variable,
or a godiscord.yaml config file in the working directory.`,
		Example: `  godiscord send --channel 1234567890 "hello from the CLI"
  godiscord channel messages --channel 1234567890
  godiscord listen`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.InfoLevel
			if debug {
				level = zerolog.DebugLevel
			}
			zerolog.SetGlobalLevel(level)
		},
	}

	rootCmd.PersistentFlags().String("token", "", "bot token (env DISCORD_TOKEN)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	viper.SetConfigName("godiscord")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.SetEnvPrefix("discord")
	viper.AutomaticEnv()
	_ = viper.BindPFlag("token", rootCmd.PersistentFlags().Lookup("token"))
	_ = viper.ReadInConfig()

	rootCmd.AddCommand(sendCmd(), channelCmd(), meCmd(), gatewayCmd(), listenCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func buildClient(ctx context.Context) (*client.DiscordBindingClient, error) {
	token := viper.GetString("token")
	if token == "" {
		return nil, fmt.Errorf("no token: set --token, DISCORD_TOKEN or godiscord.yaml")
	}
	return client.NewDiscordClient(token).
		WithLogger(log.Logger).
		Build(ctx)
}

func sendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send --channel <id> <content...>",
		Short: "Send a message to a channel",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if channelID == "" {
				return fmt.Errorf("--channel is required")
			}
			cl, err := buildClient(cmd.Context())
			if err != nil {
				return err
			}
			msg, err := cl.Messages.CreateMessage(cmd.Context(), model.Snowflake(channelID), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Printf("sent message %s\n", msg.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&channelID, "channel", "", "channel ID (required)")
	return cmd
}

func channelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "channel",
		Short: "Inspect channels",
	}

	get := &cobra.Command{
		Use:   "get --channel <id>",
		Short: "Show a channel",
		RunE: func(cmd *cobra.Command, args []string) error {
			if channelID == "" {
				return fmt.Errorf("--channel is required")
			}
			cl, err := buildClient(cmd.Context())
			if err != nil {
				return err
			}
			ch, err := cl.Channels.GetChannel(cmd.Context(), model.Snowflake(channelID))
			if err != nil {
				return err
			}
			fmt.Printf("#%s (%s) type=%d guild=%s\n", ch.Name, ch.ID, ch.Type, ch.GuildID)
			return nil
		},
	}

	msgs := &cobra.Command{
		Use:   "messages --channel <id>",
		Short: "List recent messages in a channel",
		RunE: func(cmd *cobra.Command, args []string) error {
			if channelID == "" {
				return fmt.Errorf("--channel is required")
			}
			cl, err := buildClient(cmd.Context())
			if err != nil {
				return err
			}
			list, err := cl.Messages.GetMessages(cmd.Context(), model.Snowflake(channelID), nil)
			if err != nil {
				return err
			}
			for _, m := range list {
				author := "unknown"
				if m.Author != nil {
					author = m.Author.Tag()
				}
				fmt.Printf("[%s] %s: %s\n", m.ID, author, m.Content)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&channelID, "channel", "", "channel ID (required)")
	cmd.AddCommand(get, msgs)
	return cmd
}

func meCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the current user and their guilds",
		RunE: func(cmd *cobra.Command, args []string) error {
			cl, err := buildClient(cmd.Context())
			if err != nil {
				return err
			}
			u, err := cl.Users.GetCurrentUser(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("%s (%s)\n", u.Tag(), u.ID)

			guilds, err := cl.Users.GetCurrentUserGuilds(cmd.Context())
			if err != nil {
				return err
			}
			for _, g := range guilds {
				fmt.Printf("  guild %s (%s)\n", g.Name, g.ID)
			}
			return nil
		},
	}
}

func gatewayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gateway",
		Short: "Show gateway connection info",
		RunE: func(cmd *cobra.Command, args []string) error {
			cl, err := buildClient(cmd.Context())
			if err != nil {
				return err
			}
			info, err := cl.Gateway.GetGatewayBot(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("url: %s\nshards: %d\nsessions remaining: %d/%d\n",
				info.URL, info.Shards,
				info.SessionStartLimit.Remaining, info.SessionStartLimit.Total)
			return nil
		},
	}
}

func listenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "listen",
		Short: "Connect to the gateway and log events until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cl, err := buildClient(cmd.Context())
			if err != nil {
				return err
			}
			session, err := cl.NewSession(cmd.Context(), gateway.IntentsDefault)
			if err != nil {
				return err
			}
			session.On(gateway.EventMessageCreate, func(ev *gateway.Event) {
				msg, err := ev.Message()
				if err != nil {
					log.Warn().Err(err).Msg("bad message payload")
					return
				}
				author := "unknown"
				if msg.Author != nil {
					author = msg.Author.Tag()
				}
				log.Info().
					Str("channel", msg.ChannelID.String()).
					Str("author", author).
					Str("content", msg.Content).
					Msg("message")
			})
			session.On(gateway.EventAny, func(ev *gateway.Event) {
				log.Debug().Str("event", ev.Type).Int64("seq", ev.Seq).Msg("dispatch")
			})

			if err := session.Open(cmd.Context()); err != nil {
				return err
			}
			defer session.Close()

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
			select {
			case <-sig:
				log.Info().Msg("shutting down")
			case <-session.Done():
				log.Info().Msg("session ended")
			}
			return nil
		},
	}
}
