package version

// Version is set at build time via -ldflags "-X .../pkg/version.Version=v1.2.3".
var Version = "0.0.0-dev"

// UserAgent is the default User-Agent sent on REST requests, following the
// format Discord asks bot libraries to use.
func UserAgent() string {
	return "DiscordBot (https://github.com/zap8600/go-discordapi, " + Version + ")"
}
