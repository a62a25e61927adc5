package model

// GatewayInfo is the response of GET /gateway.
type GatewayInfo struct {
	URL string `json:"url"`
}

// GatewayBotInfo is the response of GET /gateway/bot, which additionally
// advises the shard count and the session start budget for the token.
type GatewayBotInfo struct {
	URL               string            `json:"url"`
	Shards            int               `json:"shards"`
	SessionStartLimit SessionStartLimit `json:"session_start_limit"`
}

type SessionStartLimit struct {
	Total          int `json:"total"`
	Remaining      int `json:"remaining"`
	ResetAfter     int `json:"reset_after"` // milliseconds
	MaxConcurrency int `json:"max_concurrency"`
}
