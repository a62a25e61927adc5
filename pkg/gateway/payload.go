package gateway

import "encoding/json"

// Opcode identifies the kind of a gateway payload.
type Opcode int

const (
	OpDispatch            Opcode = 0
	OpHeartbeat           Opcode = 1
	OpIdentify            Opcode = 2
	OpPresenceUpdate      Opcode = 3
	OpVoiceStateUpdate    Opcode = 4
	OpResume              Opcode = 6
	OpReconnect           Opcode = 7
	OpRequestGuildMembers Opcode = 8
	OpInvalidSession      Opcode = 9
	OpHello               Opcode = 10
	OpHeartbeatACK        Opcode = 11
)

// Intent is a bit in the IDENTIFY intents field gating which event groups
// the gateway delivers.
type Intent int

const (
	IntentGuilds                Intent = 1 << 0
	IntentGuildMembers          Intent = 1 << 1
	IntentGuildModeration       Intent = 1 << 2
	IntentGuildEmojis           Intent = 1 << 3
	IntentGuildIntegrations     Intent = 1 << 4
	IntentGuildWebhooks         Intent = 1 << 5
	IntentGuildInvites          Intent = 1 << 6
	IntentGuildVoiceStates      Intent = 1 << 7
	IntentGuildPresences        Intent = 1 << 8
	IntentGuildMessages         Intent = 1 << 9
	IntentGuildMessageReactions Intent = 1 << 10
	IntentGuildMessageTyping    Intent = 1 << 11
	IntentDirectMessages        Intent = 1 << 12
	IntentDirectMessageReacts   Intent = 1 << 13
	IntentDirectMessageTyping   Intent = 1 << 14
	IntentMessageContent        Intent = 1 << 15
)

// IntentsDefault covers the common text-bot case.
const IntentsDefault = IntentGuilds | IntentGuildMessages | IntentMessageContent

// payload is the envelope of every gateway message.
type payload struct {
	Op   Opcode          `json:"op"`
	Data json.RawMessage `json:"d,omitempty"`
	Seq  *int64          `json:"s,omitempty"`
	Type string          `json:"t,omitempty"`
}

type helloData struct {
	HeartbeatInterval int `json:"heartbeat_interval"` // milliseconds
}

type identifyData struct {
	Token      string             `json:"token"`
	Properties identifyProperties `json:"properties"`
	Intents    Intent             `json:"intents"`
	Compress   bool               `json:"compress,omitempty"`
	Shard      *[2]int            `json:"shard,omitempty"`
}

type identifyProperties struct {
	OS      string `json:"os"`
	Browser string `json:"browser"`
	Device  string `json:"device"`
}

type resumeData struct {
	Token     string `json:"token"`
	SessionID string `json:"session_id"`
	Seq       int64  `json:"seq"`
}
