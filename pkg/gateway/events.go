package gateway

import (
	"encoding/json"

	"github.com/zap8600/go-discordapi/pkg/model"
)

// Dispatch event names. Any name the gateway sends can be subscribed to;
// these constants cover the events with typed payloads here.
const (
	EventReady         = "READY"
	EventResumed       = "RESUMED"
	EventMessageCreate = "MESSAGE_CREATE"
	EventMessageUpdate = "MESSAGE_UPDATE"
	EventMessageDelete = "MESSAGE_DELETE"
	EventGuildCreate   = "GUILD_CREATE"
	EventChannelCreate = "CHANNEL_CREATE"

	// EventAny subscribes a handler to every dispatch.
	EventAny = "*"
)

// Event is one dispatched gateway event. Data holds the raw d field;
// the typed accessors decode it on demand.
type Event struct {
	Type string
	Seq  int64
	Data json.RawMessage
}

// Message decodes the payload as a message object, for MESSAGE_CREATE and
// MESSAGE_UPDATE events.
func (e *Event) Message() (*model.Message, error) {
	var msg model.Message
	if err := json.Unmarshal(e.Data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// Guild decodes the payload as a guild object, for GUILD_CREATE events.
func (e *Event) Guild() (*model.Guild, error) {
	var g model.Guild
	if err := json.Unmarshal(e.Data, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// Channel decodes the payload as a channel object.
func (e *Event) Channel() (*model.Channel, error) {
	var ch model.Channel
	if err := json.Unmarshal(e.Data, &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

// readyData is the READY payload subset the session tracks.
type readyData struct {
	Version          int         `json:"v"`
	User             *model.User `json:"user"`
	SessionID        string      `json:"session_id"`
	ResumeGatewayURL string      `json:"resume_gateway_url"`
}

// Handler receives dispatched events. Handlers run on the session's read
// loop and must not block; hand work off to a goroutine if it can stall.
type Handler func(*Event)
