package model

// Request payloads. Pointer fields distinguish "leave unchanged" from
// "set to zero value" on PATCH endpoints.

type ChannelModify struct {
	Name             *string      `json:"name,omitempty"`
	Type             *ChannelType `json:"type,omitempty"`
	Position         *int         `json:"position,omitempty"`
	Topic            *string      `json:"topic,omitempty"`
	NSFW             *bool        `json:"nsfw,omitempty"`
	RateLimitPerUser *int         `json:"rate_limit_per_user,omitempty"`
	Bitrate          *int         `json:"bitrate,omitempty"`
	UserLimit        *int         `json:"user_limit,omitempty"`
	ParentID         *Snowflake   `json:"parent_id,omitempty"`
}

type MessageCreate struct {
	Content   string      `json:"content,omitempty"`
	Nonce     string      `json:"nonce,omitempty"`
	TTS       bool        `json:"tts,omitempty"`
	Embeds    []Embed     `json:"embeds,omitempty"`
	Reference *MessageRef `json:"message_reference,omitempty"`
}

type MessageEdit struct {
	Content *string `json:"content,omitempty"`
	Embeds  []Embed `json:"embeds,omitempty"`
	Flags   *int    `json:"flags,omitempty"`
}

type BulkDelete struct {
	Messages []Snowflake `json:"messages"`
}

type PermissionsEdit struct {
	Allow string        `json:"allow"`
	Deny  string        `json:"deny"`
	Type  OverwriteType `json:"type"`
}

type InviteCreate struct {
	MaxAge    *int `json:"max_age,omitempty"`
	MaxUses   *int `json:"max_uses,omitempty"`
	Temporary bool `json:"temporary,omitempty"`
	Unique    bool `json:"unique,omitempty"`
}

type GuildCreate struct {
	Name     string                `json:"name"`
	Icon     string                `json:"icon,omitempty"`
	Roles    []*Role               `json:"roles,omitempty"`
	Channels []*GuildChannelCreate `json:"channels,omitempty"`
}

type GuildChannelCreate struct {
	Name      string      `json:"name"`
	Type      ChannelType `json:"type"`
	Topic     string      `json:"topic,omitempty"`
	Bitrate   int         `json:"bitrate,omitempty"`
	UserLimit int         `json:"user_limit,omitempty"`
	Position  int         `json:"position,omitempty"`
	ParentID  Snowflake   `json:"parent_id,omitempty"`
	NSFW      bool        `json:"nsfw,omitempty"`
}
