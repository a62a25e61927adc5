package model

import "net/url"

type Message struct {
	ID              Snowflake    `json:"id"`
	ChannelID       Snowflake    `json:"channel_id"`
	Author          *User        `json:"author,omitempty"`
	Content         string       `json:"content"`
	Timestamp       string       `json:"timestamp,omitempty"`
	EditedTimestamp string       `json:"edited_timestamp,omitempty"`
	TTS             bool         `json:"tts,omitempty"`
	MentionEveryone bool         `json:"mention_everyone,omitempty"`
	Mentions        []*User      `json:"mentions,omitempty"`
	MentionRoles    []Snowflake  `json:"mention_roles,omitempty"`
	Attachments     []Attachment `json:"attachments,omitempty"`
	Embeds          []Embed      `json:"embeds,omitempty"`
	Reactions       []Reaction   `json:"reactions,omitempty"`
	Nonce           string       `json:"nonce,omitempty"`
	Pinned          bool         `json:"pinned,omitempty"`
	WebhookID       Snowflake    `json:"webhook_id,omitempty"`
	Type            int          `json:"type"`
	Flags           int          `json:"flags,omitempty"`
	GuildID         Snowflake    `json:"guild_id,omitempty"`
	Member          *GuildMember `json:"member,omitempty"`
	Reference       *MessageRef  `json:"message_reference,omitempty"`
}

type MessageRef struct {
	MessageID Snowflake `json:"message_id,omitempty"`
	ChannelID Snowflake `json:"channel_id,omitempty"`
	GuildID   Snowflake `json:"guild_id,omitempty"`
}

type Attachment struct {
	ID          Snowflake `json:"id"`
	Filename    string    `json:"filename"`
	Description string    `json:"description,omitempty"`
	ContentType string    `json:"content_type,omitempty"`
	Size        int       `json:"size"`
	URL         string    `json:"url"`
	ProxyURL    string    `json:"proxy_url,omitempty"`
	Height      int       `json:"height,omitempty"`
	Width       int       `json:"width,omitempty"`
}

type Embed struct {
	Title       string      `json:"title,omitempty"`
	Type        string      `json:"type,omitempty"`
	Description string      `json:"description,omitempty"`
	URL         string      `json:"url,omitempty"`
	Timestamp   string      `json:"timestamp,omitempty"`
	Color       int         `json:"color,omitempty"`
	Footer      *EmbedField `json:"footer,omitempty"`
	Fields      []EmbedItem `json:"fields,omitempty"`
}

type EmbedField struct {
	Text    string `json:"text,omitempty"`
	IconURL string `json:"icon_url,omitempty"`
}

type EmbedItem struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type Emoji struct {
	ID       Snowflake `json:"id,omitempty"`
	Name     string    `json:"name"`
	Animated bool      `json:"animated,omitempty"`
	Managed  bool      `json:"managed,omitempty"`
}

// APIName renders the emoji the way reaction endpoints address it: custom
// emoji as name:id, unicode emoji as the raw character sequence.
func (e Emoji) APIName() string {
	if !e.ID.IsZero() {
		return e.Name + ":" + e.ID.String()
	}
	return e.Name
}

// PathSegment is APIName percent-encoded for use in a reaction route.
func (e Emoji) PathSegment() string {
	return url.PathEscape(e.APIName())
}

type Reaction struct {
	Count int   `json:"count"`
	Me    bool  `json:"me"`
	Emoji Emoji `json:"emoji"`
}
