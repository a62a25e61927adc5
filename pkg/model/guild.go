package model

type Guild struct {
	ID            Snowflake  `json:"id"`
	Name          string     `json:"name"`
	Icon          string     `json:"icon,omitempty"`
	Splash        string     `json:"splash,omitempty"`
	OwnerID       Snowflake  `json:"owner_id,omitempty"`
	AFKChannelID  Snowflake  `json:"afk_channel_id,omitempty"`
	AFKTimeout    int        `json:"afk_timeout,omitempty"`
	Roles         []*Role    `json:"roles,omitempty"`
	Emojis        []*Emoji   `json:"emojis,omitempty"`
	Features      []string   `json:"features,omitempty"`
	MFALevel      int        `json:"mfa_level,omitempty"`
	SystemChannel Snowflake  `json:"system_channel_id,omitempty"`
	MemberCount   int        `json:"member_count,omitempty"`
	Channels      []*Channel `json:"channels,omitempty"`
	Description   string     `json:"description,omitempty"`
	PremiumTier   int        `json:"premium_tier,omitempty"`
}

// PartialGuild is the trimmed shape returned by the current-user guild list.
type PartialGuild struct {
	ID          Snowflake `json:"id"`
	Name        string    `json:"name"`
	Icon        string    `json:"icon,omitempty"`
	Owner       bool      `json:"owner,omitempty"`
	Permissions string    `json:"permissions,omitempty"`
	Features    []string  `json:"features,omitempty"`
}

type Role struct {
	ID          Snowflake `json:"id"`
	Name        string    `json:"name"`
	Color       int       `json:"color"`
	Hoist       bool      `json:"hoist"`
	Position    int       `json:"position"`
	Permissions string    `json:"permissions"`
	Managed     bool      `json:"managed"`
	Mentionable bool      `json:"mentionable"`
}
