package model

type ChannelType int

const (
	ChannelTypeGuildText         ChannelType = 0
	ChannelTypeDM                ChannelType = 1
	ChannelTypeGuildVoice        ChannelType = 2
	ChannelTypeGroupDM           ChannelType = 3
	ChannelTypeGuildCategory     ChannelType = 4
	ChannelTypeGuildAnnouncement ChannelType = 5
	ChannelTypeAnnouncementThrd  ChannelType = 10
	ChannelTypePublicThread      ChannelType = 11
	ChannelTypePrivateThread     ChannelType = 12
	ChannelTypeGuildStageVoice   ChannelType = 13
	ChannelTypeGuildForum        ChannelType = 15
)

// OverwriteType distinguishes the subject of a permission overwrite.
type OverwriteType int

const (
	OverwriteTypeRole   OverwriteType = 0
	OverwriteTypeMember OverwriteType = 1
)

type PermissionOverwrite struct {
	ID    Snowflake     `json:"id"`
	Type  OverwriteType `json:"type"`
	Allow string        `json:"allow"`
	Deny  string        `json:"deny"`
}

type Channel struct {
	ID               Snowflake             `json:"id"`
	Type             ChannelType           `json:"type"`
	GuildID          Snowflake             `json:"guild_id,omitempty"`
	Position         int                   `json:"position,omitempty"`
	Overwrites       []PermissionOverwrite `json:"permission_overwrites,omitempty"`
	Name             string                `json:"name,omitempty"`
	Topic            string                `json:"topic,omitempty"`
	NSFW             bool                  `json:"nsfw,omitempty"`
	LastMessageID    Snowflake             `json:"last_message_id,omitempty"`
	Bitrate          int                   `json:"bitrate,omitempty"`
	UserLimit        int                   `json:"user_limit,omitempty"`
	RateLimitPerUser int                   `json:"rate_limit_per_user,omitempty"`
	Recipients       []*User               `json:"recipients,omitempty"`
	Icon             string                `json:"icon,omitempty"`
	OwnerID          Snowflake             `json:"owner_id,omitempty"`
	ParentID         Snowflake             `json:"parent_id,omitempty"`
}

type Invite struct {
	Code      string   `json:"code"`
	Guild     *Guild   `json:"guild,omitempty"`
	Channel   *Channel `json:"channel,omitempty"`
	Inviter   *User    `json:"inviter,omitempty"`
	MaxAge    int      `json:"max_age,omitempty"`
	MaxUses   int      `json:"max_uses,omitempty"`
	Temporary bool     `json:"temporary,omitempty"`
	Uses      int      `json:"uses,omitempty"`
	CreatedAt string   `json:"created_at,omitempty"`
}
