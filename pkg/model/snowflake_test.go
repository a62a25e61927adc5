package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnowflake_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Snowflake
	}{
		{
			name:     "string ID",
			input:    `"175928847299117063"`,
			expected: "175928847299117063",
		},
		{
			name:     "numeric ID",
			input:    `175928847299117063`,
			expected: "175928847299117063",
		},
		{
			name:     "null",
			input:    `null`,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Snowflake
			require.NoError(t, json.Unmarshal([]byte(tt.input), &s))
			assert.Equal(t, tt.expected, s)
		})
	}

	var s Snowflake
	require.Error(t, json.Unmarshal([]byte(`{"not":"an id"}`), &s))
}

func TestSnowflake_MarshalJSON(t *testing.T) {
	raw, err := json.Marshal(Snowflake("175928847299117063"))
	require.NoError(t, err)
	assert.Equal(t, `"175928847299117063"`, string(raw))
}

func TestSnowflake_Time(t *testing.T) {
	// Worked example from the Discord developer docs.
	s := Snowflake("175928847299117063")
	assert.Equal(t, time.Date(2016, 4, 30, 11, 18, 25, int(796*time.Millisecond), time.UTC), s.Time())

	assert.True(t, Snowflake("").Time().IsZero())
	assert.True(t, Snowflake("notanumber").Time().IsZero())
}

func TestSnowflake_IsZero(t *testing.T) {
	assert.True(t, Snowflake("").IsZero())
	assert.False(t, Snowflake("1").IsZero())
}

func TestEmoji_APIName(t *testing.T) {
	tests := []struct {
		name     string
		emoji    Emoji
		expected string
	}{
		{
			name:     "unicode emoji",
			emoji:    Emoji{Name: "\U0001F44D"},
			expected: "\U0001F44D",
		},
		{
			name:     "custom emoji",
			emoji:    Emoji{Name: "blobwave", ID: "123456789012345678"},
			expected: "blobwave:123456789012345678",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.emoji.APIName())
		})
	}
}

func TestEmoji_PathSegment(t *testing.T) {
	e := Emoji{Name: "\U0001F44D"}
	assert.Equal(t, "%F0%9F%91%8D", e.PathSegment())

	custom := Emoji{Name: "blobwave", ID: "123"}
	assert.Equal(t, "blobwave:123", custom.PathSegment())
}

func TestUser_Tag(t *testing.T) {
	assert.Equal(t, "legacy#1234", (&User{Username: "legacy", Discriminator: "1234"}).Tag())
	assert.Equal(t, "migrated", (&User{Username: "migrated", Discriminator: "0"}).Tag())
}
