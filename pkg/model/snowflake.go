package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// discordEpoch is the first second of 2015 in Unix milliseconds. Snowflake
// timestamps count milliseconds from this point.
const discordEpoch int64 = 1420070400000

// Snowflake is a Discord object ID. The API transmits IDs as JSON strings
// because they are 64-bit integers and would lose precision in
// implementations that back numbers with doubles, but some payloads
// (notably webhook shapes) carry them as numbers, so decoding accepts both.
type Snowflake string

func (s Snowflake) String() string {
	return string(s)
}

// IsZero reports whether the ID is absent.
func (s Snowflake) IsZero() bool {
	return s == ""
}

// Int64 parses the ID as an integer.
func (s Snowflake) Int64() (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty snowflake")
	}
	return strconv.ParseInt(string(s), 10, 64)
}

// Time extracts the creation timestamp encoded in the top 42 bits.
func (s Snowflake) Time() time.Time {
	id, err := s.Int64()
	if err != nil {
		return time.Time{}
	}
	ms := (id >> 22) + discordEpoch
	return time.UnixMilli(ms).UTC()
}

func (s Snowflake) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

func (s *Snowflake) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = Snowflake(str)
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("snowflake: cannot decode %s", string(data))
	}
	*s = Snowflake(strconv.FormatInt(n, 10))
	return nil
}
