package discord

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/WelcomerTeam/Discord/internal/jsonx"
	gotils_strconv "github.com/savsgio/gotils/strconv"
)

const (
	// DiscordCreation is the first millisecond of 2015. Snowflake timestamps count from here.
	DiscordCreation = 1420070400000

	snowflakeTimestampShift = 22
)

var null = []byte("null")

var ErrInvalidSnowflake = errors.New("invalid snowflake")

// Snowflake is a unique identifier. The upper 42 bits hold the milliseconds
// since DiscordCreation. Values use the full unsigned range.
type Snowflake uint64

// ParseSnowflake parses an unsigned decimal snowflake.
func ParseSnowflake(str string) (Snowflake, error) {
	if str == "" {
		return 0, fmt.Errorf("%w: empty string", ErrInvalidSnowflake)
	}

	i, err := strconv.ParseUint(str, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidSnowflake, err)
	}

	return Snowflake(i), nil
}

// MustParseSnowflake is like ParseSnowflake but panics on error.
func MustParseSnowflake(str string) Snowflake {
	s, err := ParseSnowflake(str)
	if err != nil {
		panic(err)
	}

	return s
}

// SnowflakeFromTime returns the lowest snowflake that could be created at t.
// Times before DiscordCreation return 0.
func SnowflakeFromTime(t time.Time) Snowflake {
	ms := t.UnixMilli() - DiscordCreation
	if ms < 0 {
		return 0
	}

	return Snowflake(uint64(ms) << snowflakeTimestampShift)
}

func (s Snowflake) IsNil() bool {
	return s == 0
}

func (s Snowflake) String() string {
	return strconv.FormatUint(uint64(s), 10)
}

// Time returns the creation time of the Snowflake.
func (s Snowflake) Time() time.Time {
	ms := int64(uint64(s)>>snowflakeTimestampShift) + DiscordCreation

	return time.UnixMilli(ms).UTC()
}

func toSnowflake(b []byte, s *Snowflake) error {
	if len(b) == 0 || bytes.Equal(b, null) {
		*s = 0

		return nil
	}

	if b[0] == '"' && len(b) >= 2 {
		b = b[1 : len(b)-1]
	}

	if len(b) == 0 {
		*s = 0

		return nil
	}

	i, err := strconv.ParseUint(gotils_strconv.B2S(b), 10, 64)
	if err != nil {
		return fmt.Errorf("failed to unmarshal json: %w", err)
	}

	*s = Snowflake(i)

	return nil
}

func (s *Snowflake) UnmarshalJSON(b []byte) error {
	return toSnowflake(b, s)
}

func (s Snowflake) MarshalJSON() ([]byte, error) {
	buf := make([]byte, 0, 22)

	buf = append(buf, '"')
	buf = strconv.AppendUint(buf, uint64(s), 10)
	buf = append(buf, '"')

	return buf, nil
}

// Int64 is an int64 that is sent as a string.
type Int64 int64

func (in *Int64) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, null) {
		return nil
	}

	if b[0] == '"' && len(b) >= 2 {
		b = b[1 : len(b)-1]
	}

	i, err := strconv.ParseInt(gotils_strconv.B2S(b), 10, 64)
	if err != nil {
		return fmt.Errorf("failed to unmarshal json: %w", err)
	}

	*in = Int64(i)

	return nil
}

func (in Int64) MarshalJSON() ([]byte, error) {
	buf := make([]byte, 0, 22)

	buf = append(buf, '"')
	buf = strconv.AppendInt(buf, int64(in), 10)
	buf = append(buf, '"')

	return buf, nil
}

func (in Int64) String() string {
	return strconv.FormatInt(int64(in), 10)
}

// Timestamp is an ISO8601 timestamp as sent by discord.
type Timestamp string

// Time parses the timestamp. An empty or corrupt timestamp returns false.
func (t Timestamp) Time() (time.Time, bool) {
	if t == "" {
		return time.Time{}, false
	}

	parsed, err := time.Parse(time.RFC3339, string(t))
	if err != nil {
		return time.Time{}, false
	}

	return parsed, true
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if _, ok := t.Time(); !ok {
		return null, nil
	}

	return jsonx.Marshal(string(t))
}

// NewTimestamp formats t as a Timestamp.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp(t.UTC().Format(time.RFC3339Nano))
}

// List marshals an empty list as [] instead of null.
type List[T any] []T

func (l List[T]) MarshalJSON() ([]byte, error) {
	if len(l) == 0 {
		return []byte("[]"), nil
	}

	return jsonx.Marshal([]T(l))
}

type (
	SnowflakeList        = List[Snowflake]
	StringList           = List[string]
	RoleList             = List[Role]
	ChannelList          = List[Channel]
	GuildMemberList      = List[GuildMember]
	VoiceStateList       = List[GuildVoiceState]
	PermissionOverwrites = List[PermissionOverwrite]
	ActivityList         = List[Activity]
	EmbedFieldList       = List[EmbedField]
	WidgetChannelList    = List[WidgetChannel]
	WidgetMemberList     = List[WidgetMember]
)
