package discord_test

import (
	"testing"
	"time"

	"github.com/WelcomerTeam/Discord/discord"
	"github.com/WelcomerTeam/Discord/internal/jsonx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnowflakeTime(t *testing.T) {
	t.Parallel()

	id := discord.MustParseSnowflake("175928847299117063")

	assert.Equal(t, int64(1462015105796), id.Time().UnixMilli())
	assert.Equal(t, time.Date(2016, time.April, 30, 11, 18, 25, 796000000, time.UTC), id.Time())
}

func TestSnowflakeTopBitRoundTrip(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"18446744073709551615", "9223372036854775808", "175928847299117063", "1"} {
		id, err := discord.ParseSnowflake(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, id.String())

		b, err := jsonx.Marshal(id)
		require.NoError(t, err)
		assert.Equal(t, `"`+raw+`"`, string(b))

		var decoded discord.Snowflake

		require.NoError(t, jsonx.Unmarshal(b, &decoded))
		assert.Equal(t, id, decoded)
	}
}

func TestParseSnowflakeInvalid(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "abc", "-1", "18446744073709551616"} {
		_, err := discord.ParseSnowflake(raw)
		assert.ErrorIs(t, err, discord.ErrInvalidSnowflake, raw)
	}
}

func TestSnowflakeUnmarshalForms(t *testing.T) {
	t.Parallel()

	var payload struct {
		Quoted discord.Snowflake  `json:"quoted"`
		Bare   discord.Snowflake  `json:"bare"`
		Null   discord.Snowflake  `json:"null"`
		Empty  discord.Snowflake  `json:"empty"`
		Ptr    *discord.Snowflake `json:"ptr"`
	}

	err := jsonx.Unmarshal([]byte(`{"quoted":"42","bare":43,"null":null,"empty":"","ptr":"44"}`), &payload)
	require.NoError(t, err)

	assert.Equal(t, discord.Snowflake(42), payload.Quoted)
	assert.Equal(t, discord.Snowflake(43), payload.Bare)
	assert.True(t, payload.Null.IsNil())
	assert.True(t, payload.Empty.IsNil())
	require.NotNil(t, payload.Ptr)
	assert.Equal(t, discord.Snowflake(44), *payload.Ptr)
}

func TestSnowflakeFromTime(t *testing.T) {
	t.Parallel()

	created := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	id := discord.SnowflakeFromTime(created)

	assert.Equal(t, created, id.Time())
	assert.True(t, discord.SnowflakeFromTime(time.Unix(0, 0)).IsNil())
}

func TestInt64StringOrNumber(t *testing.T) {
	t.Parallel()

	var values []discord.Int64

	require.NoError(t, jsonx.Unmarshal([]byte(`["8", 16]`), &values))
	assert.Equal(t, []discord.Int64{8, 16}, values)

	b, err := jsonx.Marshal(discord.Int64(2048))
	require.NoError(t, err)
	assert.Equal(t, `"2048"`, string(b))
}

func TestTimestamp(t *testing.T) {
	t.Parallel()

	ts := discord.Timestamp("2021-10-01T12:30:00+00:00")

	parsed, ok := ts.Time()
	require.True(t, ok)
	assert.Equal(t, time.Date(2021, time.October, 1, 12, 30, 0, 0, time.UTC), parsed.UTC())

	_, ok = discord.Timestamp("").Time()
	assert.False(t, ok)

	_, ok = discord.Timestamp("yesterday").Time()
	assert.False(t, ok)

	b, err := jsonx.Marshal(discord.Timestamp(""))
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))

	now := time.Date(2024, time.March, 3, 4, 5, 6, 0, time.UTC)
	roundTrip, ok := discord.NewTimestamp(now).Time()
	require.True(t, ok)
	assert.True(t, now.Equal(roundTrip))
}

func TestListMarshalsEmptyAsArray(t *testing.T) {
	t.Parallel()

	b, err := jsonx.Marshal(discord.SnowflakeList(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))

	b, err = jsonx.Marshal(discord.SnowflakeList{1, 2})
	require.NoError(t, err)
	assert.Equal(t, `["1","2"]`, string(b))
}
