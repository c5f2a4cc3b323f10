package state_test

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/WelcomerTeam/Discord/discord"
	"github.com/WelcomerTeam/Discord/state"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRedis connects to DISCORD_TEST_REDIS_ADDR and namespaces keys per test.
func newTestRedis(t *testing.T) (*state.Redis, *redis.Client, string) {
	t.Helper()

	addr := os.Getenv("DISCORD_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("DISCORD_TEST_REDIS_ADDR is not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, client.Ping(ctx).Err())

	prefix := "discordtest" + strconv.FormatInt(time.Now().UnixNano(), 36)

	t.Cleanup(func() {
		keys, err := client.Keys(context.Background(), prefix+":*").Result()
		if err == nil && len(keys) > 0 {
			client.Del(context.Background(), keys...)
		}
	})

	return state.NewRedis(client, prefix, zerolog.Nop()), client, prefix
}

func TestRedisGuild(t *testing.T) {
	ctx := context.Background()
	store, client, prefix := newTestRedis(t)

	require.NoError(t, store.SetGuild(ctx, testGuild(discord.PermissionViewChannel)))

	guild, ok := store.GetGuild(ctx, guildID)
	require.True(t, ok)
	assert.Equal(t, "Welcomer", guild.Name)
	assert.Len(t, guild.Roles, 2)
	assert.Len(t, guild.Channels, 1)

	channel, ok := store.GetGuildChannel(ctx, guildID, channelID)
	require.True(t, ok)
	require.NotNil(t, channel.GuildID)
	assert.Equal(t, guildID, *channel.GuildID)

	role, ok := store.GetGuildRole(ctx, guildID, roleID)
	require.True(t, ok)
	assert.Equal(t, discord.Int64(discord.PermissionManageWebhooks), role.Permissions)

	exists, err := client.HExists(ctx, prefix+":guild:1000:roles", "4000").Result()
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, store.RemoveGuild(ctx, guildID))

	_, ok = store.GetGuild(ctx, guildID)
	assert.False(t, ok)

	_, ok = store.GetGuildRole(ctx, guildID, roleID)
	assert.False(t, ok)
}

func TestRedisMembers(t *testing.T) {
	ctx := context.Background()
	store, client, prefix := newTestRedis(t)

	require.NoError(t, store.SetGuildMembers(ctx, guildID,
		discord.GuildMember{User: &discord.User{ID: selfID, Username: "self"}, Nick: "nick"},
		discord.GuildMember{Nick: "no user"},
	))

	count, err := client.HLen(ctx, prefix+":guild:1000:members").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	member, ok := store.GetGuildMember(ctx, guildID, selfID)
	require.True(t, ok)
	assert.Equal(t, "nick", member.Nick)
	assert.Equal(t, "self", member.User.Username)

	user, ok := store.GetUser(ctx, selfID)
	require.True(t, ok)
	assert.Equal(t, selfID, user.ID)

	require.NoError(t, client.HSet(ctx, prefix+":user", "1", "not json").Err())

	_, ok = store.GetUser(ctx, discord.Snowflake(1))
	assert.False(t, ok, "corrupt values are a miss")

	require.NoError(t, store.SetGuildMembers(ctx, guildID))
}

func TestRedisUnreachable(t *testing.T) {
	t.Parallel()

	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	defer client.Close()

	store := state.NewRedis(client, "discordtest", zerolog.Nop())

	_, ok := store.GetGuild(context.Background(), guildID)
	assert.False(t, ok, "connection errors are reported as a miss")

	assert.Error(t, store.SetGuild(context.Background(), testGuild(0)))
}
