package state

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/WelcomerTeam/Discord/discord"
	"github.com/WelcomerTeam/Discord/internal/jsonx"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
)

var _ discord.StateProvider = (*Redis)(nil)

// storeGuildMembers stores members and their users in one round trip.
// ARGV is a flat list of (user id, member json, user json) triples.
var storeGuildMembers = redis.NewScript(
	`
		local redisPrefix = KEYS[1]
		local guildID = KEYS[2]

		local call = redis.call

		for i = 1, #ARGV, 3 do
			call("HSET", redisPrefix .. ":guild:" .. guildID .. ":members", ARGV[i], ARGV[i + 1])
			call("HSET", redisPrefix .. ":user", ARGV[i], ARGV[i + 2])
		end

		return #ARGV / 3
	`)

// Redis stores state as JSON values in hashes:
//
//	{prefix}:guild                    guild id -> guild
//	{prefix}:guild:{id}:channels      channel id -> channel
//	{prefix}:guild:{id}:roles         role id -> role
//	{prefix}:guild:{id}:members       user id -> member
//	{prefix}:user                     user id -> user
//
// Lookups never fail. Errors other than a missing key are logged and reported as a miss.
type Redis struct {
	client redis.UniversalClient
	prefix string
	logger zerolog.Logger
}

func NewRedis(client redis.UniversalClient, prefix string, logger zerolog.Logger) *Redis {
	return &Redis{
		client: client,
		prefix: prefix,
		logger: logger.With().Str("state", "redis").Logger(),
	}
}

func (r *Redis) key(parts ...string) string {
	return r.prefix + ":" + strings.Join(parts, ":")
}

func (r *Redis) guildKey(guildID discord.Snowflake, kind string) string {
	return r.key("guild", guildID.String(), kind)
}

// load decodes the hash field into value. It returns false on a miss or error.
func load[T any](ctx context.Context, r *Redis, key, field string) (value T, ok bool) {
	b, err := r.client.HGet(ctx, key, field).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Warn().Err(err).Str("key", key).Str("field", field).Msg("Failed to read state")
		}

		return value, false
	}

	if err := jsonx.Unmarshal(b, &value); err != nil {
		r.logger.Warn().Err(err).Str("key", key).Str("field", field).Msg("Failed to decode state")

		return value, false
	}

	return value, true
}

func loadAll[T any](ctx context.Context, r *Redis, key string) []T {
	values, err := r.client.HVals(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Warn().Err(err).Str("key", key).Msg("Failed to read state")
		}

		return nil
	}

	decoded := make([]T, 0, len(values))

	for _, value := range values {
		var v T

		if err := jsonx.Unmarshal([]byte(value), &v); err != nil {
			r.logger.Warn().Err(err).Str("key", key).Msg("Failed to decode state")

			continue
		}

		decoded = append(decoded, v)
	}

	return decoded
}

func encodeFields[T any](values []T, id func(T) discord.Snowflake) (map[string]any, error) {
	fields := make(map[string]any, len(values))

	for _, value := range values {
		b, err := jsonx.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal state: %w", err)
		}

		fields[id(value).String()] = b
	}

	return fields, nil
}

func (r *Redis) GetGuild(ctx context.Context, guildID discord.Snowflake) (guild discord.Guild, ok bool) {
	defer func() { observe(kindGuild, ok) }()

	guild, ok = load[discord.Guild](ctx, r, r.key("guild"), guildID.String())
	if !ok {
		return
	}

	guild.Roles = loadAll[discord.Role](ctx, r, r.guildKey(guildID, "roles"))
	guild.Channels = loadAll[discord.Channel](ctx, r, r.guildKey(guildID, "channels"))

	return guild, true
}

// SetGuild stores the guild, its roles and its channels in a single transaction.
func (r *Redis) SetGuild(ctx context.Context, guild discord.Guild) error {
	roles, err := encodeFields(guild.Roles, func(role discord.Role) discord.Snowflake { return role.ID })
	if err != nil {
		return err
	}

	guildChannels := make([]discord.Channel, len(guild.Channels))

	for i, channel := range guild.Channels {
		if channel.GuildID == nil {
			channel.GuildID = &guild.ID
		}

		guildChannels[i] = channel
	}

	channels, err := encodeFields(guildChannels, func(channel discord.Channel) discord.Snowflake { return channel.ID })
	if err != nil {
		return err
	}

	guild.Roles = nil
	guild.Channels = nil
	guild.VoiceStates = nil

	b, err := jsonx.Marshal(guild)
	if err != nil {
		return fmt.Errorf("failed to marshal guild: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, r.key("guild"), guild.ID.String(), b)

		if len(roles) > 0 {
			pipe.HSet(ctx, r.guildKey(guild.ID, "roles"), roles)
		}

		if len(channels) > 0 {
			pipe.HSet(ctx, r.guildKey(guild.ID, "channels"), channels)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store guild: %w", err)
	}

	return nil
}

// RemoveGuild removes the guild and the hashes stored under it. Users are kept.
func (r *Redis) RemoveGuild(ctx context.Context, guildID discord.Snowflake) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HDel(ctx, r.key("guild"), guildID.String())
		pipe.Del(ctx,
			r.guildKey(guildID, "roles"),
			r.guildKey(guildID, "channels"),
			r.guildKey(guildID, "members"),
		)

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to remove guild: %w", err)
	}

	return nil
}

func (r *Redis) GetGuildChannel(ctx context.Context, guildID, channelID discord.Snowflake) (channel discord.Channel, ok bool) {
	channel, ok = load[discord.Channel](ctx, r, r.guildKey(guildID, "channels"), channelID.String())
	observe(kindChannel, ok)

	return
}

func (r *Redis) GetGuildRole(ctx context.Context, guildID, roleID discord.Snowflake) (role discord.Role, ok bool) {
	role, ok = load[discord.Role](ctx, r, r.guildKey(guildID, "roles"), roleID.String())
	observe(kindRole, ok)

	return
}

// GetGuildMember returns a member with the user populated from the user hash.
func (r *Redis) GetGuildMember(ctx context.Context, guildID, userID discord.Snowflake) (member discord.GuildMember, ok bool) {
	defer func() { observe(kindMember, ok) }()

	member, ok = load[discord.GuildMember](ctx, r, r.guildKey(guildID, "members"), userID.String())
	if !ok {
		return
	}

	if user, ok := load[discord.User](ctx, r, r.key("user"), userID.String()); ok {
		member.User = &user
	}

	return member, true
}

// SetGuildMembers stores members and their users. Members without a user are skipped.
func (r *Redis) SetGuildMembers(ctx context.Context, guildID discord.Snowflake, members ...discord.GuildMember) error {
	args := make([]any, 0, len(members)*3)

	for _, member := range members {
		if member.User == nil {
			continue
		}

		memberJSON, err := jsonx.Marshal(member)
		if err != nil {
			return fmt.Errorf("failed to marshal member: %w", err)
		}

		userJSON, err := jsonx.Marshal(member.User)
		if err != nil {
			return fmt.Errorf("failed to marshal user: %w", err)
		}

		args = append(args, member.User.ID.String(), memberJSON, userJSON)
	}

	if len(args) == 0 {
		return nil
	}

	if err := storeGuildMembers.Run(ctx, r.client, []string{r.prefix, guildID.String()}, args...).Err(); err != nil {
		return fmt.Errorf("failed to store members: %w", err)
	}

	r.logger.Debug().Str("guild_id", guildID.String()).Int("count", len(args)/3).Msg("Stored guild members")

	return nil
}

func (r *Redis) GetUser(ctx context.Context, userID discord.Snowflake) (user discord.User, ok bool) {
	user, ok = load[discord.User](ctx, r, r.key("user"), userID.String())
	observe(kindUser, ok)

	return
}
