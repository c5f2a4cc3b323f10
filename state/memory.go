// Package state provides discord.StateProvider implementations backed by
// process memory or redis.
package state

import (
	"context"

	"github.com/WelcomerTeam/Discord/discord"
)

var _ discord.StateProvider = (*Memory)(nil)

// Memory stores guilds and their children in concurrent swiss maps.
// Roles and channels are stored apart from their guild and are joined back on read.
type Memory struct {
	Guilds Cache[discord.Snowflake, discord.Guild]

	GuildMembers DoubleCache[discord.Snowflake, discord.Snowflake, discord.GuildMember]

	GuildChannels DoubleCache[discord.Snowflake, discord.Snowflake, discord.Channel]

	GuildRoles DoubleCache[discord.Snowflake, discord.Snowflake, discord.Role]

	Users Cache[discord.Snowflake, discord.User]
}

func NewMemory() *Memory {
	return &Memory{
		Guilds: *NewCache[discord.Snowflake, discord.Guild](100),

		GuildMembers: *NewDoubleCache[discord.Snowflake, discord.Snowflake, discord.GuildMember](0, 50),

		GuildChannels: *NewDoubleCache[discord.Snowflake, discord.Snowflake, discord.Channel](0, 50),

		GuildRoles: *NewDoubleCache[discord.Snowflake, discord.Snowflake, discord.Role](0, 50),

		Users: *NewCache[discord.Snowflake, discord.User](100),
	}
}

// GetGuild returns the guild with its roles and channels.
func (m *Memory) GetGuild(_ context.Context, guildID discord.Snowflake) (guild discord.Guild, ok bool) {
	defer func() { observe(kindGuild, ok) }()

	guild, ok = m.Guilds.Load(guildID)
	if !ok {
		return
	}

	if roles, ok := m.GuildRoles.Values(guildID); ok {
		guild.Roles = roles
	}

	if channels, ok := m.GuildChannels.Values(guildID); ok {
		guild.Channels = channels
	}

	return guild, true
}

// SetGuild creates or updates a guild, its roles, channels and members.
func (m *Memory) SetGuild(guild discord.Guild) {
	for _, role := range guild.Roles {
		m.GuildRoles.Store(guild.ID, role.ID, role)
	}

	for _, channel := range guild.Channels {
		m.SetGuildChannel(guild.ID, channel)
	}

	// Clear out data that is stored elsewhere.
	guild.Roles = nil
	guild.Channels = nil
	guild.VoiceStates = nil

	m.Guilds.Store(guild.ID, guild)
}

// RemoveGuild removes a guild and everything stored under it.
func (m *Memory) RemoveGuild(guildID discord.Snowflake) {
	m.Guilds.Delete(guildID)
	m.GuildRoles.ClearKey(guildID)
	m.GuildChannels.ClearKey(guildID)
	m.GuildMembers.ClearKey(guildID)
}

// GetGuildChannel returns a channel of the guild.
func (m *Memory) GetGuildChannel(_ context.Context, guildID, channelID discord.Snowflake) (channel discord.Channel, ok bool) {
	channel, ok = m.GuildChannels.Load(guildID, channelID)
	observe(kindChannel, ok)

	return
}

func (m *Memory) SetGuildChannel(guildID discord.Snowflake, channel discord.Channel) {
	if channel.GuildID == nil {
		channel.GuildID = &guildID
	}

	m.GuildChannels.Store(guildID, channel.ID, channel)
}

func (m *Memory) RemoveGuildChannel(guildID, channelID discord.Snowflake) {
	m.GuildChannels.Delete(guildID, channelID)
}

// GetGuildMember returns a member with the user populated from the user cache.
func (m *Memory) GetGuildMember(_ context.Context, guildID, userID discord.Snowflake) (member discord.GuildMember, ok bool) {
	defer func() { observe(kindMember, ok) }()

	member, ok = m.GuildMembers.Load(guildID, userID)
	if !ok {
		return
	}

	if user, ok := m.Users.Load(userID); ok {
		member.User = &user
	}

	return member, true
}

// SetGuildMember creates or updates a member. The member's user is stored in the user cache.
func (m *Memory) SetGuildMember(guildID discord.Snowflake, member discord.GuildMember) {
	if member.User == nil {
		return
	}

	m.GuildMembers.Store(guildID, member.User.ID, member)
	m.SetUser(*member.User)
}

func (m *Memory) RemoveGuildMember(guildID, userID discord.Snowflake) {
	m.GuildMembers.Delete(guildID, userID)
}

func (m *Memory) GetGuildRole(_ context.Context, guildID, roleID discord.Snowflake) (role discord.Role, ok bool) {
	role, ok = m.GuildRoles.Load(guildID, roleID)
	observe(kindRole, ok)

	return
}

func (m *Memory) SetGuildRole(guildID discord.Snowflake, role discord.Role) {
	m.GuildRoles.Store(guildID, role.ID, role)
}

func (m *Memory) RemoveGuildRole(guildID, roleID discord.Snowflake) {
	m.GuildRoles.Delete(guildID, roleID)
}

func (m *Memory) GetUser(_ context.Context, userID discord.Snowflake) (user discord.User, ok bool) {
	user, ok = m.Users.Load(userID)
	observe(kindUser, ok)

	return
}

func (m *Memory) SetUser(user discord.User) {
	m.Users.Store(user.ID, user)
}

func (m *Memory) RemoveUser(userID discord.Snowflake) {
	m.Users.Delete(userID)
}
