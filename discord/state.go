package discord

import "context"

// StateProvider resolves cached entities by ID. A miss returns false and is not an error.
type StateProvider interface {
	GetGuild(ctx context.Context, guildID Snowflake) (Guild, bool)
	GetGuildChannel(ctx context.Context, guildID, channelID Snowflake) (Channel, bool)
	GetGuildMember(ctx context.Context, guildID, userID Snowflake) (GuildMember, bool)
	GetGuildRole(ctx context.Context, guildID, roleID Snowflake) (Role, bool)
	GetUser(ctx context.Context, userID Snowflake) (User, bool)
}

func lookupGuild(ctx context.Context, state StateProvider, guildID Snowflake) (Guild, bool) {
	if state == nil || guildID.IsNil() {
		return Guild{}, false
	}

	return state.GetGuild(ctx, guildID)
}

func lookupChannel(ctx context.Context, state StateProvider, guildID, channelID Snowflake) (Channel, bool) {
	if state == nil || channelID.IsNil() {
		return Channel{}, false
	}

	return state.GetGuildChannel(ctx, guildID, channelID)
}

func lookupMember(ctx context.Context, state StateProvider, guildID, userID Snowflake) (GuildMember, bool) {
	if state == nil || guildID.IsNil() || userID.IsNil() {
		return GuildMember{}, false
	}

	return state.GetGuildMember(ctx, guildID, userID)
}

func lookupRole(ctx context.Context, state StateProvider, guildID, roleID Snowflake) (Role, bool) {
	if state == nil || guildID.IsNil() || roleID.IsNil() {
		return Role{}, false
	}

	return state.GetGuildRole(ctx, guildID, roleID)
}

func lookupUser(ctx context.Context, state StateProvider, userID Snowflake) (User, bool) {
	if state == nil || userID.IsNil() {
		return User{}, false
	}

	return state.GetUser(ctx, userID)
}

// SelfPermissions returns the current user's permissions in a guild, or in a channel
// when channelID is set. It returns false when the cache cannot answer.
func (s *Session) SelfPermissions(ctx context.Context, guildID, channelID Snowflake) (Permission, bool) {
	if s == nil || s.State == nil || s.SelfUserID.IsNil() || guildID.IsNil() {
		return 0, false
	}

	guild, ok := s.State.GetGuild(ctx, guildID)
	if !ok {
		return 0, false
	}

	member, ok := s.State.GetGuildMember(ctx, guildID, s.SelfUserID)
	if !ok {
		return 0, false
	}

	if member.User == nil {
		member.User = &User{ID: s.SelfUserID}
	}

	base := ComputeBasePermissions(guild, member)

	if channelID.IsNil() {
		return base, true
	}

	channel, ok := s.State.GetGuildChannel(ctx, guildID, channelID)
	if !ok {
		return 0, false
	}

	return ComputeOverwrites(base, guild, member, channel), true
}

// checkPermission fails with *InsufficientPermissionError when the cache proves
// the current user lacks required. Unknown permissions are left for discord to decide.
func (s *Session) checkPermission(ctx context.Context, guildID, channelID Snowflake, required Permission) error {
	perms, ok := s.SelfPermissions(ctx, guildID, channelID)
	if !ok {
		return nil
	}

	if missing := perms.Missing(required); missing != 0 {
		s.Logger.Debug().
			Str("guild_id", guildID.String()).
			Str("channel_id", channelID.String()).
			Stringer("missing", missing).
			Msg("Refusing request without permission")

		return &InsufficientPermissionError{
			GuildID:   guildID,
			ChannelID: channelID,
			Missing:   missing,
		}
	}

	return nil
}
