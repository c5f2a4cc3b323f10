package discord

import (
	"strings"
)

// Permission is a bitwise permission value. A single permission occupies one bit;
// composites such as PermissionAllText are unions of several.
type Permission uint64

const (
	PermissionCreateInstantInvite              Permission = 1 << 0  // Allows creation of instant invites.
	PermissionKickMembers                      Permission = 1 << 1  // Allows kicking members.
	PermissionBanMembers                       Permission = 1 << 2  // Allows banning members.
	PermissionAdministrator                    Permission = 1 << 3  // Allows all permissions and bypasses channel permission overwrites.
	PermissionManageChannels                   Permission = 1 << 4  // Allows management and editing of channels.
	PermissionManageServer                     Permission = 1 << 5  // Allows management and editing of the guild.
	PermissionAddReactions                     Permission = 1 << 6  // Allows for the addition of reactions to messages.
	PermissionViewAuditLogs                    Permission = 1 << 7  // Allows for viewing of audit logs.
	PermissionVoicePrioritySpeaker             Permission = 1 << 8  // Allows for using priority speaker in a voice channel.
	PermissionVoiceStreamVideo                 Permission = 1 << 9  // Allows the user to go live.
	PermissionViewChannel                      Permission = 1 << 10 // Allows guild members to view a channel.
	PermissionSendMessages                     Permission = 1 << 11 // Allows for sending messages in a channel and creating threads in a forum.
	PermissionSendTTSMessages                  Permission = 1 << 12 // Allows for sending of /tts messages.
	PermissionManageMessages                   Permission = 1 << 13 // Allows for deletion of other users messages.
	PermissionEmbedLinks                       Permission = 1 << 14 // Links sent by users with this permission will be auto-embedded.
	PermissionAttachFiles                      Permission = 1 << 15 // Allows for uploading images and files.
	PermissionReadMessageHistory               Permission = 1 << 16 // Allows for reading of message history.
	PermissionMentionEveryone                  Permission = 1 << 17 // Allows for using the @everyone and @here tags.
	PermissionUseExternalEmojis                Permission = 1 << 18 // Allows the usage of custom emojis from other servers.
	PermissionViewGuildInsights                Permission = 1 << 19 // Allows for viewing guild insights.
	PermissionVoiceConnect                     Permission = 1 << 20 // Allows for joining of a voice channel.
	PermissionVoiceSpeak                       Permission = 1 << 21 // Allows for speaking in a voice channel.
	PermissionVoiceMuteMembers                 Permission = 1 << 22 // Allows for muting members in a voice channel.
	PermissionVoiceDeafenMembers               Permission = 1 << 23 // Allows for deafening of members in a voice channel.
	PermissionVoiceMoveMembers                 Permission = 1 << 24 // Allows for moving of members between voice channels.
	PermissionVoiceUseVAD                      Permission = 1 << 25 // Allows for using voice-activity-detection in a voice channel.
	PermissionChangeNickname                   Permission = 1 << 26 // Allows for modification of own nickname.
	PermissionManageNicknames                  Permission = 1 << 27 // Allows for modification of other users nicknames.
	PermissionManageRoles                      Permission = 1 << 28 // Allows management and editing of roles.
	PermissionManageWebhooks                   Permission = 1 << 29 // Allows management and editing of webhooks.
	PermissionManageEmojis                     Permission = 1 << 30 // Allows management and editing of emojis and stickers.
	PermissionUseSlashCommands                 Permission = 1 << 31 // Allows members to use application commands.
	PermissionVoiceRequestToSpeak              Permission = 1 << 32 // Allows for requesting to speak in stage channels.
	PermissionManageEvents                     Permission = 1 << 33 // Allows for creating, editing, and deleting scheduled events.
	PermissionManageThreads                    Permission = 1 << 34 // Allows for deleting and archiving threads, and viewing all private threads.
	PermissionCreatePublicThreads              Permission = 1 << 35 // Allows for creating public and announcement threads.
	PermissionCreatePrivateThreads             Permission = 1 << 36 // Allows for creating private threads.
	PermissionUseExternalStickers              Permission = 1 << 37 // Allows the usage of custom stickers from other servers.
	PermissionSendMessagesInThreads            Permission = 1 << 38 // Allows for sending messages in threads.
	PermissionUseActivities                    Permission = 1 << 39 // Allows for using Activities in a voice channel.
	PermissionModerateMembers                  Permission = 1 << 40 // Allows for timing out users.
	PermissionViewCreatorMonetizationAnalytics Permission = 1 << 41 // Allows for viewing role subscription insights.
	PermissionUseSoundboard                    Permission = 1 << 42 // Allows for using soundboard in a voice channel.
	PermissionCreateGuildExpressions           Permission = 1 << 43 // Allows for creating emojis, stickers, and soundboard sounds.
	PermissionCreateEvents                     Permission = 1 << 44 // Allows for creating scheduled events.
	PermissionUseExternalSounds                Permission = 1 << 45 // Allows the usage of custom soundboard sounds from other servers.
	PermissionSendVoiceMessages                Permission = 1 << 46 // Allows sending voice messages.

	PermissionAllText = PermissionViewChannel |
		PermissionSendMessages |
		PermissionSendTTSMessages |
		PermissionManageMessages |
		PermissionEmbedLinks |
		PermissionAttachFiles |
		PermissionReadMessageHistory |
		PermissionMentionEveryone

	PermissionAllVoice = PermissionViewChannel |
		PermissionVoiceConnect |
		PermissionVoiceSpeak |
		PermissionVoiceMuteMembers |
		PermissionVoiceDeafenMembers |
		PermissionVoiceMoveMembers |
		PermissionVoiceUseVAD |
		PermissionVoicePrioritySpeaker

	PermissionAllChannel = PermissionAllText |
		PermissionAllVoice |
		PermissionCreateInstantInvite |
		PermissionManageRoles |
		PermissionManageChannels |
		PermissionAddReactions |
		PermissionViewAuditLogs

	PermissionElevated = PermissionKickMembers |
		PermissionBanMembers |
		PermissionAdministrator |
		PermissionManageChannels |
		PermissionManageServer |
		PermissionManageMessages |
		PermissionManageRoles |
		PermissionManageWebhooks |
		PermissionManageEmojis |
		PermissionManageThreads |
		PermissionModerateMembers

	// PermissionStageModerator is what the client requires to manage a stage.
	PermissionStageModerator = PermissionManageChannels |
		PermissionVoiceMuteMembers |
		PermissionVoiceMoveMembers
)

var permissions = []Permission{
	PermissionCreateInstantInvite,
	PermissionKickMembers,
	PermissionBanMembers,
	PermissionAdministrator,
	PermissionManageChannels,
	PermissionManageServer,
	PermissionAddReactions,
	PermissionViewAuditLogs,
	PermissionVoicePrioritySpeaker,
	PermissionVoiceStreamVideo,
	PermissionViewChannel,
	PermissionSendMessages,
	PermissionSendTTSMessages,
	PermissionManageMessages,
	PermissionEmbedLinks,
	PermissionAttachFiles,
	PermissionReadMessageHistory,
	PermissionMentionEveryone,
	PermissionUseExternalEmojis,
	PermissionViewGuildInsights,
	PermissionVoiceConnect,
	PermissionVoiceSpeak,
	PermissionVoiceMuteMembers,
	PermissionVoiceDeafenMembers,
	PermissionVoiceMoveMembers,
	PermissionVoiceUseVAD,
	PermissionChangeNickname,
	PermissionManageNicknames,
	PermissionManageRoles,
	PermissionManageWebhooks,
	PermissionManageEmojis,
	PermissionUseSlashCommands,
	PermissionVoiceRequestToSpeak,
	PermissionManageEvents,
	PermissionManageThreads,
	PermissionCreatePublicThreads,
	PermissionCreatePrivateThreads,
	PermissionUseExternalStickers,
	PermissionSendMessagesInThreads,
	PermissionUseActivities,
	PermissionModerateMembers,
	PermissionViewCreatorMonetizationAnalytics,
	PermissionUseSoundboard,
	PermissionCreateGuildExpressions,
	PermissionCreateEvents,
	PermissionUseExternalSounds,
	PermissionSendVoiceMessages,
}

var permissionNames = map[Permission]string{
	PermissionCreateInstantInvite:              "CREATE_INSTANT_INVITE",
	PermissionKickMembers:                      "KICK_MEMBERS",
	PermissionBanMembers:                       "BAN_MEMBERS",
	PermissionAdministrator:                    "ADMINISTRATOR",
	PermissionManageChannels:                   "MANAGE_CHANNELS",
	PermissionManageServer:                     "MANAGE_GUILD",
	PermissionAddReactions:                     "ADD_REACTIONS",
	PermissionViewAuditLogs:                    "VIEW_AUDIT_LOG",
	PermissionVoicePrioritySpeaker:             "PRIORITY_SPEAKER",
	PermissionVoiceStreamVideo:                 "STREAM",
	PermissionViewChannel:                      "VIEW_CHANNEL",
	PermissionSendMessages:                     "SEND_MESSAGES",
	PermissionSendTTSMessages:                  "SEND_TTS_MESSAGES",
	PermissionManageMessages:                   "MANAGE_MESSAGES",
	PermissionEmbedLinks:                       "EMBED_LINKS",
	PermissionAttachFiles:                      "ATTACH_FILES",
	PermissionReadMessageHistory:               "READ_MESSAGE_HISTORY",
	PermissionMentionEveryone:                  "MENTION_EVERYONE",
	PermissionUseExternalEmojis:                "USE_EXTERNAL_EMOJIS",
	PermissionViewGuildInsights:                "VIEW_GUILD_INSIGHTS",
	PermissionVoiceConnect:                     "CONNECT",
	PermissionVoiceSpeak:                       "SPEAK",
	PermissionVoiceMuteMembers:                 "MUTE_MEMBERS",
	PermissionVoiceDeafenMembers:               "DEAFEN_MEMBERS",
	PermissionVoiceMoveMembers:                 "MOVE_MEMBERS",
	PermissionVoiceUseVAD:                      "USE_VAD",
	PermissionChangeNickname:                   "CHANGE_NICKNAME",
	PermissionManageNicknames:                  "MANAGE_NICKNAMES",
	PermissionManageRoles:                      "MANAGE_ROLES",
	PermissionManageWebhooks:                   "MANAGE_WEBHOOKS",
	PermissionManageEmojis:                     "MANAGE_GUILD_EXPRESSIONS",
	PermissionUseSlashCommands:                 "USE_APPLICATION_COMMANDS",
	PermissionVoiceRequestToSpeak:              "REQUEST_TO_SPEAK",
	PermissionManageEvents:                     "MANAGE_EVENTS",
	PermissionManageThreads:                    "MANAGE_THREADS",
	PermissionCreatePublicThreads:              "CREATE_PUBLIC_THREADS",
	PermissionCreatePrivateThreads:             "CREATE_PRIVATE_THREADS",
	PermissionUseExternalStickers:              "USE_EXTERNAL_STICKERS",
	PermissionSendMessagesInThreads:            "SEND_MESSAGES_IN_THREADS",
	PermissionUseActivities:                    "USE_EMBEDDED_ACTIVITIES",
	PermissionModerateMembers:                  "MODERATE_MEMBERS",
	PermissionViewCreatorMonetizationAnalytics: "VIEW_CREATOR_MONETIZATION_ANALYTICS",
	PermissionUseSoundboard:                    "USE_SOUNDBOARD",
	PermissionCreateGuildExpressions:           "CREATE_GUILD_EXPRESSIONS",
	PermissionCreateEvents:                     "CREATE_EVENTS",
	PermissionUseExternalSounds:                "USE_EXTERNAL_SOUNDS",
	PermissionSendVoiceMessages:                "SEND_VOICE_MESSAGES",
}

// PermissionAll is every known permission.
var PermissionAll = Permission(encodeFlags(permissions))

// PermissionsFromRaw returns the known permissions set in raw.
func PermissionsFromRaw(raw uint64) []Permission {
	return decodeFlags(raw, permissions)
}

// PermissionsRaw returns the union of perms.
func PermissionsRaw(perms ...Permission) uint64 {
	return encodeFlags(perms)
}

// Has reports whether every bit of other is set in p.
func (p Permission) Has(other Permission) bool {
	return p&other == other
}

// Add returns p with perms set.
func (p Permission) Add(perms ...Permission) Permission {
	return p | Permission(encodeFlags(perms))
}

// Remove returns p with perms cleared.
func (p Permission) Remove(perms ...Permission) Permission {
	return p &^ Permission(encodeFlags(perms))
}

// Missing returns the bits of required that are not in p.
func (p Permission) Missing(required Permission) Permission {
	return required &^ p
}

// Offset returns the bit position of a single permission.
func (p Permission) Offset() int {
	return flagOffset(p)
}

// Permissions splits p into its individual known permissions.
func (p Permission) Permissions() []Permission {
	return PermissionsFromRaw(uint64(p))
}

func (p Permission) String() string {
	if name, ok := permissionNames[p]; ok {
		return name
	}

	perms := p.Permissions()
	if len(perms) == 0 {
		return "NONE"
	}

	names := make([]string, len(perms))
	for i, perm := range perms {
		names[i] = permissionNames[perm]
	}

	return strings.Join(names, "|")
}

// ComputeBasePermissions returns the guild level permissions of a member.
// The @everyone role shares its ID with the guild.
func ComputeBasePermissions(guild Guild, member GuildMember) Permission {
	if member.User != nil && guild.OwnerID == member.User.ID {
		return PermissionAll
	}

	var perms Permission

	roles := make(map[Snowflake]Role, len(guild.Roles))
	for _, role := range guild.Roles {
		roles[role.ID] = role
	}

	if everyone, ok := roles[guild.ID]; ok {
		perms = Permission(everyone.Permissions)
	}

	for _, roleID := range member.Roles {
		if role, ok := roles[roleID]; ok {
			perms |= Permission(role.Permissions)
		}
	}

	if perms.Has(PermissionAdministrator) {
		return PermissionAll
	}

	return perms
}

// ComputeOverwrites applies the permission overwrites of channel to the base
// permissions of member. Overwrites apply @everyone first, then all roles, then the member.
func ComputeOverwrites(base Permission, guild Guild, member GuildMember, channel Channel) Permission {
	if base.Has(PermissionAdministrator) {
		return PermissionAll
	}

	perms := base

	var memberID Snowflake
	if member.User != nil {
		memberID = member.User.ID
	}

	memberRoles := make(map[Snowflake]struct{}, len(member.Roles))
	for _, roleID := range member.Roles {
		memberRoles[roleID] = struct{}{}
	}

	var roleAllow, roleDeny Permission

	var memberOverwrite *PermissionOverwrite

	for i, overwrite := range channel.PermissionOverwrites {
		switch {
		case overwrite.Type == PermissionOverwriteTypeRole && overwrite.ID == guild.ID:
			perms &^= Permission(overwrite.Deny)
			perms |= Permission(overwrite.Allow)
		case overwrite.Type == PermissionOverwriteTypeRole:
			if _, ok := memberRoles[overwrite.ID]; ok {
				roleAllow |= Permission(overwrite.Allow)
				roleDeny |= Permission(overwrite.Deny)
			}
		case overwrite.Type == PermissionOverwriteTypeMember && overwrite.ID == memberID:
			memberOverwrite = &channel.PermissionOverwrites[i]
		}
	}

	perms &^= roleDeny
	perms |= roleAllow

	if memberOverwrite != nil {
		perms &^= Permission(memberOverwrite.Deny)
		perms |= Permission(memberOverwrite.Allow)
	}

	return perms
}
