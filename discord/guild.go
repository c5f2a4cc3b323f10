package discord

import "context"

// guild.go contains the structures to represent a guild.

// MessageNotificationLevel represents a guild's message notification level.
type MessageNotificationLevel int

// Message notification levels.
const (
	MessageNotificationsAllMessages  MessageNotificationLevel = 0
	MessageNotificationsOnlyMentions MessageNotificationLevel = 1
)

// ExplicitContentFilterLevel represents a guild's explicit content filter level.
type ExplicitContentFilterLevel int

// Explicit content filter levels.
const (
	ExplicitContentFilterDisabled            ExplicitContentFilterLevel = 0
	ExplicitContentFilterMembersWithoutRoles ExplicitContentFilterLevel = 1
	ExplicitContentFilterAllMembers          ExplicitContentFilterLevel = 2
)

// MFALevel represents a guild's MFA level.
type MFALevel uint16

// MFA levels.
const (
	MFALevelNone     MFALevel = 0
	MFALevelElevated MFALevel = 1
)

// VerificationLevel represents a guild's verification level.
type VerificationLevel uint16

const (
	VerificationLevelNone     VerificationLevel = 0
	VerificationLevelLow      VerificationLevel = 1
	VerificationLevelMedium   VerificationLevel = 2
	VerificationLevelHigh     VerificationLevel = 3
	VerificationLevelVeryHigh VerificationLevel = 4
)

// PremiumTier represents the current boosting tier of a guild.
type PremiumTier uint16

const (
	PremiumTierNone PremiumTier = 0
	PremiumTier1    PremiumTier = 1
	PremiumTier2    PremiumTier = 2
	PremiumTier3    PremiumTier = 3
)

// Guild represents a guild on discord.
type Guild struct {
	Icon                        *string                    `json:"icon"`
	WidgetChannelID             *Snowflake                 `json:"widget_channel_id,omitempty"`
	SystemChannelID             *Snowflake                 `json:"system_channel_id,omitempty"`
	AFKChannelID                *Snowflake                 `json:"afk_channel_id,omitempty"`
	WidgetEnabled               *bool                      `json:"widget_enabled,omitempty"`
	Name                        string                     `json:"name"`
	Description                 string                     `json:"description"`
	PreferredLocale             string                     `json:"preferred_locale"`
	VanityURLCode               string                     `json:"vanity_url_code"`
	Banner                      string                     `json:"banner,omitempty"`
	Splash                      string                     `json:"splash,omitempty"`
	Features                    StringList                 `json:"features"`
	Roles                       RoleList                   `json:"roles"`
	VoiceStates                 VoiceStateList             `json:"voice_states"`
	Channels                    ChannelList                `json:"channels"`
	OwnerID                     Snowflake                  `json:"owner_id"`
	ID                          Snowflake                  `json:"id"`
	ExplicitContentFilter       ExplicitContentFilterLevel `json:"explicit_content_filter"`
	DefaultMessageNotifications MessageNotificationLevel   `json:"default_message_notifications"`
	MemberCount                 int32                      `json:"member_count"`
	AFKTimeout                  int32                      `json:"afk_timeout"`
	PremiumSubscriptionCount    int32                      `json:"premium_subscription_count"`
	PremiumTier                 PremiumTier                `json:"premium_tier"`
	VerificationLevel           VerificationLevel          `json:"verification_level"`
	MFALevel                    MFALevel                   `json:"mfa_level"`
	Unavailable                 bool                       `json:"unavailable"`
}

// IconURL returns the guild's icon, or an empty string if it has none.
func (g Guild) IconURL() string {
	if g.Icon == nil {
		return ""
	}

	return animatedCDNURL(GuildIconTemplate, g.ID, *g.Icon)
}

// PublicRole returns the @everyone role.
func (g Guild) PublicRole() (Role, bool) {
	for _, role := range g.Roles {
		if role.ID == g.ID {
			return role, true
		}
	}

	return Role{}, false
}

// HasFeature reports whether the guild has a feature such as "VANITY_URL".
func (g Guild) HasFeature(feature string) bool {
	for _, f := range g.Features {
		if f == feature {
			return true
		}
	}

	return false
}

// RetrieveVanityInvite fetches the guild's vanity invite. Requires MANAGE_GUILD.
func (g Guild) RetrieveVanityInvite(ctx context.Context, s *Session) (*RestAction[VanityInvite], error) {
	if !g.HasFeature("VANITY_URL") && len(g.Features) > 0 {
		return nil, ErrNoVanityURL
	}

	if err := s.checkPermission(ctx, g.ID, 0, PermissionManageServer); err != nil {
		return nil, err
	}

	route, err := RouteGetGuildVanityURL.Compile(g.ID.String())
	if err != nil {
		return nil, err
	}

	return NewRestAction[VanityInvite](s, route, nil), nil
}

// GuildMember represents a guild member on discord.
type GuildMember struct {
	User                       *User         `json:"user,omitempty"`
	GuildID                    *Snowflake    `json:"guild_id,omitempty"`
	CommunicationDisabledUntil *Timestamp    `json:"communication_disabled_until,omitempty"`
	Nick                       string        `json:"nick,omitempty"`
	Avatar                     string        `json:"avatar,omitempty"`
	JoinedAt                   Timestamp     `json:"joined_at,omitempty"`
	Roles                      SnowflakeList `json:"roles"`
	Permissions                Int64         `json:"permissions,omitempty"`
	Flags                      int           `json:"flags"`
	Deaf                       bool          `json:"deaf"`
	Mute                       bool          `json:"mute"`
	Pending                    bool          `json:"pending"`
}

// UserID returns the ID of the member's user, or 0 if the user was not sent.
func (m GuildMember) UserID() Snowflake {
	if m.User == nil {
		return 0
	}

	return m.User.ID
}

// HasRole reports whether the member has roleID.
func (m GuildMember) HasRole(roleID Snowflake) bool {
	for _, id := range m.Roles {
		if id == roleID {
			return true
		}
	}

	return false
}
