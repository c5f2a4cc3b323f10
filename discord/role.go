package discord

import "context"

// role.go represents all structures for a discord guild role.

// Role represents a role on discord.
type Role struct {
	GuildID      *Snowflake `json:"guild_id,omitempty"`
	Tags         *RoleTag   `json:"tags,omitempty"`
	Name         string     `json:"name"`
	Icon         string     `json:"icon,omitempty"`
	UnicodeEmoji string     `json:"unicode_emoji,omitempty"`
	ID           Snowflake  `json:"id"`
	Permissions  Int64      `json:"permissions"`
	Color        int32      `json:"color"`
	Position     int32      `json:"position"`
	Hoist        bool       `json:"hoist"`
	Managed      bool       `json:"managed"`
	Mentionable  bool       `json:"mentionable"`
}

// RoleTag represents extra information about a role.
type RoleTag struct {
	BotID                 *Snowflake `json:"bot_id"`
	IntegrationID         *Snowflake `json:"integration_id"`
	PremiumSubscriber     *bool      `json:"premium_subscriber"`
	SubscriptionListingID *Snowflake `json:"subscription_listing_id"`
	AvailableForPurchase  *bool      `json:"available_for_purchase"`
	GuildConnections      *bool      `json:"guild_connections"`
}

// IsPublicRole reports whether this is the @everyone role of guildID.
func (r Role) IsPublicRole(guildID Snowflake) bool {
	return r.ID == guildID
}

// RoleIcon returns the icon descriptor of the role, or nil if it has none.
func (r Role) RoleIcon() *RoleIcon {
	if r.Icon == "" && r.UnicodeEmoji == "" {
		return nil
	}

	return NewRoleIcon(r.ID, r.Icon, r.UnicodeEmoji)
}

// Guild looks up the role's guild.
func (r Role) Guild(ctx context.Context, state StateProvider) (Guild, bool) {
	if r.GuildID == nil {
		return Guild{}, false
	}

	return lookupGuild(ctx, state, *r.GuildID)
}

// RoleIcon is the custom icon or unicode emoji displayed next to a role.
type RoleIcon struct {
	iconID string
	emoji  string
	roleID Snowflake
}

func NewRoleIcon(roleID Snowflake, iconID, emoji string) *RoleIcon {
	return &RoleIcon{
		iconID: iconID,
		emoji:  emoji,
		roleID: roleID,
	}
}

// IconID returns the icon hash, or an empty string for emoji icons.
func (ri *RoleIcon) IconID() string {
	return ri.iconID
}

// IconURL returns the icon url, or an empty string when the role has no custom icon.
func (ri *RoleIcon) IconURL() string {
	return cdnURL(RoleIconTemplate, ri.roleID, ri.iconID)
}

// Emoji returns the unicode emoji, or an empty string for custom icons.
func (ri *RoleIcon) Emoji() string {
	return ri.emoji
}

func (ri *RoleIcon) IsEmoji() bool {
	return ri.emoji != ""
}

func (ri *RoleIcon) Equal(other *RoleIcon) bool {
	if ri == nil || other == nil {
		return ri == other
	}

	return *ri == *other
}
