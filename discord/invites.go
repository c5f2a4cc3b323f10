package discord

import "context"

// invites.go contains all structures for invites.

// InviteTargetType represents the type of an invites target.
type InviteTargetType int

const (
	InviteTargetTypeStream              InviteTargetType = 1
	InviteTargetTypeEmbeddedApplication InviteTargetType = 2
)

// Invite represents the structure of Invite data.
type Invite struct {
	ExpiresAt                *Timestamp        `json:"expires_at,omitempty"`
	CreatedAt                *Timestamp        `json:"created_at,omitempty"`
	ScheduledEvent           *ScheduledEvent   `json:"guild_scheduled_event,omitempty"`
	Inviter                  *User             `json:"inviter,omitempty"`
	TargetType               *InviteTargetType `json:"target_type,omitempty"`
	TargetUser               *User             `json:"target_user,omitempty"`
	TargetApplication        *Application      `json:"target_application,omitempty"`
	Guild                    *Guild            `json:"guild,omitempty"`
	Channel                  *Channel          `json:"channel,omitempty"`
	Code                     string            `json:"code"`
	ApproximateMemberCount   int32             `json:"approximate_member_count,omitempty"`
	ApproximatePresenceCount int32             `json:"approximate_presence_count,omitempty"`
	Uses                     int32             `json:"uses"`
	MaxUses                  int32             `json:"max_uses"`
	MaxAge                   int32             `json:"max_age"`
	Temporary                bool              `json:"temporary"`
}

// URL returns the invite link.
func (i Invite) URL() string {
	return EndpointInvite + i.Code
}

// VanityInvite is the custom invite of a guild with the VANITY_URL feature.
type VanityInvite struct {
	Code string `json:"code"`
	Uses int32  `json:"uses"`
}

// URL returns the invite link, or an empty string when the guild has no vanity code.
func (v VanityInvite) URL() string {
	if v.Code == "" {
		return ""
	}

	return EndpointInvite + v.Code
}

func (v VanityInvite) Equal(other VanityInvite) bool {
	return v == other
}

func (v VanityInvite) String() string {
	return "VanityInvite(" + v.Code + ")"
}

// RetrieveVanityInvite fetches the vanity invite of a guild by ID, without a cached guild.
func RetrieveVanityInvite(ctx context.Context, s *Session, guildID Snowflake) (*RestAction[VanityInvite], error) {
	if s == nil {
		return nil, ErrNoExecutor
	}

	guild, ok := lookupGuild(ctx, s.State, guildID)
	if !ok {
		guild = Guild{ID: guildID}
	}

	return guild.RetrieveVanityInvite(ctx, s)
}
