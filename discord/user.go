package discord

import "github.com/WelcomerTeam/Discord/internal/jsonx"

// user.go represents all structures for a discord user.

// UserFlags represents the flags on a user's account.
type UserFlags uint32

// User flags.
const (
	UserFlagsDiscordEmployee      UserFlags = 1 << 0
	UserFlagsPartneredServerOwner UserFlags = 1 << 1
	UserFlagsHypeSquadEvents      UserFlags = 1 << 2
	UserFlagsBugHunterLevel1      UserFlags = 1 << 3
	UserFlagsHouseBravery         UserFlags = 1 << 6
	UserFlagsHouseBrilliance      UserFlags = 1 << 7
	UserFlagsHouseBalance         UserFlags = 1 << 8
	UserFlagsEarlySupporter       UserFlags = 1 << 9
	UserFlagsTeamUser             UserFlags = 1 << 10
	UserFlagsBugHunterLevel2      UserFlags = 1 << 14
	UserFlagsVerifiedBot          UserFlags = 1 << 16
	UserFlagsVerifiedDeveloper    UserFlags = 1 << 17
	UserFlagsCertifiedModerator   UserFlags = 1 << 18
	UserFlagsBotHTTPInteractions  UserFlags = 1 << 19
	UserFlagsActiveDeveloper      UserFlags = 1 << 22
)

var userFlags = []UserFlags{
	UserFlagsDiscordEmployee,
	UserFlagsPartneredServerOwner,
	UserFlagsHypeSquadEvents,
	UserFlagsBugHunterLevel1,
	UserFlagsHouseBravery,
	UserFlagsHouseBrilliance,
	UserFlagsHouseBalance,
	UserFlagsEarlySupporter,
	UserFlagsTeamUser,
	UserFlagsBugHunterLevel2,
	UserFlagsVerifiedBot,
	UserFlagsVerifiedDeveloper,
	UserFlagsCertifiedModerator,
	UserFlagsBotHTTPInteractions,
	UserFlagsActiveDeveloper,
}

// Flags splits the raw flags into the known user flags.
func (f UserFlags) Flags() []UserFlags {
	return decodeFlags(uint64(f), userFlags)
}

// User represents a user on discord.
type User struct {
	Avatar        *string   `json:"avatar"`
	Banner        string    `json:"banner,omitempty"`
	GlobalName    string    `json:"global_name"`
	Username      string    `json:"username"`
	Discriminator string    `json:"discriminator"`
	ID            Snowflake `json:"id"`
	Flags         UserFlags `json:"flags"`
	PublicFlags   UserFlags `json:"public_flags"`
	Bot           bool      `json:"bot"`
	System        bool      `json:"system"`
}

// Used to avoid a marshal loop.
type marshalUser User

func (u User) MarshalJSON() ([]byte, error) {
	// Patch for discriminator
	if u.Discriminator == "" {
		u.Discriminator = "0"
	}

	return jsonx.Marshal(marshalUser(u))
}

// AvatarURL returns the user's avatar, or an empty string if they use the default avatar.
func (u User) AvatarURL() string {
	if u.Avatar == nil {
		return ""
	}

	return animatedCDNURL(UserAvatarTemplate, u.ID, *u.Avatar)
}

// Mention returns the mention string for the user.
func (u User) Mention() string {
	return "<@" + u.ID.String() + ">"
}
