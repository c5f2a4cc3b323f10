package discord

// application.go represents the application object.

// ApplicationTeamMemberState represents the state of a member in a team.
type ApplicationTeamMemberState int

const (
	ApplicationTeamMemberStateInvited  ApplicationTeamMemberState = 1
	ApplicationTeamMemberStateAccepted ApplicationTeamMemberState = 2
)

// Application represents a discord application, as sent with REST responses and rich messages.
type Application struct {
	Owner               *User            `json:"owner,omitempty"`
	Bot                 *User            `json:"bot,omitempty"`
	PrimarySKUID        *Snowflake       `json:"primary_sku_id,omitempty"`
	GuildID             *Snowflake       `json:"guild_id,omitempty"`
	Team                *ApplicationTeam `json:"team,omitempty"`
	Icon                *string          `json:"icon,omitempty"`
	CoverImage          *string          `json:"cover_image,omitempty"`
	PrivacyPolicyURL    string           `json:"privacy_policy_url,omitempty"`
	TermsOfServiceURL   string           `json:"terms_of_service_url,omitempty"`
	VerifyKey           string           `json:"verify_key,omitempty"`
	Description         string           `json:"description"`
	Name                string           `json:"name"`
	RPCOrigins          StringList       `json:"rpc_origins,omitempty"`
	ID                  Snowflake        `json:"id"`
	Flags               int32            `json:"flags,omitempty"`
	BotRequireCodeGrant bool             `json:"bot_require_code_grant"`
	BotPublic           bool             `json:"bot_public"`
}

// IconURL returns the application's icon, or an empty string if it has none.
func (a Application) IconURL() string {
	if a.Icon == nil {
		return ""
	}

	return cdnURL(ApplicationIconTemplate, a.ID, *a.Icon)
}

// CoverURL returns the rich presence invite cover, or an empty string if it has none.
func (a Application) CoverURL() string {
	if a.CoverImage == nil {
		return ""
	}

	return cdnURL(ApplicationIconTemplate, a.ID, *a.CoverImage)
}

// Equal compares applications by ID.
func (a Application) Equal(other Application) bool {
	return a.ID == other.ID
}

// ApplicationTeam represents the team of an application.
type ApplicationTeam struct {
	Icon        string                  `json:"icon,omitempty"`
	Name        string                  `json:"name"`
	Members     []ApplicationTeamMember `json:"members"`
	ID          Snowflake               `json:"id"`
	OwnerUserID Snowflake               `json:"owner_user_id"`
}

// ApplicationTeamMember represents a member of a team.
type ApplicationTeamMember struct {
	Role            string                     `json:"role,omitempty"`
	User            User                       `json:"user"`
	TeamID          Snowflake                  `json:"team_id"`
	MembershipState ApplicationTeamMemberState `json:"membership_state"`
}
