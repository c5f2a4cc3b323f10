package discord

import "context"

// PrivacyLevel is the privacy level of a stage instance or scheduled event.
type PrivacyLevel int

const (
	PrivacyLevelUnknown PrivacyLevel = -1
	// PrivacyLevelPublic is deprecated by discord and only appears on old stage instances.
	PrivacyLevelPublic    PrivacyLevel = 1
	PrivacyLevelGuildOnly PrivacyLevel = 2
)

var privacyLevels = []PrivacyLevel{PrivacyLevelPublic, PrivacyLevelGuildOnly}

// PrivacyLevelFromCode returns the privacy level for a wire code, or PrivacyLevelUnknown.
func PrivacyLevelFromCode(code int) PrivacyLevel {
	return fromCode(privacyLevels, PrivacyLevel(code), PrivacyLevelUnknown)
}

func (p *PrivacyLevel) UnmarshalJSON(b []byte) error {
	return unmarshalCode(b, p, PrivacyLevelFromCode)
}

func (p PrivacyLevel) String() string {
	switch p {
	case PrivacyLevelPublic:
		return "PUBLIC"
	case PrivacyLevelGuildOnly:
		return "GUILD_ONLY"
	default:
		return "UNKNOWN"
	}
}

const MaxStageTopicLength = 120

// StageInstance represents a live stage.
type StageInstance struct {
	GuildScheduledEventID *Snowflake   `json:"guild_scheduled_event_id,omitempty"`
	Topic                 string       `json:"topic"`
	ID                    Snowflake    `json:"id"`
	GuildID               Snowflake    `json:"guild_id"`
	ChannelID             Snowflake    `json:"channel_id"`
	PrivacyLevel          PrivacyLevel `json:"privacy_level"`
	DiscoverableDisabled  bool         `json:"discoverable_disabled"`
}

// IsDiscoverable is deprecated by discord and is always false for new stages.
func (si StageInstance) IsDiscoverable() bool {
	return !si.DiscoverableDisabled && si.PrivacyLevel == PrivacyLevelPublic
}

func (si StageInstance) Guild(ctx context.Context, state StateProvider) (Guild, bool) {
	return lookupGuild(ctx, state, si.GuildID)
}

// Channel looks up the stage channel the instance is live in.
func (si StageInstance) Channel(ctx context.Context, state StateProvider) (Channel, bool) {
	return lookupChannel(ctx, state, si.GuildID, si.ChannelID)
}

// StageInstanceParams represents the payload to modify a stage instance.
type StageInstanceParams struct {
	Topic        *string       `json:"topic,omitempty" validate:"omitempty,notblank,max=120"`
	PrivacyLevel *PrivacyLevel `json:"privacy_level,omitempty"`
}

// Modify updates the topic or privacy level. Requires the stage moderator permissions.
func (si StageInstance) Modify(ctx context.Context, s *Session, params StageInstanceParams) (*RestAction[StageInstance], error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	if params.PrivacyLevel != nil && fromCode(privacyLevels, *params.PrivacyLevel, PrivacyLevelUnknown) == PrivacyLevelUnknown {
		return nil, &ValidationError{Field: "privacy_level", Message: "is not a known privacy level"}
	}

	if err := s.checkPermission(ctx, si.GuildID, si.ChannelID, PermissionStageModerator); err != nil {
		return nil, err
	}

	route, err := RouteModifyStageInstance.Compile(si.ChannelID.String())
	if err != nil {
		return nil, err
	}

	return NewRestAction[StageInstance](s, route, params), nil
}

// Delete ends the stage. Requires the stage moderator permissions.
func (si StageInstance) Delete(ctx context.Context, s *Session) (*RestAction[struct{}], error) {
	if err := s.checkPermission(ctx, si.GuildID, si.ChannelID, PermissionStageModerator); err != nil {
		return nil, err
	}

	route, err := RouteDeleteStageInstance.Compile(si.ChannelID.String())
	if err != nil {
		return nil, err
	}

	return NewRestAction[struct{}](s, route, nil), nil
}
