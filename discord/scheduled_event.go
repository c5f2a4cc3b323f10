package discord

import (
	"context"
	"strconv"
	"time"
)

// ScheduledEventStatus represents the status of an event.
type ScheduledEventStatus int

const (
	ScheduledEventStatusUnknown   ScheduledEventStatus = -1
	ScheduledEventStatusScheduled ScheduledEventStatus = 1
	ScheduledEventStatusActive    ScheduledEventStatus = 2
	ScheduledEventStatusCompleted ScheduledEventStatus = 3
	ScheduledEventStatusCanceled  ScheduledEventStatus = 4
)

var scheduledEventStatuses = []ScheduledEventStatus{
	ScheduledEventStatusScheduled,
	ScheduledEventStatusActive,
	ScheduledEventStatusCompleted,
	ScheduledEventStatusCanceled,
}

func ScheduledEventStatusFromCode(code int) ScheduledEventStatus {
	return fromCode(scheduledEventStatuses, ScheduledEventStatus(code), ScheduledEventStatusUnknown)
}

func (s *ScheduledEventStatus) UnmarshalJSON(b []byte) error {
	return unmarshalCode(b, s, ScheduledEventStatusFromCode)
}

func (s ScheduledEventStatus) String() string {
	switch s {
	case ScheduledEventStatusScheduled:
		return "SCHEDULED"
	case ScheduledEventStatusActive:
		return "ACTIVE"
	case ScheduledEventStatusCompleted:
		return "COMPLETED"
	case ScheduledEventStatusCanceled:
		return "CANCELED"
	default:
		return "UNKNOWN"
	}
}

// ScheduledEventType represents where an event takes place.
type ScheduledEventType int

const (
	ScheduledEventTypeUnknown       ScheduledEventType = -1
	ScheduledEventTypeStageInstance ScheduledEventType = 1
	ScheduledEventTypeVoice         ScheduledEventType = 2
	ScheduledEventTypeExternal      ScheduledEventType = 3
)

var scheduledEventTypes = []ScheduledEventType{
	ScheduledEventTypeStageInstance,
	ScheduledEventTypeVoice,
	ScheduledEventTypeExternal,
}

func ScheduledEventTypeFromCode(code int) ScheduledEventType {
	return fromCode(scheduledEventTypes, ScheduledEventType(code), ScheduledEventTypeUnknown)
}

func (t *ScheduledEventType) UnmarshalJSON(b []byte) error {
	return unmarshalCode(b, t, ScheduledEventTypeFromCode)
}

// IsChannel reports whether events of this type take place in a guild channel.
func (t ScheduledEventType) IsChannel() bool {
	return t == ScheduledEventTypeStageInstance || t == ScheduledEventTypeVoice
}

const (
	MaxScheduledEventNameLength        = 100
	MaxScheduledEventDescriptionLength = 1000
	MaxScheduledEventLocationLength    = 100
)

// ScheduledEvent represents a scheduled event.
type ScheduledEvent struct {
	ChannelID          *Snowflake           `json:"channel_id,omitempty"`
	CreatorID          *Snowflake           `json:"creator_id,omitempty"`
	Creator            *User                `json:"creator,omitempty"`
	EntityMetadata     *EventMetadata       `json:"entity_metadata,omitempty"`
	EntityID           *Snowflake           `json:"entity_id,omitempty"`
	ScheduledEndTime   *Timestamp           `json:"scheduled_end_time"`
	Image              *string              `json:"image,omitempty"`
	ScheduledStartTime Timestamp            `json:"scheduled_start_time"`
	Description        string               `json:"description,omitempty"`
	Name               string               `json:"name"`
	ID                 Snowflake            `json:"id"`
	GuildID            Snowflake            `json:"guild_id"`
	UserCount          int32                `json:"user_count,omitempty"`
	Status             ScheduledEventStatus `json:"status"`
	EntityType         ScheduledEventType   `json:"entity_type"`
	PrivacyLevel       PrivacyLevel         `json:"privacy_level"`
}

// EventMetadata contains extra information about a scheduled event.
type EventMetadata struct {
	Location string `json:"location,omitempty"`
}

// ImageURL returns the cover image, or an empty string if the event has none.
func (se ScheduledEvent) ImageURL() string {
	if se.Image == nil {
		return ""
	}

	return cdnURL(ScheduledEventImageTemplate, se.ID, *se.Image)
}

// Location returns the channel ID for channel events and the external location otherwise.
func (se ScheduledEvent) Location() string {
	if se.EntityType.IsChannel() {
		if se.ChannelID == nil {
			return ""
		}

		return se.ChannelID.String()
	}

	if se.EntityMetadata == nil {
		return ""
	}

	return se.EntityMetadata.Location
}

func (se ScheduledEvent) StartTime() (time.Time, bool) {
	return se.ScheduledStartTime.Time()
}

// EndTime is only guaranteed for external events.
func (se ScheduledEvent) EndTime() (time.Time, bool) {
	if se.ScheduledEndTime == nil {
		return time.Time{}, false
	}

	return se.ScheduledEndTime.Time()
}

func (se ScheduledEvent) Guild(ctx context.Context, state StateProvider) (Guild, bool) {
	return lookupGuild(ctx, state, se.GuildID)
}

// Channel looks up the event's channel. External events have none.
func (se ScheduledEvent) Channel(ctx context.Context, state StateProvider) (Channel, bool) {
	if se.ChannelID == nil {
		return Channel{}, false
	}

	return lookupChannel(ctx, state, se.GuildID, *se.ChannelID)
}

// CreatorUser returns the user sent with the event, falling back to the cache.
// Events created before October 2021 have no creator.
func (se ScheduledEvent) CreatorUser(ctx context.Context, state StateProvider) (User, bool) {
	if se.Creator != nil {
		return *se.Creator, true
	}

	if se.CreatorID == nil {
		return User{}, false
	}

	return lookupUser(ctx, state, *se.CreatorID)
}

// Compare orders events by start time, then by ID.
func (se ScheduledEvent) Compare(other ScheduledEvent) int {
	a, _ := se.StartTime()
	b, _ := other.StartTime()

	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	case se.ID < other.ID:
		return -1
	case se.ID > other.ID:
		return 1
	default:
		return 0
	}
}

// ScheduledEventParams represents the payload to modify a scheduled event.
type ScheduledEventParams struct {
	ChannelID          *Snowflake            `json:"channel_id,omitempty"`
	EntityMetadata     *EventMetadata        `json:"entity_metadata,omitempty"`
	Name               *string               `json:"name,omitempty" validate:"omitempty,notblank,max=100"`
	Description        *string               `json:"description,omitempty" validate:"omitempty,max=1000"`
	ScheduledStartTime *Timestamp            `json:"scheduled_start_time,omitempty"`
	ScheduledEndTime   *Timestamp            `json:"scheduled_end_time,omitempty"`
	Image              *string               `json:"image,omitempty"`
	PrivacyLevel       *PrivacyLevel         `json:"privacy_level,omitempty"`
	EntityType         *ScheduledEventType   `json:"entity_type,omitempty"`
	Status             *ScheduledEventStatus `json:"status,omitempty"`
}

func (p ScheduledEventParams) validate() error {
	if err := validateParams(p); err != nil {
		return err
	}

	switch {
	case p.PrivacyLevel != nil && fromCode(privacyLevels, *p.PrivacyLevel, PrivacyLevelUnknown) == PrivacyLevelUnknown:
		return &ValidationError{Field: "privacy_level", Message: "is not a known privacy level"}
	case p.EntityType != nil && fromCode(scheduledEventTypes, *p.EntityType, ScheduledEventTypeUnknown) == ScheduledEventTypeUnknown:
		return &ValidationError{Field: "entity_type", Message: "is not a known event type"}
	case p.Status != nil && fromCode(scheduledEventStatuses, *p.Status, ScheduledEventStatusUnknown) == ScheduledEventStatusUnknown:
		return &ValidationError{Field: "status", Message: "is not a known event status"}
	}

	if p.EntityMetadata != nil {
		if err := validateLength("location", p.EntityMetadata.Location, 1, MaxScheduledEventLocationLength); err != nil {
			return err
		}
	}

	if p.ScheduledStartTime != nil && p.ScheduledEndTime != nil {
		start, startOk := p.ScheduledStartTime.Time()
		end, endOk := p.ScheduledEndTime.Time()

		if startOk && endOk && !end.After(start) {
			return &ValidationError{Field: "scheduled_end_time", Message: "must be after the start time"}
		}
	}

	return nil
}

// Modify updates the event. Requires MANAGE_EVENTS.
func (se ScheduledEvent) Modify(ctx context.Context, s *Session, params ScheduledEventParams) (*RestAction[ScheduledEvent], error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	if err := s.checkPermission(ctx, se.GuildID, 0, PermissionManageEvents); err != nil {
		return nil, err
	}

	route, err := RouteModifyScheduledEvent.Compile(se.GuildID.String(), se.ID.String())
	if err != nil {
		return nil, err
	}

	return NewRestAction[ScheduledEvent](s, route, params), nil
}

// Delete deletes the event. Requires MANAGE_EVENTS.
func (se ScheduledEvent) Delete(ctx context.Context, s *Session) (*RestAction[struct{}], error) {
	if err := s.checkPermission(ctx, se.GuildID, 0, PermissionManageEvents); err != nil {
		return nil, err
	}

	route, err := RouteDeleteScheduledEvent.Compile(se.GuildID.String(), se.ID.String())
	if err != nil {
		return nil, err
	}

	return NewRestAction[struct{}](s, route, nil), nil
}

// ScheduledEventUser represents a user subscribed to an event.
type ScheduledEventUser struct {
	Member  *GuildMember `json:"member,omitempty"`
	User    User         `json:"user"`
	EventID Snowflake    `json:"guild_scheduled_event_id"`
}

const MaxScheduledEventUsersLimit = 100

// RetrieveInterestedMembers fetches up to limit users interested in the event, with their members.
func (se ScheduledEvent) RetrieveInterestedMembers(s *Session, limit int) (*RestAction[[]ScheduledEventUser], error) {
	if limit < 1 || limit > MaxScheduledEventUsersLimit {
		return nil, &ValidationError{
			Field:   "limit",
			Message: "must be between 1 and " + strconv.Itoa(MaxScheduledEventUsersLimit),
		}
	}

	route, err := RouteGetScheduledEventUsers.Compile(se.GuildID.String(), se.ID.String())
	if err != nil {
		return nil, err
	}

	route = route.
		WithQuery("limit", strconv.Itoa(limit)).
		WithQuery("with_member", "true")

	return NewRestAction[[]ScheduledEventUser](s, route, nil), nil
}
