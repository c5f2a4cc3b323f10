package discord

import (
	"bytes"
	"errors"
	"strings"

	"github.com/WelcomerTeam/Discord/internal/jsonx"
)

// codeWidgetDisabled is discord's JSON error code for a guild with its widget turned off.
const codeWidgetDisabled = 50004

// Widget is the public widget of a guild. A guild with the widget disabled still
// yields a Widget that only knows its ID.
type Widget struct {
	name          string
	inviteCode    string
	voiceChannels WidgetChannelList
	members       WidgetMemberList
	id            Snowflake
	presenceCount int32
	available     bool
}

// WidgetChannel is a voice channel listed on a widget.
type WidgetChannel struct {
	Name     string    `json:"name"`
	ID       Snowflake `json:"id"`
	Position int32     `json:"position"`
}

// WidgetMember is an online member listed on a widget. IDs are anonymised by discord.
type WidgetMember struct {
	ChannelID *Snowflake   `json:"channel_id,omitempty"`
	Activity  *Activity    `json:"activity,omitempty"`
	AvatarURL string       `json:"avatar_url,omitempty"`
	Username  string       `json:"username"`
	Status    OnlineStatus `json:"status"`
	ID        string       `json:"id"`
	Deaf      bool         `json:"deaf,omitempty"`
	Mute      bool         `json:"mute,omitempty"`
	SelfDeaf  bool         `json:"self_deaf,omitempty"`
	SelfMute  bool         `json:"self_mute,omitempty"`
	Suppress  bool         `json:"suppress,omitempty"`
}

type widgetPayload struct {
	InstantInvite *string           `json:"instant_invite"`
	Name          string            `json:"name"`
	Channels      WidgetChannelList `json:"channels"`
	Members       WidgetMemberList  `json:"members"`
	ID            Snowflake         `json:"id"`
	PresenceCount int32             `json:"presence_count"`
}

// NewUnavailableWidget returns the widget of a guild that has it disabled.
func NewUnavailableWidget(guildID Snowflake) Widget {
	return Widget{id: guildID}
}

// WidgetFromError turns the error of RetrieveWidget into an unavailable widget
// when discord reported the widget as disabled.
func WidgetFromError(guildID Snowflake, err error) (Widget, bool) {
	var restError *RestError
	if errors.As(err, &restError) && restError.Code() == codeWidgetDisabled {
		return NewUnavailableWidget(guildID), true
	}

	return Widget{}, false
}

// UnmarshalJSON decodes a widget.json response. null leaves the widget untouched.
func (w *Widget) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, null) {
		return nil
	}

	var payload widgetPayload

	if err := jsonx.Unmarshal(b, &payload); err != nil {
		return err
	}

	*w = Widget{
		id:            payload.ID,
		name:          payload.Name,
		voiceChannels: payload.Channels,
		members:       payload.Members,
		presenceCount: payload.PresenceCount,
		available:     true,
	}

	if payload.InstantInvite != nil {
		w.inviteCode = inviteCodeFromURL(*payload.InstantInvite)
	}

	return nil
}

func inviteCodeFromURL(invite string) string {
	return invite[strings.LastIndexByte(invite, '/')+1:]
}

// IsAvailable reports whether the guild has its widget enabled.
func (w Widget) IsAvailable() bool {
	return w.available
}

// ID is the guild ID and is known even when the widget is unavailable.
func (w Widget) ID() Snowflake {
	return w.id
}

func (w Widget) Name() (string, error) {
	if !w.available {
		return "", ErrWidgetUnavailable
	}

	return w.name, nil
}

// InviteCode returns the widget's instant invite. It is empty when the widget is
// unavailable or has no invite channel.
func (w Widget) InviteCode() string {
	return w.inviteCode
}

// InviteURL returns the instant invite link, or an empty string.
func (w Widget) InviteURL() string {
	if w.inviteCode == "" {
		return ""
	}

	return EndpointInvite + w.inviteCode
}

// PresenceCount returns the number of online members, or 0 when unavailable.
func (w Widget) PresenceCount() int32 {
	return w.presenceCount
}

func (w Widget) Members() (WidgetMemberList, error) {
	if !w.available {
		return nil, ErrWidgetUnavailable
	}

	return w.members, nil
}

func (w Widget) VoiceChannels() (WidgetChannelList, error) {
	if !w.available {
		return nil, ErrWidgetUnavailable
	}

	return w.voiceChannels, nil
}

// RetrieveWidget fetches the public widget of a guild. It does not need a bot token.
// A disabled widget fails with a *RestError that WidgetFromError recognises.
func RetrieveWidget(s *Session, guildID Snowflake) (*RestAction[Widget], error) {
	if guildID.IsNil() {
		return nil, &ValidationError{Field: "guild_id", Message: "may not be blank"}
	}

	route, err := RouteGetGuildWidget.Compile(guildID.String())
	if err != nil {
		return nil, err
	}

	return NewRestAction[Widget](s, route, nil), nil
}
