package discord

import (
	"context"
	"time"
)

// GuildVoiceState represents the voice state of a member in a guild.
type GuildVoiceState struct {
	RequestToSpeakTimestamp *Timestamp   `json:"request_to_speak_timestamp"`
	GuildID                 *Snowflake   `json:"guild_id,omitempty"`
	ChannelID               *Snowflake   `json:"channel_id"`
	Member                  *GuildMember `json:"member,omitempty"`
	SessionID               string       `json:"session_id"`
	UserID                  Snowflake    `json:"user_id"`
	Mute                    bool         `json:"mute"`
	Deaf                    bool         `json:"deaf"`
	SelfDeaf                bool         `json:"self_deaf"`
	SelfMute                bool         `json:"self_mute"`
	SelfStream              bool         `json:"self_stream"`
	SelfVideo               bool         `json:"self_video"`
	Suppress                bool         `json:"suppress"`
}

// IsMuted reports whether the member is muted by themselves or by the guild.
func (vs GuildVoiceState) IsMuted() bool {
	return vs.SelfMute || vs.Mute
}

// IsDeafened reports whether the member is deafened by themselves or by the guild.
func (vs GuildVoiceState) IsDeafened() bool {
	return vs.SelfDeaf || vs.Deaf
}

func (vs GuildVoiceState) IsGuildMuted() bool {
	return vs.Mute
}

func (vs GuildVoiceState) IsGuildDeafened() bool {
	return vs.Deaf
}

// IsSuppressed reports whether the member is an audience member in a stage.
func (vs GuildVoiceState) IsSuppressed() bool {
	return vs.Suppress
}

func (vs GuildVoiceState) IsStream() bool {
	return vs.SelfStream
}

func (vs GuildVoiceState) IsSendingVideo() bool {
	return vs.SelfVideo
}

// InAudioChannel reports whether the member is connected to a voice or stage channel.
func (vs GuildVoiceState) InAudioChannel() bool {
	return vs.ChannelID != nil && !vs.ChannelID.IsNil()
}

// RequestToSpeakTime returns when the member raised their hand in a stage.
func (vs GuildVoiceState) RequestToSpeakTime() (time.Time, bool) {
	if vs.RequestToSpeakTimestamp == nil {
		return time.Time{}, false
	}

	return vs.RequestToSpeakTimestamp.Time()
}

func (vs GuildVoiceState) guildID() Snowflake {
	if vs.GuildID == nil {
		return 0
	}

	return *vs.GuildID
}

func (vs GuildVoiceState) channelID() Snowflake {
	if vs.ChannelID == nil {
		return 0
	}

	return *vs.ChannelID
}

func (vs GuildVoiceState) Guild(ctx context.Context, state StateProvider) (Guild, bool) {
	return lookupGuild(ctx, state, vs.guildID())
}

// Channel looks up the connected channel. It never resolves when disconnected.
func (vs GuildVoiceState) Channel(ctx context.Context, state StateProvider) (Channel, bool) {
	if !vs.InAudioChannel() {
		return Channel{}, false
	}

	return lookupChannel(ctx, state, vs.guildID(), vs.channelID())
}

// GuildMember returns the member sent with the voice state, falling back to the cache.
func (vs GuildVoiceState) GuildMember(ctx context.Context, state StateProvider) (GuildMember, bool) {
	if vs.Member != nil {
		return *vs.Member, true
	}

	return lookupMember(ctx, state, vs.guildID(), vs.UserID)
}

type voiceStateParams struct {
	ChannelID               Snowflake  `json:"channel_id"`
	Suppress                *bool      `json:"suppress,omitempty"`
	RequestToSpeakTimestamp *Timestamp `json:"request_to_speak_timestamp,omitempty"`
}

// stageChannel returns the stage the member is connected to. A disconnected
// member, or a channel that is cached as another type, is an illegal state.
func (vs GuildVoiceState) stageChannel(ctx context.Context, s *Session) (Snowflake, error) {
	if s == nil {
		return 0, ErrNoExecutor
	}

	if !vs.InAudioChannel() {
		return 0, ErrNotStageChannel
	}

	if channel, ok := lookupChannel(ctx, s.State, vs.guildID(), vs.channelID()); ok && channel.Type != ChannelTypeGuildStageVoice {
		return 0, ErrNotStageChannel
	}

	return vs.channelID(), nil
}

func (vs GuildVoiceState) updateSpeaker(ctx context.Context, s *Session, suppress bool, requestToSpeak *Timestamp) (*RestAction[struct{}], error) {
	channelID, err := vs.stageChannel(ctx, s)
	if err != nil {
		return nil, err
	}

	if err := s.checkPermission(ctx, vs.guildID(), channelID, PermissionVoiceMuteMembers); err != nil {
		return nil, err
	}

	route, err := RouteModifyUserVoiceState.Compile(vs.guildID().String(), vs.UserID.String())
	if err != nil {
		return nil, err
	}

	return NewRestAction[struct{}](s, route, voiceStateParams{
		ChannelID:               channelID,
		Suppress:                &suppress,
		RequestToSpeakTimestamp: requestToSpeak,
	}), nil
}

// ApproveSpeaker moves the member from the audience to the speakers. Requires MUTE_MEMBERS.
func (vs GuildVoiceState) ApproveSpeaker(ctx context.Context, s *Session) (*RestAction[struct{}], error) {
	return vs.updateSpeaker(ctx, s, false, nil)
}

// DeclineSpeaker moves the member back to the audience. Requires MUTE_MEMBERS.
func (vs GuildVoiceState) DeclineSpeaker(ctx context.Context, s *Session) (*RestAction[struct{}], error) {
	return vs.updateSpeaker(ctx, s, true, nil)
}

// InviteSpeaker invites the member to speak, they will have to accept. Requires MUTE_MEMBERS.
func (vs GuildVoiceState) InviteSpeaker(ctx context.Context, s *Session) (*RestAction[struct{}], error) {
	now := NewTimestamp(time.Now())

	return vs.updateSpeaker(ctx, s, false, &now)
}

// RequestToSpeak raises the current user's hand in the stage. Requires REQUEST_TO_SPEAK.
func (vs GuildVoiceState) RequestToSpeak(ctx context.Context, s *Session) (*RestAction[struct{}], error) {
	channelID, err := vs.stageChannel(ctx, s)
	if err != nil {
		return nil, err
	}

	if err := s.checkPermission(ctx, vs.guildID(), channelID, PermissionVoiceRequestToSpeak); err != nil {
		return nil, err
	}

	route, err := RouteModifyCurrentVoiceState.Compile(vs.guildID().String())
	if err != nil {
		return nil, err
	}

	now := NewTimestamp(time.Now())

	return NewRestAction[struct{}](s, route, voiceStateParams{
		ChannelID:               channelID,
		RequestToSpeakTimestamp: &now,
	}), nil
}
