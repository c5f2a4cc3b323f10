package discord

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	gotils_strconv "github.com/savsgio/gotils/strconv"
)

// channel.go contains the information relating to channels

// ChannelType represents a channel's type.
type ChannelType uint16

const (
	ChannelTypeGuildText          ChannelType = 0
	ChannelTypeDM                 ChannelType = 1
	ChannelTypeGuildVoice         ChannelType = 2
	ChannelTypeGroupDM            ChannelType = 3
	ChannelTypeGuildCategory      ChannelType = 4
	ChannelTypeGuildNews          ChannelType = 5
	ChannelTypeGuildNewsThread    ChannelType = 10
	ChannelTypeGuildPublicThread  ChannelType = 11
	ChannelTypeGuildPrivateThread ChannelType = 12
	ChannelTypeGuildStageVoice    ChannelType = 13
	ChannelTypeGuildDirectory     ChannelType = 14
	ChannelTypeGuildForum         ChannelType = 15
	ChannelTypeGuildMedia         ChannelType = 16
)

// IsThread reports whether channels of this type are threads.
func (t ChannelType) IsThread() bool {
	return t == ChannelTypeGuildNewsThread || t == ChannelTypeGuildPublicThread || t == ChannelTypeGuildPrivateThread
}

// IsAudio reports whether members can connect to channels of this type.
func (t ChannelType) IsAudio() bool {
	return t == ChannelTypeGuildVoice || t == ChannelTypeGuildStageVoice
}

// Channel represents a Discord channel.
type Channel struct {
	OwnerID              *Snowflake           `json:"owner_id,omitempty"`
	GuildID              *Snowflake           `json:"guild_id,omitempty"`
	ParentID             *Snowflake           `json:"parent_id,omitempty"`
	ThreadMember         *ThreadMember        `json:"member,omitempty"`
	ThreadMetadata       *ThreadMetadata      `json:"thread_metadata,omitempty"`
	Topic                string               `json:"topic"`
	Name                 string               `json:"name"`
	PermissionOverwrites PermissionOverwrites `json:"permission_overwrites"`
	ID                   Snowflake            `json:"id"`
	UserLimit            int32                `json:"user_limit"`
	Bitrate              int32                `json:"bitrate"`
	MemberCount          int32                `json:"member_count"`
	Position             int32                `json:"position"`
	Type                 ChannelType          `json:"type"`
	NSFW                 bool                 `json:"nsfw"`
}

// Mention returns the mention string for the channel.
func (c Channel) Mention() string {
	return "<#" + c.ID.String() + ">"
}

// PermissionOverwriteType represents the target of a channel override.
type PermissionOverwriteType uint16

const (
	PermissionOverwriteTypeRole   PermissionOverwriteType = 0
	PermissionOverwriteTypeMember PermissionOverwriteType = 1
)

func (in *PermissionOverwriteType) UnmarshalJSON(b []byte) error {
	if !bytes.Equal(b, null) {
		// Discord will pass the type as a string if it is in an audit log.
		if b[0] == '"' && len(b) >= 2 {
			b = b[1 : len(b)-1]
		}

		i, err := strconv.ParseUint(gotils_strconv.B2S(b), 10, 16)
		if err != nil {
			return fmt.Errorf("failed to unmarshal json: %w", err)
		}

		*in = PermissionOverwriteType(i)
	}

	return nil
}

// PermissionOverwrite represents a permission overwrite for a channel.
// The ChannelID and GuildID are not sent by discord and are set by whoever
// builds the overwrite from its channel.
type PermissionOverwrite struct {
	ChannelID Snowflake               `json:"-"`
	GuildID   Snowflake               `json:"-"`
	ID        Snowflake               `json:"id"`
	Allow     Int64                   `json:"allow"`
	Deny      Int64                   `json:"deny"`
	Type      PermissionOverwriteType `json:"type"`
}

// Overwrites returns the channel's overwrites with their channel and guild filled in.
func (c Channel) Overwrites() []PermissionOverwrite {
	overwrites := make([]PermissionOverwrite, len(c.PermissionOverwrites))

	for i, overwrite := range c.PermissionOverwrites {
		overwrite.ChannelID = c.ID
		if c.GuildID != nil {
			overwrite.GuildID = *c.GuildID
		}

		overwrites[i] = overwrite
	}

	return overwrites
}

func (po PermissionOverwrite) AllowedRaw() uint64 {
	return uint64(po.Allow)
}

func (po PermissionOverwrite) DeniedRaw() uint64 {
	return uint64(po.Deny)
}

// InheritRaw returns the permissions that are neither allowed nor denied.
func (po PermissionOverwrite) InheritRaw() uint64 {
	return uint64(PermissionAll) &^ (po.AllowedRaw() | po.DeniedRaw())
}

func (po PermissionOverwrite) Allowed() []Permission {
	return PermissionsFromRaw(po.AllowedRaw())
}

func (po PermissionOverwrite) Denied() []Permission {
	return PermissionsFromRaw(po.DeniedRaw())
}

func (po PermissionOverwrite) Inherit() []Permission {
	return PermissionsFromRaw(po.InheritRaw())
}

func (po PermissionOverwrite) IsMemberOverride() bool {
	return po.Type == PermissionOverwriteTypeMember
}

func (po PermissionOverwrite) IsRoleOverride() bool {
	return po.Type == PermissionOverwriteTypeRole
}

func (po PermissionOverwrite) Guild(ctx context.Context, state StateProvider) (Guild, bool) {
	return lookupGuild(ctx, state, po.GuildID)
}

func (po PermissionOverwrite) Channel(ctx context.Context, state StateProvider) (Channel, bool) {
	return lookupChannel(ctx, state, po.GuildID, po.ChannelID)
}

// Role looks up the target role. Member overrides never resolve.
func (po PermissionOverwrite) Role(ctx context.Context, state StateProvider) (Role, bool) {
	if !po.IsRoleOverride() {
		return Role{}, false
	}

	return lookupRole(ctx, state, po.GuildID, po.ID)
}

// Member looks up the target member. Role overrides never resolve.
func (po PermissionOverwrite) Member(ctx context.Context, state StateProvider) (GuildMember, bool) {
	if !po.IsMemberOverride() {
		return GuildMember{}, false
	}

	return lookupMember(ctx, state, po.GuildID, po.ID)
}

// PermissionOverwriteParams represents the payload to edit a channel permission.
type PermissionOverwriteParams struct {
	Allow Int64                   `json:"allow"`
	Deny  Int64                   `json:"deny"`
	Type  PermissionOverwriteType `json:"type"`
}

// Modify replaces the allowed and denied permissions. Requires MANAGE_ROLES.
func (po PermissionOverwrite) Modify(ctx context.Context, s *Session, allow, deny Permission) (*RestAction[struct{}], error) {
	if po.ChannelID.IsNil() {
		return nil, ErrNoChannelContext
	}

	if err := s.checkPermission(ctx, po.GuildID, po.ChannelID, PermissionManageRoles); err != nil {
		return nil, err
	}

	route, err := RouteEditChannelPermissions.Compile(po.ChannelID.String(), po.ID.String())
	if err != nil {
		return nil, err
	}

	return NewRestAction[struct{}](s, route, PermissionOverwriteParams{
		Allow: Int64(allow &^ deny),
		Deny:  Int64(deny),
		Type:  po.Type,
	}), nil
}

// Delete removes the overwrite. Requires MANAGE_ROLES.
func (po PermissionOverwrite) Delete(ctx context.Context, s *Session) (*RestAction[struct{}], error) {
	if po.ChannelID.IsNil() {
		return nil, ErrNoChannelContext
	}

	if err := s.checkPermission(ctx, po.GuildID, po.ChannelID, PermissionManageRoles); err != nil {
		return nil, err
	}

	route, err := RouteDeleteChannelPermission.Compile(po.ChannelID.String(), po.ID.String())
	if err != nil {
		return nil, err
	}

	return NewRestAction[struct{}](s, route, nil), nil
}

// ThreadMetadata contains thread-specific channel fields.
type ThreadMetadata struct {
	ArchiveTimestamp    Timestamp `json:"archive_timestamp"`
	AutoArchiveDuration int32     `json:"auto_archive_duration"`
	Archived            bool      `json:"archived"`
	Locked              bool      `json:"locked"`
}

// ThreadMember is used to indicate whether a user has joined a thread or not.
type ThreadMember struct {
	Member        *GuildMember `json:"member,omitempty"`
	ID            *Snowflake   `json:"id,omitempty"`
	UserID        *Snowflake   `json:"user_id,omitempty"`
	GuildID       *Snowflake   `json:"guild_id,omitempty"`
	JoinTimestamp Timestamp    `json:"join_timestamp"`
	Flags         int32        `json:"flags"`
}

func (tm ThreadMember) threadID() Snowflake {
	if tm.ID == nil {
		return 0
	}

	return *tm.ID
}

func (tm ThreadMember) userID() Snowflake {
	if tm.UserID == nil {
		return 0
	}

	return *tm.UserID
}

func (tm ThreadMember) guildID() Snowflake {
	if tm.GuildID == nil {
		return 0
	}

	return *tm.GuildID
}

// TimeJoined returns when the user joined the thread.
func (tm ThreadMember) TimeJoined() (time.Time, bool) {
	return tm.JoinTimestamp.Time()
}

func (tm ThreadMember) Guild(ctx context.Context, state StateProvider) (Guild, bool) {
	return lookupGuild(ctx, state, tm.guildID())
}

func (tm ThreadMember) Thread(ctx context.Context, state StateProvider) (Channel, bool) {
	return lookupChannel(ctx, state, tm.guildID(), tm.threadID())
}

func (tm ThreadMember) User(ctx context.Context, state StateProvider) (User, bool) {
	if tm.Member != nil && tm.Member.User != nil {
		return *tm.Member.User, true
	}

	return lookupUser(ctx, state, tm.userID())
}

// GuildMember returns the member sent with the thread member, falling back to the cache.
func (tm ThreadMember) GuildMember(ctx context.Context, state StateProvider) (GuildMember, bool) {
	if tm.Member != nil {
		return *tm.Member, true
	}

	return lookupMember(ctx, state, tm.guildID(), tm.userID())
}

// IsThreadOwner reports whether the user created the thread. It is false when the thread is not cached.
func (tm ThreadMember) IsThreadOwner(ctx context.Context, state StateProvider) bool {
	thread, ok := tm.Thread(ctx, state)
	if !ok || thread.OwnerID == nil {
		return false
	}

	return *thread.OwnerID == tm.userID()
}

// Remove removes the member from the thread. Removing someone else requires MANAGE_THREADS.
func (tm ThreadMember) Remove(ctx context.Context, s *Session) (*RestAction[struct{}], error) {
	if tm.threadID().IsNil() {
		return nil, ErrNoChannelContext
	}

	if s == nil {
		return nil, ErrNoExecutor
	}

	if tm.userID() != s.SelfUserID {
		if err := s.checkPermission(ctx, tm.guildID(), tm.threadID(), PermissionManageThreads); err != nil {
			return nil, err
		}
	}

	route, err := RouteRemoveThreadMember.Compile(tm.threadID().String(), tm.userID().String())
	if err != nil {
		return nil, err
	}

	return NewRestAction[struct{}](s, route, nil), nil
}

// FollowedChannel represents a followed channel.
type FollowedChannel struct {
	ChannelID Snowflake `json:"channel_id"`
	WebhookID Snowflake `json:"webhook_id"`
}
