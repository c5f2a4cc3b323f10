package discord

import (
	"fmt"
	"strings"
	"time"
)

// OnlineStatus represents a presence's status.
type OnlineStatus string

// Presence statuses.
const (
	OnlineStatusOnline       OnlineStatus = "online"
	OnlineStatusIdle         OnlineStatus = "idle"
	OnlineStatusDoNotDisturb OnlineStatus = "dnd"
	OnlineStatusInvisible    OnlineStatus = "invisible"
	OnlineStatusOffline      OnlineStatus = "offline"
	OnlineStatusUnknown      OnlineStatus = ""
)

var onlineStatuses = []OnlineStatus{
	OnlineStatusOnline,
	OnlineStatusIdle,
	OnlineStatusDoNotDisturb,
	OnlineStatusInvisible,
	OnlineStatusOffline,
}

func OnlineStatusFromKey(key string) OnlineStatus {
	return fromCode(onlineStatuses, OnlineStatus(strings.ToLower(key)), OnlineStatusUnknown)
}

func (s *OnlineStatus) UnmarshalJSON(b []byte) error {
	return unmarshalCode(b, s, OnlineStatusFromKey)
}

// ClientType is the platform a user is connected from.
type ClientType string

const (
	ClientTypeDesktop ClientType = "desktop"
	ClientTypeMobile  ClientType = "mobile"
	ClientTypeWeb     ClientType = "web"
	ClientTypeUnknown ClientType = "unknown"
)

var clientTypes = []ClientType{ClientTypeDesktop, ClientTypeMobile, ClientTypeWeb}

func ClientTypeFromKey(key string) ClientType {
	return fromCode(clientTypes, ClientType(key), ClientTypeUnknown)
}

// ClientStatus represent's the status of a client.
type ClientStatus struct {
	Desktop OnlineStatus `json:"desktop,omitempty"`
	Mobile  OnlineStatus `json:"mobile,omitempty"`
	Web     OnlineStatus `json:"web,omitempty"`
}

// StatusFor returns the status on a client type. Clients that are not connected are offline.
func (cs ClientStatus) StatusFor(clientType ClientType) OnlineStatus {
	var status OnlineStatus

	switch clientType {
	case ClientTypeDesktop:
		status = cs.Desktop
	case ClientTypeMobile:
		status = cs.Mobile
	case ClientTypeWeb:
		status = cs.Web
	default:
		return OnlineStatusUnknown
	}

	if status == OnlineStatusUnknown {
		return OnlineStatusOffline
	}

	return status
}

// ActiveClients returns the client types the user is connected from.
func (cs ClientStatus) ActiveClients() []ClientType {
	active := make([]ClientType, 0, len(clientTypes))

	for _, clientType := range clientTypes {
		if cs.StatusFor(clientType) != OnlineStatusOffline {
			active = append(active, clientType)
		}
	}

	return active
}

// PresenceUpdate represents a user's presence in a guild.
type PresenceUpdate struct {
	User         *User        `json:"user"`
	GuildID      *Snowflake   `json:"guild_id,omitempty"`
	Status       OnlineStatus `json:"status"`
	Activities   ActivityList `json:"activities"`
	ClientStatus ClientStatus `json:"client_status"`
}

// ActivityType represents an activity's type.
type ActivityType int

// Activity types.
const (
	ActivityTypeGame      ActivityType = 0
	ActivityTypeStreaming ActivityType = 1
	ActivityTypeListening ActivityType = 2
	ActivityTypeWatching  ActivityType = 3
	ActivityTypeCustom    ActivityType = 4
	ActivityTypeCompeting ActivityType = 5
)

// ActivityFlag represents one of an activity's flags.
type ActivityFlag uint16

// Activity flags. Offsets are fixed by discord.
const (
	ActivityFlagInstance                 ActivityFlag = 1 << 0
	ActivityFlagJoin                     ActivityFlag = 1 << 1
	ActivityFlagSpectate                 ActivityFlag = 1 << 2
	ActivityFlagJoinRequest              ActivityFlag = 1 << 3
	ActivityFlagSync                     ActivityFlag = 1 << 4
	ActivityFlagPlay                     ActivityFlag = 1 << 5
	ActivityFlagPartyPrivacyFriends      ActivityFlag = 1 << 6
	ActivityFlagPartyPrivacyVoiceChannel ActivityFlag = 1 << 7
	ActivityFlagEmbedded                 ActivityFlag = 1 << 8
)

var activityFlags = []ActivityFlag{
	ActivityFlagInstance,
	ActivityFlagJoin,
	ActivityFlagSpectate,
	ActivityFlagJoinRequest,
	ActivityFlagSync,
	ActivityFlagPlay,
	ActivityFlagPartyPrivacyFriends,
	ActivityFlagPartyPrivacyVoiceChannel,
	ActivityFlagEmbedded,
}

// ActivityFlagsFromRaw returns the flags set in raw. Unknown bits are ignored.
func ActivityFlagsFromRaw(raw int) []ActivityFlag {
	return decodeFlags(uint64(uint32(raw)), activityFlags)
}

// ActivityFlagsRaw returns the bitmask of flags.
func ActivityFlagsRaw(flags ...ActivityFlag) int {
	return int(encodeFlags(flags))
}

// Offset returns the bit position of the flag.
func (f ActivityFlag) Offset() int {
	return flagOffset(f)
}

// Activity represents an activity as sent as part of other packets.
// Activities with an application are rich presences.
type Activity struct {
	Timestamps    *ActivityTimestamps `json:"timestamps,omitempty"`
	ApplicationID *Snowflake          `json:"application_id,omitempty"`
	Party         *Party              `json:"party,omitempty"`
	Assets        *Assets             `json:"assets,omitempty"`
	Secrets       *Secrets            `json:"secrets,omitempty"`
	Emoji         *Emoji              `json:"emoji,omitempty"`
	URL           *string             `json:"url,omitempty"`
	Details       *string             `json:"details,omitempty"`
	State         *string             `json:"state,omitempty"`
	SessionID     *string             `json:"session_id,omitempty"`
	SyncID        *string             `json:"sync_id,omitempty"`
	CreatedAt     *int64              `json:"created_at,omitempty"`
	Name          string              `json:"name"`
	Flags         int                 `json:"flags,omitempty"`
	Type          ActivityType        `json:"type"`
}

// IsRich reports whether the activity carries rich presence information.
func (a Activity) IsRich() bool {
	return a.ApplicationID != nil || a.Assets != nil || a.Party != nil
}

// FlagSet decodes the activity flags.
func (a Activity) FlagSet() []ActivityFlag {
	return ActivityFlagsFromRaw(a.Flags)
}

func (a Activity) applicationID() Snowflake {
	if a.ApplicationID == nil {
		return 0
	}

	return *a.ApplicationID
}

// LargeImage returns the large asset, or nil if none was set.
func (a Activity) LargeImage() *RichPresenceImage {
	if a.Assets == nil || a.Assets.LargeImage == "" {
		return nil
	}

	return &RichPresenceImage{
		ApplicationID: a.applicationID(),
		Key:           a.Assets.LargeImage,
		Text:          a.Assets.LargeText,
	}
}

// SmallImage returns the small asset, or nil if none was set.
func (a Activity) SmallImage() *RichPresenceImage {
	if a.Assets == nil || a.Assets.SmallImage == "" {
		return nil
	}

	return &RichPresenceImage{
		ApplicationID: a.applicationID(),
		Key:           a.Assets.SmallImage,
		Text:          a.Assets.SmallText,
	}
}

// ActivityTimestamps represents the starting and ending timestamp of an activity in unix milliseconds.
type ActivityTimestamps struct {
	Start int64 `json:"start,omitempty"`
	End   int64 `json:"end,omitempty"`
}

func (t ActivityTimestamps) StartTime() (time.Time, bool) {
	if t.Start == 0 {
		return time.Time{}, false
	}

	return time.UnixMilli(t.Start).UTC(), true
}

func (t ActivityTimestamps) EndTime() (time.Time, bool) {
	if t.End == 0 {
		return time.Time{}, false
	}

	return time.UnixMilli(t.End).UTC(), true
}

// Party represents an activity's current party information. Size is sent as [current, max].
type Party struct {
	ID   string  `json:"id,omitempty"`
	Size []int32 `json:"size,omitempty"`
}

// CurrentSize returns the number of members in the party, or 0 if unknown.
func (p Party) CurrentSize() int32 {
	if len(p.Size) < 1 {
		return 0
	}

	return p.Size[0]
}

// MaxSize returns the capacity of the party, or 0 if unknown.
func (p Party) MaxSize() int32 {
	if len(p.Size) < 2 {
		return 0
	}

	return p.Size[1]
}

func (p Party) Equal(other Party) bool {
	return p.ID == other.ID && p.CurrentSize() == other.CurrentSize() && p.MaxSize() == other.MaxSize()
}

func (p Party) String() string {
	return fmt.Sprintf("Party(%s)[%d/%d]", p.ID, p.CurrentSize(), p.MaxSize())
}

// Assets represents an activity's images and their hover texts.
type Assets struct {
	LargeImage string `json:"large_image,omitempty"`
	LargeText  string `json:"large_text,omitempty"`
	SmallImage string `json:"small_image,omitempty"`
	SmallText  string `json:"small_text,omitempty"`
}

// Secrets represents an activity's secrets for Rich Presence joining and spectating.
type Secrets struct {
	Join     string `json:"join,omitempty"`
	Spectate string `json:"spectate,omitempty"`
	Match    string `json:"match,omitempty"`
}

// RichPresenceImage is a large or small asset of a rich presence.
type RichPresenceImage struct {
	Key           string
	Text          string
	ApplicationID Snowflake
}

// URL resolves the asset key. Keys prefixed with spotify:, twitch: or mp: point to
// external images; anything else is an application asset.
func (i RichPresenceImage) URL() string {
	switch {
	case i.Key == "":
		return ""
	case strings.HasPrefix(i.Key, "spotify:"):
		return spotifyImageURL + strings.TrimPrefix(i.Key, "spotify:")
	case strings.HasPrefix(i.Key, "twitch:"):
		return fmt.Sprintf(twitchImageURL, strings.TrimPrefix(i.Key, "twitch:"))
	case strings.HasPrefix(i.Key, "mp:"):
		return EndpointMedia + strings.TrimPrefix(i.Key, "mp:")
	case i.ApplicationID.IsNil():
		return ""
	default:
		return cdnURL(ApplicationAssetTemplate, i.ApplicationID, i.Key)
	}
}

func (i RichPresenceImage) Equal(other RichPresenceImage) bool {
	return i == other
}
