package discord

// message.go contains the structure that represents a discord message.

// MessageActivityType represents the type of a rich presence message activity.
type MessageActivityType int

const (
	MessageActivityTypeUnknown     MessageActivityType = -1
	MessageActivityTypeJoin        MessageActivityType = 1
	MessageActivityTypeSpectate    MessageActivityType = 2
	MessageActivityTypeListen      MessageActivityType = 3
	MessageActivityTypeJoinRequest MessageActivityType = 5
)

var messageActivityTypes = []MessageActivityType{
	MessageActivityTypeJoin,
	MessageActivityTypeSpectate,
	MessageActivityTypeListen,
	MessageActivityTypeJoinRequest,
}

func MessageActivityTypeFromCode(code int) MessageActivityType {
	return fromCode(messageActivityTypes, MessageActivityType(code), MessageActivityTypeUnknown)
}

func (t *MessageActivityType) UnmarshalJSON(b []byte) error {
	return unmarshalCode(b, t, MessageActivityTypeFromCode)
}

func (t MessageActivityType) String() string {
	switch t {
	case MessageActivityTypeJoin:
		return "JOIN"
	case MessageActivityTypeSpectate:
		return "SPECTATE"
	case MessageActivityTypeListen:
		return "LISTEN"
	case MessageActivityTypeJoinRequest:
		return "JOIN_REQUEST"
	default:
		return "UNKNOWN"
	}
}

// Message represents a message on discord.
type Message struct {
	Timestamp       Timestamp           `json:"timestamp"`
	EditedTimestamp *Timestamp          `json:"edited_timestamp"`
	Author          User                `json:"author"`
	WebhookID       *Snowflake          `json:"webhook_id,omitempty"`
	Member          *GuildMember        `json:"member,omitempty"`
	GuildID         *Snowflake          `json:"guild_id,omitempty"`
	Thread          *Channel            `json:"thread,omitempty"`
	Application     *Application        `json:"application,omitempty"`
	Activity        *MessageActivity    `json:"activity,omitempty"`
	Content         string              `json:"content"`
	Embeds          List[Embed]         `json:"embeds"`
	MentionRoles    SnowflakeList       `json:"mention_roles"`
	Attachments     []MessageAttachment `json:"attachments"`
	Mentions        List[User]          `json:"mentions"`
	ID              Snowflake           `json:"id"`
	ChannelID       Snowflake           `json:"channel_id"`
	Flags           int                 `json:"flags,omitempty"`
	Type            int                 `json:"type"`
	MentionEveryone bool                `json:"mention_everyone"`
	TTS             bool                `json:"tts"`
	Pinned          bool                `json:"pinned"`
}

// JumpURL returns the link to the message in the client.
func (m Message) JumpURL() string {
	guild := "@me"
	if m.GuildID != nil {
		guild = m.GuildID.String()
	}

	return "https://discord.com/channels/" + guild + "/" + m.ChannelID.String() + "/" + m.ID.String()
}

// MessageAttachment represents a message attachment on discord.
type MessageAttachment struct {
	ContentType string    `json:"content_type,omitempty"`
	Filename    string    `json:"filename"`
	URL         string    `json:"url"`
	ProxyURL    string    `json:"proxy_url"`
	ID          Snowflake `json:"id"`
	Size        int32     `json:"size"`
	Height      int32     `json:"height,omitempty"`
	Width       int32     `json:"width,omitempty"`
	Ephemeral   bool      `json:"ephemeral,omitempty"`
}

// MessageActivity is the rich presence invite attached to a message.
type MessageActivity struct {
	PartyID string              `json:"party_id,omitempty"`
	Type    MessageActivityType `json:"type"`
}

func (ma MessageActivity) Equal(other MessageActivity) bool {
	return ma == other
}
