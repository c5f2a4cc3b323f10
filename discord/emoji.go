package discord

// Emoji represents an Emoji on discord. Unicode emojis have no ID.
type Emoji struct {
	GuildID       *Snowflake    `json:"guild_id,omitempty"`
	User          *User         `json:"user,omitempty"`
	Name          string        `json:"name"`
	Roles         SnowflakeList `json:"roles,omitempty"`
	ID            Snowflake     `json:"id,omitempty"`
	RequireColons bool          `json:"require_colons,omitempty"`
	Managed       bool          `json:"managed,omitempty"`
	Animated      bool          `json:"animated,omitempty"`
	Available     bool          `json:"available,omitempty"`
}

// IsUnicode reports whether the emoji is a unicode emoji rather than a custom one.
func (e Emoji) IsUnicode() bool {
	return e.ID.IsNil()
}

// URL returns the image of a custom emoji.
func (e Emoji) URL() string {
	if e.IsUnicode() {
		return ""
	}

	extension := "png"
	if e.Animated {
		extension = "gif"
	}

	return cdnURL(EmojiTemplate, e.ID, extension)
}

// Mention returns the message formatting of the emoji.
func (e Emoji) Mention() string {
	if e.IsUnicode() {
		return e.Name
	}

	prefix := "<:"
	if e.Animated {
		prefix = "<a:"
	}

	return prefix + e.Name + ":" + e.ID.String() + ">"
}
