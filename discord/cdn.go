package discord

import (
	"fmt"
	"strings"
)

// cdn.go contains the media url templates. Every template takes an ID and a hash.

const (
	EndpointCDN     = "https://cdn.discordapp.com"
	EndpointMedia   = "https://media.discordapp.net/"
	EndpointInvite  = "https://discord.gg/"
	EndpointWebhook = EndpointDiscord + "/webhooks/"

	GuildIconTemplate           = EndpointCDN + "/icons/%s/%s.%s"
	UserAvatarTemplate          = EndpointCDN + "/avatars/%s/%s.%s"
	RoleIconTemplate            = EndpointCDN + "/role-icons/%s/%s.png"
	ScheduledEventImageTemplate = EndpointCDN + "/guild-events/%s/%s.png"
	ApplicationIconTemplate     = EndpointCDN + "/app-icons/%s/%s.png"
	ApplicationAssetTemplate    = EndpointCDN + "/app-assets/%s/%s.png"
	EmojiTemplate               = EndpointCDN + "/emojis/%s.%s"

	spotifyImageURL = "https://i.scdn.co/image/"
	twitchImageURL  = "https://static-cdn.jtvnw.net/previews-ttv/live_user_%s-1920x1080.png"
)

// cdnURL fills template with id and hash. A missing hash gives no url.
func cdnURL(template string, id Snowflake, hash string) string {
	if hash == "" {
		return ""
	}

	return fmt.Sprintf(template, id.String(), hash)
}

// animatedCDNURL is cdnURL for templates with an extension, using gif for animated hashes.
func animatedCDNURL(template string, id Snowflake, hash string) string {
	if hash == "" {
		return ""
	}

	extension := "png"
	if strings.HasPrefix(hash, "a_") {
		extension = "gif"
	}

	return fmt.Sprintf(template, id.String(), hash, extension)
}
