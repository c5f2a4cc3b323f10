package discord

import (
	"context"
	"regexp"
)

// webhook.go represents all structures to create a webhook and interact with it.

// WebhookType is the type of webhook.
type WebhookType int

// Webhook type.
const (
	WebhookTypeUnknown         WebhookType = -1
	WebhookTypeIncoming        WebhookType = 1
	WebhookTypeChannelFollower WebhookType = 2
	WebhookTypeApplication     WebhookType = 3
)

var webhookTypes = []WebhookType{
	WebhookTypeIncoming,
	WebhookTypeChannelFollower,
	WebhookTypeApplication,
}

// WebhookTypeFromCode returns the webhook type for a wire code, or WebhookTypeUnknown.
func WebhookTypeFromCode(code int) WebhookType {
	return fromCode(webhookTypes, WebhookType(code), WebhookTypeUnknown)
}

func (t *WebhookType) UnmarshalJSON(b []byte) error {
	return unmarshalCode(b, t, WebhookTypeFromCode)
}

func (t WebhookType) String() string {
	switch t {
	case WebhookTypeIncoming:
		return "INCOMING"
	case WebhookTypeChannelFollower:
		return "FOLLOWER"
	case WebhookTypeApplication:
		return "APPLICATION"
	default:
		return "UNKNOWN"
	}
}

const MaxWebhookNameLength = 80

// WebhookURLRegex matches webhook urls and captures the ID and token.
var WebhookURLRegex = regexp.MustCompile(`^https?://(?:[^\s.]+\.)?discord(?:app)?\.com/api(?:/v\d+)?/webhooks/(\d+)/([\w-]+)(?:/.*)?$`)

// Webhook represents a webhook on discord.
type Webhook struct {
	GuildID       *Snowflake            `json:"guild_id,omitempty"`
	ChannelID     *Snowflake            `json:"channel_id,omitempty"`
	User          *User                 `json:"user,omitempty"`
	ApplicationID *Snowflake            `json:"application_id,omitempty"`
	SourceGuild   *WebhookSourceGuild   `json:"source_guild,omitempty"`
	SourceChannel *WebhookSourceChannel `json:"source_channel,omitempty"`
	Avatar        *string               `json:"avatar,omitempty"`
	Name          string                `json:"name,omitempty"`
	Token         string                `json:"token,omitempty"`
	ID            Snowflake             `json:"id"`
	Type          WebhookType           `json:"type"`
}

// WebhookSourceGuild is the guild a follower webhook publishes from.
type WebhookSourceGuild struct {
	Icon *string   `json:"icon,omitempty"`
	Name string    `json:"name"`
	ID   Snowflake `json:"id"`
}

// WebhookSourceChannel is the announcement channel a follower webhook publishes from.
type WebhookSourceChannel struct {
	Name string    `json:"name"`
	ID   Snowflake `json:"id"`
}

// WebhookFromURL extracts the ID and token from a webhook url.
func WebhookFromURL(rawURL string) (Webhook, bool) {
	matches := WebhookURLRegex.FindStringSubmatch(rawURL)
	if matches == nil {
		return Webhook{}, false
	}

	id, err := ParseSnowflake(matches[1])
	if err != nil {
		return Webhook{}, false
	}

	return Webhook{ID: id, Token: matches[2], Type: WebhookTypeIncoming}, true
}

// URL returns the execute url of the webhook. The token is omitted when unknown.
func (w Webhook) URL() string {
	if w.Token == "" {
		return EndpointWebhook + w.ID.String()
	}

	return EndpointWebhook + w.ID.String() + "/" + w.Token
}

// AvatarURL returns the default avatar of messages sent by the webhook.
func (w Webhook) AvatarURL() string {
	if w.Avatar == nil {
		return ""
	}

	return animatedCDNURL(UserAvatarTemplate, w.ID, *w.Avatar)
}

// IsPartial reports whether the webhook was received without its channel,
// such as webhooks attached to a follower message.
func (w Webhook) IsPartial() bool {
	return w.ChannelID == nil
}

func (w Webhook) guildID() Snowflake {
	if w.GuildID == nil {
		return 0
	}

	return *w.GuildID
}

func (w Webhook) channelID() Snowflake {
	if w.ChannelID == nil {
		return 0
	}

	return *w.ChannelID
}

func (w Webhook) Guild(ctx context.Context, state StateProvider) (Guild, bool) {
	return lookupGuild(ctx, state, w.guildID())
}

func (w Webhook) Channel(ctx context.Context, state StateProvider) (Channel, bool) {
	return lookupChannel(ctx, state, w.guildID(), w.channelID())
}

// Owner looks up the member that created the webhook.
func (w Webhook) Owner(ctx context.Context, state StateProvider) (GuildMember, bool) {
	if w.User == nil {
		return GuildMember{}, false
	}

	return lookupMember(ctx, state, w.guildID(), w.User.ID)
}

// WebhookParams represents the data sent to discord to modify a webhook.
type WebhookParams struct {
	Name      *string    `json:"name,omitempty" validate:"omitempty,notblank,max=80"`
	Avatar    *string    `json:"avatar,omitempty"`
	ChannelID *Snowflake `json:"channel_id,omitempty"`
}

// Modify updates the webhook. Without a bot token the webhook's own token is used
// and the channel cannot be changed.
func (w Webhook) Modify(ctx context.Context, s *Session, params WebhookParams) (*RestAction[Webhook], error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	if s == nil {
		return nil, ErrNoExecutor
	}

	var (
		route CompiledRoute
		err   error
	)

	switch {
	case s.Token != "":
		if err = s.checkPermission(ctx, w.guildID(), w.channelID(), PermissionManageWebhooks); err != nil {
			return nil, err
		}

		route, err = RouteModifyWebhook.Compile(w.ID.String())
	case w.Token != "":
		if params.ChannelID != nil {
			return nil, &ValidationError{Field: "channel_id", Message: "can not be changed with a webhook token"}
		}

		route, err = RouteModifyWebhookWithToken.Compile(w.ID.String(), w.Token)
	default:
		return nil, ErrMissingToken
	}

	if err != nil {
		return nil, err
	}

	return NewRestAction[Webhook](s, route, params), nil
}

// Delete deletes the webhook. With a bot token MANAGE_WEBHOOKS is required,
// otherwise the webhook's own token is used.
func (w Webhook) Delete(ctx context.Context, s *Session) (*RestAction[struct{}], error) {
	if s == nil {
		return nil, ErrNoExecutor
	}

	switch {
	case s.Token != "":
		if err := s.checkPermission(ctx, w.guildID(), w.channelID(), PermissionManageWebhooks); err != nil {
			return nil, err
		}

		route, err := RouteDeleteWebhook.Compile(w.ID.String())
		if err != nil {
			return nil, err
		}

		return NewRestAction[struct{}](s, route, nil), nil
	case w.Token != "":
		return w.DeleteWithToken(s, w.Token)
	default:
		return nil, ErrMissingToken
	}
}

// DeleteWithToken deletes the webhook using token, without checking permissions.
func (w Webhook) DeleteWithToken(s *Session, token string) (*RestAction[struct{}], error) {
	if token == "" {
		return nil, &ValidationError{Field: "token", Message: "may not be blank"}
	}

	route, err := RouteDeleteWebhookWithToken.Compile(w.ID.String(), token)
	if err != nil {
		return nil, err
	}

	return NewRestAction[struct{}](s, route, nil), nil
}
