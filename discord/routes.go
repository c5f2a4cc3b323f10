package discord

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Route is an endpoint template such as /channels/{channel_id}/permissions/{overwrite_id}.
type Route struct {
	Method string
	Path   string

	paramCount int
}

func NewRoute(method, path string) Route {
	return Route{
		Method:     method,
		Path:       path,
		paramCount: strings.Count(path, "{"),
	}
}

// ParamCount returns the number of placeholders in the path.
func (r Route) ParamCount() int {
	return r.paramCount
}

// Compile substitutes params into the placeholders, in order.
func (r Route) Compile(params ...string) (CompiledRoute, error) {
	if len(params) != r.paramCount {
		return CompiledRoute{}, fmt.Errorf("%w: %s %s expects %d, got %d",
			ErrRouteParameters, r.Method, r.Path, r.paramCount, len(params))
	}

	var sb strings.Builder

	sb.Grow(len(r.Path) + 20*len(params))

	path := r.Path

	for _, param := range params {
		start := strings.IndexByte(path, '{')
		end := strings.IndexByte(path[start:], '}') + start

		sb.WriteString(path[:start])
		sb.WriteString(url.PathEscape(param))

		path = path[end+1:]
	}

	sb.WriteString(path)

	return CompiledRoute{
		Route:    r,
		Compiled: sb.String(),
		Params:   params,
	}, nil
}

// MustCompile is like Compile but panics on a parameter count mismatch.
func (r Route) MustCompile(params ...string) CompiledRoute {
	compiled, err := r.Compile(params...)
	if err != nil {
		panic(err)
	}

	return compiled
}

// CompiledRoute is a Route with its parameters filled in.
type CompiledRoute struct {
	Query    url.Values
	Route    Route
	Compiled string
	Params   []string
}

func (c CompiledRoute) Method() string {
	return c.Route.Method
}

// WithQuery returns a copy of the route with key set to value.
func (c CompiledRoute) WithQuery(key, value string) CompiledRoute {
	query := url.Values{}
	for k, v := range c.Query {
		query[k] = append([]string(nil), v...)
	}

	query.Set(key, value)
	c.Query = query

	return c
}

// Endpoint returns the compiled path along with its query string.
func (c CompiledRoute) Endpoint() string {
	if len(c.Query) == 0 {
		return c.Compiled
	}

	return c.Compiled + "?" + c.Query.Encode()
}

func (c CompiledRoute) String() string {
	return c.Route.Method + " " + c.Endpoint()
}

// Webhooks
var (
	RouteGetWebhook             = NewRoute(http.MethodGet, "/webhooks/{webhook_id}")
	RouteModifyWebhook          = NewRoute(http.MethodPatch, "/webhooks/{webhook_id}")
	RouteModifyWebhookWithToken = NewRoute(http.MethodPatch, "/webhooks/{webhook_id}/{webhook_token}")
	RouteDeleteWebhook          = NewRoute(http.MethodDelete, "/webhooks/{webhook_id}")
	RouteDeleteWebhookWithToken = NewRoute(http.MethodDelete, "/webhooks/{webhook_id}/{webhook_token}")
)

// Scheduled events
var (
	RouteModifyScheduledEvent   = NewRoute(http.MethodPatch, "/guilds/{guild_id}/scheduled-events/{event_id}")
	RouteDeleteScheduledEvent   = NewRoute(http.MethodDelete, "/guilds/{guild_id}/scheduled-events/{event_id}")
	RouteGetScheduledEventUsers = NewRoute(http.MethodGet, "/guilds/{guild_id}/scheduled-events/{event_id}/users")
)

// Stage instances
var (
	RouteModifyStageInstance = NewRoute(http.MethodPatch, "/stage-instances/{channel_id}")
	RouteDeleteStageInstance = NewRoute(http.MethodDelete, "/stage-instances/{channel_id}")
)

// Channels
var (
	RouteEditChannelPermissions  = NewRoute(http.MethodPut, "/channels/{channel_id}/permissions/{overwrite_id}")
	RouteDeleteChannelPermission = NewRoute(http.MethodDelete, "/channels/{channel_id}/permissions/{overwrite_id}")
	RouteGetThreadMember         = NewRoute(http.MethodGet, "/channels/{channel_id}/thread-members/{user_id}")
	RouteRemoveThreadMember      = NewRoute(http.MethodDelete, "/channels/{channel_id}/thread-members/{user_id}")
)

// Guilds
var (
	RouteModifyUserVoiceState    = NewRoute(http.MethodPatch, "/guilds/{guild_id}/voice-states/{user_id}")
	RouteModifyCurrentVoiceState = NewRoute(http.MethodPatch, "/guilds/{guild_id}/voice-states/@me")
	RouteGetGuildVanityURL       = NewRoute(http.MethodGet, "/guilds/{guild_id}/vanity-url")
	RouteGetGuildWidget          = NewRoute(http.MethodGet, "/guilds/{guild_id}/widget.json")
)

// Applications
var (
	RouteConsumeEntitlement           = NewRoute(http.MethodPost, "/applications/{application_id}/entitlements/{entitlement_id}/consume")
	RouteDeleteTestEntitlement        = NewRoute(http.MethodDelete, "/applications/{application_id}/entitlements/{entitlement_id}")
	RouteGetRoleConnectionMetadata    = NewRoute(http.MethodGet, "/applications/{application_id}/role-connections/metadata")
	RouteUpdateRoleConnectionMetadata = NewRoute(http.MethodPut, "/applications/{application_id}/role-connections/metadata")
)
