package discord

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/WelcomerTeam/Discord/internal/jsonx"
)

var (
	ErrUnauthorized         = errors.New("improper token was passed")
	ErrUnsupportedImageType = errors.New("unsupported image type given")
	ErrNoExecutor           = errors.New("session has no rest interface")
	ErrRouteParameters      = errors.New("wrong number of route parameters")

	// ErrNotStageChannel is returned when a stage-only operation is used on another kind of channel.
	ErrNotStageChannel = errors.New("member is not connected to a stage channel")

	// ErrNoChannelContext is returned when an operation needs a channel the entity does not know.
	ErrNoChannelContext = errors.New("entity has no channel")

	ErrWidgetUnavailable = errors.New("widget is disabled for this guild")
	ErrMissingToken      = errors.New("webhook has no token and session has no bot token")
	ErrNoVanityURL       = errors.New("guild does not have the VANITY_URL feature")
)

// RestError contains the error structure that is returned by discord.
type RestError struct {
	Request      *http.Request
	Response     *http.Response
	Message      *ErrorMessage
	ResponseBody []byte
}

// ErrorMessage represents a basic error message.
type ErrorMessage struct {
	Message string          `json:"message"`
	Errors  json.RawMessage `json:"errors"`
	Code    int32           `json:"code"`
}

func NewRestError(req *http.Request, resp *http.Response, body []byte) *RestError {
	var errorMessage ErrorMessage

	_ = jsonx.Unmarshal(body, &errorMessage)

	return &RestError{
		Request:      req,
		Response:     resp,
		ResponseBody: body,
		Message:      &errorMessage,
	}
}

func (r *RestError) Error() string {
	if r.Response == nil {
		return r.Message.Message
	}

	return fmt.Sprintf("%s: %s", r.Response.Status, r.Message.Message)
}

// Code returns discord's JSON error code, or 0 if the body had none.
func (r *RestError) Code() int32 {
	if r.Message == nil {
		return 0
	}

	return r.Message.Code
}

// InsufficientPermissionError is returned before a request is sent when cached
// state shows the current user lacks a permission.
type InsufficientPermissionError struct {
	GuildID   Snowflake
	ChannelID Snowflake
	Missing   Permission
}

func (e *InsufficientPermissionError) Error() string {
	if e.ChannelID.IsNil() {
		return fmt.Sprintf("missing permission %s in guild %s", e.Missing, e.GuildID)
	}

	return fmt.Sprintf("missing permission %s in channel %s", e.Missing, e.ChannelID)
}

// ValidationError is returned when an argument fails local validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Message
}
