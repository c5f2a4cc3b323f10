package discord

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/WelcomerTeam/Discord/internal/jsonx"
	"github.com/rs/zerolog"
	"go.uber.org/atomic"
)

const (
	APIVersion      = "v10"
	EndpointDiscord = "https://discord.com/api"
	UserAgent       = "DiscordBot (github.com/WelcomerTeam/Discord, v10)"
)

// RESTInterface executes requests built by RestAction. Scheduling, retries and
// rate limiting belong to the implementation.
type RESTInterface interface {
	// Fetch sends a request and returns the response body. Errors include
	// ErrUnauthorized and *RestError.
	Fetch(ctx context.Context, s *Session, method, endpoint, contentType string, body []byte, headers http.Header) ([]byte, error)
	FetchBJ(ctx context.Context, s *Session, method, endpoint, contentType string, body []byte, headers http.Header, response any) error
	FetchJJ(ctx context.Context, s *Session, method, endpoint string, payload any, headers http.Header, response any) error

	SetDebug(value bool)
}

// Session contains the context entities use to resolve relations and build requests.
type Session struct {
	Interface RESTInterface
	State     StateProvider
	Logger    zerolog.Logger

	// Token is sent as the Authorization header, including its "Bot " prefix.
	Token string

	// SelfUserID is the current user. Permission pre-checks are skipped when unset.
	SelfUserID    Snowflake
	ApplicationID Snowflake
}

func NewSession(token string, httpInterface RESTInterface, state StateProvider, logger zerolog.Logger) *Session {
	return &Session{
		Token:     token,
		Interface: httpInterface,
		State:     state,
		Logger:    logger,
	}
}

// BaseInterface is the default HTTP Interface and simply routes to discord. Careful,
// this does not handle rate limiting.
type BaseInterface struct {
	HTTP       *http.Client
	Logger     zerolog.Logger
	APIVersion string
	URLHost    string
	URLScheme  string
	UserAgent  string

	Debug atomic.Bool
}

func NewBaseInterface(logger zerolog.Logger) *BaseInterface {
	return NewInterface(&http.Client{
		Timeout: 20 * time.Second,
	}, EndpointDiscord, APIVersion, UserAgent, logger)
}

func NewInterface(httpClient *http.Client, endpoint string, version string, useragent string, logger zerolog.Logger) *BaseInterface {
	u, _ := url.Parse(endpoint)

	return &BaseInterface{
		HTTP:       httpClient,
		Logger:     logger,
		APIVersion: version,
		URLHost:    u.Host,
		URLScheme:  u.Scheme,
		UserAgent:  useragent,
	}
}

// NewTwilightProxy sends requests through a proxy that handles distributed requests
// and ratelimits. See more at: https://github.com/twilight-rs/http-proxy
func NewTwilightProxy(proxy url.URL, logger zerolog.Logger) *BaseInterface {
	return &BaseInterface{
		HTTP: &http.Client{
			Timeout: 20 * time.Second,
		},
		Logger:     logger,
		APIVersion: APIVersion,
		URLHost:    proxy.Host,
		URLScheme:  proxy.Scheme,
		UserAgent:  UserAgent,
	}
}

func (bi *BaseInterface) Fetch(ctx context.Context, session *Session, method, endpoint, contentType string, body []byte, headers http.Header) ([]byte, error) {
	if bi.APIVersion != "" && !strings.HasPrefix(endpoint, "/api") {
		endpoint = "/api/" + bi.APIVersion + endpoint
	}

	req, err := http.NewRequestWithContext(ctx, method, bi.URLScheme+"://"+bi.URLHost+endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create new request: %w", err)
	}

	for name, values := range headers {
		for _, value := range values {
			req.Header.Add(name, value)
		}
	}

	if len(body) > 0 && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", contentType)
	}

	if session.Token != "" {
		req.Header.Set("Authorization", session.Token)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", bi.UserAgent)

	resp, err := bi.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to do request: %w", err)
	}

	defer resp.Body.Close()

	response, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}

	if bi.Debug.Load() {
		bi.Logger.Debug().
			Str("method", method).
			Str("url", req.URL.String()).
			Int("status", resp.StatusCode).
			Bytes("body", body).
			Bytes("response", response).
			Msg("Fetched")
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusCreated:
	case http.StatusNoContent:
	case http.StatusUnauthorized:
		return response, ErrUnauthorized
	default:
		return response, NewRestError(req, resp, response)
	}

	return response, nil
}

func (bi *BaseInterface) FetchBJ(ctx context.Context, session *Session, method, endpoint, contentType string, body []byte, headers http.Header, response any) error {
	resp, err := bi.Fetch(ctx, session, method, endpoint, contentType, body, headers)
	if err != nil {
		return err
	}

	if response != nil && len(resp) > 0 {
		err = jsonx.Unmarshal(resp, response)
		if err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}

	return nil
}

func (bi *BaseInterface) FetchJJ(ctx context.Context, session *Session, method, endpoint string, payload any, headers http.Header, response any) error {
	var body []byte

	if payload != nil {
		var err error

		body, err = jsonx.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal payload: %w", err)
		}
	}

	return bi.FetchBJ(ctx, session, method, endpoint, "application/json", body, headers, response)
}

func (bi *BaseInterface) SetDebug(value bool) {
	bi.Debug.Store(value)
}
