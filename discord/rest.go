package discord

import (
	"context"
	"net/http"
	"net/url"
)

// RestAction describes a request that has not been sent yet. Nothing reaches
// the network until Complete or Queue is called, and then only through the
// session's RESTInterface.
type RestAction[T any] struct {
	session *Session
	headers http.Header
	body    any
	route   CompiledRoute
}

func NewRestAction[T any](s *Session, route CompiledRoute, body any) *RestAction[T] {
	return &RestAction[T]{
		session: s,
		route:   route,
		body:    body,
		headers: http.Header{},
	}
}

func (a *RestAction[T]) Route() CompiledRoute {
	return a.route
}

func (a *RestAction[T]) Body() any {
	return a.body
}

func (a *RestAction[T]) Headers() http.Header {
	return a.headers
}

// Reason sets the audit log reason sent with the request.
func (a *RestAction[T]) Reason(reason string) *RestAction[T] {
	if reason == "" {
		a.headers.Del("X-Audit-Log-Reason")
	} else {
		a.headers.Set("X-Audit-Log-Reason", url.PathEscape(reason))
	}

	return a
}

// Complete sends the request and waits for the decoded response.
func (a *RestAction[T]) Complete(ctx context.Context) (T, error) {
	var result T

	if a.session == nil || a.session.Interface == nil {
		return result, ErrNoExecutor
	}

	var response any = &result

	// Empty results have no body to decode.
	if _, ok := response.(*struct{}); ok {
		response = nil
	}

	err := a.session.Interface.FetchJJ(ctx, a.session, a.route.Method(), a.route.Endpoint(), a.body, a.headers, response)
	if err != nil {
		return result, err
	}

	return result, nil
}

// Queue sends the request in the background. A nil failure callback logs the error.
func (a *RestAction[T]) Queue(ctx context.Context, success func(T), failure func(error)) {
	go func() {
		result, err := a.Complete(ctx)
		if err != nil {
			if failure != nil {
				failure(err)
			} else if a.session != nil {
				a.session.Logger.Error().Err(err).Str("route", a.route.String()).Msg("Failed to queue request")
			}

			return
		}

		if success != nil {
			success(result)
		}
	}()
}
