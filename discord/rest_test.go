package discord_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/WelcomerTeam/Discord/discord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteCompile(t *testing.T) {
	t.Parallel()

	route := discord.NewRoute(http.MethodGet, "/guilds/{guild_id}/members/{user_id}")
	assert.Equal(t, 2, route.ParamCount())

	compiled, err := route.Compile("1", "2")
	require.NoError(t, err)
	assert.Equal(t, "/guilds/1/members/2", compiled.Endpoint())
	assert.Equal(t, "GET /guilds/1/members/2", compiled.String())
	assert.Equal(t, []string{"1", "2"}, compiled.Params)

	_, err = route.Compile("1")
	assert.ErrorIs(t, err, discord.ErrRouteParameters)

	_, err = route.Compile("1", "2", "3")
	assert.ErrorIs(t, err, discord.ErrRouteParameters)

	assert.Panics(t, func() { route.MustCompile() })
}

func TestRouteCompileEscapes(t *testing.T) {
	t.Parallel()

	compiled := discord.RouteDeleteWebhookWithToken.MustCompile("1", "a/b c")

	assert.Equal(t, "/webhooks/1/a%2Fb%20c", compiled.Endpoint())
}

func TestRouteWithQueryCopies(t *testing.T) {
	t.Parallel()

	base := discord.RouteGetScheduledEventUsers.MustCompile("1", "2")
	withLimit := base.WithQuery("limit", "5")
	withBoth := withLimit.WithQuery("with_member", "true")

	assert.Equal(t, "/guilds/1/scheduled-events/2/users", base.Endpoint())
	assert.Equal(t, "/guilds/1/scheduled-events/2/users?limit=5", withLimit.Endpoint())
	assert.Equal(t, "/guilds/1/scheduled-events/2/users?limit=5&with_member=true", withBoth.Endpoint())
}

func TestRestActionComplete(t *testing.T) {
	t.Parallel()

	rest := &fakeREST{response: []byte(`{"id":"42","name":"renamed","type":1,"channel_id":"2000"}`)}
	session := newTestSession(nil, rest)

	name := "renamed"

	action, err := discord.Webhook{ID: 42, Token: "tok"}.Modify(ctx(t), session, discord.WebhookParams{Name: &name})
	require.NoError(t, err)

	action.Reason("spring cleaning")

	webhook, err := action.Complete(ctx(t))
	require.NoError(t, err)

	assert.Equal(t, discord.Snowflake(42), webhook.ID)
	assert.Equal(t, "renamed", webhook.Name)
	assert.Equal(t, discord.WebhookTypeIncoming, webhook.Type)

	calls := rest.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodPatch, calls[0].method)
	assert.Equal(t, "/webhooks/42", calls[0].endpoint)
	assert.Equal(t, discord.WebhookParams{Name: &name}, calls[0].payload)
	assert.Equal(t, "spring%20cleaning", calls[0].headers.Get("X-Audit-Log-Reason"))

	action.Reason("")
	assert.Empty(t, action.Headers().Get("X-Audit-Log-Reason"))
}

func TestRestActionEmptyResult(t *testing.T) {
	t.Parallel()

	rest := &fakeREST{response: []byte(`not json`)}
	session := newTestSession(nil, rest)

	action, err := discord.ScheduledEvent{ID: 7, GuildID: testGuildID}.Delete(ctx(t), session)
	require.NoError(t, err)
	assert.Nil(t, action.Body())

	_, err = action.Complete(ctx(t))
	require.NoError(t, err)

	calls := rest.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodDelete, calls[0].method)
	assert.Equal(t, "/guilds/1000/scheduled-events/7", calls[0].endpoint)
}

func TestRestActionWithoutExecutor(t *testing.T) {
	t.Parallel()

	session := newTestSession(nil, nil)

	action, err := discord.StageInstance{GuildID: testGuildID, ChannelID: testStageID}.Delete(ctx(t), session)
	require.NoError(t, err)

	_, err = action.Complete(ctx(t))
	assert.ErrorIs(t, err, discord.ErrNoExecutor)
}

func TestRestActionQueue(t *testing.T) {
	t.Parallel()

	failure := errors.New("gateway timeout")
	rest := &fakeREST{err: failure}
	session := newTestSession(nil, rest)

	action, err := discord.Entitlement{ID: 1, ApplicationID: 2}.Consume(session)
	require.NoError(t, err)
	assert.Equal(t, "/applications/2/entitlements/1/consume", action.Route().Endpoint())

	errs := make(chan error, 1)

	action.Queue(ctx(t), func(struct{}) { errs <- nil }, func(err error) { errs <- err })

	select {
	case err := <-errs:
		assert.ErrorIs(t, err, failure)
	case <-time.After(time.Second):
		t.Fatal("queued action never completed")
	}
}
