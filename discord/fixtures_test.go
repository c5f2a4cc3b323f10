package discord_test

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/WelcomerTeam/Discord/discord"
	"github.com/WelcomerTeam/Discord/internal/jsonx"
	"github.com/rs/zerolog"
)

const (
	testGuildID   = discord.Snowflake(1000)
	testChannelID = discord.Snowflake(2000)
	testStageID   = discord.Snowflake(2001)
	testSelfID    = discord.Snowflake(3000)
	testOtherID   = discord.Snowflake(3001)
	testModRoleID = discord.Snowflake(4000)
)

type memberKey struct {
	guildID discord.Snowflake
	userID  discord.Snowflake
}

// fakeState is a map backed StateProvider.
type fakeState struct {
	guilds   map[discord.Snowflake]discord.Guild
	channels map[discord.Snowflake]discord.Channel
	members  map[memberKey]discord.GuildMember
	users    map[discord.Snowflake]discord.User
}

func newFakeState() *fakeState {
	return &fakeState{
		guilds:   map[discord.Snowflake]discord.Guild{},
		channels: map[discord.Snowflake]discord.Channel{},
		members:  map[memberKey]discord.GuildMember{},
		users:    map[discord.Snowflake]discord.User{},
	}
}

func (f *fakeState) GetGuild(_ context.Context, guildID discord.Snowflake) (discord.Guild, bool) {
	guild, ok := f.guilds[guildID]

	return guild, ok
}

func (f *fakeState) GetGuildChannel(_ context.Context, guildID, channelID discord.Snowflake) (discord.Channel, bool) {
	channel, ok := f.channels[channelID]
	if !ok || channel.GuildID == nil || *channel.GuildID != guildID {
		return discord.Channel{}, false
	}

	return channel, true
}

func (f *fakeState) GetGuildMember(_ context.Context, guildID, userID discord.Snowflake) (discord.GuildMember, bool) {
	member, ok := f.members[memberKey{guildID, userID}]

	return member, ok
}

func (f *fakeState) GetGuildRole(_ context.Context, guildID, roleID discord.Snowflake) (discord.Role, bool) {
	guild, ok := f.guilds[guildID]
	if !ok {
		return discord.Role{}, false
	}

	for _, role := range guild.Roles {
		if role.ID == roleID {
			return role, true
		}
	}

	return discord.Role{}, false
}

func (f *fakeState) GetUser(_ context.Context, userID discord.Snowflake) (discord.User, bool) {
	user, ok := f.users[userID]

	return user, ok
}

func ctx(t *testing.T) context.Context {
	t.Helper()

	return context.Background()
}

func snowflakePtr(s discord.Snowflake) *discord.Snowflake {
	return &s
}

func stringPtr(s string) *string {
	return &s
}

// newGuildState caches a guild where the current user holds everyonePerms through
// @everyone, plus a text channel and a stage channel.
func newGuildState(everyonePerms discord.Permission) *fakeState {
	state := newFakeState()

	state.guilds[testGuildID] = discord.Guild{
		ID:      testGuildID,
		OwnerID: testOtherID,
		Roles: discord.RoleList{
			{ID: testGuildID, Name: "@everyone", Permissions: discord.Int64(everyonePerms)},
			{ID: testModRoleID, Name: "mod", Permissions: discord.Int64(discord.PermissionManageRoles)},
		},
	}

	state.channels[testChannelID] = discord.Channel{
		ID:      testChannelID,
		GuildID: snowflakePtr(testGuildID),
		Type:    discord.ChannelTypeGuildText,
	}

	state.channels[testStageID] = discord.Channel{
		ID:      testStageID,
		GuildID: snowflakePtr(testGuildID),
		Type:    discord.ChannelTypeGuildStageVoice,
	}

	self := discord.User{ID: testSelfID, Username: "self", Bot: true}
	state.users[testSelfID] = self
	state.members[memberKey{testGuildID, testSelfID}] = discord.GuildMember{User: &self}

	other := discord.User{ID: testOtherID, Username: "other"}
	state.users[testOtherID] = other
	state.members[memberKey{testGuildID, testOtherID}] = discord.GuildMember{User: &other}

	return state
}

type fetchCall struct {
	method   string
	endpoint string
	payload  any
	headers  http.Header
}

// fakeREST records requests and answers every request with response.
type fakeREST struct {
	mu       sync.Mutex
	calls    []fetchCall
	response []byte
	err      error
}

func (f *fakeREST) Fetch(_ context.Context, _ *discord.Session, method, endpoint, _ string, body []byte, headers http.Header) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, fetchCall{method: method, endpoint: endpoint, payload: body, headers: headers})

	return f.response, f.err
}

func (f *fakeREST) FetchBJ(ctx context.Context, s *discord.Session, method, endpoint, contentType string, body []byte, headers http.Header, response any) error {
	resp, err := f.Fetch(ctx, s, method, endpoint, contentType, body, headers)
	if err != nil {
		return err
	}

	if response == nil || len(resp) == 0 {
		return nil
	}

	return jsonx.Unmarshal(resp, response)
}

func (f *fakeREST) FetchJJ(ctx context.Context, s *discord.Session, method, endpoint string, payload any, headers http.Header, response any) error {
	f.mu.Lock()
	f.calls = append(f.calls, fetchCall{method: method, endpoint: endpoint, payload: payload, headers: headers})
	resp, err := f.response, f.err
	f.mu.Unlock()

	if err != nil {
		return err
	}

	if response == nil || len(resp) == 0 {
		return nil
	}

	return jsonx.Unmarshal(resp, response)
}

func (f *fakeREST) SetDebug(bool) {}

func (f *fakeREST) Calls() []fetchCall {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]fetchCall(nil), f.calls...)
}

func newTestSession(state discord.StateProvider, rest discord.RESTInterface) *discord.Session {
	session := discord.NewSession("Bot token", rest, state, zerolog.Nop())
	session.SelfUserID = testSelfID
	session.ApplicationID = discord.Snowflake(5000)

	return session
}
