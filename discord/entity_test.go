package discord_test

import (
	"testing"
	"time"

	"github.com/WelcomerTeam/Discord/discord"
	"github.com/WelcomerTeam/Discord/internal/jsonx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requirePermissionError(t *testing.T, err error, missing discord.Permission) {
	t.Helper()

	var permissionError *discord.InsufficientPermissionError

	require.ErrorAs(t, err, &permissionError)
	assert.Equal(t, missing, permissionError.Missing)
}

func TestWeakLookups(t *testing.T) {
	t.Parallel()

	state := newGuildState(discord.PermissionViewChannel)

	overwrite := discord.Channel{
		ID:      testChannelID,
		GuildID: snowflakePtr(testGuildID),
		PermissionOverwrites: discord.PermissionOverwrites{
			{ID: testModRoleID, Type: discord.PermissionOverwriteTypeRole},
		},
	}.Overwrites()[0]

	role, ok := overwrite.Role(ctx(t), state)
	require.True(t, ok)
	assert.Equal(t, "mod", role.Name)

	_, ok = overwrite.Member(ctx(t), state)
	assert.False(t, ok)

	channel, ok := overwrite.Channel(ctx(t), state)
	require.True(t, ok)
	assert.Equal(t, testChannelID, channel.ID)

	_, ok = overwrite.Guild(ctx(t), nil)
	assert.False(t, ok)

	webhook := discord.Webhook{
		ID:        1,
		GuildID:   snowflakePtr(testGuildID),
		ChannelID: snowflakePtr(testChannelID),
		User:      &discord.User{ID: testOtherID},
	}

	owner, ok := webhook.Owner(ctx(t), state)
	require.True(t, ok)
	assert.Equal(t, "other", owner.User.Username)
	assert.False(t, webhook.IsPartial())
	assert.True(t, discord.Webhook{ID: 1}.IsPartial())

	delete(state.members, memberKey{testGuildID, testOtherID})

	_, ok = webhook.Owner(ctx(t), state)
	assert.False(t, ok, "lookups resolve at access time")

	event := discord.ScheduledEvent{ID: 1, GuildID: testGuildID, CreatorID: snowflakePtr(testSelfID)}
	creator, ok := event.CreatorUser(ctx(t), state)
	require.True(t, ok)
	assert.Equal(t, "self", creator.Username)

	_, ok = discord.ScheduledEvent{ID: 1, GuildID: testGuildID}.Channel(ctx(t), state)
	assert.False(t, ok)

	stage := discord.StageInstance{GuildID: testGuildID, ChannelID: testStageID}
	stageChannel, ok := stage.Channel(ctx(t), state)
	require.True(t, ok)
	assert.Equal(t, discord.ChannelTypeGuildStageVoice, stageChannel.Type)
}

func TestThreadMember(t *testing.T) {
	t.Parallel()

	state := newGuildState(0)

	threadID := discord.Snowflake(2100)
	state.channels[threadID] = discord.Channel{
		ID:      threadID,
		GuildID: snowflakePtr(testGuildID),
		OwnerID: snowflakePtr(testOtherID),
		Type:    discord.ChannelTypeGuildPublicThread,
	}

	joined := time.Date(2023, time.June, 1, 9, 0, 0, 0, time.UTC)
	member := discord.ThreadMember{
		ID:            snowflakePtr(threadID),
		UserID:        snowflakePtr(testOtherID),
		GuildID:       snowflakePtr(testGuildID),
		JoinTimestamp: discord.NewTimestamp(joined),
	}

	assert.True(t, member.IsThreadOwner(ctx(t), state))

	joinedAt, ok := member.TimeJoined()
	require.True(t, ok)
	assert.True(t, joined.Equal(joinedAt))

	user, ok := member.User(ctx(t), state)
	require.True(t, ok)
	assert.Equal(t, "other", user.Username)

	thread, ok := member.Thread(ctx(t), state)
	require.True(t, ok)
	assert.True(t, thread.Type.IsThread())

	rest := &fakeREST{}
	session := newTestSession(state, rest)

	_, err := member.Remove(ctx(t), session)
	requirePermissionError(t, err, discord.PermissionManageThreads)

	self := discord.ThreadMember{ID: snowflakePtr(threadID), UserID: snowflakePtr(testSelfID), GuildID: snowflakePtr(testGuildID)}
	action, err := self.Remove(ctx(t), session)
	require.NoError(t, err)
	assert.Equal(t, "DELETE /channels/2100/thread-members/3000", action.Route().String())

	_, err = discord.ThreadMember{UserID: snowflakePtr(testSelfID)}.Remove(ctx(t), session)
	assert.ErrorIs(t, err, discord.ErrNoChannelContext)
}

func TestPermissionPreChecks(t *testing.T) {
	t.Parallel()

	rest := &fakeREST{}

	denied := newTestSession(newGuildState(discord.PermissionViewChannel), rest)
	allowed := newTestSession(newGuildState(discord.PermissionViewChannel|discord.PermissionManageWebhooks|discord.PermissionManageEvents|discord.PermissionStageModerator|discord.PermissionManageRoles), rest)
	uncached := newTestSession(newFakeState(), rest)

	webhook := discord.Webhook{ID: 1, GuildID: snowflakePtr(testGuildID), ChannelID: snowflakePtr(testChannelID)}

	_, err := webhook.Delete(ctx(t), denied)
	requirePermissionError(t, err, discord.PermissionManageWebhooks)

	_, err = webhook.Delete(ctx(t), allowed)
	require.NoError(t, err)

	_, err = webhook.Delete(ctx(t), uncached)
	require.NoError(t, err, "unknown permissions are left to discord")

	event := discord.ScheduledEvent{ID: 1, GuildID: testGuildID}

	_, err = event.Delete(ctx(t), denied)
	requirePermissionError(t, err, discord.PermissionManageEvents)

	_, err = event.Delete(ctx(t), allowed)
	require.NoError(t, err)

	stage := discord.StageInstance{GuildID: testGuildID, ChannelID: testStageID}

	_, err = stage.Delete(ctx(t), denied)
	requirePermissionError(t, err, discord.PermissionStageModerator)

	action, err := stage.Delete(ctx(t), allowed)
	require.NoError(t, err)
	assert.Equal(t, "DELETE /stage-instances/2001", action.Route().String())

	overwrite := discord.PermissionOverwrite{ID: testOtherID, ChannelID: testChannelID, GuildID: testGuildID, Type: discord.PermissionOverwriteTypeMember}

	_, err = overwrite.Delete(ctx(t), denied)
	requirePermissionError(t, err, discord.PermissionManageRoles)

	_, err = discord.PermissionOverwrite{ID: testOtherID}.Delete(ctx(t), allowed)
	assert.ErrorIs(t, err, discord.ErrNoChannelContext)

	assert.Empty(t, rest.Calls(), "pre-checks never reach the executor")
}

func TestChannelOverwriteDenialIsChecked(t *testing.T) {
	t.Parallel()

	state := newGuildState(discord.PermissionViewChannel | discord.PermissionManageWebhooks)

	channel := state.channels[testChannelID]
	channel.PermissionOverwrites = discord.PermissionOverwrites{
		{ID: testGuildID, Type: discord.PermissionOverwriteTypeRole, Deny: discord.Int64(discord.PermissionManageWebhooks)},
	}
	state.channels[testChannelID] = channel

	session := newTestSession(state, &fakeREST{})

	perms, ok := session.SelfPermissions(ctx(t), testGuildID, testChannelID)
	require.True(t, ok)
	assert.False(t, perms.Has(discord.PermissionManageWebhooks))

	_, err := discord.Webhook{ID: 1, GuildID: snowflakePtr(testGuildID), ChannelID: snowflakePtr(testChannelID)}.Delete(ctx(t), session)
	requirePermissionError(t, err, discord.PermissionManageWebhooks)
}

func TestPermissionOverwriteModify(t *testing.T) {
	t.Parallel()

	session := newTestSession(newGuildState(discord.PermissionManageRoles), &fakeREST{})
	overwrite := discord.PermissionOverwrite{ID: testModRoleID, ChannelID: testChannelID, GuildID: testGuildID, Type: discord.PermissionOverwriteTypeRole}

	action, err := overwrite.Modify(ctx(t), session, discord.PermissionViewChannel|discord.PermissionSendMessages, discord.PermissionSendMessages)
	require.NoError(t, err)

	assert.Equal(t, "PUT /channels/2000/permissions/4000", action.Route().String())

	b, err := jsonx.Marshal(action.Body())
	require.NoError(t, err)
	assert.JSONEq(t, `{"allow":"1024","deny":"2048","type":0}`, string(b))
}

func TestWebhookTokenModes(t *testing.T) {
	t.Parallel()

	session := newTestSession(nil, &fakeREST{})
	session.Token = ""

	name := "hook"

	action, err := discord.Webhook{ID: 1, Token: "tok"}.Modify(ctx(t), session, discord.WebhookParams{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "PATCH /webhooks/1/tok", action.Route().String())

	_, err = discord.Webhook{ID: 1, Token: "tok"}.Modify(ctx(t), session, discord.WebhookParams{ChannelID: snowflakePtr(testChannelID)})
	requireValidationError(t, err, "channel_id")

	_, err = discord.Webhook{ID: 1}.Delete(ctx(t), session)
	assert.ErrorIs(t, err, discord.ErrMissingToken)

	_, err = discord.Webhook{ID: 1}.DeleteWithToken(session, "")
	requireValidationError(t, err, "token")
}

func TestVoiceStateSpeakers(t *testing.T) {
	t.Parallel()

	state := newGuildState(discord.PermissionVoiceMuteMembers | discord.PermissionVoiceRequestToSpeak)
	session := newTestSession(state, &fakeREST{})

	voiceState := discord.GuildVoiceState{
		GuildID:   snowflakePtr(testGuildID),
		ChannelID: snowflakePtr(testStageID),
		UserID:    testOtherID,
		Suppress:  true,
	}

	assert.True(t, voiceState.InAudioChannel())
	assert.True(t, voiceState.IsSuppressed())

	approve, err := voiceState.ApproveSpeaker(ctx(t), session)
	require.NoError(t, err)
	assert.Equal(t, "PATCH /guilds/1000/voice-states/3001", approve.Route().String())

	b, err := jsonx.Marshal(approve.Body())
	require.NoError(t, err)
	assert.JSONEq(t, `{"channel_id":"2001","suppress":false}`, string(b))

	decline, err := voiceState.DeclineSpeaker(ctx(t), session)
	require.NoError(t, err)

	b, err = jsonx.Marshal(decline.Body())
	require.NoError(t, err)
	assert.JSONEq(t, `{"channel_id":"2001","suppress":true}`, string(b))

	_, err = voiceState.InviteSpeaker(ctx(t), session)
	require.NoError(t, err)

	request, err := voiceState.RequestToSpeak(ctx(t), session)
	require.NoError(t, err)
	assert.Equal(t, "PATCH /guilds/1000/voice-states/@me", request.Route().String())

	inText := voiceState
	inText.ChannelID = snowflakePtr(testChannelID)

	_, err = inText.ApproveSpeaker(ctx(t), session)
	assert.ErrorIs(t, err, discord.ErrNotStageChannel)

	disconnected := voiceState
	disconnected.ChannelID = nil

	_, err = disconnected.InviteSpeaker(ctx(t), session)
	assert.ErrorIs(t, err, discord.ErrNotStageChannel)

	_, ok := disconnected.Channel(ctx(t), state)
	assert.False(t, ok)

	noMute := newTestSession(newGuildState(0), &fakeREST{})

	_, err = voiceState.ApproveSpeaker(ctx(t), noMute)
	requirePermissionError(t, err, discord.PermissionVoiceMuteMembers)
}

func TestVoiceStateGetters(t *testing.T) {
	t.Parallel()

	raised := time.Date(2024, time.January, 2, 3, 4, 5, 0, time.UTC)
	ts := discord.NewTimestamp(raised)

	voiceState := discord.GuildVoiceState{SelfMute: true, Deaf: true, SelfStream: true, RequestToSpeakTimestamp: &ts}

	assert.True(t, voiceState.IsMuted())
	assert.False(t, voiceState.IsGuildMuted())
	assert.True(t, voiceState.IsDeafened())
	assert.True(t, voiceState.IsGuildDeafened())
	assert.True(t, voiceState.IsStream())
	assert.False(t, voiceState.IsSendingVideo())
	assert.False(t, voiceState.InAudioChannel())

	requested, ok := voiceState.RequestToSpeakTime()
	require.True(t, ok)
	assert.True(t, raised.Equal(requested))

	_, ok = discord.GuildVoiceState{}.RequestToSpeakTime()
	assert.False(t, ok)
}

func TestWidgetAvailability(t *testing.T) {
	t.Parallel()

	var widget discord.Widget

	require.NoError(t, jsonx.Unmarshal([]byte(`{
		"id": "1000",
		"name": "Welcomer",
		"instant_invite": "https://discord.com/invite/abcdef",
		"channels": [{"id": "2001", "name": "Stage", "position": 1}],
		"members": [{"id": "0", "username": "kim", "status": "online"}],
		"presence_count": 12
	}`), &widget))

	assert.True(t, widget.IsAvailable())
	assert.Equal(t, testGuildID, widget.ID())
	assert.Equal(t, "abcdef", widget.InviteCode())
	assert.Equal(t, "https://discord.gg/abcdef", widget.InviteURL())
	assert.Equal(t, int32(12), widget.PresenceCount())

	name, err := widget.Name()
	require.NoError(t, err)
	assert.Equal(t, "Welcomer", name)

	members, err := widget.Members()
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, discord.OnlineStatusOnline, members[0].Status)

	unavailable := discord.NewUnavailableWidget(testGuildID)

	assert.False(t, unavailable.IsAvailable())
	assert.Equal(t, testGuildID, unavailable.ID())
	assert.Empty(t, unavailable.InviteCode())
	assert.Zero(t, unavailable.PresenceCount())

	_, err = unavailable.Name()
	assert.ErrorIs(t, err, discord.ErrWidgetUnavailable)

	_, err = unavailable.Members()
	assert.ErrorIs(t, err, discord.ErrWidgetUnavailable)

	_, err = unavailable.VoiceChannels()
	assert.ErrorIs(t, err, discord.ErrWidgetUnavailable)

	require.NoError(t, unavailable.UnmarshalJSON([]byte("null")))
	assert.False(t, unavailable.IsAvailable())
	assert.Equal(t, testGuildID, unavailable.ID())

	var decoded struct {
		Widget discord.Widget `json:"widget"`
	}

	require.NoError(t, jsonx.Unmarshal([]byte(`{"widget":null}`), &decoded))
	assert.False(t, decoded.Widget.IsAvailable())

	_, err = decoded.Widget.Name()
	assert.ErrorIs(t, err, discord.ErrWidgetUnavailable)
}

func TestVanityInviteAction(t *testing.T) {
	t.Parallel()

	session := newTestSession(nil, &fakeREST{})

	_, err := discord.Guild{ID: testGuildID, Features: discord.StringList{"COMMUNITY"}}.RetrieveVanityInvite(ctx(t), session)
	assert.ErrorIs(t, err, discord.ErrNoVanityURL)

	action, err := discord.Guild{ID: testGuildID, Features: discord.StringList{"VANITY_URL"}}.RetrieveVanityInvite(ctx(t), session)
	require.NoError(t, err)
	assert.Equal(t, "GET /guilds/1000/vanity-url", action.Route().String())

	action, err = discord.RetrieveVanityInvite(ctx(t), session, testGuildID)
	require.NoError(t, err)
	assert.Equal(t, "/guilds/1000/vanity-url", action.Route().Endpoint())
}

func TestRoleConnectionMetadataActions(t *testing.T) {
	t.Parallel()

	session := newTestSession(nil, &fakeREST{})

	record, err := discord.NewRoleConnectionMetadata(discord.MetadataTypeBooleanEqual, "verified", "Verified", "Has verified")
	require.NoError(t, err)

	action, err := discord.UpdateRoleConnectionMetadata(session, []discord.RoleConnectionMetadata{record})
	require.NoError(t, err)
	assert.Equal(t, "PUT /applications/5000/role-connections/metadata", action.Route().String())

	retrieve, err := discord.RetrieveRoleConnectionMetadata(session)
	require.NoError(t, err)
	assert.Equal(t, "GET /applications/5000/role-connections/metadata", retrieve.Route().String())

	session.ApplicationID = 0

	_, err = discord.RetrieveRoleConnectionMetadata(session)
	requireValidationError(t, err, "application_id")
}

func TestEntitlements(t *testing.T) {
	t.Parallel()

	session := newTestSession(nil, &fakeREST{})

	_, err := discord.Entitlement{ID: 1, ApplicationID: 2, Type: discord.EntitlementTypePurchase}.Delete(session)
	assert.ErrorIs(t, err, discord.ErrNotTestEntitlement)

	action, err := discord.Entitlement{ID: 1, ApplicationID: 2, Type: discord.EntitlementTypeTestModePurchase}.Delete(session)
	require.NoError(t, err)
	assert.Equal(t, "DELETE /applications/2/entitlements/1", action.Route().String())

	starts := discord.NewTimestamp(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))
	ends := discord.NewTimestamp(time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC))
	entitlement := discord.Entitlement{StartsAt: &starts, EndsAt: &ends}

	assert.True(t, entitlement.IsActive(time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)))
	assert.False(t, entitlement.IsActive(time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, entitlement.IsActive(time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC)))
}

func TestScheduledEventCompare(t *testing.T) {
	t.Parallel()

	early := discord.ScheduledEvent{ID: 5, ScheduledStartTime: discord.NewTimestamp(time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC))}
	late := discord.ScheduledEvent{ID: 1, ScheduledStartTime: discord.NewTimestamp(time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC))}
	sameTime := early
	sameTime.ID = 6

	assert.Equal(t, -1, early.Compare(late))
	assert.Equal(t, 1, late.Compare(early))
	assert.Equal(t, -1, early.Compare(sameTime))
	assert.Equal(t, 0, early.Compare(early))

	external := discord.ScheduledEvent{EntityType: discord.ScheduledEventTypeExternal, EntityMetadata: &discord.EventMetadata{Location: "Town hall"}}
	assert.Equal(t, "Town hall", external.Location())

	voice := discord.ScheduledEvent{EntityType: discord.ScheduledEventTypeVoice, ChannelID: snowflakePtr(testChannelID)}
	assert.Equal(t, "2000", voice.Location())
}

func TestActionsWithoutSession(t *testing.T) {
	t.Parallel()

	webhook := discord.Webhook{ID: 42, Token: "tok-en"}
	name := "renamed"

	_, err := webhook.Modify(ctx(t), nil, discord.WebhookParams{Name: &name})
	assert.ErrorIs(t, err, discord.ErrNoExecutor)

	_, err = webhook.Delete(ctx(t), nil)
	assert.ErrorIs(t, err, discord.ErrNoExecutor)

	member := discord.ThreadMember{ID: snowflakePtr(2100), UserID: snowflakePtr(testOtherID), GuildID: snowflakePtr(testGuildID)}

	_, err = member.Remove(ctx(t), nil)
	assert.ErrorIs(t, err, discord.ErrNoExecutor)

	voiceState := discord.GuildVoiceState{GuildID: snowflakePtr(testGuildID), ChannelID: snowflakePtr(testStageID), UserID: testOtherID}

	_, err = voiceState.ApproveSpeaker(ctx(t), nil)
	assert.ErrorIs(t, err, discord.ErrNoExecutor)

	_, err = voiceState.RequestToSpeak(ctx(t), nil)
	assert.ErrorIs(t, err, discord.ErrNoExecutor)

	_, err = discord.RetrieveVanityInvite(ctx(t), nil, testGuildID)
	assert.ErrorIs(t, err, discord.ErrNoExecutor)

	_, err = discord.RetrieveRoleConnectionMetadata(nil)
	assert.ErrorIs(t, err, discord.ErrNoExecutor)

	_, err = discord.UpdateRoleConnectionMetadata(nil, nil)
	assert.ErrorIs(t, err, discord.ErrNoExecutor)
}
