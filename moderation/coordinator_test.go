package moderation

import (
	"testing"
	"time"

	"cascade-bot/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupCoordinator(t *testing.T) (*Coordinator, *fakeActor, *fakeStore, *fakeUnmuter) {
	t.Helper()

	actor := newFakeActor()
	store := newFakeStore()
	unmuter := &fakeUnmuter{}
	c := NewCoordinator(actor, store, unmuter, zap.NewNop())
	c.SetSelfID("bot")

	actor.putMember("g1", &Member{UserID: "mod", TopRoleRank: 6})
	actor.putMember("g1", &Member{UserID: "target", TopRoleRank: 3})
	return c, actor, store, unmuter
}

func modRequest(targetID string) Request {
	return Request{
		GuildID:     "g1",
		TargetID:    targetID,
		ModeratorID: "mod",
		Reason:      "spamming",
	}
}

func TestWarnRecordsActionAndCount(t *testing.T) {
	t.Parallel()
	c, actor, store, _ := setupCoordinator(t)

	first, err := c.Warn(modRequest("target"))
	require.NoError(t, err)
	assert.Equal(t, model.ActionWarn, first.ActionType)
	assert.Equal(t, int64(1), first.WarningCount)

	second, err := c.Warn(modRequest("target"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.WarningCount)

	actions, err := store.ListActions("target")
	require.NoError(t, err)
	require.Len(t, actions, 2)
	assert.Equal(t, "spamming", actions[0].Reason)
	assert.Equal(t, "mod", actions[0].ModeratorID)

	_, _, dms := actor.snapshot()
	assert.Len(t, dms, 2)
}

func TestWarnCounterFailureIsNotFatal(t *testing.T) {
	t.Parallel()
	c, _, store, _ := setupCoordinator(t)
	store.warnErr = assert.AnError

	result, err := c.Warn(modRequest("target"))
	require.NoError(t, err)
	assert.Zero(t, result.WarningCount)
	require.Len(t, store.actions, 1)
}

func TestSelfAndBotTargetsRejected(t *testing.T) {
	t.Parallel()
	c, _, store, _ := setupCoordinator(t)

	req := modRequest("mod")
	_, err := c.Warn(req)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)

	req = modRequest("bot")
	_, err = c.Warn(req)
	require.ErrorAs(t, err, &validationErr)

	assert.Empty(t, store.actions)
}

func TestHierarchyEnforced(t *testing.T) {
	t.Parallel()
	c, actor, store, _ := setupCoordinator(t)
	actor.putMember("g1", &Member{UserID: "peer", TopRoleRank: 6})

	_, err := c.Warn(modRequest("peer"))
	var authorityErr *AuthorityError
	require.ErrorAs(t, err, &authorityErr)
	assert.Empty(t, store.actions)
}

func TestGuildOwnerBypassesHierarchy(t *testing.T) {
	t.Parallel()
	c, actor, _, _ := setupCoordinator(t)
	actor.putMember("g1", &Member{UserID: "owner", TopRoleRank: 0})
	actor.putMember("g1", &Member{UserID: "topdog", TopRoleRank: 99})

	req := Request{GuildID: "g1", TargetID: "topdog", ModeratorID: "owner", Reason: "even admins"}
	result, err := c.Warn(req)
	require.NoError(t, err)
	assert.Equal(t, model.ActionWarn, result.ActionType)
}

func TestTargetNotInGuild(t *testing.T) {
	t.Parallel()
	c, _, _, _ := setupCoordinator(t)

	_, err := c.Warn(modRequest("stranger"))
	var executionErr *ExecutionError
	require.ErrorAs(t, err, &executionErr)
}

func TestMuteEndToEnd(t *testing.T) {
	t.Parallel()
	c, actor, store, unmuter := setupCoordinator(t)
	actor.roles = []Role{{ID: "r-mute", Name: "Muted", Rank: 1}}

	req := modRequest("target")
	req.Duration = "30m"
	before := time.Now()
	result, err := c.Mute(req)
	require.NoError(t, err)

	assert.Equal(t, 30*time.Minute, result.Duration)
	assert.WithinDuration(t, before.Add(30*time.Minute), result.UnmuteAt, 5*time.Second)

	require.Len(t, store.actions, 1)
	assert.Equal(t, model.ActionMute, store.actions[0].ActionType)
	assert.Equal(t, int64(1800), store.actions[0].DurationSeconds)

	tasks := unmuter.scheduled()
	require.Len(t, tasks, 1)
	assert.Equal(t, "r-mute", tasks[0].RoleID)
	assert.Equal(t, "target", tasks[0].UserID)

	events, _, dms := actor.snapshot()
	assert.Contains(t, events, "add-role")
	assert.Len(t, dms, 1)
}

func TestMuteRejectsBadDuration(t *testing.T) {
	t.Parallel()
	c, _, store, _ := setupCoordinator(t)

	for _, input := range []string{"", "soon", "90", "0s"} {
		req := modRequest("target")
		req.Duration = input
		_, err := c.Mute(req)
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr, "input %q", input)
	}
	assert.Empty(t, store.actions)
}

func TestMuteAcceptsMaximumDuration(t *testing.T) {
	t.Parallel()
	c, actor, store, unmuter := setupCoordinator(t)
	actor.roles = []Role{{ID: "r-mute", Name: "Muted", Rank: 1}}

	req := modRequest("target")
	req.Duration = "28d"
	result, err := c.Mute(req)
	require.NoError(t, err)
	assert.Equal(t, MaxMuteDuration, result.Duration)

	require.Len(t, store.actions, 1)
	assert.Equal(t, int64(2419200), store.actions[0].DurationSeconds)
	assert.Len(t, unmuter.scheduled(), 1)
}

func TestMuteRejectsOverMaximum(t *testing.T) {
	t.Parallel()
	c, _, _, _ := setupCoordinator(t)

	req := modRequest("target")
	req.Duration = "28d1s"
	_, err := c.Mute(req)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Message, "28 days")
}

func TestMuteCreatesRoleWhenMissing(t *testing.T) {
	t.Parallel()
	c, actor, store, _ := setupCoordinator(t)
	actor.roles = []Role{{ID: "r-admin", Name: "Admin", Rank: 5}}
	actor.channels = []Channel{
		{ID: "ch-text", Type: ChannelText},
		{ID: "ch-voice", Type: ChannelVoice},
	}

	req := modRequest("target")
	req.Duration = "1h"
	_, err := c.Mute(req)
	require.NoError(t, err)

	events, _, _ := actor.snapshot()
	assert.Contains(t, events, "create-role")

	textDeny := actor.overrides["ch-text"]
	assert.True(t, textDeny.SendMessages)
	assert.True(t, textDeny.AddReactions)
	voiceDeny := actor.overrides["ch-voice"]
	assert.True(t, voiceDeny.Speak)
	assert.True(t, voiceDeny.Connect)

	cfg, err := store.GetServerConfig("g1")
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "created-role", cfg.MuteRoleID)
}

func TestMuteReusesRoleMatchingByName(t *testing.T) {
	t.Parallel()
	c, actor, store, _ := setupCoordinator(t)
	actor.roles = []Role{
		{ID: "r-admin", Name: "Admin", Rank: 5},
		{ID: "r-silenced", Name: "server-muted", Rank: 1},
	}

	req := modRequest("target")
	req.Duration = "1h"
	_, err := c.Mute(req)
	require.NoError(t, err)

	events, _, _ := actor.snapshot()
	assert.NotContains(t, events, "create-role")

	cfg, err := store.GetServerConfig("g1")
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "r-silenced", cfg.MuteRoleID)
}

func TestMuteSchedulingFailureKeepsMute(t *testing.T) {
	t.Parallel()
	c, actor, store, unmuter := setupCoordinator(t)
	unmuter.err = assert.AnError
	muteRole := "r-mute"
	require.NoError(t, store.UpsertServerConfig("g1", model.ServerConfigPatch{MuteRoleID: &muteRole}))
	actor.roles = []Role{{ID: "r-mute", Name: "Muted"}}

	req := modRequest("target")
	req.Duration = "15m"
	result, err := c.Mute(req)
	require.NoError(t, err)
	assert.Equal(t, model.ActionMute, result.ActionType)
	require.Len(t, store.actions, 1)
}

func TestUnmuteLiftsActiveMute(t *testing.T) {
	t.Parallel()
	c, actor, store, unmuter := setupCoordinator(t)
	actor.roles = []Role{{ID: "r-mute", Name: "Muted", Rank: 1}}
	actor.putMember("g1", &Member{UserID: "target", TopRoleRank: 3, Roles: []string{"r-mute"}})

	result, err := c.Unmute(modRequest("target"))
	require.NoError(t, err)
	assert.Equal(t, model.ActionUnmute, result.ActionType)

	_, removed, dms := actor.snapshot()
	assert.Equal(t, []string{"g1:target:r-mute"}, removed)
	assert.Len(t, dms, 1)

	require.Len(t, unmuter.cancelled, 1)
	assert.Equal(t, "g1:target", unmuter.cancelled[0])

	require.Len(t, store.actions, 1)
	assert.Equal(t, model.ActionUnmute, store.actions[0].ActionType)
}

func TestUnmuteRejectsUnmutedMember(t *testing.T) {
	t.Parallel()
	c, actor, store, _ := setupCoordinator(t)
	actor.roles = []Role{{ID: "r-mute", Name: "Muted", Rank: 1}}

	_, err := c.Unmute(modRequest("target"))
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Empty(t, store.actions)
}

func TestUnmuteWithoutMuteRole(t *testing.T) {
	t.Parallel()
	c, _, _, _ := setupCoordinator(t)

	_, err := c.Unmute(modRequest("target"))
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Message, "no mute role")
}

func TestKickSendsNoticeBeforeRemoval(t *testing.T) {
	t.Parallel()
	c, actor, store, _ := setupCoordinator(t)

	result, err := c.Kick(modRequest("target"))
	require.NoError(t, err)
	assert.Equal(t, model.ActionKick, result.ActionType)

	events, _, _ := actor.snapshot()
	require.Len(t, events, 2)
	assert.Equal(t, "dm", events[0])
	assert.Equal(t, "kick", events[1])
	require.Len(t, store.actions, 1)
	assert.Equal(t, model.ActionKick, store.actions[0].ActionType)
}

func TestBanRecordsAction(t *testing.T) {
	t.Parallel()
	c, actor, store, _ := setupCoordinator(t)

	result, err := c.Ban(modRequest("target"))
	require.NoError(t, err)
	assert.Equal(t, model.ActionBan, result.ActionType)

	events, _, _ := actor.snapshot()
	assert.Equal(t, []string{"dm", "ban"}, events)
	require.Len(t, store.actions, 1)
	assert.Equal(t, model.ActionBan, store.actions[0].ActionType)
}
