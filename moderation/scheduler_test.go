package moderation

import (
	"testing"
	"time"

	"cascade-bot/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupScheduler(t *testing.T) (*UnmuteScheduler, *fakeActor, *fakeStore) {
	t.Helper()

	actor := newFakeActor()
	store := newFakeStore()
	s := NewUnmuteScheduler(actor, store, zap.NewNop())
	t.Cleanup(s.Stop)
	return s, actor, store
}

func pendingTask(fireAt time.Time) model.PendingUnmute {
	return model.PendingUnmute{
		GuildID: "g1",
		UserID:  "target",
		RoleID:  "r-mute",
		FireAt:  fireAt,
	}
}

func TestScheduleRemovesRoleWhenDue(t *testing.T) {
	t.Parallel()
	s, actor, store := setupScheduler(t)
	actor.putMember("g1", &Member{UserID: "target", Roles: []string{"r-mute", "r-member"}})

	require.NoError(t, s.Schedule(pendingTask(time.Now().Add(20*time.Millisecond))))

	require.Eventually(t, func() bool {
		_, removed, _ := actor.snapshot()
		return len(removed) == 1
	}, 2*time.Second, 10*time.Millisecond)

	_, removed, dms := actor.snapshot()
	assert.Equal(t, []string{"g1:target:r-mute"}, removed)
	assert.Equal(t, []string{"target"}, dms)

	require.Eventually(t, func() bool {
		return store.pendingCount() == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestScheduleReplacesEarlierTimer(t *testing.T) {
	t.Parallel()
	s, actor, store := setupScheduler(t)
	actor.putMember("g1", &Member{UserID: "target", Roles: []string{"r-mute"}})

	require.NoError(t, s.Schedule(pendingTask(time.Now().Add(time.Hour))))
	require.NoError(t, s.Schedule(pendingTask(time.Now().Add(2*time.Hour))))

	// The first row is deleted when its timer is replaced; only the second
	// remains pending.
	require.Eventually(t, func() bool {
		return store.pendingCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	_, removed, _ := actor.snapshot()
	assert.Empty(t, removed)
}

func TestFireSkipsDepartedMember(t *testing.T) {
	t.Parallel()
	s, actor, store := setupScheduler(t)
	// No member registered: the user left the guild before the mute expired.

	require.NoError(t, s.Schedule(pendingTask(time.Now().Add(20*time.Millisecond))))

	require.Eventually(t, func() bool {
		return store.pendingCount() == 0
	}, 2*time.Second, 10*time.Millisecond)

	_, removed, dms := actor.snapshot()
	assert.Empty(t, removed)
	assert.Empty(t, dms)
}

func TestFireSkipsAlreadyUnmutedMember(t *testing.T) {
	t.Parallel()
	s, actor, store := setupScheduler(t)
	actor.putMember("g1", &Member{UserID: "target", Roles: []string{"r-member"}})

	require.NoError(t, s.Schedule(pendingTask(time.Now().Add(20*time.Millisecond))))

	require.Eventually(t, func() bool {
		return store.pendingCount() == 0
	}, 2*time.Second, 10*time.Millisecond)

	_, removed, dms := actor.snapshot()
	assert.Empty(t, removed)
	assert.Empty(t, dms)
}

func TestRestoreFiresPastDueEntries(t *testing.T) {
	t.Parallel()
	s, actor, store := setupScheduler(t)
	actor.putMember("g1", &Member{UserID: "target", Roles: []string{"r-mute"}})

	_, err := store.AddPendingUnmute(pendingTask(time.Now().Add(-time.Minute)))
	require.NoError(t, err)

	require.NoError(t, s.Restore())

	require.Eventually(t, func() bool {
		_, removed, _ := actor.snapshot()
		return len(removed) == 1
	}, 2*time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool {
		return store.pendingCount() == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSweepOverdueCatchesUnarmedEntries(t *testing.T) {
	t.Parallel()
	s, actor, store := setupScheduler(t)
	actor.putMember("g1", &Member{UserID: "target", Roles: []string{"r-mute"}})

	// Row exists in storage but no timer was armed for it.
	_, err := store.AddPendingUnmute(pendingTask(time.Now().Add(-time.Second)))
	require.NoError(t, err)

	s.SweepOverdue()

	require.Eventually(t, func() bool {
		_, removed, _ := actor.snapshot()
		return len(removed) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSweepOverdueIgnoresFutureEntries(t *testing.T) {
	t.Parallel()
	s, actor, store := setupScheduler(t)
	actor.putMember("g1", &Member{UserID: "target", Roles: []string{"r-mute"}})

	_, err := store.AddPendingUnmute(pendingTask(time.Now().Add(time.Hour)))
	require.NoError(t, err)

	s.SweepOverdue()

	time.Sleep(50 * time.Millisecond)
	_, removed, _ := actor.snapshot()
	assert.Empty(t, removed)
	assert.Equal(t, 1, store.pendingCount())
}

func TestCancelDropsTimerAndRows(t *testing.T) {
	t.Parallel()
	s, actor, store := setupScheduler(t)
	actor.putMember("g1", &Member{UserID: "target", Roles: []string{"r-mute"}})

	require.NoError(t, s.Schedule(pendingTask(time.Now().Add(50*time.Millisecond))))
	require.NoError(t, s.Cancel("g1", "target"))

	assert.Zero(t, store.pendingCount())

	// The cancelled timer must not fire.
	time.Sleep(150 * time.Millisecond)
	_, removed, _ := actor.snapshot()
	assert.Empty(t, removed)
}

func TestFireSkipsCancelledEntry(t *testing.T) {
	t.Parallel()
	s, actor, _ := setupScheduler(t)
	actor.putMember("g1", &Member{UserID: "target", Roles: []string{"r-mute"}})

	// The entry was cancelled after its timer already fired, as a re-mute
	// does when it replaces the timer.
	cancelled := make(chan struct{})
	close(cancelled)
	s.fire(pendingTask(time.Now()), cancelled)

	_, removed, dms := actor.snapshot()
	assert.Empty(t, removed)
	assert.Empty(t, dms)
}

func TestCancelWithoutTimerIsHarmless(t *testing.T) {
	t.Parallel()
	s, _, store := setupScheduler(t)

	require.NoError(t, s.Cancel("g1", "nobody"))
	assert.Zero(t, store.pendingCount())
}

func TestStopKeepsRowsForNextRestore(t *testing.T) {
	t.Parallel()

	actor := newFakeActor()
	store := newFakeStore()
	s := NewUnmuteScheduler(actor, store, zap.NewNop())
	actor.putMember("g1", &Member{UserID: "target", Roles: []string{"r-mute"}})

	require.NoError(t, s.Schedule(pendingTask(time.Now().Add(time.Hour))))
	s.Stop()

	assert.Equal(t, 1, store.pendingCount())
	_, removed, _ := actor.snapshot()
	assert.Empty(t, removed)
}
