package session

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sujeetunbeatable/liorea-cli/internal/client/models"
)

func setRoster(backend *fakeBackend, users ...models.OnlineUser) {
	backend.mu.Lock()
	backend.RosterRet = users
	backend.mu.Unlock()
}

func TestRoster_SnapshotReplacesLocalState(t *testing.T) {
	backend := &fakeBackend{}
	s := newTestSession(t, backend, nil)
	ctx := context.Background()

	setRoster(backend,
		models.OnlineUser{Username: "alice", TotalStudyMinutes: 3},
		models.OnlineUser{Username: "bob", TotalStudyMinutes: 9},
	)
	require.NoError(t, s.SetIdentity(ctx, "alice"))
	require.Eventually(t, func() bool { return len(s.Roster()) == 2 },
		time.Second, 5*time.Millisecond)

	// A later snapshot fully replaces the previous one, no merging.
	setRoster(backend, models.OnlineUser{Username: "bob", TotalStudyMinutes: 10})
	s.pollRoster(ctx)

	roster := s.Roster()
	require.Len(t, roster, 1)
	require.Equal(t, "bob", roster[0].Username)
}

func TestRoster_PollFailureKeepsLastSnapshot(t *testing.T) {
	backend := &fakeBackend{}
	s := newTestSession(t, backend, nil)
	ctx := context.Background()

	setRoster(backend, models.OnlineUser{Username: "bob", TotalStudyMinutes: 9})
	require.NoError(t, s.SetIdentity(ctx, "alice"))
	require.Eventually(t, func() bool { return len(s.Roster()) == 1 },
		time.Second, 5*time.Millisecond)

	backend.mu.Lock()
	backend.RosterErr = errors.New("network down")
	backend.mu.Unlock()
	s.pollRoster(ctx)

	require.Len(t, s.Roster(), 1, "stale roster is better than no roster")
}

func TestRoster_SkippedWhileHidden(t *testing.T) {
	var visible atomic.Bool
	backend := &fakeBackend{}
	s := newTestSession(t, backend, func(o *Options) {
		o.Visible = visible.Load
	})
	ctx := context.Background()

	setRoster(backend, models.OnlineUser{Username: "bob"})
	require.NoError(t, s.SetIdentity(ctx, "alice"))

	s.pollRoster(ctx)
	require.Empty(t, s.Roster())

	visible.Store(true)
	s.pollRoster(ctx)
	require.Len(t, s.Roster(), 1)
}

func TestLeaderboard_SortedByDescendingTotal(t *testing.T) {
	backend := &fakeBackend{}
	s := newTestSession(t, backend, nil)
	ctx := context.Background()

	setRoster(backend,
		models.OnlineUser{Username: "alice", TotalStudyMinutes: 3},
		models.OnlineUser{Username: "bob", TotalStudyMinutes: 9},
		models.OnlineUser{Username: "eve", TotalStudyMinutes: 5},
	)
	require.NoError(t, s.SetIdentity(ctx, "alice"))
	s.pollRoster(ctx)

	board := s.Leaderboard()
	require.Equal(t, "bob", board[0].Username)
	require.Equal(t, "eve", board[1].Username)
	require.Equal(t, "alice", board[2].Username)
}

// The flush/poll race from the behavioral contract: a stale snapshot arrives
// after local minutes were accrued. The raw snapshot regresses (documented
// gap) while the displayed self total does not.
func TestRoster_StaleSnapshotRace(t *testing.T) {
	backend := &fakeBackend{}
	s := newTestSession(t, backend, func(o *Options) { o.FlushBatch = 5 })
	ctx := context.Background()

	setRoster(backend, models.OnlineUser{Username: "alice", TotalStudyMinutes: 0})
	join(t, s, "alice")

	// 7 ticks: one batch of 5 flushed, 2 still unsaved.
	for i := 0; i < 6; i++ {
		s.accrueTick(ctx)
	}
	require.Equal(t, []int{5}, backend.flushed())
	require.Equal(t, 2, s.UnsavedMinutes())
	require.Equal(t, 7, s.SelfTotalMinutes())

	// A concurrent poll returns the pre-flush total.
	setRoster(backend, models.OnlineUser{Username: "alice", TotalStudyMinutes: 0})
	s.pollRoster(ctx)

	// Raw snapshot regresses to the stale remote value...
	raw := s.Roster()
	require.Equal(t, 0, raw[0].TotalStudyMinutes)

	// ...but the displayed total holds the high-water mark.
	require.Equal(t, 7, s.SelfTotalMinutes())
	board := s.Leaderboard()
	require.Equal(t, 7, board[0].TotalStudyMinutes)

	// Once the remote catches up, snapshot and display agree again.
	setRoster(backend, models.OnlineUser{Username: "alice", TotalStudyMinutes: 9})
	s.pollRoster(ctx)
	require.Equal(t, 9, s.SelfTotalMinutes())
}

func TestRoster_StaleResponseAfterLogoutIsDiscarded(t *testing.T) {
	backend := &fakeBackend{}
	s := newTestSession(t, backend, nil)
	ctx := context.Background()

	setRoster(backend, models.OnlineUser{Username: "alice", TotalStudyMinutes: 4})
	require.NoError(t, s.SetIdentity(ctx, "alice"))
	require.NoError(t, s.SetIdentity(ctx, ""))

	s.pollRoster(ctx)
	require.Empty(t, s.Roster(), "snapshot for a cleared identity must not be applied")
}
