package session

import (
	"context"
	"time"

	"github.com/sujeetunbeatable/liorea-cli/internal/client/models"
)

// runRoster polls the roster once immediately, then on every interval, until
// its context is cancelled.
func (s *Session) runRoster(ctx context.Context) {
	defer s.wg.Done()

	s.pollRoster(ctx)

	ticker := time.NewTicker(s.rosterInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.pollRoster(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// pollRoster fetches the authoritative snapshot and replaces the local view
// with it, no diffing and no merge. The only local adjustment is the self
// high-water mark, lifted to the snapshot total when the snapshot is ahead.
func (s *Session) pollRoster(ctx context.Context) {
	if !s.isVisible() {
		return
	}

	users, err := s.backend.FetchRoster(ctx)
	if err != nil {
		s.log.Warn(ctx, "roster poll failed", "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == "" {
		// Logged out while the poll was in flight; drop the stale snapshot.
		return
	}
	s.roster = users
	for _, u := range users {
		if u.Username == s.identity && u.TotalStudyMinutes > s.selfFloor {
			s.selfFloor = u.TotalStudyMinutes
		}
	}
}

// Roster returns a copy of the last raw snapshot. Totals here are exactly
// what the remote service reported and can lag behind locally accrued
// minutes.
func (s *Session) Roster() []models.OnlineUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.OnlineUser(nil), s.roster...)
}

// Leaderboard returns the roster ordered by descending study total, with the
// caller's own row lifted to the high-water mark so one's own progress never
// appears to go backward across a flush/poll race.
func (s *Session) Leaderboard() []models.OnlineUser {
	s.mu.Lock()
	users := append([]models.OnlineUser(nil), s.roster...)
	name := s.identity
	floor := s.selfFloor
	s.mu.Unlock()

	for i := range users {
		if users[i].Username == name && users[i].TotalStudyMinutes < floor {
			users[i].TotalStudyMinutes = floor
		}
	}
	models.SortByStudyTime(users)
	return users
}

// SelfTotalMinutes returns the displayed study total for the current
// identity: the high-water mark of remote snapshots and local accrual.
func (s *Session) SelfTotalMinutes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selfFloor
}
