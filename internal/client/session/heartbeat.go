package session

import (
	"context"
	"time"
)

// runHeartbeat signals liveness once immediately, then on every interval,
// until its context is cancelled.
func (s *Session) runHeartbeat(ctx context.Context) {
	defer s.wg.Done()

	s.beat(ctx)

	ticker := time.NewTicker(s.heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.beat(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// beat sends one heartbeat. Skipped while not visible; failures are logged
// and swallowed. A missed beat has no local consequence, the remote timeout
// policy decides when a user counts as offline.
func (s *Session) beat(ctx context.Context) {
	if !s.isVisible() {
		return
	}

	s.mu.Lock()
	name := s.identity
	s.mu.Unlock()
	if name == "" {
		return
	}

	if err := s.backend.Heartbeat(ctx, name, s.deviceID); err != nil {
		s.log.Warn(ctx, "heartbeat failed", "user", name, "error", err)
		return
	}
	s.log.Debug(ctx, "heartbeat sent", "user", name)
}
