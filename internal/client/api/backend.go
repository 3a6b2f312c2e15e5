package api

import (
	"context"
	"time"

	"github.com/sujeetunbeatable/liorea-cli/internal/client/models"
)

// PresenceBackend covers presence, study-time accounting, and profile
// mutations. Every call maps to one request against the remote service;
// durability, timeout policy, and conflict resolution are remote concerns.
type PresenceBackend interface {
	// Heartbeat signals liveness for the given identity. The device id
	// distinguishes installs sharing one name.
	Heartbeat(ctx context.Context, username, deviceID string) error

	// FlushStudyMinutes durably records accrued whole minutes. Callers must
	// never pass minutes <= 0.
	FlushStudyMinutes(ctx context.Context, username string, minutes int) error

	// FetchRoster returns the authoritative list of online users with their
	// aggregated study totals.
	FetchRoster(ctx context.Context) ([]models.OnlineUser, error)

	// Leave is an explicit departure notice. Best-effort; the remote timeout
	// policy marks users offline regardless.
	Leave(ctx context.Context, username string) error

	// SetStatus sets the short status message (24h visibility, enforced
	// remotely).
	SetStatus(ctx context.Context, username, text string) error

	// Rename changes the display identity.
	Rename(ctx context.Context, oldName, newName string) error
}

// AuthBackend establishes or creates an identity. A rejected attempt is
// returned as ErrRejected wrapped around the server-provided message.
type AuthBackend interface {
	Login(ctx context.Context, username, password string) error
	Signup(ctx context.Context, username, password string) error
}

// ChatBackend sends and polls room chat. Messages are opaque text; history
// is remote-owned and re-fetched, never merged.
type ChatBackend interface {
	History(ctx context.Context, room string) ([]models.ChatMessage, error)
	Send(ctx context.Context, room, username, message string) error
	TypingUsers(ctx context.Context, room string) ([]string, error)
	NotifyTyping(ctx context.Context, room, username string) error
}

// TimerBackend exposes the shared global timer.
type TimerBackend interface {
	// TimerStart returns the remote start instant of the global timer.
	TimerStart(ctx context.Context) (time.Time, error)
	// TimerReset restarts the global timer for everyone.
	TimerReset(ctx context.Context) error
}

// Backend is the full remote surface the client composes.
type Backend interface {
	PresenceBackend
	AuthBackend
	ChatBackend
	TimerBackend
}
