package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/sujeetunbeatable/liorea-cli/internal/client/api"
	"github.com/sujeetunbeatable/liorea-cli/internal/client/models"
	"github.com/sujeetunbeatable/liorea-cli/internal/client/repositories/metadata"
	"github.com/sujeetunbeatable/liorea-cli/internal/client/repositories/outbox"
	"github.com/sujeetunbeatable/liorea-cli/internal/common"
	"github.com/sujeetunbeatable/liorea-cli/internal/logging"
)

var ErrNoIdentity = errors.New("no identity set")

// Options configures a Session. Backend, Outbox, and Metadata are required;
// zero intervals fall back to the defaults below.
type Options struct {
	Backend  api.PresenceBackend
	Outbox   outbox.Repository
	Metadata metadata.Repository
	Log      logging.Logger

	// DeviceID distinguishes installs sharing one identity; sent with every
	// heartbeat.
	DeviceID string

	HeartbeatInterval time.Duration // default 60s
	AccrualTick       time.Duration // default 60s
	FlushBatch        int           // default 5 minutes per flush
	RosterInterval    time.Duration // default 5s
	LeaveTimeout      time.Duration // default 3s, deadline for departure notices

	// Visible gates heartbeat and roster requests; nil means always visible.
	// An embedding UI can supply its focus/visibility state here.
	Visible func() bool
}

// Session is the explicitly constructed presence state holder described in
// doc.go.
// Construct with New, restore a persisted identity with Restore, and tear
// down with Close.
type Session struct {
	backend  api.PresenceBackend
	outbox   outbox.Repository
	meta     metadata.Repository
	log      logging.Logger
	deviceID string

	heartbeatInterval time.Duration
	accrualTick       time.Duration
	flushBatch        int
	rosterInterval    time.Duration
	leaveTimeout      time.Duration
	visible           func() bool

	mu        sync.Mutex
	identity  string
	studying  bool
	unsaved   int
	roster    []models.OnlineUser
	selfFloor int // high-water mark of own displayed total, in minutes

	stopPresence context.CancelFunc
	stopAccrual  context.CancelFunc
	wg           sync.WaitGroup
}

// New validates opts and returns a stopped Session (no identity, no loops).
func New(opts Options) (*Session, error) {
	if opts.Backend == nil {
		return nil, errors.New("backend is required")
	}
	if opts.Outbox == nil {
		return nil, errors.New("outbox repository is required")
	}
	if opts.Metadata == nil {
		return nil, errors.New("metadata repository is required")
	}

	log := opts.Log
	if log == nil {
		log = logging.NewSlogLogger(slog.New(slog.DiscardHandler))
	}

	s := &Session{
		backend:           opts.Backend,
		outbox:            opts.Outbox,
		meta:              opts.Metadata,
		log:               log,
		deviceID:          opts.DeviceID,
		heartbeatInterval: opts.HeartbeatInterval,
		accrualTick:       opts.AccrualTick,
		flushBatch:        opts.FlushBatch,
		rosterInterval:    opts.RosterInterval,
		leaveTimeout:      opts.LeaveTimeout,
		visible:           opts.Visible,
	}
	if s.heartbeatInterval <= 0 {
		s.heartbeatInterval = 60 * time.Second
	}
	if s.accrualTick <= 0 {
		s.accrualTick = 60 * time.Second
	}
	if s.flushBatch <= 0 {
		s.flushBatch = 5
	}
	if s.rosterInterval <= 0 {
		s.rosterInterval = 5 * time.Second
	}
	if s.leaveTimeout <= 0 {
		s.leaveTimeout = 3 * time.Second
	}
	return s, nil
}

// Identity returns the current display name, or "" when logged out.
func (s *Session) Identity() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity
}

// IsStudying reports whether the accrual loop is running.
func (s *Session) IsStudying() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.studying
}

// UnsavedMinutes returns the accrued minutes not yet handed to the outbox.
func (s *Session) UnsavedMinutes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unsaved
}

// Restore adopts the identity persisted by a previous run, if any, and starts
// the presence loops for it. Returns the restored name ("" when none).
func (s *Session) Restore(ctx context.Context) (string, error) {
	value, err := s.meta.Get(ctx, common.MetaKeyUsername)
	if errors.Is(err, common.ErrorNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	name := string(value)
	if name == "" {
		return "", nil
	}
	s.adopt(name)
	return name, nil
}

// SetIdentity switches the active identity. A non-empty name is persisted and
// (re)starts the heartbeat and roster loops. The empty name is an explicit
// logout: pending minutes are flushed, a best-effort departure notice is
// sent, persisted identity is cleared, and all loops stop.
func (s *Session) SetIdentity(ctx context.Context, name string) error {
	if name == "" {
		return s.logout(ctx)
	}

	s.mu.Lock()
	previous := s.identity
	s.mu.Unlock()

	// Changing to a different identity finalizes accrual under the old one
	// so its minutes are not attributed to the new name.
	if previous != "" && previous != name {
		if err := s.SetStudying(ctx, false); err != nil {
			return err
		}
	}

	if err := s.meta.Set(ctx, common.MetaKeyUsername, []byte(name)); err != nil {
		return err
	}
	s.adopt(name)
	return nil
}

// adopt installs name as the active identity and restarts the presence loops.
func (s *Session) adopt(name string) {
	s.mu.Lock()
	s.identity = name
	s.selfFloor = 0
	if s.stopPresence != nil {
		s.stopPresence()
	}
	loopCtx, cancel := context.WithCancel(context.Background())
	s.stopPresence = cancel
	s.mu.Unlock()

	s.wg.Add(2)
	go s.runHeartbeat(loopCtx)
	go s.runRoster(loopCtx)
}

func (s *Session) logout(ctx context.Context) error {
	s.mu.Lock()
	name := s.identity
	s.mu.Unlock()
	if name == "" {
		return nil
	}

	// Final flush before the departure notice, so the last batch is counted.
	if err := s.SetStudying(ctx, false); err != nil {
		return err
	}
	s.sendLeave(name)

	if err := s.meta.Delete(ctx, common.MetaKeyUsername); err != nil {
		s.log.Warn(ctx, "failed to clear persisted identity", "error", err)
	}

	s.mu.Lock()
	s.identity = ""
	s.roster = nil
	s.selfFloor = 0
	if s.stopPresence != nil {
		s.stopPresence()
		s.stopPresence = nil
	}
	s.mu.Unlock()
	return nil
}

// sendLeave delivers the departure notice on its own short deadline so it
// survives caller teardown, beacon-style. Failures are logged and swallowed;
// the remote timeout policy marks users offline regardless.
func (s *Session) sendLeave(name string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.leaveTimeout)
	defer cancel()
	if err := s.backend.Leave(ctx, name); err != nil {
		s.log.Warn(ctx, "departure notice failed", "user", name, "error", err)
	}
}

// SetStudying toggles the study accrual loop. It is idempotent: re-affirming
// the current value is a no-op. Turning accrual off performs one final flush
// of any unsaved minutes before the loop stops.
func (s *Session) SetStudying(ctx context.Context, studying bool) error {
	s.mu.Lock()
	if s.identity == "" {
		s.mu.Unlock()
		if studying {
			return ErrNoIdentity
		}
		return nil
	}
	if s.studying == studying {
		s.mu.Unlock()
		return nil
	}
	s.studying = studying
	name := s.identity

	if studying {
		loopCtx, cancel := context.WithCancel(context.Background())
		s.stopAccrual = cancel
		s.mu.Unlock()

		// Count the first interval right away so short sessions are not lost.
		s.accrueTick(ctx)
		// Batches parked by earlier failed flushes get another attempt now.
		s.drainOutbox(ctx, name)

		s.wg.Add(1)
		go s.runAccrual(loopCtx)
		return nil
	}

	cancel := s.stopAccrual
	s.stopAccrual = nil
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	s.finalFlush(ctx)
	return nil
}

// Rename changes the display identity remotely, then adopts and persists the
// new name locally. Loops keep running; they read the identity per tick.
func (s *Session) Rename(ctx context.Context, newName string) error {
	s.mu.Lock()
	oldName := s.identity
	s.mu.Unlock()
	if oldName == "" {
		return ErrNoIdentity
	}

	if err := s.backend.Rename(ctx, oldName, newName); err != nil {
		return err
	}
	if err := s.meta.Set(ctx, common.MetaKeyUsername, []byte(newName)); err != nil {
		return err
	}

	s.mu.Lock()
	s.identity = newName
	for i := range s.roster {
		if s.roster[i].Username == oldName {
			s.roster[i].Username = newName
		}
	}
	s.mu.Unlock()
	return nil
}

// SetStatus sets the short status message (24h visibility, enforced
// remotely) and mirrors it into the local roster so the change shows up
// before the next poll.
func (s *Session) SetStatus(ctx context.Context, text string) error {
	s.mu.Lock()
	name := s.identity
	s.mu.Unlock()
	if name == "" {
		return ErrNoIdentity
	}

	if err := s.backend.SetStatus(ctx, name, text); err != nil {
		return err
	}

	s.mu.Lock()
	for i := range s.roster {
		if s.roster[i].Username == name {
			s.roster[i].StatusText = text
		}
	}
	s.mu.Unlock()
	return nil
}

// Close tears the session down without logging out: final flush, departure
// notice, loops stopped, persisted identity kept for the next run.
func (s *Session) Close(ctx context.Context) error {
	s.mu.Lock()
	name := s.identity
	s.mu.Unlock()

	if name != "" {
		if err := s.SetStudying(ctx, false); err != nil {
			s.log.Warn(ctx, "final flush on close failed", "error", err)
		}
		s.sendLeave(name)
	}

	s.mu.Lock()
	if s.stopPresence != nil {
		s.stopPresence()
		s.stopPresence = nil
	}
	if s.stopAccrual != nil {
		s.stopAccrual()
		s.stopAccrual = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
	return nil
}

// isVisible applies the visibility gate.
func (s *Session) isVisible() bool {
	return s.visible == nil || s.visible()
}
