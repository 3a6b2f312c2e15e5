// Package notify subscribes to the realtime notification feed over a
// websocket and tracks per-identity read state locally.
//
// # Overview
//
// The remote pushes broadcast notifications to every connected client. The
// subscriber keeps the received set in memory, newest first, and remembers
// which ids the current identity has read. Read ids persist across restarts
// in the local metadata store, keyed per username, so switching identities
// switches the read set too.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/sujeetunbeatable/liorea-cli/internal/client/models"
	"github.com/sujeetunbeatable/liorea-cli/internal/client/repositories/metadata"
	"github.com/sujeetunbeatable/liorea-cli/internal/common"
	"github.com/sujeetunbeatable/liorea-cli/internal/logging"
)

// dialFunc is swapped in tests.
var dialFunc = func(ctx context.Context, url string) (*websocket.Conn, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	return conn, err
}

// Options configures a Subscriber. URL is the websocket endpoint; Identity is
// read per call so read state follows logins and renames.
type Options struct {
	URL      string
	Identity func() string
	Metadata metadata.Repository
	Log      logging.Logger

	// ReconnectDelay is the pause before re-dialing after a dropped
	// connection. Defaults to 5s.
	ReconnectDelay time.Duration
}

// Subscriber maintains the websocket connection and the notification list.
type Subscriber struct {
	url      string
	identity func() string
	meta     metadata.Repository
	log      logging.Logger
	delay    time.Duration

	mu            sync.Mutex
	notifications []models.Notification
	stop          context.CancelFunc
	wg            sync.WaitGroup
}

func NewSubscriber(opts Options) *Subscriber {
	log := opts.Log
	if log == nil {
		log = logging.NewSlogLogger(slog.New(slog.DiscardHandler))
	}
	delay := opts.ReconnectDelay
	if delay <= 0 {
		delay = 5 * time.Second
	}
	return &Subscriber{
		url:      opts.URL,
		identity: opts.Identity,
		meta:     opts.Metadata,
		log:      log,
		delay:    delay,
	}
}

// Start connects and keeps reading until Stop. Dropped connections are
// re-dialed after ReconnectDelay; the notification list survives reconnects.
func (s *Subscriber) Start() {
	s.mu.Lock()
	if s.stop != nil {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.stop = cancel
	s.mu.Unlock()

	s.wg.Add(1)
	go s.run(ctx)
}

// Stop closes the connection and waits for the reader to exit.
func (s *Subscriber) Stop() {
	s.mu.Lock()
	cancel := s.stop
	s.stop = nil
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
}

func (s *Subscriber) run(ctx context.Context) {
	defer s.wg.Done()

	for {
		if ctx.Err() != nil {
			return
		}

		conn, err := dialFunc(ctx, s.url)
		if err != nil {
			s.log.Warn(ctx, "notification dial failed", "url", s.url, "error", err)
			if !sleepCtx(ctx, s.delay) {
				return
			}
			continue
		}

		s.readLoop(ctx, conn)
		_ = conn.Close()

		if !sleepCtx(ctx, s.delay) {
			return
		}
	}
}

func (s *Subscriber) readLoop(ctx context.Context, conn *websocket.Conn) {
	// Unblock ReadMessage when the context is cancelled.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil {
				s.log.Warn(ctx, "notification stream closed", "error", err)
			}
			return
		}
		s.ingest(ctx, data)
	}
}

// ingest accepts either a single notification object or an array of them;
// the feed sends the backlog as an array on connect and singles afterwards.
func (s *Subscriber) ingest(ctx context.Context, data []byte) {
	var batch []models.Notification
	if err := json.Unmarshal(data, &batch); err != nil {
		var one models.Notification
		if err := json.Unmarshal(data, &one); err != nil {
			s.log.Warn(ctx, "unparseable notification", "error", err)
			return
		}
		batch = []models.Notification{one}
	}

	read, _ := s.readIDs(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range batch {
		if n.ID == "" {
			continue
		}
		if s.hasLocked(n.ID) {
			continue
		}
		n.Read = read[n.ID]
		s.notifications = append(s.notifications, n)
	}
	models.SortNotificationsByNewest(s.notifications)
}

func (s *Subscriber) hasLocked(id string) bool {
	for _, n := range s.notifications {
		if n.ID == id {
			return true
		}
	}
	return false
}

// Notifications returns the current list, newest first.
func (s *Subscriber) Notifications() []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Notification(nil), s.notifications...)
}

// UnreadCount returns how many notifications the current identity has not
// read yet.
func (s *Subscriber) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, n := range s.notifications {
		if !n.Read {
			count++
		}
	}
	return count
}

// MarkAllRead marks every known notification read for the current identity
// and persists the id set. Without an identity it is a no-op.
func (s *Subscriber) MarkAllRead(ctx context.Context) error {
	name := s.identity()
	if name == "" {
		return nil
	}

	s.mu.Lock()
	ids := make([]string, 0, len(s.notifications))
	for i := range s.notifications {
		s.notifications[i].Read = true
		ids = append(ids, s.notifications[i].ID)
	}
	s.mu.Unlock()

	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return s.meta.Set(ctx, readKey(name), data)
}

// ReloadReadState re-applies the persisted read set, for use after a login
// or rename changes the identity.
func (s *Subscriber) ReloadReadState(ctx context.Context) {
	read, err := s.readIDs(ctx)
	if err != nil {
		s.log.Warn(ctx, "failed to load read notifications", "error", err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		s.notifications[i].Read = read[s.notifications[i].ID]
	}
}

func (s *Subscriber) readIDs(ctx context.Context) (map[string]bool, error) {
	name := s.identity()
	if name == "" {
		return map[string]bool{}, nil
	}

	data, err := s.meta.Get(ctx, readKey(name))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return map[string]bool{}, nil
		}
		return map[string]bool{}, err
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return map[string]bool{}, err
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

func readKey(username string) string {
	return common.MetaKeyReadNotificationsPrefix + username
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
