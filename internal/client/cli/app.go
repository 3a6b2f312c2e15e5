package cli

import (
	"bufio"
	"context"
	"log"
	"os"

	"github.com/sujeetunbeatable/liorea-cli/internal/client/api"
	"github.com/sujeetunbeatable/liorea-cli/internal/client/config"
	"github.com/sujeetunbeatable/liorea-cli/internal/client/notify"
	"github.com/sujeetunbeatable/liorea-cli/internal/client/services"
	"github.com/sujeetunbeatable/liorea-cli/internal/client/session"
	"github.com/sujeetunbeatable/liorea-cli/internal/client/store"
	"github.com/sujeetunbeatable/liorea-cli/internal/logging"

	_ "modernc.org/sqlite"
)

// App wires the worker API, local store, presence session, chat, and
// notifications behind the interactive commands.
type App struct {
	config  *config.Config
	store   *store.Store
	auth    services.AuthService
	chat    services.ChatService
	session *session.Session
	notify  *notify.Subscriber
	timer   api.TimerBackend
	log     logging.Logger
	reader  *bufio.Reader
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {

	st, err := store.Open(ctx, c.DatabaseDSN)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	backend := api.NewHTTPBackend(c.WorkerURL)

	auth := services.NewAuthService(backend, st.Metadata)
	deviceID, err := auth.DeviceID(ctx)
	if err != nil {
		st.Close()
		return nil, err
	}

	sess, err := session.New(session.Options{
		Backend:           backend,
		Outbox:            st.Outbox,
		Metadata:          st.Metadata,
		Log:               logger,
		DeviceID:          deviceID,
		HeartbeatInterval: c.HeartbeatInterval,
		AccrualTick:       c.AccrualTick,
		FlushBatch:        c.FlushBatch,
		RosterInterval:    c.RosterInterval,
		LeaveTimeout:      c.LeaveTimeout,
	})
	if err != nil {
		st.Close()
		return nil, err
	}

	chat := services.NewChatService(services.ChatOptions{
		Backend:         backend,
		Room:            c.ChatRoom,
		Identity:        sess.Identity,
		Log:             logger,
		MessageInterval: c.ChatPollInterval,
		TypingInterval:  c.TypingPollInterval,
	})

	subscriber := notify.NewSubscriber(notify.Options{
		URL:      c.NotifyURL,
		Identity: sess.Identity,
		Metadata: st.Metadata,
		Log:      logger,
	})

	return &App{
		config:  c,
		store:   st,
		auth:    auth,
		chat:    chat,
		session: sess,
		notify:  subscriber,
		timer:   backend,
		log:     logger,
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

// Run starts the REPL and blocks until the user exits, then tears everything
// down: final flush, departure notice, loops stopped, database closed.
func (a *App) Run(ctx context.Context) {
	defer a.Close(ctx)
	a.Root(ctx)
}

// Close stops background work and releases the local database. The persisted
// identity is kept so the next run resumes it.
func (a *App) Close(ctx context.Context) {
	a.chat.Stop()
	a.notify.Stop()
	if err := a.session.Close(ctx); err != nil {
		a.log.Warn(ctx, "session teardown failed", "error", err)
	}
	if err := a.store.Close(); err != nil {
		a.log.Warn(ctx, "closing database failed", "error", err)
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.Identity() != ""
}

// startBackground begins the chat and notification feeds once an identity is
// active. Safe to call repeatedly.
func (a *App) startBackground(ctx context.Context) {
	a.chat.Start()
	a.notify.Start()
	a.notify.ReloadReadState(ctx)
}
