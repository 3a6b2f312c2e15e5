package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/sujeetunbeatable/liorea-cli/internal/client/api"
	"github.com/sujeetunbeatable/liorea-cli/internal/client/models"
	"github.com/sujeetunbeatable/liorea-cli/internal/logging"
)

var ErrNotLoggedIn = errors.New("not logged in")

// ChatService polls a single room's history and typing indicators, and sends
// messages. History is remote-owned: each poll replaces the local copy.
type ChatService interface {
	// Start begins the polling loops; Stop halts them.
	Start()
	Stop()

	// Messages returns the last fetched history, oldest first.
	Messages() []models.ChatMessage

	// TypingUsers returns who is typing right now, excluding the local user.
	TypingUsers() []string

	// Send posts a message and refreshes history right away.
	Send(ctx context.Context, message string) error

	// NotifyTyping tells the room the local user is typing.
	NotifyTyping(ctx context.Context) error

	// Refresh re-fetches history once, outside the polling cadence.
	Refresh(ctx context.Context) error
}

// ChatOptions configures NewChatService. Identity is read per call so the
// service follows renames without restarting.
type ChatOptions struct {
	Backend  api.ChatBackend
	Room     string
	Identity func() string
	Log      logging.Logger

	MessageInterval time.Duration // default 2s
	TypingInterval  time.Duration // default 1.5s
}

type chatService struct {
	backend  api.ChatBackend
	room     string
	identity func() string
	log      logging.Logger

	messageInterval time.Duration
	typingInterval  time.Duration

	mu       sync.Mutex
	messages []models.ChatMessage
	typing   []string
	stop     context.CancelFunc
	wg       sync.WaitGroup
}

func NewChatService(opts ChatOptions) ChatService {
	log := opts.Log
	if log == nil {
		log = logging.NewSlogLogger(slog.New(slog.DiscardHandler))
	}
	c := &chatService{
		backend:         opts.Backend,
		room:            opts.Room,
		identity:        opts.Identity,
		log:             log,
		messageInterval: opts.MessageInterval,
		typingInterval:  opts.TypingInterval,
	}
	if c.messageInterval <= 0 {
		c.messageInterval = 2 * time.Second
	}
	if c.typingInterval <= 0 {
		c.typingInterval = 1500 * time.Millisecond
	}
	return c
}

func (c *chatService) Start() {
	c.mu.Lock()
	if c.stop != nil {
		c.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.stop = cancel
	c.mu.Unlock()

	c.wg.Add(2)
	go c.runMessages(ctx)
	go c.runTyping(ctx)
}

func (c *chatService) Stop() {
	c.mu.Lock()
	cancel := c.stop
	c.stop = nil
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	c.wg.Wait()
}

func (c *chatService) runMessages(ctx context.Context) {
	defer c.wg.Done()

	c.refreshMessages(ctx)

	ticker := time.NewTicker(c.messageInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.refreshMessages(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (c *chatService) runTyping(ctx context.Context) {
	defer c.wg.Done()

	c.refreshTyping(ctx)

	ticker := time.NewTicker(c.typingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.refreshTyping(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (c *chatService) refreshMessages(ctx context.Context) {
	messages, err := c.backend.History(ctx, c.room)
	if err != nil {
		c.log.Warn(ctx, "chat history poll failed", "room", c.room, "error", err)
		return
	}
	c.mu.Lock()
	c.messages = messages
	c.mu.Unlock()
}

func (c *chatService) refreshTyping(ctx context.Context) {
	users, err := c.backend.TypingUsers(ctx, c.room)
	if err != nil {
		c.log.Warn(ctx, "typing poll failed", "room", c.room, "error", err)
		return
	}

	// The local user's own typing event comes back too; hide it.
	self := c.identity()
	filtered := users[:0]
	for _, u := range users {
		if u != self {
			filtered = append(filtered, u)
		}
	}

	c.mu.Lock()
	c.typing = filtered
	c.mu.Unlock()
}

func (c *chatService) Messages() []models.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.ChatMessage(nil), c.messages...)
}

func (c *chatService) TypingUsers() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.typing...)
}

func (c *chatService) Send(ctx context.Context, message string) error {
	name := c.identity()
	if name == "" {
		return ErrNotLoggedIn
	}
	if err := c.backend.Send(ctx, c.room, name, message); err != nil {
		return err
	}
	// Show the sent message without waiting for the next poll.
	c.refreshMessages(ctx)
	return nil
}

func (c *chatService) NotifyTyping(ctx context.Context) error {
	name := c.identity()
	if name == "" {
		return ErrNotLoggedIn
	}
	return c.backend.NotifyTyping(ctx, c.room, name)
}

func (c *chatService) Refresh(ctx context.Context) error {
	c.refreshMessages(ctx)
	return nil
}
