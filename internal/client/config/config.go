package config

import "time"

// Config holds runtime settings for the workspace CLI.
//
// Fields:
//   - WorkerURL: base URL of the presence worker API.
//   - NotifyURL: websocket URL of the broadcast notification feed.
//   - DatabaseDSN: sqlite DSN for local client state (metadata and the
//     study outbox).
//   - ChatRoom: id of the shared chat room.
//
// The remaining fields are loop cadences; units are time.Duration except
// FlushBatch, which is a count of whole minutes.
type Config struct {
	WorkerURL   string
	NotifyURL   string
	DatabaseDSN string
	ChatRoom    string

	HeartbeatInterval  time.Duration
	AccrualTick        time.Duration
	FlushBatch         int
	RosterInterval     time.Duration
	ChatPollInterval   time.Duration
	TypingPollInterval time.Duration
	LeaveTimeout       time.Duration
}

// LoadDefaults populates c with the cadences the web client ships with.
func (c *Config) LoadDefaults() {
	c.WorkerURL = "http://127.0.0.1:8787"
	c.NotifyURL = "ws://127.0.0.1:8787/notifications"
	c.DatabaseDSN = "liorea.db"
	c.ChatRoom = "study-room-1"

	c.HeartbeatInterval = 60 * time.Second
	c.AccrualTick = 60 * time.Second
	c.FlushBatch = 5
	c.RosterInterval = 5 * time.Second
	c.ChatPollInterval = 2 * time.Second
	c.TypingPollInterval = 1500 * time.Millisecond
	c.LeaveTimeout = 3 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment, and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
