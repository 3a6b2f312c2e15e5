// Package config loads runtime configuration for the workspace CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables (see parseEnv), including a local .env file.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-w string   base URL of the presence worker API
//	-n string   websocket URL of the notification feed
//	-d string   sqlite DSN for local client state
//	-r string   chat room id
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "60s" or integer nanoseconds:
//
//	{
//	  "worker_url": "https://worker.example.com",
//	  "notify_url": "wss://worker.example.com/notifications",
//	  "database_dsn": "liorea.db",
//	  "chat_room": "study-room-1",
//	  "heartbeat_interval": "60s",
//	  "accrual_tick": "60s",
//	  "flush_batch": 5,
//	  "roster_interval": "5s",
//	  "chat_poll_interval": "2s",
//	  "typing_poll_interval": "1500ms",
//	  "leave_timeout": "3s"
//	}
//
// Primary API
//
//   - type Config                     — holds endpoints, the local DSN, and loop cadences
//   - func LoadConfig() *Config       — builds Config by applying defaults, JSON, env, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
package config
