package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with environment variables. A .env file in the
// working directory is loaded first if present; variables already set in the
// real environment win over the file.
//
// Supported variables:
//
//	LIOREA_WORKER_URL      base URL of the presence worker API
//	LIOREA_NOTIFY_URL      websocket URL of the notification feed
//	LIOREA_DATABASE_DSN    sqlite DSN for local client state
//	LIOREA_CHAT_ROOM       chat room id
//	LIOREA_HEARTBEAT       heartbeat interval (Go duration, e.g. "60s")
//	LIOREA_ACCRUAL_TICK    study accrual tick (Go duration)
//	LIOREA_ROSTER_INTERVAL roster poll interval (Go duration)
func parseEnv(cfg *Config) {
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()

	if v := os.Getenv("LIOREA_WORKER_URL"); v != "" {
		cfg.WorkerURL = v
	}
	if v := os.Getenv("LIOREA_NOTIFY_URL"); v != "" {
		cfg.NotifyURL = v
	}
	if v := os.Getenv("LIOREA_DATABASE_DSN"); v != "" {
		cfg.DatabaseDSN = v
	}
	if v := os.Getenv("LIOREA_CHAT_ROOM"); v != "" {
		cfg.ChatRoom = v
	}

	envDuration("LIOREA_HEARTBEAT", &cfg.HeartbeatInterval)
	envDuration("LIOREA_ACCRUAL_TICK", &cfg.AccrualTick)
	envDuration("LIOREA_ROSTER_INTERVAL", &cfg.RosterInterval)
}

func envDuration(name string, dst *time.Duration) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return
	}
	*dst = d
}
