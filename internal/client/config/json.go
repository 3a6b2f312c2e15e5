package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/sujeetunbeatable/liorea-cli/internal/flagx"
	"github.com/sujeetunbeatable/liorea-cli/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "60s" or as integer nanoseconds. After parsing, values
// are copied into the runtime Config (which uses time.Duration).
type JsonConfig struct {
	WorkerURL   string `json:"worker_url"`
	NotifyURL   string `json:"notify_url"`
	DatabaseDSN string `json:"database_dsn"`
	ChatRoom    string `json:"chat_room"`

	HeartbeatInterval  timex.Duration `json:"heartbeat_interval"`
	AccrualTick        timex.Duration `json:"accrual_tick"`
	FlushBatch         int            `json:"flush_batch"`
	RosterInterval     timex.Duration `json:"roster_interval"`
	ChatPollInterval   timex.Duration `json:"chat_poll_interval"`
	TypingPollInterval timex.Duration `json:"typing_poll_interval"`
	LeaveTimeout       timex.Duration `json:"leave_timeout"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Only fields actually present in the file override defaults; absent string
// fields and zero durations are skipped. Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	overlayString(&cfg.WorkerURL, jc.WorkerURL)
	overlayString(&cfg.NotifyURL, jc.NotifyURL)
	overlayString(&cfg.DatabaseDSN, jc.DatabaseDSN)
	overlayString(&cfg.ChatRoom, jc.ChatRoom)

	overlayDuration(&cfg.HeartbeatInterval, jc.HeartbeatInterval)
	overlayDuration(&cfg.AccrualTick, jc.AccrualTick)
	overlayDuration(&cfg.RosterInterval, jc.RosterInterval)
	overlayDuration(&cfg.ChatPollInterval, jc.ChatPollInterval)
	overlayDuration(&cfg.TypingPollInterval, jc.TypingPollInterval)
	overlayDuration(&cfg.LeaveTimeout, jc.LeaveTimeout)

	if jc.FlushBatch > 0 {
		cfg.FlushBatch = jc.FlushBatch
	}
}

func overlayString(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

func overlayDuration(dst *time.Duration, src timex.Duration) {
	if src.Duration > 0 {
		*dst = time.Duration(src.Duration)
	}
}
