package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestParseJson_NoFlagIsNoOp(t *testing.T) {
	os.Args = []string{"cmd"}

	var c Config
	c.LoadDefaults()
	parseJson(&c)

	assert.Equal(t, "study-room-1", c.ChatRoom)
}

func TestParseJson_OverlaysPresentFields(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"worker_url":         "https://worker.example.com",
		"chat_room":          "focus-room",
		"heartbeat_interval": "30s",
		"flush_batch":        3,
	})
	os.Args = []string{"cmd", "-c", path}

	var c Config
	c.LoadDefaults()
	parseJson(&c)

	assert.Equal(t, "https://worker.example.com", c.WorkerURL)
	assert.Equal(t, "focus-room", c.ChatRoom)
	assert.Equal(t, 30*time.Second, c.HeartbeatInterval)
	assert.Equal(t, 3, c.FlushBatch)

	// Absent fields keep their defaults.
	assert.Equal(t, "liorea.db", c.DatabaseDSN)
	assert.Equal(t, 5*time.Second, c.RosterInterval)
}

func TestParseJson_DurationAsNanoseconds(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"roster_interval": int64(10 * time.Second),
	})
	os.Args = []string{"cmd", "-c", path}

	var c Config
	c.LoadDefaults()
	parseJson(&c)

	assert.Equal(t, 10*time.Second, c.RosterInterval)
}

func TestParseJson_MissingFilePanics(t *testing.T) {
	os.Args = []string{"cmd", "-c", filepath.Join(t.TempDir(), "nope.json")}

	var c Config
	c.LoadDefaults()
	require.Panics(t, func() { parseJson(&c) })
}
