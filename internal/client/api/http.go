package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sujeetunbeatable/liorea-cli/internal/client/models"
)

// HTTPBackend talks JSON over HTTP to the hosted worker API. One instance is
// safe for concurrent use by all loops.
type HTTPBackend struct {
	baseURL string
	httpc   *http.Client
}

// NewHTTPBackend returns a backend rooted at baseURL (no trailing slash
// required). Requests additionally honor any deadline on the caller's context.
func NewHTTPBackend(baseURL string) *HTTPBackend {
	return &HTTPBackend{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 10 * time.Second},
	}
}

// ackResponse is the worker's generic mutation response.
type ackResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// do sends the request and maps transport-level failures to ErrUnavailable
// and auth refusals to ErrUnauthorized. The caller owns the response body.
func (b *HTTPBackend) do(req *http.Request) (*http.Response, error) {
	resp, err := b.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		_ = resp.Body.Close()
		return nil, ErrUnauthorized
	}
	return resp, nil
}

// postJSON posts body to path and decodes the response into out (skipped when
// out is nil). A non-2xx status or an unsuccessful ack is returned as an error.
func (b *HTTPBackend) postJSON(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	// The worker reports refusals through the ack body, so check it even on
	// a 2xx status.
	var ack ackResponse
	if err := json.Unmarshal(data, &ack); err == nil && !ack.Success && ack.Error != "" {
		return fmt.Errorf("%w: %s", ErrRejected, ack.Error)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: unexpected status %s", ErrRejected, resp.Status)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// getJSON fetches path (with optional query values) and decodes into out.
func (b *HTTPBackend) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	u := b.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	resp, err := b.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status %s", ErrRejected, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (b *HTTPBackend) Login(ctx context.Context, username, password string) error {
	return b.postJSON(ctx, "/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, nil)
}

func (b *HTTPBackend) Signup(ctx context.Context, username, password string) error {
	return b.postJSON(ctx, "/auth/signup", map[string]string{
		"username": username,
		"password": password,
	}, nil)
}

func (b *HTTPBackend) Heartbeat(ctx context.Context, username, deviceID string) error {
	return b.postJSON(ctx, "/heartbeat", map[string]string{
		"username":  username,
		"device_id": deviceID,
	}, nil)
}

func (b *HTTPBackend) FlushStudyMinutes(ctx context.Context, username string, minutes int) error {
	if minutes <= 0 {
		return fmt.Errorf("refusing to flush %d minutes", minutes)
	}
	return b.postJSON(ctx, "/study/update", map[string]any{
		"username": username,
		"minutes":  minutes,
	}, nil)
}

func (b *HTTPBackend) FetchRoster(ctx context.Context) ([]models.OnlineUser, error) {
	var users []models.OnlineUser
	if err := b.getJSON(ctx, "/status", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (b *HTTPBackend) Leave(ctx context.Context, username string) error {
	return b.postJSON(ctx, "/user/leave", map[string]string{"username": username}, nil)
}

func (b *HTTPBackend) SetStatus(ctx context.Context, username, text string) error {
	return b.postJSON(ctx, "/user/status", map[string]string{
		"username":    username,
		"status_text": text,
	}, nil)
}

func (b *HTTPBackend) Rename(ctx context.Context, oldName, newName string) error {
	var ack ackResponse
	if err := b.postJSON(ctx, "/user/rename", map[string]string{
		"oldUsername": oldName,
		"newUsername": newName,
	}, &ack); err != nil {
		return err
	}
	if !ack.Success {
		return fmt.Errorf("%w: rename refused", ErrRejected)
	}
	return nil
}

func (b *HTTPBackend) History(ctx context.Context, room string) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	q := url.Values{"room": {room}}
	if err := b.getJSON(ctx, "/chat/history", q, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (b *HTTPBackend) Send(ctx context.Context, room, username, message string) error {
	return b.postJSON(ctx, "/chat/send", map[string]string{
		"room_id":  room,
		"username": username,
		"message":  message,
	}, nil)
}

func (b *HTTPBackend) TypingUsers(ctx context.Context, room string) ([]string, error) {
	var rows []struct {
		Username string `json:"username"`
	}
	q := url.Values{"room": {room}}
	if err := b.getJSON(ctx, "/chat/typing", q, &rows); err != nil {
		return nil, err
	}
	users := make([]string, 0, len(rows))
	for _, r := range rows {
		users = append(users, r.Username)
	}
	return users, nil
}

func (b *HTTPBackend) NotifyTyping(ctx context.Context, room, username string) error {
	return b.postJSON(ctx, "/chat/typing", map[string]string{
		"room_id":  room,
		"username": username,
	}, nil)
}

func (b *HTTPBackend) TimerStart(ctx context.Context) (time.Time, error) {
	var status struct {
		StartTime int64 `json:"startTime"`
	}
	if err := b.getJSON(ctx, "/timer/status", nil, &status); err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(status.StartTime), nil
}

func (b *HTTPBackend) TimerReset(ctx context.Context) error {
	return b.postJSON(ctx, "/timer/reset", struct{}{}, nil)
}

var _ Backend = (*HTTPBackend)(nil)
