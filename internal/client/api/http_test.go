package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// capture records the last request a test server saw.
type capture struct {
	Method string
	Path   string
	Query  string
	Body   map[string]any
}

func newServer(t *testing.T, status int, response string, cap *capture) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cap.Method = r.Method
		cap.Path = r.URL.Path
		cap.Query = r.URL.RawQuery
		cap.Body = nil
		if data, _ := io.ReadAll(r.Body); len(data) > 0 {
			_ = json.Unmarshal(data, &cap.Body)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPBackend_Login_Success(t *testing.T) {
	var cap capture
	srv := newServer(t, http.StatusOK, `{"success":true}`, &cap)
	b := NewHTTPBackend(srv.URL)

	require.NoError(t, b.Login(context.Background(), "alice", "pw"))
	require.Equal(t, "/auth/login", cap.Path)
	require.Equal(t, "alice", cap.Body["username"])
	require.Equal(t, "pw", cap.Body["password"])
}

func TestHTTPBackend_Login_RejectedCarriesServerMessage(t *testing.T) {
	var cap capture
	srv := newServer(t, http.StatusUnprocessableEntity, `{"success":false,"error":"Invalid credentials"}`, &cap)
	b := NewHTTPBackend(srv.URL)

	err := b.Login(context.Background(), "alice", "wrong")
	require.ErrorIs(t, err, ErrRejected)
	require.Contains(t, err.Error(), "Invalid credentials")
}

func TestHTTPBackend_Signup_Rejected(t *testing.T) {
	var cap capture
	srv := newServer(t, http.StatusOK, `{"success":false,"error":"Username taken"}`, &cap)
	b := NewHTTPBackend(srv.URL)

	err := b.Signup(context.Background(), "alice", "pw")
	require.ErrorIs(t, err, ErrRejected)
	require.Equal(t, "/auth/signup", cap.Path)
}

func TestHTTPBackend_Heartbeat_SendsIdentityAndDevice(t *testing.T) {
	var cap capture
	srv := newServer(t, http.StatusOK, `{}`, &cap)
	b := NewHTTPBackend(srv.URL)

	require.NoError(t, b.Heartbeat(context.Background(), "alice", "dev-1"))
	require.Equal(t, "/heartbeat", cap.Path)
	require.Equal(t, "alice", cap.Body["username"])
	require.Equal(t, "dev-1", cap.Body["device_id"])
}

func TestHTTPBackend_FlushStudyMinutes(t *testing.T) {
	var cap capture
	srv := newServer(t, http.StatusOK, `{}`, &cap)
	b := NewHTTPBackend(srv.URL)

	require.NoError(t, b.FlushStudyMinutes(context.Background(), "alice", 5))
	require.Equal(t, "/study/update", cap.Path)
	require.Equal(t, float64(5), cap.Body["minutes"])
}

func TestHTTPBackend_FlushStudyMinutes_RefusesZero(t *testing.T) {
	var cap capture
	srv := newServer(t, http.StatusOK, `{}`, &cap)
	b := NewHTTPBackend(srv.URL)

	require.Error(t, b.FlushStudyMinutes(context.Background(), "alice", 0))
	require.Empty(t, cap.Path, "no request must be sent for a zero amount")
}

func TestHTTPBackend_FetchRoster(t *testing.T) {
	var cap capture
	srv := newServer(t, http.StatusOK,
		`[{"username":"bob","status":"Online","total_minutes":42,"status_text":"grinding"}]`, &cap)
	b := NewHTTPBackend(srv.URL)

	users, err := b.FetchRoster(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Equal(t, "bob", users[0].Username)
	require.Equal(t, 42, users[0].TotalStudyMinutes)
	require.Equal(t, 2520, users[0].TotalStudySeconds())
	require.Equal(t, "/status", cap.Path)
}

func TestHTTPBackend_Rename(t *testing.T) {
	var cap capture
	srv := newServer(t, http.StatusOK, `{"success":true}`, &cap)
	b := NewHTTPBackend(srv.URL)

	require.NoError(t, b.Rename(context.Background(), "alice", "alicia"))
	require.Equal(t, "/user/rename", cap.Path)
	require.Equal(t, "alice", cap.Body["oldUsername"])
	require.Equal(t, "alicia", cap.Body["newUsername"])
}

func TestHTTPBackend_Rename_Refused(t *testing.T) {
	var cap capture
	srv := newServer(t, http.StatusOK, `{"success":false}`, &cap)
	b := NewHTTPBackend(srv.URL)

	require.ErrorIs(t, b.Rename(context.Background(), "alice", "bob"), ErrRejected)
}

func TestHTTPBackend_ChatRoundTrip(t *testing.T) {
	var cap capture
	srv := newServer(t, http.StatusOK, `[{"username":"bob","message":"hi"}]`, &cap)
	b := NewHTTPBackend(srv.URL)

	messages, err := b.History(context.Background(), "study-room-1")
	require.NoError(t, err)
	require.Len(t, messages, 1)
	require.Equal(t, "room=study-room-1", cap.Query)

	srv2cap := capture{}
	srv2 := newServer(t, http.StatusOK, `{}`, &srv2cap)
	b2 := NewHTTPBackend(srv2.URL)
	require.NoError(t, b2.Send(context.Background(), "study-room-1", "alice", "hello"))
	require.Equal(t, "/chat/send", srv2cap.Path)
	require.Equal(t, "study-room-1", srv2cap.Body["room_id"])
}

func TestHTTPBackend_TypingUsers(t *testing.T) {
	var cap capture
	srv := newServer(t, http.StatusOK, `[{"username":"bob"},{"username":"eve"}]`, &cap)
	b := NewHTTPBackend(srv.URL)

	users, err := b.TypingUsers(context.Background(), "study-room-1")
	require.NoError(t, err)
	require.Equal(t, []string{"bob", "eve"}, users)
}

func TestHTTPBackend_TimerStart(t *testing.T) {
	var cap capture
	srv := newServer(t, http.StatusOK, `{"startTime":1700000000000}`, &cap)
	b := NewHTTPBackend(srv.URL)

	start, err := b.TimerStart(context.Background())
	require.NoError(t, err)
	require.Equal(t, time.UnixMilli(1700000000000), start)
}

func TestHTTPBackend_Unauthorized(t *testing.T) {
	var cap capture
	srv := newServer(t, http.StatusUnauthorized, ``, &cap)
	b := NewHTTPBackend(srv.URL)

	require.ErrorIs(t, b.Leave(context.Background(), "alice"), ErrUnauthorized)
}

func TestHTTPBackend_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on
	b := NewHTTPBackend(srv.URL)

	err := b.Heartbeat(context.Background(), "alice", "dev-1")
	require.ErrorIs(t, err, ErrUnavailable)

	_, err = b.FetchRoster(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}
