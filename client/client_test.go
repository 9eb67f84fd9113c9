package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*httptest.Server, *Client) {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/test", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"message":   "Backend is working!",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
	mux.HandleFunc("GET /api/users", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []User{
			{ID: "u1", Name: "Ava", Points: 7},
			{ID: "u2", Name: "Ben", Points: 0},
		})
	})
	mux.HandleFunc("POST /api/users", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Name is required"})
			return
		}
		writeJSON(w, http.StatusOK, User{ID: "u3", Name: req.Name, Points: 0})
	})
	mux.HandleFunc("POST /api/claim", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			UserID string `json:"userId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "User ID is required"})
			return
		}
		if req.UserID != "u1" {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "User not found"})
			return
		}
		writeJSON(w, http.StatusOK, ClaimResult{User: User{ID: "u1", Name: "Ava", Points: 12}, Points: 5})
	})
	mux.HandleFunc("GET /api/leaderboard", func(w http.ResponseWriter, r *http.Request) {
		last := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
		writeJSON(w, http.StatusOK, []LeaderboardRow{
			{Rank: 1, Name: "Ava", Points: 7, ID: "u1", LastClaim: &last},
			{Rank: 2, Name: "Ben", Points: 0, ID: "u2"},
		})
	})
	mux.HandleFunc("GET /api/history", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []HistoryEntry{
			{
				ID: "h1", UserID: "u1", Points: 5,
				ClaimedAt:    time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC),
				UserSnapshot: Snapshot{Name: "Ava", TotalPoints: 12},
				UserName:     "Ava",
			},
		})
	})
	mux.HandleFunc("POST /api/reset", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Database reset successfully"})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, New(srv.URL + "/api")
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestPing(t *testing.T) {
	_, c := newTestServer(t)

	status, err := c.Ping()
	require.NoError(t, err)
	assert.Equal(t, "Backend is working!", status.Message)
}

func TestUsers(t *testing.T) {
	_, c := newTestServer(t)

	users, err := c.Users()
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Ava", users[0].Name)
	assert.Equal(t, 7, users[0].Points)
}

func TestAddUser(t *testing.T) {
	_, c := newTestServer(t)

	user, err := c.AddUser("Cara")
	require.NoError(t, err)
	assert.Equal(t, "Cara", user.Name)
	assert.Equal(t, 0, user.Points)

	_, err = c.AddUser("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Name is required")
}

func TestClaim(t *testing.T) {
	_, c := newTestServer(t)

	result, err := c.Claim("u1")
	require.NoError(t, err)
	assert.Equal(t, 5, result.Points)
	assert.Equal(t, 12, result.User.Points)
}

func TestClaimNotFound(t *testing.T) {
	_, c := newTestServer(t)

	_, err := c.Claim("nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "User not found")
}

func TestLeaderboardAndHistory(t *testing.T) {
	_, c := newTestServer(t)

	rows, err := c.Leaderboard()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.NotNil(t, rows[0].LastClaim)
	assert.Nil(t, rows[1].LastClaim)

	entries, err := c.History()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Ava", entries[0].UserSnapshot.Name)
	assert.Equal(t, 12, entries[0].UserSnapshot.TotalPoints)
}

func TestReset(t *testing.T) {
	_, c := newTestServer(t)

	msg, err := c.Reset()
	require.NoError(t, err)
	assert.Equal(t, "Database reset successfully", msg)
}

func TestServerUnreachable(t *testing.T) {
	c := New("http://127.0.0.1:1/api")
	_, err := c.Users()
	require.Error(t, err)
}
