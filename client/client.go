// Package client is a typed HTTP client for the leaderboard API, used by
// the CLI frontend.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const DefaultBaseURL = "http://localhost:5000/api"

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Points int    `json:"points"`
}

type LeaderboardRow struct {
	Rank      int        `json:"rank"`
	Name      string     `json:"name"`
	Points    int        `json:"points"`
	ID        string     `json:"id"`
	LastClaim *time.Time `json:"lastClaim"`
}

type Snapshot struct {
	Name        string `json:"name"`
	TotalPoints int    `json:"totalPoints"`
}

type HistoryEntry struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Points       int       `json:"points"`
	ClaimedAt    time.Time `json:"claimedAt"`
	UserSnapshot Snapshot  `json:"userSnapshot"`
	UserName     string    `json:"userName"`
}

type ClaimResult struct {
	User   User `json:"user"`
	Points int  `json:"points"`
}

type Status struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

func (c *Client) Ping() (*Status, error) {
	var status Status
	if err := c.get("/test", &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *Client) Users() ([]User, error) {
	var users []User
	if err := c.get("/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) AddUser(name string) (*User, error) {
	var user User
	if err := c.post("/users", map[string]string{"name": name}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Claim(userID string) (*ClaimResult, error) {
	var result ClaimResult
	if err := c.post("/claim", map[string]string{"userId": userID}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Leaderboard() ([]LeaderboardRow, error) {
	var rows []LeaderboardRow
	if err := c.get("/leaderboard", &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *Client) History() ([]HistoryEntry, error) {
	var entries []HistoryEntry
	if err := c.get("/history", &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) Reset() (string, error) {
	var res struct {
		Message string `json:"message"`
	}
	if err := c.post("/reset", nil, &res); err != nil {
		return "", err
	}
	return res.Message, nil
}

func (c *Client) FixHistory() (string, error) {
	var res struct {
		Message string `json:"message"`
	}
	if err := c.post("/fix-history", nil, &res); err != nil {
		return "", err
	}
	return res.Message, nil
}

func (c *Client) get(path string, out any) error {
	return c.do(http.MethodGet, path, nil, out)
}

func (c *Client) post(path string, body, out any) error {
	return c.do(http.MethodPost, path, body, out)
}

func (c *Client) do(method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	if res.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s: %s", method, path, apiErr.Error)
		}
		return fmt.Errorf("%s %s: unexpected status %d", method, path, res.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}
