package client

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeSince(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"seconds ago", now.Add(-30 * time.Second), "Just now"},
		{"one minute", now.Add(-90 * time.Second), "1 minute ago"},
		{"minutes", now.Add(-45 * time.Minute), "45 minutes ago"},
		{"one hour", now.Add(-90 * time.Minute), "1 hour ago"},
		{"hours", now.Add(-5 * time.Hour), "5 hours ago"},
		{"one day", now.Add(-30 * time.Hour), "1 day ago"},
		{"days", now.Add(-72 * time.Hour), "3 days ago"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TimeSince(tt.t, now))
		})
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, HistoryPageSize))
	assert.Equal(t, 1, TotalPages(1, HistoryPageSize))
	assert.Equal(t, 1, TotalPages(8, HistoryPageSize))
	assert.Equal(t, 2, TotalPages(9, HistoryPageSize))
	assert.Equal(t, 7, TotalPages(50, HistoryPageSize))
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, ClampPage(0, 5))
	assert.Equal(t, 1, ClampPage(-3, 5))
	assert.Equal(t, 3, ClampPage(3, 5))
	assert.Equal(t, 5, ClampPage(9, 5))
	assert.Equal(t, 1, ClampPage(4, 0))
}

func TestPaginate(t *testing.T) {
	entries := make([]HistoryEntry, 20)
	for i := range entries {
		entries[i].ID = fmt.Sprintf("h%d", i)
	}

	page1 := Paginate(entries, 1)
	assert.Len(t, page1, HistoryPageSize)
	assert.Equal(t, "h0", page1[0].ID)

	page3 := Paginate(entries, 3)
	assert.Len(t, page3, 4)
	assert.Equal(t, "h16", page3[0].ID)

	// Out-of-range pages clamp to the edges
	assert.Equal(t, "h16", Paginate(entries, 99)[0].ID)
	assert.Equal(t, "h0", Paginate(entries, 0)[0].ID)
	assert.Nil(t, Paginate(nil, 1))
}

func TestPageNumbers(t *testing.T) {
	tests := []struct {
		name    string
		current int
		total   int
		want    []int
	}{
		{"no pages", 1, 0, nil},
		{"fewer than window", 2, 3, []int{1, 2, 3}},
		{"exactly window", 3, 5, []int{1, 2, 3, 4, 5}},
		{"near start", 2, 10, []int{1, 2, 3, 4, 5}},
		{"middle", 6, 10, []int{4, 5, 6, 7, 8}},
		{"near end", 9, 10, []int{6, 7, 8, 9, 10}},
		{"at end", 10, 10, []int{6, 7, 8, 9, 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PageNumbers(tt.current, tt.total))
		})
	}
}

func TestRenderHistoryEmpty(t *testing.T) {
	var buf bytes.Buffer
	RenderHistory(&buf, nil, 1, time.Now())
	assert.Contains(t, buf.String(), "No activity yet.")
}

func TestRenderHistoryPageControl(t *testing.T) {
	entries := make([]HistoryEntry, 20)
	now := time.Now()
	for i := range entries {
		entries[i] = HistoryEntry{
			ID:           fmt.Sprintf("h%d", i),
			Points:       i%10 + 1,
			ClaimedAt:    now.Add(-time.Duration(i) * time.Minute),
			UserSnapshot: Snapshot{Name: "Ava", TotalPoints: 50},
		}
	}

	var buf bytes.Buffer
	RenderHistory(&buf, entries, 2, now)
	out := buf.String()
	assert.Contains(t, out, "[2]")
	assert.Contains(t, out, "(of 3)")
	assert.Contains(t, out, "Ava")
}

func TestRenderLeaderboard(t *testing.T) {
	now := time.Now()
	last := now.Add(-2 * time.Hour)
	rows := []LeaderboardRow{
		{Rank: 1, Name: "Ava", Points: 12, ID: "u1", LastClaim: &last},
		{Rank: 2, Name: "Ben", Points: 0, ID: "u2"},
	}

	var buf bytes.Buffer
	RenderLeaderboard(&buf, rows, now)
	out := buf.String()
	assert.Contains(t, out, "Ava")
	assert.Contains(t, out, "2 hours ago")
	assert.Contains(t, out, "never")
}
