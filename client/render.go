package client

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"
)

// HistoryPageSize is the client-side page size over the (already capped)
// server history result.
const HistoryPageSize = 8

// pageWindow bounds how many page numbers are visible at once.
const pageWindow = 5

// TimeSince renders a coarse "time ago" label for display.
func TimeSince(t, now time.Time) string {
	diff := now.Sub(t)
	if diff < 0 {
		diff = -diff
	}
	days := int(diff.Hours()) / 24
	hours := int(diff.Hours())
	minutes := int(diff.Minutes())
	switch {
	case days > 0:
		return fmt.Sprintf("%d day%s ago", days, plural(days))
	case hours > 0:
		return fmt.Sprintf("%d hour%s ago", hours, plural(hours))
	case minutes > 0:
		return fmt.Sprintf("%d minute%s ago", minutes, plural(minutes))
	default:
		return "Just now"
	}
}

func plural(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}

// TotalPages returns the number of pages needed for n items.
func TotalPages(n, pageSize int) int {
	if pageSize <= 0 || n <= 0 {
		return 0
	}
	return (n + pageSize - 1) / pageSize
}

// ClampPage clamps a 1-based page into [1, totalPages].
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		return 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Paginate returns the 1-based page of history entries.
func Paginate(entries []HistoryEntry, page int) []HistoryEntry {
	totalPages := TotalPages(len(entries), HistoryPageSize)
	page = ClampPage(page, totalPages)
	if totalPages == 0 {
		return nil
	}
	start := (page - 1) * HistoryPageSize
	end := start + HistoryPageSize
	if end > len(entries) {
		end = len(entries)
	}
	return entries[start:end]
}

// PageNumbers returns the sliding window of visible page numbers around
// the current page, at most pageWindow wide, clamped at the edges.
func PageNumbers(current, total int) []int {
	if total <= 0 {
		return nil
	}
	n := pageWindow
	if total < n {
		n = total
	}
	nums := make([]int, 0, n)
	for i := 0; i < n; i++ {
		var p int
		switch {
		case total <= pageWindow:
			p = i + 1
		case current <= 3:
			p = i + 1
		case current >= total-2:
			p = total - (pageWindow - 1) + i
		default:
			p = current - 2 + i
		}
		nums = append(nums, p)
	}
	return nums
}

// RenderUsers prints the user selector table; the selected user id is
// marked.
func RenderUsers(w io.Writer, users []User, selected string) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\t#\tNAME\tPOINTS\tID")
	for i, u := range users {
		marker := " "
		if u.ID == selected {
			marker = ">"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%d\t%s\n", marker, i+1, u.Name, u.Points, u.ID)
	}
	tw.Flush()
}

// RenderLeaderboard prints the ranked table.
func RenderLeaderboard(w io.Writer, rows []LeaderboardRow, now time.Time) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tNAME\tPOINTS\tLAST CLAIM")
	for _, r := range rows {
		lastClaim := "never"
		if r.LastClaim != nil {
			lastClaim = TimeSince(*r.LastClaim, now)
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", r.Rank, r.Name, r.Points, lastClaim)
	}
	tw.Flush()
}

// RenderHistory prints one page of claim history plus the page control.
func RenderHistory(w io.Writer, entries []HistoryEntry, page int, now time.Time) {
	totalPages := TotalPages(len(entries), HistoryPageSize)
	page = ClampPage(page, totalPages)

	pageEntries := Paginate(entries, page)
	if len(pageEntries) == 0 {
		fmt.Fprintln(w, "No activity yet.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "USER\tPOINTS\tTIME")
	for _, e := range pageEntries {
		fmt.Fprintf(tw, "%s\t+%d\t%s\n", displayName(e), e.Points, TimeSince(e.ClaimedAt, now))
	}
	tw.Flush()

	if totalPages > 1 {
		fmt.Fprintf(w, "Page:")
		for _, p := range PageNumbers(page, totalPages) {
			if p == page {
				fmt.Fprintf(w, " [%d]", p)
			} else {
				fmt.Fprintf(w, " %d", p)
			}
		}
		fmt.Fprintf(w, " (of %d)\n", totalPages)
	}
}

// displayName prefers the preserved snapshot name, then the resolved user
// name, then a sentinel.
func displayName(e HistoryEntry) string {
	if e.UserSnapshot.Name != "" {
		return e.UserSnapshot.Name
	}
	if e.UserName != "" {
		return e.UserName
	}
	return "Unknown User"
}
