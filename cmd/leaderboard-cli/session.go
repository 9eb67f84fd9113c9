package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"leaderboard-system/client"
)

// notificationWindow is how long the "claimed N points" banner stays
// visible after a successful claim.
const notificationWindow = 3 * time.Second

// session holds the interactive client state: the three fetched views,
// the current selection and history page, the transient claim
// notification, and a busy flag that blocks duplicate claim submissions.
type session struct {
	api *client.Client
	in  *bufio.Scanner
	out io.Writer

	users   []client.User
	board   []client.LeaderboardRow
	history []client.HistoryEntry

	selected      string
	page          int
	lastClaimed   int
	lastClaimedAt time.Time
	busy          bool
}

func newSession(api *client.Client, in io.Reader, out io.Writer) *session {
	return &session{
		api:  api,
		in:   bufio.NewScanner(in),
		out:  out,
		page: 1,
	}
}

func (s *session) run() error {
	if err := s.refreshAll(); err != nil {
		return fmt.Errorf("error connecting to server: %w", err)
	}

	s.render()
	for {
		fmt.Fprint(s.out, "> ")
		if !s.in.Scan() {
			return s.in.Err()
		}
		line := strings.TrimSpace(s.in.Text())
		if line == "" {
			s.render()
			continue
		}

		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]
		switch cmd {
		case "quit", "exit", "q":
			return nil
		case "help", "h":
			s.printHelp()
			continue
		case "select", "s":
			s.handleSelect(args)
		case "add", "a":
			s.handleAdd(strings.TrimSpace(strings.TrimPrefix(line, cmd)))
		case "claim", "c":
			s.handleClaim()
		case "next", "n":
			s.page = client.ClampPage(s.page+1, s.totalPages())
		case "prev", "p":
			s.page = client.ClampPage(s.page-1, s.totalPages())
		case "page":
			if len(args) != 1 {
				fmt.Fprintln(s.out, "Usage: page <number>")
				continue
			}
			page, err := parsePage(args[0])
			if err != nil {
				fmt.Fprintln(s.out, err)
				continue
			}
			s.page = client.ClampPage(page, s.totalPages())
		case "refresh", "r":
			s.refreshInBackground()
		default:
			fmt.Fprintf(s.out, "Unknown command %q (try \"help\")\n", cmd)
			continue
		}
		s.render()
	}
}

// refreshAll fetches users, leaderboard, and history concurrently and
// fails if any fetch fails. Used at startup where a failure is surfaced
// to the user.
func (s *session) refreshAll() error {
	var wg sync.WaitGroup
	errs := make([]error, 3)

	wg.Add(3)
	go func() {
		defer wg.Done()
		users, err := s.api.Users()
		if err == nil {
			s.users = users
		}
		errs[0] = err
	}()
	go func() {
		defer wg.Done()
		board, err := s.api.Leaderboard()
		if err == nil {
			s.board = board
		}
		errs[1] = err
	}()
	go func() {
		defer wg.Done()
		history, err := s.api.History()
		if err == nil {
			s.history = history
		}
		errs[2] = err
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// refreshInBackground re-fetches all views, logging failures instead of
// surfacing them.
func (s *session) refreshInBackground() {
	if err := s.refreshAll(); err != nil {
		log.Printf("Error refreshing data: %v", err)
	}
}

func (s *session) handleSelect(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "Usage: select <number|userId>")
		return
	}
	arg := args[0]
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(s.users) {
			fmt.Fprintf(s.out, "No user #%d\n", n)
			return
		}
		s.selected = s.users[n-1].ID
		return
	}
	for _, u := range s.users {
		if u.ID == arg {
			s.selected = u.ID
			return
		}
	}
	fmt.Fprintf(s.out, "No user with id %q\n", arg)
}

func (s *session) handleAdd(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		fmt.Fprintln(s.out, "Usage: add <name>")
		return
	}
	if _, err := s.api.AddUser(name); err != nil {
		log.Printf("Error adding user: %v", err)
		return
	}
	// Only the views that can change
	if users, err := s.api.Users(); err == nil {
		s.users = users
	} else {
		log.Printf("Error refreshing users: %v", err)
	}
	if board, err := s.api.Leaderboard(); err == nil {
		s.board = board
	} else {
		log.Printf("Error refreshing leaderboard: %v", err)
	}
}

func (s *session) handleClaim() {
	if s.busy {
		fmt.Fprintln(s.out, "Claim already in flight.")
		return
	}
	if s.selected == "" {
		fmt.Fprintln(s.out, "Please select a user first!")
		return
	}

	s.busy = true
	result, err := s.api.Claim(s.selected)
	s.busy = false
	if err != nil {
		log.Printf("Error claiming points: %v", err)
		return
	}

	s.lastClaimed = result.Points
	s.lastClaimedAt = time.Now()
	s.refreshInBackground()
}

func (s *session) totalPages() int {
	return client.TotalPages(len(s.history), client.HistoryPageSize)
}

func (s *session) render() {
	now := time.Now()
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "🏆 Leaderboard System")

	if s.lastClaimed > 0 && now.Sub(s.lastClaimedAt) < notificationWindow {
		fmt.Fprintf(s.out, "🎉 You claimed %d points!\n", s.lastClaimed)
	} else {
		s.lastClaimed = 0
	}

	fmt.Fprintln(s.out, "\nUsers:")
	if len(s.users) == 0 {
		fmt.Fprintln(s.out, "(none yet, use \"add <name>\")")
	} else {
		client.RenderUsers(s.out, s.users, s.selected)
	}

	fmt.Fprintln(s.out, "\nLeaderboard:")
	client.RenderLeaderboard(s.out, s.board, now)

	fmt.Fprintln(s.out, "\nClaim History:")
	s.page = client.ClampPage(s.page, client.TotalPages(len(s.history), client.HistoryPageSize))
	client.RenderHistory(s.out, s.history, s.page, now)
	fmt.Fprintln(s.out)
}

func (s *session) printHelp() {
	fmt.Fprint(s.out, `Commands:
  select <n|id>   select a user
  claim           claim random points for the selected user
  add <name>      add a new user
  next / prev     change history page
  page <n>        jump to a history page
  refresh         re-fetch all views
  help            show this help
  quit            exit
`)
}
