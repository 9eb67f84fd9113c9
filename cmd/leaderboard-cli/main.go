// Command leaderboard-cli is the terminal frontend for the leaderboard
// API: one subcommand per view plus an interactive mode.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"leaderboard-system/client"

	"github.com/spf13/cobra"
)

var apiBase string

func main() {
	root := &cobra.Command{
		Use:   "leaderboard-cli",
		Short: "Terminal client for the points leaderboard",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	defaultBase := os.Getenv("LEADERBOARD_API")
	if defaultBase == "" {
		defaultBase = client.DefaultBaseURL
	}
	root.PersistentFlags().StringVar(&apiBase, "api", defaultBase, "base URL of the leaderboard API")

	root.AddCommand(
		newPingCmd(),
		newUsersCmd(),
		newAddCmd(),
		newClaimCmd(),
		newBoardCmd(),
		newHistoryCmd(),
		newResetCmd(),
		newFixHistoryCmd(),
		newInteractiveCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func api() *client.Client {
	return client.New(apiBase)
}

func newPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the backend is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := api().Ping()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", status.Message, status.Timestamp)
			return nil
		},
	}
}

func newUsersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List all users, sorted by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := api().Users()
			if err != nil {
				return err
			}
			client.RenderUsers(cmd.OutOrStdout(), users, "")
			return nil
		},
	}
}

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new user with zero points",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			if name == "" {
				return fmt.Errorf("name must not be empty")
			}
			user, err := api().AddUser(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added user %s (%s)\n", user.Name, user.ID)
			return nil
		},
	}
}

func newClaimCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "claim <userId>",
		Short: "Claim random points for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := api().Claim(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "🎉 %s claimed %d points! New total: %d\n",
				result.User.Name, result.Points, result.User.Points)
			return nil
		},
	}
}

func newBoardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Show the leaderboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := api().Leaderboard()
			if err != nil {
				return err
			}
			client.RenderLeaderboard(cmd.OutOrStdout(), rows, time.Now())
			return nil
		},
	}
}

func newHistoryCmd() *cobra.Command {
	var page int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent claim history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := api().History()
			if err != nil {
				return err
			}
			client.RenderHistory(cmd.OutOrStdout(), entries, page, time.Now())
			return nil
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "history page to show")
	return cmd
}

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete all users and claim history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := api().Reset()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
}

func newFixHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fix-history",
		Short: "Remove orphaned claim history entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := api().FixHistory()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
}

func newInteractiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Interactive leaderboard session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := newSession(api(), cmd.InOrStdin(), cmd.OutOrStdout())
			return s.run()
		},
	}
}

// parsePage interprets a user-typed page argument.
func parsePage(arg string) (int, error) {
	page, err := strconv.Atoi(arg)
	if err != nil || page < 1 {
		return 0, fmt.Errorf("page must be a positive number")
	}
	return page, nil
}
