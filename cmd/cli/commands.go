package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	user    string
	page    int
	perPage int
)

func init() {
	statsCmd.Flags().StringVar(&user, "user", "", "Username to look up (defaults to the server's current user)")
	for _, cmd := range []*cobra.Command{gamesCmd, tournamentsCmd} {
		cmd.Flags().StringVar(&user, "user", "", "Username whose history to list (defaults to the server's current user)")
		cmd.Flags().IntVar(&page, "page", 0, "1-based page number")
		cmd.Flags().IntVar(&perPage, "per-page", 0, "Number of entries per page")
	}

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(gameCmd)
	rootCmd.AddCommand(tournamentCmd)
	rootCmd.AddCommand(gamesCmd)
	rootCmd.AddCommand(tournamentsCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health", nil)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show a user's aggregate stats and recent activity",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/stats", userQuery(cmd))
	},
}

var gameCmd = &cobra.Command{
	Use:   "game <id>",
	Short: "Show a single game",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/game", url.Values{"id": {args[0]}})
	},
}

var tournamentCmd = &cobra.Command{
	Use:   "tournament <id>",
	Short: "Show a tournament with its games",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/tournament", url.Values{"id": {args[0]}})
	},
}

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "List a page of a user's games, oldest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/games", pageQuery(cmd))
	},
}

var tournamentsCmd = &cobra.Command{
	Use:   "tournaments",
	Short: "List a page of a user's tournaments, oldest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/tournaments", pageQuery(cmd))
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics", nil)
	},
}

// userQuery only sends user when the flag was given, so the server can fall
// back to its current user.
func userQuery(cmd *cobra.Command) url.Values {
	q := url.Values{}
	if cmd.Flags().Changed("user") {
		q.Set("user", user)
	}
	return q
}

func pageQuery(cmd *cobra.Command) url.Values {
	q := userQuery(cmd)
	if cmd.Flags().Changed("page") {
		q.Set("page", strconv.Itoa(page))
	}
	if cmd.Flags().Changed("per-page") {
		q.Set("per_page", strconv.Itoa(perPage))
	}
	return q
}

func performGetRequest(endpoint string, query url.Values) error {
	target := host + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	fmt.Printf("Making request to %s\n", target)

	resp, err := http.Get(target)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
