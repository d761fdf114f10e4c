// ABOUTME: Chat command runs an interactive conversation loop
// ABOUTME: Hosts one session with /reset and /quit controls
package commands

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harper/wayfarer/internal/providers"
)

// NewChatCmd creates the chat command
func NewChatCmd() *cobra.Command {
	var units string
	var noWeb bool
	var location string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the travel assistant",
		Long: `Chat with the travel assistant

Starts an interactive session. The assistant remembers destinations,
dates, and fetched weather for the length of the session.

Commands inside the session:
  /reset   clear the conversation (preferences are kept)
  /quit    exit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, units, noWeb, location)
		},
		Example: `  # Chat with defaults from the environment
  wayfarer chat

  # Fahrenheit, no web searches
  wayfarer chat --units imperial --no-web

  # Tell the assistant where you are for "near me" questions
  wayfarer chat --location 32.08,34.78`,
	}

	cmd.Flags().StringVar(&units, "units", "", "Temperature units: metric or imperial")
	cmd.Flags().BoolVar(&noWeb, "no-web", false, "Disable web search for this session")
	cmd.Flags().StringVar(&location, "location", "", "Your coordinates as lat,lon for distance questions")

	return cmd
}

func runChat(cmd *cobra.Command, units string, noWeb bool, location string) error {
	pipeline, store, cfg, err := buildAssistant()
	if err != nil {
		return err
	}

	sess := store.Get("")
	if units != "" {
		if units != "metric" && units != "imperial" {
			return fmt.Errorf("--units must be metric or imperial, got %q", units)
		}
		sess.SetPreferences(nil, &units)
	}
	if noWeb {
		allowed := false
		sess.SetPreferences(&allowed, nil)
	}
	if location != "" {
		lat, lon, err := parseCoordinates(location)
		if err != nil {
			return err
		}
		loc, err := providers.NewLocationClient(cfg.ProviderTimeout).ReverseGeocode(cmd.Context(), lat, lon)
		if err != nil {
			return fmt.Errorf("resolving --location: %w", err)
		}
		sess.SetLocation(loc)
	}

	out := cmd.OutOrStdout()
	if !quiet {
		fmt.Fprintf(out, "Wayfarer travel assistant (model %s). /reset to start over, /quit to exit.\n", cfg.ChatModel)
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	scanner.Buffer(make([]byte, 64*1024), 64*1024)
	for {
		fmt.Fprint(out, "you> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "/quit", line == "/exit":
			fmt.Fprintln(out, "Safe travels!")
			return nil
		case line == "/reset":
			store.Reset(sess.ID)
			fmt.Fprintln(out, "Conversation cleared.")
			continue
		}

		reply, err := sess.RunTurn(cmd.Context(), pipeline, line)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		fmt.Fprintf(out, "wayfarer> %s\n", reply)
		if verbose {
			if summary := sess.Summary(); summary != "" {
				fmt.Fprintf(out, "[summary] %s\n", truncate(summary, 160))
			}
		}
	}
	return scanner.Err()
}

// parseCoordinates splits a "lat,lon" pair.
func parseCoordinates(s string) (float64, float64, error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("--location must be lat,lon, got %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("--location latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("--location longitude: %w", err)
	}
	return lat, lon, nil
}
