// ABOUTME: Ask command runs a single one-shot turn
// ABOUTME: Prints the reply and optionally the trip summary
package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewAskCmd creates the ask command
func NewAskCmd() *cobra.Command {
	var units string
	var noWeb bool
	var showSummary bool

	cmd := &cobra.Command{
		Use:   "ask <message>",
		Short: "Ask the assistant a single question",
		Long: `Ask the assistant a single question

Runs one conversation turn with no prior history and prints the reply.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(cmd, strings.Join(args, " "), units, noWeb, showSummary)
		},
		Example: `  wayfarer ask "weather in Lisbon this weekend"
  wayfarer ask --units imperial "how hot is it in Austin today"`,
	}

	cmd.Flags().StringVar(&units, "units", "", "Temperature units: metric or imperial")
	cmd.Flags().BoolVar(&noWeb, "no-web", false, "Disable web search for this question")
	cmd.Flags().BoolVar(&showSummary, "summary", false, "Also print the trip summary")

	return cmd
}

func runAsk(cmd *cobra.Command, message, units string, noWeb, showSummary bool) error {
	pipeline, store, _, err := buildAssistant()
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

	reply, err := sess.RunTurn(cmd.Context(), pipeline, message)
	if err != nil {
		return fmt.Errorf("running turn: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), reply)
	if showSummary {
		if summary := sess.Summary(); summary != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "\nSummary: %s\n", summary)
		}
	}
	return nil
}
