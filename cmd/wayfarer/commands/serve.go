// ABOUTME: Serve command starts the Model Context Protocol server
// ABOUTME: Enables LLM agents like Claude to use the assistant via stdio
package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/harper/wayfarer/internal/mcp"
)

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs Wayfarer as an MCP (Model Context Protocol) server, exposing the
travel_chat, reset_conversation, get_trip_profile, and set_preferences
tools over stdio.

Configure in Claude Desktop's config file to enable the assistant.`,
		RunE: runServe,
		Example: `  # Start MCP server (typically called by Claude Desktop)
  wayfarer serve

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "wayfarer": {
  #       "command": "wayfarer",
  #       "args": ["serve"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runServe starts the MCP server
func runServe(cmd *cobra.Command, args []string) error {
	pipeline, store, _, err := buildAssistant()
	if err != nil {
		return err
	}

	server := mcpserver.NewMCPServer(
		"Wayfarer Travel Assistant",
		versionInfo.Version,
	)
	mcp.RegisterTools(server, pipeline, store)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		log.Println("Wayfarer MCP server starting on stdio...")
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	// Wait for shutdown signal or server error
	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, shutting down...")
		}
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
