// ABOUTME: Main entry point for the Wayfarer MCP server with stdio transport
// ABOUTME: Wires providers, oracle, and pipeline into the MCP tools
package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/harper/wayfarer/internal/config"
	"github.com/harper/wayfarer/internal/core"
	"github.com/harper/wayfarer/internal/llm"
	"github.com/harper/wayfarer/internal/mcp"
	"github.com/harper/wayfarer/internal/providers"
	"github.com/harper/wayfarer/internal/session"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	if os.Getenv("OPENAI_API_KEY") == "" {
		log.Println("Warning: OPENAI_API_KEY not set - the assistant cannot answer without it")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	oracle, err := llm.NewClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize OpenAI client: %v", err)
	}

	pipeline := core.NewPipeline(
		oracle,
		providers.NewWeatherClient(cfg.ProviderTimeout),
		providers.NewCountryClient(cfg.ProviderTimeout),
		providers.NewSearchClient(cfg.ProviderTimeout, cfg.TavilyKey),
		providers.NewLocationClient(cfg.ProviderTimeout),
		providers.NewClock(cfg.DefaultTimezone),
	)
	store := session.NewStore(cfg.WebAllowed, cfg.Units)

	// Create MCP server
	server := mcpserver.NewMCPServer(
		"Wayfarer Travel Assistant",
		"0.1.0",
	)

	// Register MCP tools
	mcp.RegisterTools(server, pipeline, store)

	// Start server with stdio transport
	log.Println("Wayfarer MCP server starting on stdio...")
	if err := mcpserver.ServeStdio(server); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
