// ABOUTME: Shared wiring helpers for CLI commands
// ABOUTME: Builds the pipeline and session store from configuration
package commands

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/harper/wayfarer/internal/config"
	"github.com/harper/wayfarer/internal/core"
	"github.com/harper/wayfarer/internal/llm"
	"github.com/harper/wayfarer/internal/providers"
	"github.com/harper/wayfarer/internal/session"
)

// buildAssistant loads configuration and wires the full turn pipeline plus a
// session store with the configured preference defaults.
func buildAssistant() (*core.Pipeline, *session.Store, *config.Config, error) {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil && verbose {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading configuration: %w", err)
	}

	oracle, err := llm.NewClient(cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("initializing OpenAI client: %w", err)
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

	return pipeline, store, cfg, nil
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return string(runes[:maxLen-3]) + "..."
}
