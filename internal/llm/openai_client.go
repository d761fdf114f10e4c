// ABOUTME: OpenAI-compatible client for the reasoning oracle
// ABOUTME: Plain completions plus a structured decode ladder with typed fallbacks
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/harper/wayfarer/internal/config"
	"github.com/harper/wayfarer/internal/models"
	"github.com/harper/wayfarer/internal/util"
	openai "github.com/sashabaranov/go-openai"
)

// DefaultChatModel is the default model for chat completions
const DefaultChatModel = "gpt-4o-mini"

// Client wraps the OpenAI API client with retry logic
type Client struct {
	client     *openai.Client
	model      string
	maxRetries int
	retryDelay time.Duration
	timeout    time.Duration
}

// NewClient creates a new oracle client from configuration
func NewClient(cfg *config.Config) (*Client, error) {
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	model := cfg.ChatModel
	if model == "" {
		model = DefaultChatModel
	}

	return &Client{
		client:     openai.NewClient(cfg.OpenAIKey),
		model:      model,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		timeout:    cfg.Timeout,
	}, nil
}

// NewClientWithBaseURL creates a client pointed at a custom API endpoint.
// Used by tests and by OpenAI-compatible gateways.
func NewClientWithBaseURL(cfg *config.Config, baseURL string) (*Client, error) {
	c, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}
	oaiCfg := openai.DefaultConfig(cfg.OpenAIKey)
	oaiCfg.BaseURL = baseURL
	c.client = openai.NewClientWithConfig(oaiCfg)
	return c, nil
}

// Complete sends a system+user message pair and returns the raw reply text.
// Transient failures are retried with exponential backoff.
func (c *Client) Complete(ctx context.Context, system, user string, temperature float32) (string, error) {
	return c.complete(ctx, system, user, temperature, false)
}

func (c *Client) complete(ctx context.Context, system, user string, temperature float32, jsonMode bool) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: temperature,
	}
	if jsonMode {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(util.CalculateBackoff(c.retryDelay, attempt))
		}

		attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
		resp, err := c.client.CreateChatCompletion(attemptCtx, req)
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}
		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("attempt %d: no completion choices returned", attempt+1)
			continue
		}

		return resp.Choices[0].Message.Content, nil
	}

	return "", fmt.Errorf("completion failed after %d attempts: %w", c.maxRetries+1, lastErr)
}

// jsonModeHint is appended to structured prompts. JSON response mode requires
// the word JSON to appear in the conversation.
const jsonModeHint = "\n\nRespond with a single JSON object containing exactly the required fields."

// strictSystem replaces the system prompt on the final zero-temperature retry.
const strictSystem = "Return ONLY a valid JSON object with the required fields. No prose, no code fences."

// structured runs the decode ladder for a structured oracle call:
// a JSON-mode attempt, a raw-text parse of whatever came back, one strict
// zero-temperature retry, and finally the shape's typed default with any
// partially parsed fields merged over it. It never fails the turn.
func structured[T any](ctx context.Context, c *Client, system, user string, temperature float32, fallback T) T {
	var partial map[string]any

	decode := func(raw string) (T, bool) {
		var out T
		candidate := extractJSON(raw)
		if candidate == "" {
			return out, false
		}
		// Remember the loosest successful parse for the fallback merge.
		var m map[string]any
		if err := json.Unmarshal([]byte(candidate), &m); err == nil && partial == nil {
			partial = m
		}
		if err := json.Unmarshal([]byte(candidate), &out); err != nil {
			return out, false
		}
		return out, true
	}

	raw, err := c.complete(ctx, system+jsonModeHint, user, temperature, true)
	if err == nil {
		if out, ok := decode(raw); ok {
			return out
		}
	} else {
		log.Printf("[Oracle] structured call failed: %v", err)
	}

	raw, err = c.complete(ctx, strictSystem, user+jsonModeHint, 0, true)
	if err == nil {
		if out, ok := decode(raw); ok {
			return out
		}
	} else {
		log.Printf("[Oracle] strict retry failed: %v", err)
	}

	log.Printf("[Oracle] structured decode exhausted; using typed default")
	return mergeOverDefault(fallback, partial)
}

// extractJSON returns the JSON object embedded in raw text, tolerating code
// fences and surrounding prose. Empty string when no object is present.
func extractJSON(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}

// mergeOverDefault lays any partially parsed fields over the shape's typed
// default, so a half-valid oracle reply still contributes what it can.
func mergeOverDefault[T any](fallback T, partial map[string]any) T {
	if len(partial) == 0 {
		return fallback
	}
	base, err := json.Marshal(fallback)
	if err != nil {
		return fallback
	}
	var baseMap map[string]any
	if err := json.Unmarshal(base, &baseMap); err != nil {
		return fallback
	}
	merged := util.DeepMerge(baseMap, partial)
	buf, err := json.Marshal(merged)
	if err != nil {
		return fallback
	}
	out := fallback
	if err := json.Unmarshal(buf, &out); err != nil {
		return fallback
	}
	return out
}

// PlanTools asks the oracle which data sources the turn needs.
func (c *Client) PlanTools(ctx context.Context, system, user string) models.ToolPlan {
	return structured(ctx, c, system, user, 0.1, models.DefaultToolPlan())
}

// PlanTime asks the oracle to normalize the turn's temporal intent.
func (c *Client) PlanTime(ctx context.Context, system, user string) models.TimePlan {
	return structured(ctx, c, system, user, 0.1, models.DefaultTimePlan())
}

// ResolvePlace asks the oracle which place the user is talking about.
func (c *Client) ResolvePlace(ctx context.Context, system, user string) models.PlacePlan {
	return structured(ctx, c, system, user, 0.1, models.DefaultPlacePlan())
}

// Compose asks the oracle for a grounded answer with self-rated confidence.
func (c *Client) Compose(ctx context.Context, system, user string) models.ComposeOut {
	return structured(ctx, c, system, user, 0, models.DefaultComposeOut())
}
