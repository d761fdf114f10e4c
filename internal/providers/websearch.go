// ABOUTME: Tavily web-search client for fresh, time-sensitive facts
// ABOUTME: Provider-reported errors and a missing key degrade to no results
package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/harper/wayfarer/internal/models"
)

const searchBaseURL = "https://api.tavily.com/search"

// SearchClient talks to the Tavily search API.
type SearchClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewSearchClient creates a web-search client. An empty API key is allowed;
// searches then return no results rather than failing turns.
func NewSearchClient(timeout time.Duration, apiKey string) *SearchClient {
	return &SearchClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    searchBaseURL,
		apiKey:     apiKey,
	}
}

// NewSearchClientWithURL creates a client against a custom endpoint, for tests.
func NewSearchClientWithURL(timeout time.Duration, apiKey, baseURL string) *SearchClient {
	c := NewSearchClient(timeout, apiKey)
	c.baseURL = baseURL
	return c
}

// Search runs a web search and returns up to maxResults hits. A missing key
// or an error reported inside the provider's response body yields (nil, nil);
// transport and HTTP failures are returned to the caller.
func (c *SearchClient) Search(ctx context.Context, query string, maxResults int) ([]models.WebResult, error) {
	if c.apiKey == "" {
		log.Printf("[Search] no API key configured; skipping web search")
		return nil, nil
	}

	payload, err := json.Marshal(map[string]any{
		"query":       query,
		"max_results": maxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building search request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("searching web: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("searching web: unexpected status %d", resp.StatusCode)
	}

	var body struct {
		Results []struct {
			Title string `json:"title"`
			URL   string `json:"url"`
		} `json:"results"`
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}

	if body.Error != "" {
		log.Printf("[Search] provider reported error: %s", body.Error)
		return nil, nil
	}

	results := make([]models.WebResult, 0, len(body.Results))
	for _, r := range body.Results {
		if len(results) >= maxResults {
			break
		}
		results = append(results, models.WebResult{Title: r.Title, URL: r.URL})
	}
	return results, nil
}
