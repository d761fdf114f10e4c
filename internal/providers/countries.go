// ABOUTME: REST Countries client for country reference facts
// ABOUTME: Supplementary data; callers tolerate total failure here
package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/harper/wayfarer/internal/models"
)

const countriesBaseURL = "https://restcountries.com/v3.1/name"

// CountryClient talks to the REST Countries API.
type CountryClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewCountryClient creates a country-facts client with the given timeout.
func NewCountryClient(timeout time.Duration) *CountryClient {
	return &CountryClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    countriesBaseURL,
	}
}

// NewCountryClientWithURL creates a client against a custom endpoint, for tests.
func NewCountryClientWithURL(timeout time.Duration, baseURL string) *CountryClient {
	c := NewCountryClient(timeout)
	c.baseURL = baseURL
	return c
}

// Facts looks up country reference facts by (possibly partial) name.
// Returns (nil, nil) when the service has no match.
func (c *CountryClient) Facts(ctx context.Context, name string) (*models.CountryFacts, error) {
	q := url.Values{}
	q.Set("fullText", "false")
	q.Set("fields", "name,currencies,languages,timezones,capital,idd,cca2")

	endpoint := fmt.Sprintf("%s/%s?%s", c.baseURL, url.PathEscape(name), q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building country request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("looking up country %q: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("looking up country %q: unexpected status %d", name, resp.StatusCode)
	}

	var body []struct {
		Name struct {
			Common string `json:"common"`
		} `json:"name"`
		Capital    []string `json:"capital"`
		Currencies map[string]struct {
			Name   string `json:"name"`
			Symbol string `json:"symbol"`
		} `json:"currencies"`
		Languages map[string]string `json:"languages"`
		Timezones []string          `json:"timezones"`
		CCA2      string            `json:"cca2"`
		IDD       struct {
			Root     string   `json:"root"`
			Suffixes []string `json:"suffixes"`
		} `json:"idd"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding country response: %w", err)
	}
	if len(body) == 0 {
		return nil, nil
	}

	top := body[0]

	capital := "?"
	if len(top.Capital) > 0 {
		capital = top.Capital[0]
	}

	currencies := make([]string, 0, len(top.Currencies))
	for code := range top.Currencies {
		currencies = append(currencies, code)
	}

	languages := make([]string, 0, len(top.Languages))
	for _, lang := range top.Languages {
		languages = append(languages, lang)
	}

	dial := top.IDD.Root
	if len(top.IDD.Suffixes) > 0 {
		dial += top.IDD.Suffixes[0]
	}

	return &models.CountryFacts{
		Name:       top.Name.Common,
		Capital:    capital,
		Currencies: currencies,
		Languages:  languages,
		Timezones:  top.Timezones,
		Dial:       dial,
		Code:       top.CCA2,
	}, nil
}
