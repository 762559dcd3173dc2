package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const TavilyBaseURL = "https://api.tavily.com"

// search parameters match the original research configuration: shallow
// search without raw page content, capped at 5 results per query.
const (
	tavilySearchDepth = "basic"
	tavilyMaxResults  = 5
)

type tavilySearchRequest struct {
	APIKey            string `json:"api_key"`
	Query             string `json:"query"`
	SearchDepth       string `json:"search_depth"`
	IncludeRawContent bool   `json:"include_raw_content"`
	MaxResults        int    `json:"max_results"`
}

type tavilySearchResponse struct {
	Query   string   `json:"query"`
	Results []Result `json:"results"`
}

// TavilyClient is a minimal REST client for the Tavily search API.
type TavilyClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

var _ Client = &TavilyClient{}

// NewTavilyClient creates a Tavily client. An empty apiKey falls back to the
// TAVILY_API_KEY environment variable.
func NewTavilyClient(apiKey string, baseURLs ...string) *TavilyClient {
	if apiKey == "" {
		apiKey = os.Getenv("TAVILY_API_KEY")
	}
	url := TavilyBaseURL
	if len(baseURLs) > 0 && baseURLs[0] != "" {
		url = baseURLs[0]
	}
	return &TavilyClient{
		apiKey:  apiKey,
		baseURL: url,
		client: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}
}

// Search executes one query against the Tavily search endpoint.
func (c *TavilyClient) Search(ctx context.Context, query string) ([]Result, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("missing TAVILY_API_KEY")
	}

	payload, err := json.Marshal(tavilySearchRequest{
		APIKey:            c.apiKey,
		Query:             query,
		SearchDepth:       tavilySearchDepth,
		IncludeRawContent: false,
		MaxResults:        tavilyMaxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tavily request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read search response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tavily returned %s: %s", resp.Status, string(body))
	}

	var searchResp tavilySearchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal search response: %w", err)
	}
	return searchResp.Results, nil
}
