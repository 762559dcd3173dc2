package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTavilySearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)

		var req tavilySearchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-key", req.APIKey)
		assert.Equal(t, "bakery suppliers lisbon", req.Query)
		assert.Equal(t, "basic", req.SearchDepth)
		assert.False(t, req.IncludeRawContent)
		assert.Equal(t, 5, req.MaxResults)

		json.NewEncoder(w).Encode(tavilySearchResponse{
			Query: req.Query,
			Results: []Result{
				{Title: "Supplier Directory", URL: "https://example.com/suppliers", Content: "a directory", Score: 0.91},
				{Title: "Trade Fair", URL: "https://example.com/fair", Content: "a fair", Score: 0.52},
			},
		})
	}))
	defer srv.Close()

	client := NewTavilyClient("test-key", srv.URL)
	results, err := client.Search(context.Background(), "bakery suppliers lisbon")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "https://example.com/suppliers", results[0].URL)
	assert.Equal(t, 0.91, results[0].Score)
}

func TestTavilySearchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewTavilyClient("test-key", srv.URL)
	_, err := client.Search(context.Background(), "anything at all")
	assert.Error(t, err)
}

func TestTavilySearchMissingKey(t *testing.T) {
	client := NewTavilyClient("x")
	client.apiKey = ""
	_, err := client.Search(context.Background(), "query")
	assert.ErrorContains(t, err, "TAVILY_API_KEY")
}
