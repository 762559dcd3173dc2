package leadgen

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexxia-ai/leadgen/ai"
	"github.com/nexxia-ai/leadgen/search"
)

// queryEchoModel returns four fixed queries for every analyst.
func queryEchoModel() *ai.Model {
	return ai.NewDummyModel(func(ctx context.Context, messages []ai.Message) (ai.AIMessage, error) {
		return ai.AIMessage{
			Role:    ai.AssistantRole,
			Content: "bakery leads lisbon\nbakery partners lisbon\nbakery events lisbon\nbakery media lisbon",
		}, nil
	})
}

func TestResearchCollectsFromAllCategories(t *testing.T) {
	var mu sync.Mutex
	seenQueries := 0
	client := search.NewDummyClient(func(ctx context.Context, query string) ([]search.Result, error) {
		mu.Lock()
		seenQueries++
		n := seenQueries
		mu.Unlock()
		return []search.Result{
			{Title: "Lead", URL: fmt.Sprintf("https://example.com/%d", n), Content: "content", Score: 0.7},
		}, nil
	})
	engine := New(queryEchoModel(), client)

	state := NewState(Params{JobID: "job-1", BusinessType: "Bakery", Location: "Lisbon"})
	stage := &researchStage{engine: engine}
	require.NoError(t, stage.Run(context.Background(), state))

	// 5 categories x 4 queries, one document each, all distinct URLs.
	assert.Len(t, state.Documents, 20)

	byCat := state.DocsByCategory()
	for _, cat := range Categories() {
		assert.NotEmpty(t, byCat[cat], "category %s should have documents", cat)
	}
}

func TestResearchInsertsPlaceholdersWhenEmpty(t *testing.T) {
	client := search.NewDummyClient(func(ctx context.Context, query string) ([]search.Result, error) {
		return nil, nil
	})
	notifier := NewChannelNotifier(500)
	engine := New(queryEchoModel(), client, WithNotifier(notifier))

	state := NewState(Params{JobID: "job-1", BusinessType: "Bakery", Location: "Lisbon"})
	stage := &researchStage{engine: engine}
	require.NoError(t, stage.Run(context.Background(), state))

	require.NotEmpty(t, state.Documents)
	categories := make(map[Category]bool)
	for _, doc := range state.Documents {
		require.NotEmpty(t, doc.URL)
		require.NotEmpty(t, doc.Content)
		assert.GreaterOrEqual(t, doc.Score, 0.8)
		categories[doc.AnalystType] = true
	}
	assert.GreaterOrEqual(t, len(categories), 2, "placeholders span at least two categories")

	notifier.Close()
	var statuses []string
	for update := range notifier.Updates() {
		statuses = append(statuses, update.Status)
	}
	assert.Contains(t, statuses, "research_started")
	assert.Contains(t, statuses, "research_completed")
}

func TestResearchSingleCategoryFailureIsIsolated(t *testing.T) {
	client := search.NewDummyClient(func(ctx context.Context, query string) ([]search.Result, error) {
		if strings.Contains(query, "partners") {
			return nil, errors.New("category is broken")
		}
		return []search.Result{
			{Title: "Lead", URL: "https://example.com/" + strings.ReplaceAll(query, " ", "-"), Content: "content", Score: 0.7},
		}, nil
	})

	// Each analyst generates one distinctive query so the failing category
	// can be targeted: the partnership analyst asks about partners.
	model := ai.NewDummyModel(func(ctx context.Context, messages []ai.Message) (ai.AIMessage, error) {
		_, content := messages[1].Value()
		var query string
		switch {
		case strings.Contains(content, "Partnership Analyst"):
			query = "bakery partners lisbon"
		case strings.Contains(content, "Direct Leads Analyst"):
			query = "bakery direct lisbon"
		case strings.Contains(content, "Community Analyst"):
			query = "bakery community lisbon"
		case strings.Contains(content, "Events Analyst"):
			query = "bakery events lisbon"
		default:
			query = "bakery influencer lisbon"
		}
		return ai.AIMessage{Role: ai.AssistantRole, Content: query}, nil
	})
	engine := New(model, client)

	state := NewState(Params{JobID: "job-1", BusinessType: "Bakery", Location: "Lisbon"})
	stage := &researchStage{engine: engine}
	require.NoError(t, stage.Run(context.Background(), state))

	byCat := state.DocsByCategory()
	assert.Empty(t, byCat[CategoryPartnership], "failing category contributes no documents")
	assert.NotEmpty(t, byCat[CategoryDirect])
	assert.NotEmpty(t, byCat[CategoryEvents])
}
