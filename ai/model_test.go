package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplete(t *testing.T) {
	model := NewDummyModel(func(ctx context.Context, messages []Message) (AIMessage, error) {
		require.Len(t, messages, 2)
		role, content := messages[0].Value()
		assert.Equal(t, SystemRole, role)
		assert.Equal(t, "you are a test", content)
		role, content = messages[1].Value()
		assert.Equal(t, UserRole, role)
		assert.Equal(t, "hello", content)
		return AIMessage{Role: AssistantRole, Content: "world"}, nil
	})

	got, err := model.Complete(context.Background(), "you are a test", "hello")
	require.NoError(t, err)
	assert.Equal(t, "world", got)
}

func TestCallWithoutProvider(t *testing.T) {
	model := &Model{ModelName: "unset"}
	_, err := model.Call(context.Background(), nil)
	assert.Error(t, err)
}

func TestCloneDoesNotShareOptions(t *testing.T) {
	base := NewDummyModel(func(ctx context.Context, messages []Message) (AIMessage, error) {
		return AIMessage{}, nil
	})
	clone := base.Clone().WithTemperature(0.2).WithMaxTokens(1024)

	assert.Nil(t, base.Temperature)
	assert.Nil(t, base.MaxTokens)
	require.NotNil(t, clone.Temperature)
	assert.Equal(t, 0.2, *clone.Temperature)
	require.NotNil(t, clone.MaxTokens)
	assert.Equal(t, 1024, *clone.MaxTokens)
}

func TestGroqGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req groqChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3-8b-8192", req.Model)
		require.NotNil(t, req.Temperature)
		assert.Equal(t, 0.0, *req.Temperature)

		resp := groqChatResponse{
			Model: req.Model,
			Choices: []groqChoice{
				{Message: groqChatMessage{Role: "assistant", Content: "generated text"}},
			},
			Usage: Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	model := NewGroqModel("llama3-8b-8192", "test-key", srv.URL).WithTemperature(0)
	msg, err := model.Call(context.Background(), []Message{
		SystemMessage{Role: SystemRole, Content: "system"},
		UserMessage{Role: UserRole, Content: "user"},
	})
	require.NoError(t, err)
	assert.Equal(t, "generated text", msg.Content)
	assert.Equal(t, 15, msg.Usage.TotalTokens)
}

func TestGroqGenerateStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(groqChatResponse{Error: &groqError{Message: "rate limited", Type: "requests"}})
	}))
	defer srv.Close()

	model := NewGroqModel("llama3-8b-8192", "test-key", srv.URL)
	_, err := model.Call(context.Background(), []Message{UserMessage{Role: UserRole, Content: "user"}})
	require.Error(t, err)

	statusErr, ok := err.(StatusError)
	require.True(t, ok)
	assert.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
	assert.Equal(t, "rate limited", statusErr.ErrorMessage)
}

func TestGroqGenerateMissingKey(t *testing.T) {
	model := NewGroqModel("llama3-8b-8192", "x")
	model.APIKey = ""
	_, err := model.Call(context.Background(), nil)
	assert.ErrorContains(t, err, "GROQ_API_KEY")
}
