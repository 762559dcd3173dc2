package ai

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

const GroqBaseURL = "https://api.groq.com/openai/v1"

// Groq-specific request/response types (OpenAI-compatible chat completions)
type groqChatRequest struct {
	Model       string            `json:"model"`
	Messages    []groqChatMessage `json:"messages"`
	Temperature *float64          `json:"temperature,omitempty"`
	MaxTokens   *int              `json:"max_tokens,omitempty"`
	TopP        *float64          `json:"top_p,omitempty"`
	Stream      bool              `json:"stream"`
}

type groqChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type groqChatResponse struct {
	ID      string       `json:"id"`
	Model   string       `json:"model"`
	Choices []groqChoice `json:"choices"`
	Usage   Usage        `json:"usage"`
	Error   *groqError   `json:"error,omitempty"`
}

type groqChoice struct {
	Index        int             `json:"index"`
	Message      groqChatMessage `json:"message"`
	FinishReason string          `json:"finish_reason"`
}

type groqError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// NewGroqModel creates a new Groq model using the Model struct
func NewGroqModel(modelName string, apiKey string, baseURLs ...string) *Model {
	if apiKey == "" {
		apiKey = os.Getenv("GROQ_API_KEY")
	}
	url := GroqBaseURL
	if len(baseURLs) > 0 && baseURLs[0] != "" {
		url = baseURLs[0]
	}
	return &Model{
		ModelName: modelName,
		APIKey:    apiKey,
		BaseURL:   url,
		client: &http.Client{
			Timeout: 5 * time.Minute,
		},
		callFunc: groqGenerate,
	}
}

func groqGenerate(ctx context.Context, model *Model, messages []Message) (AIMessage, error) {
	if model.APIKey == "" {
		return AIMessage{}, fmt.Errorf("missing GROQ_API_KEY")
	}

	reqBody := groqChatRequest{
		Model:       model.ModelName,
		Messages:    toGroqMessages(messages),
		Temperature: model.Temperature,
		MaxTokens:   model.MaxTokens,
		TopP:        model.TopP,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return AIMessage{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := model.BaseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return AIMessage{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+model.APIKey)

	client := model.client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return AIMessage{}, fmt.Errorf("groq request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return AIMessage{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp groqChatResponse
		msg := string(body)
		if json.Unmarshal(body, &errResp) == nil && errResp.Error != nil {
			msg = errResp.Error.Message
		}
		return AIMessage{}, StatusError{
			StatusCode:   resp.StatusCode,
			Status:       resp.Status,
			ErrorMessage: msg,
		}
	}

	var chatResp groqChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return AIMessage{}, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return AIMessage{Role: AssistantRole, Usage: chatResp.Usage}, nil
	}

	return AIMessage{
		Role:    AssistantRole,
		Content: chatResp.Choices[0].Message.Content,
		Usage:   chatResp.Usage,
	}, nil
}

func toGroqMessages(messages []Message) []groqChatMessage {
	out := make([]groqChatMessage, 0, len(messages))
	for _, m := range messages {
		role, content := m.Value()
		out = append(out, groqChatMessage{Role: string(role), Content: content})
	}
	return out
}
