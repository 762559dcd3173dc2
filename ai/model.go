package ai

import (
	"context"
	"fmt"
	"net/http"
)

type StatusError struct {
	StatusCode   int
	Status       string
	ErrorMessage string
}

func (e StatusError) Error() string {
	return fmt.Sprintf("status: %s, code: %d, error: %s", e.Status, e.StatusCode, e.ErrorMessage)
}

// Model represents a generic model container that uses a function variable
// for provider-specific logic. Construct one with NewGroqModel or, in tests,
// NewDummyModel.
type Model struct {
	ModelName string
	APIKey    string
	BaseURL   string
	client    *http.Client

	// callFunc is the implementation for each provider
	callFunc func(ctx context.Context, model *Model, messages []Message) (AIMessage, error)

	// Options pointer variables - use nil to represent option not set
	Temperature *float64
	MaxTokens   *int
	TopP        *float64
}

// Call makes a single call to the model with the given message list.
func (m *Model) Call(ctx context.Context, messages []Message) (AIMessage, error) {
	if m.callFunc == nil {
		return AIMessage{}, fmt.Errorf("model %s has no provider function", m.ModelName)
	}
	return m.callFunc(ctx, m, messages)
}

// Complete is a convenience wrapper for the common system+user prompt shape.
// It returns the assistant's text content.
func (m *Model) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	messages := []Message{
		SystemMessage{Role: SystemRole, Content: systemPrompt},
		UserMessage{Role: UserRole, Content: userPrompt},
	}
	resp, err := m.Call(ctx, messages)
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

// WithTemperature sets the temperature for the model and returns the model for chaining
func (m *Model) WithTemperature(temperature float64) *Model {
	m.Temperature = &temperature
	return m
}

// WithMaxTokens sets the maximum tokens for the model and returns the model for chaining
func (m *Model) WithMaxTokens(maxTokens int) *Model {
	m.MaxTokens = &maxTokens
	return m
}

// WithTopP sets the top_p parameter for the model and returns the model for chaining
func (m *Model) WithTopP(topP float64) *Model {
	m.TopP = &topP
	return m
}

// Clone returns a copy of the model so call sites can vary options without
// affecting the shared instance.
func (m *Model) Clone() *Model {
	clone := *m
	return &clone
}

// SetCallFunc overrides the provider function. Not required most of the time
// unless you are using a non standard provider.
func (m *Model) SetCallFunc(callFunc func(ctx context.Context, model *Model, messages []Message) (AIMessage, error)) {
	m.callFunc = callFunc
}
