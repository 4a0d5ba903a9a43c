// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/ravisuresh229/evidencegap/pkg/types"
)

// DefaultBaseURL is the OpenAI-compatible chat completions endpoint base.
const DefaultBaseURL = "https://api.openai.com/v1"

// defaultMaxTokens bounds the completion when the config leaves it unset.
const defaultMaxTokens = 1500

// Backend abstracts the text completion API so tests can supply a mock.
type Backend interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// OpenAIBackend calls an OpenAI-compatible chat completions API.
type OpenAIBackend struct {
	APIKey    string
	Model     string
	BaseURL   string
	MaxTokens int
	Client    *http.Client
}

// NewOpenAIBackend builds a backend from the narrative section of the
// pipeline configuration.
func NewOpenAIBackend(cfg types.NarrativeConfig, apiKey string) *OpenAIBackend {
	return &OpenAIBackend{
		APIKey:    apiKey,
		Model:     cfg.Model,
		BaseURL:   cfg.BaseURL,
		MaxTokens: cfg.MaxTokens,
	}
}

// chatRequest is the request body for the chat completions API.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

// chatMessage is a single message in the conversation.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the response body from the chat completions API.
type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Complete sends one system+user exchange and returns the model's text.
func (b *OpenAIBackend) Complete(ctx context.Context, system, user string) (string, error) {
	maxTokens := b.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	baseURL := b.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	reqBody := chatRequest{
		Model: b.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.7,
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+b.APIKey)

	client := b.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling completion API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("completion API returned %d: %s", resp.StatusCode, string(body))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decoding completion response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("completion API returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}
