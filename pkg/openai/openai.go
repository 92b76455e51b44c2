package openai

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/creatorstation/creator-dashboard/internal/config"
)

var client = resty.New().
	SetBaseURL("https://api.openai.com/v1").
	SetTimeout(30 * time.Second)

// ErrNotConfigured is returned when no API key is set. Callers fall back to
// their rule-based generators.
var ErrNotConfigured = fmt.Errorf("OPENAI_API_KEY is not set")

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []message       `json:"messages"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Chat sends one system+user exchange and returns the raw completion text.
func Chat(system, user string, temperature float64, maxTokens int, jsonMode bool) (string, error) {
	apiKey := config.OpenAIAPIKey()
	if apiKey == "" {
		return "", ErrNotConfigured
	}

	req := chatRequest{
		Model: config.OpenAIModel(),
		Messages: []message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}
	if jsonMode {
		req.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	var out chatResponse
	resp, err := client.R().
		SetAuthToken(apiKey).
		SetBody(req).
		SetResult(&out).
		Post("/chat/completions")
	if err != nil {
		return "", err
	}

	if resp.IsError() {
		if out.Error != nil {
			return "", fmt.Errorf("openai: %s", out.Error.Message)
		}
		return "", fmt.Errorf("openai: %s, %s", resp.Status(), resp.String())
	}

	if len(out.Choices) == 0 {
		return "", fmt.Errorf("openai: empty response")
	}

	return out.Choices[0].Message.Content, nil
}

// ChatJSON strips markdown code fences and unmarshals the completion into v.
func ChatJSON(system, user string, temperature float64, maxTokens int, v any) (string, error) {
	raw, err := Chat(system, user, temperature, maxTokens, true)
	if err != nil {
		return "", err
	}
	cleaned := StripCodeFence(raw)
	if err := json.Unmarshal([]byte(cleaned), v); err != nil {
		return raw, fmt.Errorf("openai: invalid JSON response: %w", err)
	}
	return raw, nil
}

// StripCodeFence removes a surrounding ```json ... ``` fence if present.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
