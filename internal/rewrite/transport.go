// Package rewrite provides the HTTP client for the external text-rewrite
// provider (an OpenAI-compatible chat-completions API).
package rewrite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Message is a single chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the request body for POST /v1/chat/completions.
type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

// ChatResponse is the response body from the completions endpoint.
type ChatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// DoChatCompletion sends a chat-completion request to baseURL and returns the
// first choice's message content. The caller controls the timeout through the
// http.Client and the context.
func DoChatCompletion(ctx context.Context, client *http.Client, baseURL, apiKey string, req *ChatRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+apiKey)
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("rewrite provider returned %d", resp.StatusCode)
	}

	var chatResp ChatResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&chatResp); decodeErr != nil {
		return "", fmt.Errorf("decode response: %w", decodeErr)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("rewrite provider returned no choices")
	}

	return chatResp.Choices[0].Message.Content, nil
}
