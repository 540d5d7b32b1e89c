package rewrite

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrUnavailable indicates the rewrite provider is unreachable or failed.
var ErrUnavailable = errors.New("rewrite provider unavailable")

const defaultTimeout = 30 * time.Second

// Config holds client configuration for the rewrite provider.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Client is an HTTP client for a chat-completions rewrite provider.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient creates a new rewrite client.
func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Complete sends a single user-role prompt with the given sampling parameters
// and returns the generated text with surrounding whitespace trimmed.
// Failures are wrapped in ErrUnavailable.
func (c *Client) Complete(ctx context.Context, prompt string, temperature float64, maxTokens int) (string, error) {
	req := &ChatRequest{
		Model:       c.cfg.Model,
		Messages:    []Message{{Role: "user", Content: prompt}},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}

	text, err := DoChatCompletion(ctx, c.httpClient, c.cfg.BaseURL, c.cfg.APIKey, req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	return strings.TrimSpace(text), nil
}
