package responder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client calls an OpenAI-style completions endpoint to produce the automated
// side's replies.
type Config struct {
	Endpoint string
	APIKey   string
	Model    string
	Timeout  time.Duration
}

type Client struct {
	cfg   Config
	inner *http.Client
}

func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 8 * time.Second
	}
	return &Client{cfg: cfg, inner: &http.Client{Timeout: cfg.Timeout}}
}

type completionRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
	TopP        float64 `json:"top_p"`
}

type completionResponse struct {
	Choices []struct {
		Text string `json:"text"`
	} `json:"choices"`
}

// Generate asks for a human-sounding reply to lastMessage, feeding back the
// replies already given so the voice stays consistent.
func (c *Client) Generate(ctx context.Context, lastMessage string, priorReplies []string) (string, error) {
	body := completionRequest{
		Model:       c.cfg.Model,
		Prompt:      buildPrompt(lastMessage, priorReplies),
		Temperature: 0.7,
		MaxTokens:   512,
		TopP:        1,
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(raw))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.inner.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("completion failed with status %d", resp.StatusCode)
	}

	var parsed completionResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}
	return strings.TrimSpace(parsed.Choices[0].Text), nil
}

func buildPrompt(lastMessage string, priorReplies []string) string {
	var b strings.Builder
	b.WriteString("Write a human-like response to the message provided: \"")
	b.WriteString(lastMessage)
	b.WriteString("\"\nResponse:\n")
	b.WriteString(strings.Join(priorReplies, "\n"))
	return b.String()
}
