package eval

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const defaultEndpoint = "https://openrouter.ai/api/v1/chat/completions"

// Message is a single chat-completion message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// requestBody is the chat-completions request envelope.
type requestBody struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type apiResponse struct {
	Choices []choice `json:"choices"`
}

type choice struct {
	Message *messageContent `json:"message"`
}

type messageContent struct {
	Content string `json:"content"`
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithEndpoint overrides the chat-completions URL.
func WithEndpoint(url string) ClientOption {
	return func(c *Client) { c.endpoint = url }
}

// WithHTTPTimeout sets the HTTP client timeout.
func WithHTTPTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.http.Timeout = d }
}

// Client talks to an OpenRouter-compatible chat-completions endpoint.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

// NewClient creates an evaluation client authenticated with apiKey.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		endpoint: defaultEndpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: 2 * time.Minute},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Evaluate sends the summary, original text, and reading rate for
// assessment and returns the model's free-form verdict.
func (c *Client) Evaluate(ctx context.Context, model, summary, text string, wpm int) (string, error) {
	body := requestBody{
		Model:    model,
		Messages: []Message{{Role: "user", Content: BuildPrompt(summary, text, wpm)}},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("evaluation request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("evaluation request failed: %s: %s", resp.Status, strings.TrimSpace(string(respBody)))
	}

	var data apiResponse
	if err := json.Unmarshal(respBody, &data); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(data.Choices) == 0 {
		return "", fmt.Errorf("empty choices in API response")
	}
	if data.Choices[0].Message == nil {
		return "", fmt.Errorf("missing message content in API response")
	}
	return data.Choices[0].Message.Content, nil
}

// APIKeyFromEnv reads the OpenRouter key from the environment.
func APIKeyFromEnv() (string, error) {
	key := strings.TrimSpace(os.Getenv("OPEN_ROUTER_API_KEY"))
	if key == "" {
		return "", fmt.Errorf("OPEN_ROUTER_API_KEY environment variable is not set")
	}
	return key, nil
}
