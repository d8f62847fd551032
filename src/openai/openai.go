package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"wikiicp/src/log"
)

const (
	// DefaultEndpoint is the OpenAI chat-completions API.
	DefaultEndpoint = "https://api.openai.com/v1/chat/completions"
	// DefaultModel is used when no model is configured.
	DefaultModel = "gpt-4o-mini"
	// DefaultTimeout bounds the single completion attempt per request.
	DefaultTimeout = 12 * time.Second

	userAgent = "wiki-icp-ai"

	defaultSystemPrompt = "You are a knowledgeable glazing and fenestration support assistant. Only answer with the supplied reference material, cite resource titles with their URLs in parentheses, and keep responses concise, structured, and actionable. When the user explicitly mentions installation or replacement tasks, highlight installation videos first; otherwise rely on the most detailed help topics."
)

// ErrMissingConfig is returned before any network activity when the prompt or
// API key is empty.
var ErrMissingConfig = errors.New("AI configuration is incomplete")

// ErrInvalidResponse is returned when a 2xx body does not carry a completion.
var ErrInvalidResponse = errors.New("AI response was empty")

// TransportError wraps a network-level failure reaching the provider.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("completion request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// UpstreamError is a non-2xx reply from the provider, carrying whatever
// message its error envelope supplied.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("completion provider returned %d: %s", e.Status, e.Message)
}

// Config tunes the completion request.
type Config struct {
	Endpoint     string
	Model        string
	SystemPrompt string
	Temperature  float64
	MaxTokens    int
}

// Message is one chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest is the chat-completions request body.
type CompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Client is a chat-completions API client.
type Client struct {
	httpClient *http.Client
	cfg        Config
}

// NewClient creates a completion client. Zero-value config fields fall back
// to the package defaults; a nil http.Client gets the default bounded timeout.
func NewClient(cfg Config, c *http.Client) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = defaultSystemPrompt
	}
	if c == nil {
		c = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{
		httpClient: c,
		cfg:        cfg,
	}
}

// Complete sends the prompt as the user turn and returns the raw completion
// text. An empty prompt or key fails with ErrMissingConfig before any network
// call is made.
func (c *Client) Complete(ctx context.Context, prompt, apiKey string) (string, error) {
	if prompt == "" || apiKey == "" {
		return "", ErrMissingConfig
	}

	reqBody := CompletionRequest{
		Model: c.cfg.Model,
		Messages: []Message{
			{Role: "system", Content: c.cfg.SystemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("error marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error(err, "failed to reach completion provider")
		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Err: err}
	}

	var parsed completionResponse
	parseErr := json.Unmarshal(raw, &parsed)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := ""
		if parseErr == nil && parsed.Error != nil {
			message = parsed.Error.Message
		}
		if message == "" {
			message = "Unexpected response from AI service."
		}
		return "", &UpstreamError{Status: resp.StatusCode, Message: message}
	}

	if parseErr != nil || len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", ErrInvalidResponse
	}

	return parsed.Choices[0].Message.Content, nil
}
