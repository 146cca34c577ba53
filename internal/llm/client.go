package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is Groq's OpenAI-compatible API root.
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	// DefaultModel is the model the briefing prompts are tuned for.
	DefaultModel = "llama-3.1-8b-instant"
	// DefaultMaxTokens caps each completion.
	DefaultMaxTokens = 256
	// DefaultMaxRetries is the number of retries after the first attempt.
	DefaultMaxRetries = 3
)

// Compile-time interface check.
var _ Generator = (*Client)(nil)

// Client calls an OpenAI-compatible chat completion endpoint.
type Client struct {
	http          *http.Client
	baseURL       string
	apiKey        string
	model         string
	maxTokens     int
	temperature   float64
	systemPrompt  string
	maxRetries    uint
	retryInterval time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL points the client at a different API root.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithModel selects the model.
func WithModel(m string) ClientOption {
	return func(c *Client) { c.model = m }
}

// WithMaxTokens sets max_completion_tokens.
func WithMaxTokens(n int) ClientOption {
	return func(c *Client) { c.maxTokens = n }
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) ClientOption {
	return func(c *Client) { c.temperature = t }
}

// WithSystemPrompt prepends a system message to every request.
func WithSystemPrompt(p string) ClientOption {
	return func(c *Client) { c.systemPrompt = p }
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.http.Timeout = d }
}

// WithHTTPClient replaces the underlying *http.Client entirely.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// WithMaxRetries sets how many times a retryable failure is retried.
func WithMaxRetries(n uint) ClientOption {
	return func(c *Client) { c.maxRetries = n }
}

// WithRetryInterval sets the initial backoff interval.
func WithRetryInterval(d time.Duration) ClientOption {
	return func(c *Client) { c.retryInterval = d }
}

// NewClient creates a chat completion client authenticated with apiKey.
func NewClient(apiKey string, opts ...ClientOption) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}
	c := &Client{
		http:          &http.Client{Timeout: 60 * time.Second},
		baseURL:       DefaultBaseURL,
		apiKey:        apiKey,
		model:         DefaultModel,
		maxTokens:     DefaultMaxTokens,
		maxRetries:    DefaultMaxRetries,
		retryInterval: 500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Model returns the configured model name.
func (c *Client) Model() string { return c.model }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model               string        `json:"model"`
	Messages            []chatMessage `json:"messages"`
	MaxCompletionTokens int           `json:"max_completion_tokens,omitempty"`
	Temperature         *float64      `json:"temperature,omitempty"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index        int         `json:"index"`
		FinishReason string      `json:"finish_reason"`
		Message      chatMessage `json:"message"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage,omitempty"`
}

// Generate sends prompt as a single user message and returns the first
// choice's content. Rate limits, server errors and transport failures are
// retried with exponential backoff; other failures are returned immediately.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(c.buildRequest(prompt))
	if err != nil {
		return "", eris.Wrap(err, "llm: encode request")
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retryInterval

	text, err := backoff.Retry(ctx, func() (string, error) {
		return c.post(ctx, body)
	},
		backoff.WithBackOff(b),
		backoff.WithMaxTries(c.maxRetries+1),
		backoff.WithNotify(func(err error, wait time.Duration) {
			zap.L().Warn("llm: retrying chat completion",
				zap.String("model", c.model),
				zap.Duration("wait", wait),
				zap.Error(err),
			)
		}),
	)
	if err != nil {
		return "", eris.Wrapf(err, "llm: chat completion (%s)", c.model)
	}
	return text, nil
}

func (c *Client) buildRequest(prompt string) chatRequest {
	var msgs []chatMessage
	if c.systemPrompt != "" {
		msgs = append(msgs, chatMessage{Role: "system", Content: c.systemPrompt})
	}
	msgs = append(msgs, chatMessage{Role: "user", Content: prompt})

	req := chatRequest{
		Model:               c.model,
		Messages:            msgs,
		MaxCompletionTokens: c.maxTokens,
	}
	if c.temperature > 0 {
		t := c.temperature
		req.Temperature = &t
	}
	return req
}

// post performs one HTTP attempt. Errors that must not be retried are marked
// permanent.
func (c *Client) post(ctx context.Context, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", backoff.Permanent(eris.Wrap(err, "llm: create request"))
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", backoff.Permanent(ctx.Err())
		}
		return "", eris.Wrap(err, "llm: send request")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
		if !apiErr.Retryable() {
			return "", backoff.Permanent(apiErr)
		}
		if secs, convErr := strconv.Atoi(resp.Header.Get("Retry-After")); convErr == nil && secs > 0 {
			return "", &retryAfterError{api: apiErr, wait: backoff.RetryAfter(secs)}
		}
		return "", apiErr
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", backoff.Permanent(eris.Wrap(err, "llm: decode response"))
	}
	if len(cr.Choices) == 0 {
		return "", backoff.Permanent(ErrEmptyResponse)
	}
	text := strings.TrimSpace(cr.Choices[0].Message.Content)
	if text == "" {
		return "", backoff.Permanent(ErrEmptyResponse)
	}

	if cr.Usage != nil {
		zap.L().Debug("llm: chat completion",
			zap.String("model", cr.Model),
			zap.Int("prompt_tokens", cr.Usage.PromptTokens),
			zap.Int("completion_tokens", cr.Usage.CompletionTokens),
		)
	}
	return text, nil
}
