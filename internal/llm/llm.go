// Package llm provides the text-generation capability used by the pipeline
// stages: a Generator interface and a Groq chat-completion client.
package llm

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrMissingAPIKey is returned when a client is built without credentials.
	ErrMissingAPIKey = errors.New("llm: missing API key")

	// ErrEmptyResponse is returned when the API answers without usable text.
	ErrEmptyResponse = errors.New("llm: empty response")
)

// Generator turns a prompt into generated text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a plain function to Generator.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

// Generate calls f(ctx, prompt).
func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// APIError is a non-2xx response from the completion endpoint.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("llm: HTTP %d: %s", e.StatusCode, e.Body)
}

// Retryable reports whether the request may succeed if sent again.
func (e *APIError) Retryable() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}

// retryAfterError carries a rate-limit response together with the server's
// requested wait, so the backoff loop honours the wait and callers still see
// the APIError once retries run out.
type retryAfterError struct {
	api  *APIError
	wait error
}

func (e *retryAfterError) Error() string {
	return fmt.Sprintf("%s (%s)", e.api.Error(), e.wait.Error())
}

func (e *retryAfterError) Unwrap() []error { return []error{e.api, e.wait} }
