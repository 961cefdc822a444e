// Package generate produces report text by streaming it from an LLM.
package generate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"google.golang.org/genai"
)

// Prompt is a system instruction plus the user turn.
type Prompt struct {
	System string
	User   string
}

// ChunkFunc receives streamed text in arrival order. Returning an error stops
// the stream and is returned from Stream.
type ChunkFunc func(chunk string) error

// Generator streams model output for a prompt.
type Generator interface {
	Name() string
	Stream(ctx context.Context, p Prompt, onChunk ChunkFunc) error
}

// RetryableError indicates a transient failure that can be retried.
type RetryableError struct {
	StatusCode int // 0 when the failure was not an HTTP status
	Message    string
	Err        error
}

func (e *RetryableError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("retryable error (status %d): %s", e.StatusCode, truncate(e.Message, 200))
	}
	return fmt.Sprintf("retryable error: %s", truncate(e.Message, 200))
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// IsRetryable checks if an error is worth retrying.
func IsRetryable(err error) bool {
	var retryErr *RetryableError
	return errors.As(err, &retryErr)
}

// retryableStatus lists HTTP statuses worth another attempt.
var retryableStatus = map[int]bool{
	408: true,
	429: true,
	500: true,
	502: true,
	503: true,
	504: true,
	529: true,
}

// statusCode extracts the HTTP status from a typed SDK error, or 0.
func statusCode(err error) int {
	var anthropicErr *anthropic.Error
	if errors.As(err, &anthropicErr) {
		return anthropicErr.StatusCode
	}
	var geminiErr genai.APIError
	if errors.As(err, &geminiErr) {
		return geminiErr.Code
	}
	var geminiErrPtr *genai.APIError
	if errors.As(err, &geminiErrPtr) && geminiErrPtr != nil {
		return geminiErrPtr.Code
	}
	return 0
}

// classify wraps transient provider failures in *RetryableError. Typed SDK
// errors are judged by status code. Untyped errors only match transport
// failures and provider phrases, never bare numbers.
func classify(provider string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	if status := statusCode(err); status > 0 {
		if !retryableStatus[status] {
			return fmt.Errorf("%s: %w", provider, err)
		}
		return &RetryableError{StatusCode: status, Message: provider + ": " + err.Error(), Err: err}
	}

	msg := strings.ToLower(err.Error())
	status := 0
	switch {
	case strings.Contains(msg, "rate limit"), strings.Contains(msg, "too many requests"),
		strings.Contains(msg, "resource_exhausted"):
		status = 429
	case strings.Contains(msg, "overloaded"):
		status = 529
	case strings.Contains(msg, "bad gateway"):
		status = 502
	case strings.Contains(msg, "service unavailable"), strings.Contains(msg, "code = unavailable"):
		status = 503
	case strings.Contains(msg, "internal server error"):
		status = 500
	case strings.Contains(msg, "connection refused"), strings.Contains(msg, "connection reset"),
		strings.Contains(msg, "temporary failure"), strings.Contains(msg, "no such host"),
		strings.Contains(msg, "unexpected eof"):
	default:
		return fmt.Errorf("%s: %w", provider, err)
	}
	return &RetryableError{StatusCode: status, Message: provider + ": " + err.Error(), Err: err}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
