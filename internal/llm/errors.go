package llm

import (
	"encoding/json"
	"fmt"
	"time"
)

// Provider failures are classified by what the caller can do about them.
// Question generation and answer grading react differently: a rate limit
// during the grading fan-out should back off and try again, while a
// truncated question batch means the MaxTokens budget is wrong and no
// retry will help.

// RateLimitError means the provider throttled the request. RetryAfter,
// when positive, is the provider's own wait hint and takes precedence
// over computed backoff.
type RateLimitError struct {
	RetryAfter time.Duration
	Err        error
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("provider throttled request, retry after %s: %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("provider throttled request: %v", e.Err)
}

func (e *RateLimitError) Unwrap() error { return e.Err }

// MalformedOutputError means the model produced output that is not the
// JSON the request's schema demanded. Output holds the offending bytes
// for logging. Worth exactly one more attempt with the same prompt.
type MalformedOutputError struct {
	Output json.RawMessage
	Err    error
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("model output does not satisfy the requested schema: %v", e.Err)
}

func (e *MalformedOutputError) Unwrap() error { return e.Err }

// UnavailableError means the provider could not serve the request at all
// (5xx, network failure, exhausted mock script).
type UnavailableError struct {
	Err error
}

func (e *UnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// TruncatedError means generation stopped at the MaxTokens ceiling, so
// the output (typically a question batch) is incomplete. This is a
// request-budget problem, never retried.
type TruncatedError struct {
	Output json.RawMessage
}

func (e *TruncatedError) Error() string {
	return "model output truncated at the MaxTokens ceiling"
}
