package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// retryClass is the retry policy's verdict on a failed attempt.
type retryClass int

const (
	// giveUp: resending the same request cannot cure the error.
	giveUp retryClass = iota
	// backOff: transient; wait and resend, up to MaxAttempts.
	backOff
	// oneMore: the model misbehaved. A question batch or a grade
	// occasionally comes back as broken JSON and a single regeneration
	// usually fixes it; more than one is wasted spend.
	oneMore
)

// retrier decorates a Provider with the retry policy shared by the two
// call shapes in this codebase, batch generation and per-answer grading.
type retrier struct {
	inner Provider
	cfg   RetryConfig
}

// WithRetry wraps a Provider with transient-failure retries.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &retrier{inner: p, cfg: cfg}
}

func (r *retrier) Generate(ctx context.Context, req Request) (*Response, error) {
	var lastErr error
	malformedSeen := false

	for attempt := 0; attempt < r.cfg.MaxAttempts; attempt++ {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		switch classify(err) {
		case giveUp:
			return nil, err
		case oneMore:
			if malformedSeen {
				return nil, err
			}
			malformedSeen = true
		}

		if attempt == r.cfg.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.wait(attempt, err)):
		}
	}

	return nil, lastErr
}

func (r *retrier) ModelID() string {
	return r.inner.ModelID()
}

// classify maps an error to the policy's verdict.
func classify(err error) retryClass {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return giveUp
	}

	var truncated *TruncatedError
	if errors.As(err, &truncated) {
		// MaxTokens is fixed per call site; resending cannot grow it.
		return giveUp
	}

	var malformed *MalformedOutputError
	if errors.As(err, &malformed) {
		return oneMore
	}

	// Rate limits, 5xx, and unclassified transport errors are transient.
	return backOff
}

// wait computes the pause before the next attempt: the provider's own
// RetryAfter hint when present, otherwise capped exponential growth with
// full jitter so the concurrent grading calls do not come back in
// lockstep after a shared throttle.
func (r *retrier) wait(attempt int, err error) time.Duration {
	var throttled *RateLimitError
	if errors.As(err, &throttled) && throttled.RetryAfter > 0 {
		return throttled.RetryAfter
	}

	ceiling := r.cfg.InitialWait
	for i := 0; i < attempt && ceiling < r.cfg.MaxWait; i++ {
		ceiling = time.Duration(float64(ceiling) * r.cfg.Multiplier)
	}
	if ceiling > r.cfg.MaxWait {
		ceiling = r.cfg.MaxWait
	}
	if ceiling <= 0 {
		return 0
	}
	return rand.N(ceiling)
}
