// Package resilience retries flaky operations, such as downloading a
// project archive, with exponential backoff.
package resilience

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"time"
)

// RetryPolicy defines the retry behavior for operations.
type RetryPolicy struct {
	// MaxRetries is the maximum number of retry attempts (not including initial call).
	MaxRetries int

	// BaseDelay is the initial delay before the first retry.
	BaseDelay time.Duration

	// MaxDelay is the maximum delay between retries.
	MaxDelay time.Duration

	// UseJitter adds randomness to delays.
	UseJitter bool

	// OnRetry, when set, is called before each retry with the attempt number
	// (starting at 1) and the error that triggered it.
	OnRetry func(attempt int, err error)
}

// DefaultPolicy returns the policy used for archive downloads.
func DefaultPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries: 3,
		BaseDelay:  500 * time.Millisecond,
		MaxDelay:   5 * time.Second,
		UseJitter:  true,
	}
}

// StatusError is returned when an HTTP endpoint answers with a non-200 status.
type StatusError struct {
	URL        string
	StatusCode int
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}

// IsClientError reports whether the status is a 4xx. Those are not retried,
// except 408 and 429 which usually clear up on their own.
func (e *StatusError) IsClientError() bool {
	if e.StatusCode == http.StatusRequestTimeout || e.StatusCode == http.StatusTooManyRequests {
		return false
	}
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// clientError is implemented by errors that must not be retried.
type clientError interface {
	IsClientError() bool
}

// Retry executes fn with the given policy.
// It returns the error from the last attempt if all retries are exhausted.
func Retry(ctx context.Context, policy RetryPolicy, fn func() error) error {
	var lastErr error
	maxAttempts := max(policy.MaxRetries, 0) + 1

	for attempt := range maxAttempts {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if !IsRetryableError(err) {
			return err
		}

		if attempt < maxAttempts-1 {
			if policy.OnRetry != nil {
				policy.OnRetry(attempt+1, err)
			}
			delay := CalculateBackoff(attempt, policy.BaseDelay, policy.MaxDelay, policy.UseJitter)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return lastErr
}

// CalculateBackoff calculates the backoff delay for a given attempt.
// The delay grows exponentially: baseDelay * 2^attempt, capped at maxDelay.
func CalculateBackoff(attempt int, baseDelay, maxDelay time.Duration, useJitter bool) time.Duration {
	if baseDelay <= 0 {
		baseDelay = 100 * time.Millisecond
	}
	if maxDelay <= 0 {
		maxDelay = 30 * time.Second
	}

	delay := baseDelay
	for range attempt {
		delay *= 2
		if delay > maxDelay {
			delay = maxDelay
			break
		}
	}

	// 0.5x to 1.5x of the computed delay
	if useJitter {
		delay = time.Duration(float64(delay) * (0.5 + rand.Float64()))
	}

	return min(delay, maxDelay)
}

// IsRetryableError determines if an error should be retried.
// Context errors and client errors are final; everything else is retried.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var ce clientError
	if errors.As(err, &ce) && ce.IsClientError() {
		return false
	}
	return true
}
