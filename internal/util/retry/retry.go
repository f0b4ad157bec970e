package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Default policy values.
const (
	DefaultInterval    = 6 * time.Second
	DefaultMaxAttempts = 50
)

// ErrExhausted is wrapped by the error Do returns when every attempt failed.
var ErrExhausted = errors.New("retry budget exhausted")

// Policy holds retry configuration.
// MaxAttempts includes the first attempt, so a policy with MaxAttempts 1
// never retries.
type Policy struct {
	Interval    time.Duration
	MaxAttempts int
}

// DefaultPolicy returns the policy used when nothing else is configured.
func DefaultPolicy() Policy {
	return Policy{
		Interval:    DefaultInterval,
		MaxAttempts: DefaultMaxAttempts,
	}
}

// Normalize clamps a negative interval to zero and fills a missing attempt
// budget with the default.
func (p Policy) Normalize() Policy {
	if p.Interval < 0 {
		p.Interval = 0
	}
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = DefaultMaxAttempts
	}
	return p
}

// Wait blocks for one interval or until ctx is done.
func (p Policy) Wait(ctx context.Context) error {
	if p.Interval <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(p.Interval)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Do executes operation until it succeeds, returns a fatal error, or the
// policy's attempt budget is spent. The attempt number passed to operation
// starts at 1. Attempts are separated by the policy interval, and context
// cancellation is respected while waiting.
//
// Errors wrapped with Fatal() are not retried.
func Do(ctx context.Context, p Policy, operation func(attempt int) error) error {
	p = p.Normalize()

	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		err := operation(attempt)
		if err == nil {
			return nil
		}
		lastErr = err

		if IsFatal(err) {
			return fmt.Errorf("fatal error (not retrying): %w", err)
		}

		if attempt < p.MaxAttempts {
			if err := p.Wait(ctx); err != nil {
				return fmt.Errorf("context cancelled after %d attempts: %w", attempt, err)
			}
		}
	}

	return fmt.Errorf("%w after %d attempts: %w", ErrExhausted, p.MaxAttempts, lastErr)
}

// FatalError wraps an error to mark it as fatal (non-retryable).
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string {
	return e.Err.Error()
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// Fatal marks an error as fatal (non-retryable).
// Operations that encounter fatal errors will not be retried.
func Fatal(err error) error {
	if err == nil {
		return nil
	}
	return &FatalError{Err: err}
}

// IsFatal checks if an error is fatal (non-retryable).
func IsFatal(err error) bool {
	var fatalErr *FatalError
	return errors.As(err, &fatalErr)
}
