package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDo_Success(t *testing.T) {
	t.Parallel()
	attempts := 0
	operation := func(int) error {
		attempts++
		return nil
	}

	err := Do(context.Background(), Policy{Interval: time.Millisecond, MaxAttempts: 5}, operation)

	if err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt, got: %d", attempts)
	}
}

func TestDo_SuccessAfterRetries(t *testing.T) {
	t.Parallel()
	attempts := 0
	operation := func(attempt int) error {
		attempts++
		if attempt != attempts {
			t.Errorf("attempt number %d, want %d", attempt, attempts)
		}
		if attempts < 3 {
			return errors.New("temporary error")
		}
		return nil
	}

	err := Do(context.Background(), Policy{Interval: 5 * time.Millisecond, MaxAttempts: 5}, operation)

	if err != nil {
		t.Errorf("Expected no error after retries, got: %v", err)
	}
	if attempts != 3 {
		t.Errorf("Expected 3 attempts, got: %d", attempts)
	}
}

func TestDo_MaxAttempts(t *testing.T) {
	t.Parallel()
	for _, maxAttempts := range []int{1, 2, 4} {
		attempts := 0
		operation := func(int) error {
			attempts++
			return errors.New("persistent error")
		}

		err := Do(context.Background(), Policy{Interval: time.Millisecond, MaxAttempts: maxAttempts}, operation)

		if !errors.Is(err, ErrExhausted) {
			t.Errorf("max=%d: expected ErrExhausted, got: %v", maxAttempts, err)
		}
		// MaxAttempts counts the first attempt, so max=1 never retries
		if attempts != maxAttempts {
			t.Errorf("max=%d: expected %d attempts, got: %d", maxAttempts, maxAttempts, attempts)
		}
	}
}

func TestDo_WrapsLastError(t *testing.T) {
	t.Parallel()
	last := errors.New("last")
	err := Do(context.Background(), Policy{MaxAttempts: 2}, func(int) error { return last })

	if !errors.Is(err, last) {
		t.Errorf("Expected wrapped last error, got: %v", err)
	}
}

func TestDo_ContextCancellation(t *testing.T) {
	t.Parallel()
	attempts := 0
	operation := func(int) error {
		attempts++
		return errors.New("error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Do(ctx, Policy{Interval: 10 * time.Millisecond, MaxAttempts: 5}, operation)

	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled error, got: %v", err)
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt before context check, got: %d", attempts)
	}
}

func TestDo_FatalError(t *testing.T) {
	t.Parallel()
	attempts := 0
	operation := func(int) error {
		attempts++
		return Fatal(errors.New("fatal error"))
	}

	err := Do(context.Background(), Policy{Interval: time.Millisecond, MaxAttempts: 5}, operation)

	if !IsFatal(err) {
		t.Errorf("Expected fatal error, got: %v", err)
	}
	if errors.Is(err, ErrExhausted) {
		t.Errorf("Fatal error must not report an exhausted budget: %v", err)
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt (no retries for fatal error), got: %d", attempts)
	}
}

func TestDo_FixedInterval(t *testing.T) {
	t.Parallel()
	attempts := 0
	var delays []time.Duration
	lastTime := time.Now()

	operation := func(int) error {
		attempts++
		now := time.Now()
		if attempts > 1 {
			delays = append(delays, now.Sub(lastTime))
		}
		lastTime = now
		if attempts < 4 {
			return errors.New("error")
		}
		return nil
	}

	interval := 20 * time.Millisecond
	err := Do(context.Background(), Policy{Interval: interval, MaxAttempts: 10}, operation)

	if err != nil {
		t.Errorf("Expected success after retries, got: %v", err)
	}
	if len(delays) != 3 {
		t.Fatalf("Expected 3 delays, got: %d", len(delays))
	}
	for i, d := range delays {
		if d < interval {
			t.Errorf("delay %d was %v, expected at least %v", i, d, interval)
		}
	}
}

func TestPolicy_Normalize(t *testing.T) {
	t.Parallel()
	p := Policy{Interval: -time.Second}.Normalize()
	if p.Interval != 0 {
		t.Errorf("Expected negative interval clamped to 0, got %v", p.Interval)
	}
	if p.MaxAttempts != DefaultMaxAttempts {
		t.Errorf("Expected default max attempts, got %d", p.MaxAttempts)
	}
}

func TestPolicy_Wait(t *testing.T) {
	t.Parallel()
	if err := (Policy{}).Wait(context.Background()); err != nil {
		t.Errorf("zero interval wait should return immediately, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := (Policy{Interval: time.Hour}).Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestFatal_Nil(t *testing.T) {
	t.Parallel()
	if Fatal(nil) != nil {
		t.Error("Fatal(nil) should be nil")
	}
}
