package testing

import (
	"context"
	"testing"
	"time"

	"github.com/occopus/sigmanode/internal/util/retry"
)

// TestContext returns a context that is cancelled when the test ends.
func TestContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}

// FastPolicy is a retry policy for tests: millisecond polls and the given
// number of attempts per call.
func FastPolicy(attempts int) retry.Policy {
	return retry.Policy{Interval: time.Millisecond, MaxAttempts: attempts}
}

// RequireReturns fails the test if fn does not return within timeout.
func RequireReturns(t *testing.T, timeout time.Duration, fn func()) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	select {
	case <-done:
	case <-time.After(timeout):
		t.Fatalf("did not return within %s", timeout)
	}
}
