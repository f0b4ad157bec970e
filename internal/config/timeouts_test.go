package config

import (
	"testing"
	"time"

	"github.com/occopus/sigmanode/internal/util/retry"
)

func TestLoadRetryPolicy_Defaults(t *testing.T) {
	t.Setenv(EnvRetryInterval, "")
	t.Setenv(EnvRetryMaxAttempts, "")

	p := LoadRetryPolicy(retry.DefaultPolicy())

	if p.Interval != 6*time.Second {
		t.Errorf("Expected Interval default 6s, got %v", p.Interval)
	}
	if p.MaxAttempts != 50 {
		t.Errorf("Expected MaxAttempts default 50, got %d", p.MaxAttempts)
	}
}

func TestLoadRetryPolicy_EnvOverrides(t *testing.T) {
	t.Setenv(EnvRetryInterval, "250ms")
	t.Setenv(EnvRetryMaxAttempts, "3")

	p := LoadRetryPolicy(retry.DefaultPolicy())

	if p.Interval != 250*time.Millisecond {
		t.Errorf("Expected Interval 250ms, got %v", p.Interval)
	}
	if p.MaxAttempts != 3 {
		t.Errorf("Expected MaxAttempts 3, got %d", p.MaxAttempts)
	}
}

func TestLoadRetryPolicy_BareSeconds(t *testing.T) {
	t.Setenv(EnvRetryInterval, "2")
	t.Setenv(EnvRetryMaxAttempts, "")

	p := LoadRetryPolicy(retry.DefaultPolicy())

	if p.Interval != 2*time.Second {
		t.Errorf("Expected Interval 2s, got %v", p.Interval)
	}
}

func TestLoadRetryPolicy_InvalidValues(t *testing.T) {
	tests := []struct {
		name     string
		interval string
		attempts string
	}{
		{"garbage", "not-a-duration", "many"},
		{"zero attempts", "", "0"},
		{"negative attempts", "", "-4"},
	}

	base := retry.Policy{Interval: time.Second, MaxAttempts: 7}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvRetryInterval, tt.interval)
			t.Setenv(EnvRetryMaxAttempts, tt.attempts)

			p := LoadRetryPolicy(base)
			if p != base {
				t.Errorf("Expected invalid values to fall back to %+v, got %+v", base, p)
			}
		})
	}
}
