package config

import (
	"os"
	"strconv"
	"time"

	"github.com/occopus/sigmanode/internal/util/retry"
)

// Environment variables overriding the retry policy.
const (
	EnvRetryInterval    = "SIGMANODE_RETRY_INTERVAL"
	EnvRetryMaxAttempts = "SIGMANODE_RETRY_MAX_ATTEMPTS"
	EnvPassword         = "SIGMANODE_PASSWORD"
)

// LoadRetryPolicy returns base with environment overrides applied.
// Unset or unparsable variables keep the base value.
func LoadRetryPolicy(base retry.Policy) retry.Policy {
	return retry.Policy{
		Interval:    parseDuration(EnvRetryInterval, base.Interval),
		MaxAttempts: parseInt(EnvRetryMaxAttempts, base.MaxAttempts),
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := parseDurationValue(val)
	if err != nil {
		return defaultVal
	}

	return d
}

// parseDurationValue accepts Go durations ("6s") and bare seconds ("6").
func parseDurationValue(val string) (time.Duration, error) {
	if secs, err := strconv.Atoi(val); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(val)
}

// parseInt parses a positive integer from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil || i <= 0 {
		return defaultVal
	}

	return i
}
