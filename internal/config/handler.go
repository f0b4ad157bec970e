package config

import (
	"net/url"
	"strings"

	"github.com/occopus/sigmanode/internal/util/retry"
)

// Credentials authenticate against the CloudSigma API with HTTP basic auth.
type Credentials struct {
	Principal string `yaml:"email"`
	Secret    string `yaml:"password"`
}

// RetrySettings mirrors retry.Policy in the YAML file.
type RetrySettings struct {
	Interval    string `yaml:"interval,omitempty"`
	MaxAttempts int    `yaml:"max_attempts,omitempty"`
}

// HandlerConfig holds the settings of one resource handler instance.
type HandlerConfig struct {
	Endpoint    string        `yaml:"endpoint"`
	Credentials *Credentials  `yaml:"auth_data"`
	Name        string        `yaml:"name,omitempty"`
	Simulate    bool          `yaml:"dry_run,omitempty"`
	Retry       RetrySettings `yaml:"retry,omitempty"`

	// ReclaimDriveOnCancel deletes the cloned drive when node creation is
	// cancelled before a server exists. Off by default: the drive is left
	// for the orchestrator to collect.
	ReclaimDriveOnCancel bool `yaml:"reclaim_drive_on_cancel,omitempty"`
}

// DisplayName returns the configured name, falling back to the endpoint.
func (c *HandlerConfig) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Endpoint
}

// Validate checks the handler configuration.
// Credentials are required even in simulate mode.
func (c *HandlerConfig) Validate() error {
	if c.Credentials == nil || c.Credentials.Principal == "" || c.Credentials.Secret == "" {
		return &ConfigurationError{
			Endpoint: c.Endpoint,
			Reason:   "cannot find credentials, please specify auth_data.email and auth_data.password",
		}
	}
	if c.Simulate {
		return nil
	}
	if c.Endpoint == "" {
		return &ConfigurationError{Reason: "endpoint is required"}
	}
	u, err := url.Parse(c.Endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return &ConfigurationError{Endpoint: c.Endpoint, Reason: "endpoint must be an absolute URL"}
	}
	if c.Retry.Interval != "" {
		if _, err := parseDurationValue(c.Retry.Interval); err != nil {
			return &ConfigurationError{Endpoint: c.Endpoint, Reason: "invalid retry.interval: " + err.Error()}
		}
	}
	if c.Retry.MaxAttempts < 0 {
		return &ConfigurationError{Endpoint: c.Endpoint, Reason: "retry.max_attempts must not be negative"}
	}
	return nil
}

// BaseURL returns the endpoint without trailing slashes.
func (c *HandlerConfig) BaseURL() string {
	return strings.TrimRight(c.Endpoint, "/")
}

// RetryPolicy returns the policy configured in the file, with defaults for
// unset fields. Environment overrides are applied by LoadRetryPolicy.
func (c *HandlerConfig) RetryPolicy() retry.Policy {
	p := retry.DefaultPolicy()
	if c.Retry.Interval != "" {
		if d, err := parseDurationValue(c.Retry.Interval); err == nil {
			p.Interval = d
		}
	}
	if c.Retry.MaxAttempts > 0 {
		p.MaxAttempts = c.Retry.MaxAttempts
	}
	return p
}
