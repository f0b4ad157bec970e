package handler

import (
	"net/http"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/occopus/sigmanode/internal/platform/cloudsigma"
	"github.com/occopus/sigmanode/internal/provisioning"
	"github.com/occopus/sigmanode/internal/util/retry"
)

type options struct {
	client     cloudsigma.Client
	policy     *retry.Policy
	log        logr.Logger
	observer   provisioning.Observer
	registerer prometheus.Registerer
	httpClient *http.Client
}

// Option configures a Handler.
type Option func(*options)

// WithClient replaces the API client. The simulate setting of the
// configuration is ignored.
func WithClient(c cloudsigma.Client) Option {
	return func(o *options) {
		o.client = c
	}
}

// WithRetryPolicy overrides the retry policy from the configuration and the
// environment.
func WithRetryPolicy(p retry.Policy) Option {
	return func(o *options) {
		p = p.Normalize()
		o.policy = &p
	}
}

// WithLogger sets the logger.
func WithLogger(l logr.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

// WithObserver receives provisioning events in addition to the log.
func WithObserver(obs provisioning.Observer) Option {
	return func(o *options) {
		o.observer = obs
	}
}

// WithRegisterer enables metrics, registered on reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

// WithHTTPClient sets the HTTP client of the real API client.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.httpClient = hc
	}
}
