package cloudsigma

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-logr/logr"

	"github.com/occopus/sigmanode/internal/config"
	"github.com/occopus/sigmanode/internal/metrics"
	"github.com/occopus/sigmanode/internal/util/retry"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 1 << 20

// RealClient implements Client against the CloudSigma HTTP API.
type RealClient struct {
	baseURL    string
	principal  string
	secret     string
	name       string
	policy     retry.Policy
	httpClient *http.Client
	log        logr.Logger
	metrics    *metrics.Metrics
}

// ClientOption configures a RealClient.
type ClientOption func(*RealClient)

// WithRetryPolicy sets the retry policy applied to every call.
func WithRetryPolicy(p retry.Policy) ClientOption {
	return func(c *RealClient) {
		c.policy = p.Normalize()
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *RealClient) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger.
func WithLogger(l logr.Logger) ClientOption {
	return func(c *RealClient) {
		c.log = l
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) ClientOption {
	return func(c *RealClient) {
		c.metrics = m
	}
}

// NewRealClient creates a RealClient for the endpoint and credentials of cfg.
// The retry policy defaults to the one configured in cfg.
func NewRealClient(cfg *config.HandlerConfig, opts ...ClientOption) *RealClient {
	c := &RealClient{
		baseURL:    cfg.BaseURL(),
		name:       cfg.DisplayName(),
		policy:     cfg.RetryPolicy(),
		httpClient: &http.Client{Timeout: 60 * time.Second},
		log:        logr.Discard(),
	}
	if cfg.Credentials != nil {
		c.principal = cfg.Credentials.Principal
		c.secret = cfg.Credentials.Secret
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Policy returns the retry policy of the client.
func (c *RealClient) Policy() retry.Policy {
	return c.policy
}

// operation describes one REST call.
type operation struct {
	name     string
	method   string
	path     string
	query    url.Values
	body     any
	expected int
}

// invoke performs op under the client's retry policy and returns the body of
// the first response carrying the expected status.
func (c *RealClient) invoke(ctx context.Context, op operation) ([]byte, error) {
	var payload []byte
	if op.body != nil {
		var err error
		payload, err = json.Marshal(op.body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s request: %w", op.name, err)
		}
	}

	var result []byte
	err := retry.Do(ctx, c.policy, func(attempt int) error {
		if err := ctx.Err(); err != nil {
			return retry.Fatal(err)
		}

		body, err := c.do(ctx, op, payload)
		if err == nil {
			result = body
			return nil
		}
		if ctx.Err() != nil {
			return retry.Fatal(ctx.Err())
		}

		if attempt < c.policy.MaxAttempts {
			c.metrics.ObserveRetry(op.name)
			c.log.V(1).Info("API call failed, retrying",
				"handler", c.name,
				"error", err.Error(),
				"retryIn", c.policy.Interval,
				"attemptsLeft", c.policy.MaxAttempts-attempt)
		}
		return err
	})
	if err != nil {
		if errors.Is(err, ErrRetryBudgetExhausted) {
			c.metrics.ObserveExhausted(op.name)
		}
		return nil, err
	}
	return result, nil
}

// do sends a single request.
func (c *RealClient) do(ctx context.Context, op operation, payload []byte) ([]byte, error) {
	u := c.baseURL + op.path
	if len(op.query) > 0 {
		u += "?" + op.query.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, op.method, u, reqBody)
	if err != nil {
		return nil, retry.Fatal(fmt.Errorf("failed to build %s request: %w", op.name, err))
	}
	req.SetBasicAuth(c.principal, c.secret)
	req.Header.Set("Accept", "application/json")
	if payload != nil || op.method == http.MethodDelete {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveRequest(op.name, 0)
		return nil, &APIError{Operation: op.name, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	c.metrics.ObserveRequest(op.name, resp.StatusCode)
	if err != nil {
		return nil, &APIError{Operation: op.name, StatusCode: resp.StatusCode, Err: err}
	}
	if resp.StatusCode != op.expected {
		return nil, &APIError{Operation: op.name, StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

// decodeFirst decodes an objects envelope and returns its first element.
func decodeFirst[T any](opName string, body []byte) (T, error) {
	var zero T
	var list objectList[T]
	if err := json.Unmarshal(body, &list); err != nil {
		return zero, fmt.Errorf("failed to decode %s response: %w", opName, err)
	}
	if len(list.Objects) == 0 {
		return zero, fmt.Errorf("%s response contains no objects", opName)
	}
	return list.Objects[0], nil
}

func resourcePath(kind, id string) string {
	return "/" + kind + "/" + url.PathEscape(id) + "/"
}
