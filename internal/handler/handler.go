package handler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-logr/logr"

	"github.com/occopus/sigmanode/internal/config"
	"github.com/occopus/sigmanode/internal/metrics"
	"github.com/occopus/sigmanode/internal/platform/cloudsigma"
	"github.com/occopus/sigmanode/internal/provisioning"
	"github.com/occopus/sigmanode/internal/provisioning/compute"
	"github.com/occopus/sigmanode/internal/provisioning/destroy"
	"github.com/occopus/sigmanode/internal/util/retry"
)

// Protocol is the id the CloudSigma handler is registered under.
const Protocol = "cloudsigma"

// Node operation names used in metrics.
const (
	opCreate = "create"
	opDrop   = "drop"
)

// ResourceHandler is the interface the orchestrator drives nodes through.
type ResourceHandler interface {
	CreateNode(ctx context.Context, def *config.NodeDefinition) (string, error)
	DropNode(ctx context.Context, handle provisioning.InstanceHandle) error
	GetState(ctx context.Context, handle provisioning.InstanceHandle) (provisioning.CanonicalState, error)
	GetAddress(ctx context.Context, handle provisioning.InstanceHandle) (string, error)
	GetIPAddress(ctx context.Context, handle provisioning.InstanceHandle) (string, error)
}

// Handler is the CloudSigma resource handler.
type Handler struct {
	cfg         *config.HandlerConfig
	name        string
	client      cloudsigma.Client
	rt          *provisioning.Runtime
	provisioner *compute.Provisioner
	terminator  *destroy.Terminator
	log         logr.Logger
	metrics     *metrics.Metrics
}

var _ ResourceHandler = (*Handler)(nil)

// New validates cfg and creates a Handler. A configuration problem is
// reported as *config.ConfigurationError before any network activity.
func New(cfg *config.HandlerConfig, opts ...Option) (*Handler, error) {
	if cfg == nil {
		return nil, &config.ConfigurationError{Reason: "configuration is required"}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := options{log: logr.Discard()}
	for _, opt := range opts {
		opt(&o)
	}

	policy := config.LoadRetryPolicy(cfg.RetryPolicy())
	if o.policy != nil {
		policy = *o.policy
	}

	var m *metrics.Metrics
	if o.registerer != nil {
		m = metrics.New(o.registerer)
	}

	h := &Handler{
		cfg:     cfg,
		name:    cfg.DisplayName(),
		log:     o.log.WithName(Protocol),
		metrics: m,
	}

	switch {
	case o.client != nil:
		h.client = o.client
	case cfg.Simulate:
		h.log.Info("Simulate mode, no API calls will be made", "handler", h.name)
		h.client = cloudsigma.NewSimulatedClient()
		// Simulated actions complete at once; there is nothing to wait for.
		policy.Interval = 0
	default:
		clientOpts := []cloudsigma.ClientOption{
			cloudsigma.WithRetryPolicy(policy),
			cloudsigma.WithLogger(h.log),
			cloudsigma.WithMetrics(m),
		}
		if o.httpClient != nil {
			clientOpts = append(clientOpts, cloudsigma.WithHTTPClient(o.httpClient))
		}
		h.client = cloudsigma.NewRealClient(cfg, clientOpts...)
	}

	h.rt = provisioning.NewRuntime(h.client, policy, h.name)
	h.rt.Log = h.log
	h.rt.Observer = provisioning.Observers(provisioning.LogObserver{Log: h.log}, o.observer)

	h.provisioner = compute.NewProvisioner(h.rt, compute.WithDriveReclaim(cfg.ReclaimDriveOnCancel))
	h.terminator = destroy.NewTerminator(h.rt)
	return h, nil
}

// Name returns the display name of the handler.
func (h *Handler) Name() string {
	return h.name
}

// Policy returns the retry policy used for API calls and polling.
func (h *Handler) Policy() retry.Policy {
	return h.rt.Policy
}

// CheckSchema validates a decoded node definition.
func (h *Handler) CheckSchema(def *config.NodeDefinition) error {
	if def == nil {
		return &config.SchemaError{Missing: []string{"resource"}}
	}
	return def.Resource.Check()
}

// CreateNode creates the node described by def and returns its instance id.
// Cancelling ctx rolls back a partially created node.
func (h *Handler) CreateNode(ctx context.Context, def *config.NodeDefinition) (string, error) {
	if err := h.CheckSchema(def); err != nil {
		return "", fmt.Errorf("invalid node definition: %w", err)
	}

	start := time.Now()
	id, err := h.provisioner.Create(ctx, def)
	h.metrics.ObserveNodeOperation(opCreate, result(err), time.Since(start))
	if err != nil {
		return "", err
	}
	return id, nil
}

// DropNode terminates the node. Delete failures are logged, not returned;
// only a malformed handle is an error.
func (h *Handler) DropNode(ctx context.Context, handle provisioning.InstanceHandle) error {
	start := time.Now()
	res, err := h.terminator.Terminate(ctx, handle)
	if err == nil && res.Err != nil {
		h.metrics.ObserveNodeOperation(opDrop, metrics.ResultError, time.Since(start))
		return nil
	}
	h.metrics.ObserveNodeOperation(opDrop, result(err), time.Since(start))
	return err
}

// GetState returns the canonical state of the node. Failing to read the
// server yields StateTmpFail.
func (h *Handler) GetState(ctx context.Context, handle provisioning.InstanceHandle) (provisioning.CanonicalState, error) {
	if err := handle.Validate(); err != nil {
		return "", err
	}
	raw := h.rt.ServerState(ctx, handle.InstanceID)
	st, err := provisioning.MapServerState(string(raw))
	if err != nil {
		return "", err
	}
	h.log.V(1).Info("Done", "handler", h.name, "cloudsigmaState", string(raw), "status", string(st))
	return st, nil
}

// GetAddress returns the IPv4 address of the node, or "" if none is
// assigned yet.
func (h *Handler) GetAddress(ctx context.Context, handle provisioning.InstanceHandle) (string, error) {
	if err := handle.Validate(); err != nil {
		return "", err
	}
	if handle.Empty() {
		return "", nil
	}
	srv, err := h.client.GetServer(ctx, handle.InstanceID)
	if err != nil {
		h.log.V(1).Info("Server unavailable, no address", "handler", h.name,
			"server", handle.InstanceID, "error", err.Error())
		return "", nil
	}
	return srv.IPv4(), nil
}

// GetIPAddress is GetAddress; CloudSigma addresses are always IPs.
func (h *Handler) GetIPAddress(ctx context.Context, handle provisioning.InstanceHandle) (string, error) {
	return h.GetAddress(ctx, handle)
}

func result(err error) string {
	switch {
	case err == nil:
		return metrics.ResultSuccess
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return metrics.ResultCancelled
	default:
		return metrics.ResultError
	}
}
