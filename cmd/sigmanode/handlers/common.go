// Package handlers implements the sigmanode commands.
package handlers

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/occopus/sigmanode/internal/config"
	"github.com/occopus/sigmanode/internal/handler"
	"github.com/occopus/sigmanode/internal/provisioning"
)

// Options holds the global flags.
type Options struct {
	Verbose     int
	DryRun      bool
	MetricsAddr string
}

// Target names an existing node.
type Target struct {
	ConfigPath string
	InstanceID string
	NodeID     string
}

func (t Target) handle() provisioning.InstanceHandle {
	return provisioning.InstanceHandle{InstanceID: t.InstanceID, NodeID: t.NodeID}
}

// Factory function variables, replaced in tests.
var (
	loadHandlerConfig = config.LoadHandlerFile
	loadNodeFile      = config.LoadNodeFile

	newHandler = func(cfg *config.HandlerConfig, opts ...handler.Option) (handler.ResourceHandler, error) {
		return handler.NewByProtocol(handler.Protocol, cfg, opts...)
	}

	metricsRegistry prometheus.Registerer = prometheus.DefaultRegisterer
	metricsGatherer prometheus.Gatherer   = prometheus.DefaultGatherer

	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// newLogger returns a logr.Logger writing through the standard log package.
func newLogger(verbose int) logr.Logger {
	stdr.SetVerbosity(verbose)
	return stdr.New(log.New(stderr, "", log.LstdFlags))
}

// openHandler loads the handler configuration and creates the handler.
// It returns a function that releases what the handler needed, such as
// the metrics server.
func openHandler(opts Options, configPath string) (handler.ResourceHandler, func(), error) {
	logger := newLogger(opts.Verbose)

	cfg, err := loadHandlerConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	if opts.DryRun {
		cfg.Simulate = true
	}

	hopts := []handler.Option{handler.WithLogger(logger)}
	if opts.MetricsAddr != "" {
		hopts = append(hopts, handler.WithRegisterer(metricsRegistry))
	}

	h, err := newHandler(cfg, hopts...)
	if err != nil {
		return nil, nil, err
	}

	stop := serveMetrics(opts.MetricsAddr, logger)
	return h, stop, nil
}

// serveMetrics exposes /metrics on addr until the returned function is
// called. An empty addr serves nothing.
func serveMetrics(addr string, logger logr.Logger) func() {
	if addr == "" {
		return func() {}
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metricsGatherer, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(err, "Metrics server failed", "addr", addr)
		}
	}()
	logger.V(1).Info("Serving metrics", "addr", addr)

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
