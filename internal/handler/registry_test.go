package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/occopus/sigmanode/internal/config"
)

func TestNewByProtocol(t *testing.T) {
	cfg := testConfig("")
	cfg.Simulate = true

	h, err := NewByProtocol(Protocol, cfg)
	require.NoError(t, err)
	assert.IsType(t, &Handler{}, h)

	_, err = NewByProtocol("ec2", cfg)
	assert.ErrorContains(t, err, "unknown resource handler protocol: ec2")

	_, err = NewByProtocol(Protocol, &config.HandlerConfig{Simulate: true})
	var cerr *config.ConfigurationError
	assert.ErrorAs(t, err, &cerr)
}

func TestProtocols(t *testing.T) {
	assert.Contains(t, Protocols(), Protocol)
}
