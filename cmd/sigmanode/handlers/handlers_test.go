package handlers

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/occopus/sigmanode/internal/config"
	"github.com/occopus/sigmanode/internal/handler"
	"github.com/occopus/sigmanode/internal/provisioning"
)

const handlerYAML = `endpoint: https://zrh.cloudsigma.com/api/2.0/
name: zrh
auth_data:
  email: user@example.com
  password: secret
`

const nodeYAML = `name: worker
node_id: node-1
resource:
  type: cloudsigma
  endpoint: https://zrh.cloudsigma.com/api/2.0/
  libdrive_id: lib-1
  description:
    cpu: 2000
    mem: 1073741824
    vnc_password: secret
`

// fakeHandler records the calls it receives.
type fakeHandler struct {
	createErr error
	state     provisioning.CanonicalState
	address   string

	created *config.NodeDefinition
	dropped provisioning.InstanceHandle
	ipCalls int
}

func (f *fakeHandler) CreateNode(_ context.Context, def *config.NodeDefinition) (string, error) {
	f.created = def
	if f.createErr != nil {
		return "", f.createErr
	}
	return "s1", nil
}

func (f *fakeHandler) DropNode(_ context.Context, h provisioning.InstanceHandle) error {
	f.dropped = h
	return h.Validate()
}

func (f *fakeHandler) GetState(context.Context, provisioning.InstanceHandle) (provisioning.CanonicalState, error) {
	return f.state, nil
}

func (f *fakeHandler) GetAddress(context.Context, provisioning.InstanceHandle) (string, error) {
	return f.address, nil
}

func (f *fakeHandler) GetIPAddress(ctx context.Context, h provisioning.InstanceHandle) (string, error) {
	f.ipCalls++
	return f.GetAddress(ctx, h)
}

// setup writes the fixture files, captures output and installs fake.
// Passing a nil fake keeps the real handler constructor.
func setup(t *testing.T, fake *fakeHandler) (dir string, out *bytes.Buffer) {
	t.Helper()
	t.Setenv(config.EnvPassword, "")
	dir = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "handler.yaml"), []byte(handlerYAML), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "node.yaml"), []byte(nodeYAML), 0o600))

	origStdout, origStderr, origNew, origStyled := stdout, stderr, newHandler, styled
	origRegistry, origGatherer := metricsRegistry, metricsGatherer
	t.Cleanup(func() {
		stdout, stderr, newHandler, styled = origStdout, origStderr, origNew, origStyled
		metricsRegistry, metricsGatherer = origRegistry, origGatherer
	})

	out = &bytes.Buffer{}
	stdout = out
	stderr = &bytes.Buffer{}
	styled = func() bool { return false }
	if fake != nil {
		newHandler = func(*config.HandlerConfig, ...handler.Option) (handler.ResourceHandler, error) {
			return fake, nil
		}
	}
	return dir, out
}

func TestCreate(t *testing.T) {
	fake := &fakeHandler{}
	dir, out := setup(t, fake)

	err := Create(context.Background(), Options{}, filepath.Join(dir, "handler.yaml"), filepath.Join(dir, "node.yaml"))

	require.NoError(t, err)
	assert.Equal(t, "s1\n", out.String())
	require.NotNil(t, fake.created)
	assert.Equal(t, "lib-1", fake.created.Resource.LibDriveID)
}

func TestCreate_Error(t *testing.T) {
	fake := &fakeHandler{createErr: errors.New("clone failed")}
	dir, out := setup(t, fake)

	err := Create(context.Background(), Options{}, filepath.Join(dir, "handler.yaml"), filepath.Join(dir, "node.yaml"))

	assert.ErrorContains(t, err, "create failed: clone failed")
	assert.Empty(t, out.String())
}

func TestCreate_DryRun(t *testing.T) {
	dir, out := setup(t, nil)

	err := Create(context.Background(), Options{DryRun: true}, filepath.Join(dir, "handler.yaml"), filepath.Join(dir, "node.yaml"))

	require.NoError(t, err)
	assert.Equal(t, "1\n", out.String())
}

func TestCreate_MissingConfig(t *testing.T) {
	dir, _ := setup(t, &fakeHandler{})

	err := Create(context.Background(), Options{}, filepath.Join(dir, "missing.yaml"), filepath.Join(dir, "node.yaml"))

	assert.ErrorContains(t, err, "failed to read config file")
}

func TestDrop(t *testing.T) {
	fake := &fakeHandler{}
	dir, _ := setup(t, fake)

	err := Drop(context.Background(), Options{}, Target{ConfigPath: filepath.Join(dir, "handler.yaml"), InstanceID: "s1", NodeID: "n1"})

	require.NoError(t, err)
	assert.Equal(t, provisioning.InstanceHandle{InstanceID: "s1", NodeID: "n1"}, fake.dropped)
}

func TestDrop_MalformedHandle(t *testing.T) {
	dir, _ := setup(t, &fakeHandler{})

	err := Drop(context.Background(), Options{}, Target{ConfigPath: filepath.Join(dir, "handler.yaml"), InstanceID: "a/b"})

	assert.ErrorIs(t, err, provisioning.ErrMalformedHandle)
}

func TestState(t *testing.T) {
	dir, out := setup(t, &fakeHandler{state: provisioning.StatePending})

	err := State(context.Background(), Options{}, Target{ConfigPath: filepath.Join(dir, "handler.yaml"), InstanceID: "s1"})

	require.NoError(t, err)
	assert.Equal(t, "PENDING\n", out.String())
}

func TestState_Styled(t *testing.T) {
	dir, out := setup(t, &fakeHandler{state: provisioning.StateReady})
	styled = func() bool { return true }

	err := State(context.Background(), Options{}, Target{ConfigPath: filepath.Join(dir, "handler.yaml"), InstanceID: "s1"})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "State")
	assert.Contains(t, out.String(), "READY")
}

func TestAddress(t *testing.T) {
	fake := &fakeHandler{address: "185.12.6.1"}
	dir, out := setup(t, fake)
	target := Target{ConfigPath: filepath.Join(dir, "handler.yaml"), InstanceID: "s1"}

	require.NoError(t, Address(context.Background(), Options{}, target, false))
	require.NoError(t, Address(context.Background(), Options{}, target, true))

	assert.Equal(t, "185.12.6.1\n185.12.6.1\n", out.String())
	assert.Equal(t, 1, fake.ipCalls)
}

func TestValidate(t *testing.T) {
	dir, out := setup(t, nil)

	require.NoError(t, Validate(filepath.Join(dir, "node.yaml"), filepath.Join(dir, "handler.yaml")))
	assert.Equal(t, "worker\n", out.String())
}

func TestValidate_SchemaError(t *testing.T) {
	dir, _ := setup(t, nil)
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("name: x\nresource:\n  type: cloudsigma\n  flavour: big\n"), 0o600))

	err := Validate(bad, "")

	var serr *config.SchemaError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, []string{"endpoint", "libdrive_id", "description"}, serr.Missing)
}

func TestOpenHandler_RegistersMetrics(t *testing.T) {
	dir, _ := setup(t, nil)
	reg := prometheus.NewRegistry()
	metricsRegistry, metricsGatherer = reg, reg

	h, release, err := openHandler(Options{DryRun: true, MetricsAddr: "127.0.0.1:0"}, filepath.Join(dir, "handler.yaml"))
	require.NoError(t, err)
	defer release()

	_, err = h.CreateNode(context.Background(), &config.NodeDefinition{
		Name: "n",
		Resource: config.ResourceSpec{
			Type: "cloudsigma", Endpoint: "https://zrh.cloudsigma.com/api/2.0/", LibDriveID: "lib",
			Description: config.Description{CPU: 1, Mem: 1, VNCPassword: "x"},
		},
	})
	require.NoError(t, err)

	families, err := reg.Gather()
	require.NoError(t, err)
	var names []string
	for _, mf := range families {
		names = append(names, mf.GetName())
	}
	assert.Contains(t, names, "sigmanode_node_operations_total")
}
