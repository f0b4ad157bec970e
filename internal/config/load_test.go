package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handlerYAML = `
endpoint: https://zrh.cloudsigma.com/api/2.0
name: zurich
auth_data:
  email: user@example.com
  password: secret
retry:
  interval: 2s
  max_attempts: 10
`

const nodeYAML = `
name: worker
node_id: node-1
infra_id: infra-1
resource:
  type: cloudsigma
  endpoint: https://zrh.cloudsigma.com/api/2.0
  libdrive_id: abc
  description:
    cpu: 1000
    mem: 536870912
    vnc_password: x
    smp: 2
context: |
  #cloud-config
  runcmd: []
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadHandlerFile(t *testing.T) {
	t.Setenv(EnvPassword, "")
	cfg, err := LoadHandlerFile(writeFile(t, "handler.yaml", handlerYAML))
	require.NoError(t, err)

	assert.Equal(t, "https://zrh.cloudsigma.com/api/2.0", cfg.Endpoint)
	assert.Equal(t, "zurich", cfg.Name)
	assert.Equal(t, "user@example.com", cfg.Credentials.Principal)
	assert.Equal(t, "secret", cfg.Credentials.Secret)
	assert.Equal(t, 10, cfg.RetryPolicy().MaxAttempts)
	assert.False(t, cfg.Simulate)
}

func TestLoadHandlerFile_PasswordFromEnv(t *testing.T) {
	t.Setenv(EnvPassword, "from-env")
	cfg, err := ParseHandler([]byte(`
endpoint: https://example.com
auth_data:
  email: user@example.com
`))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Credentials.Secret)
}

func TestLoadHandlerFile_MissingCredentials(t *testing.T) {
	t.Setenv(EnvPassword, "")
	_, err := ParseHandler([]byte("endpoint: https://example.com\n"))
	var cerr *ConfigurationError
	require.True(t, errors.As(err, &cerr), "got %v", err)
}

func TestLoadHandlerFile_UnknownField(t *testing.T) {
	_, err := ParseHandler([]byte("endpoint: https://example.com\ncolour: blue\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal yaml")
}

func TestLoadHandlerFile_NotFound(t *testing.T) {
	_, err := LoadHandlerFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadNodeFile(t *testing.T) {
	def, err := LoadNodeFile(writeFile(t, "node.yaml", nodeYAML))
	require.NoError(t, err)

	assert.Equal(t, "worker", def.Name)
	assert.Equal(t, "node-1", def.NodeID)
	assert.Equal(t, "infra-1", def.InfraID)
	assert.Equal(t, "cloudsigma", def.Resource.Type)
	assert.Equal(t, "abc", def.Resource.LibDriveID)
	assert.Equal(t, int64(1000), def.Resource.Description.CPU)
	assert.Equal(t, int64(536870912), def.Resource.Description.Mem)
	assert.Equal(t, "x", def.Resource.Description.VNCPassword)
	assert.Equal(t, 2, def.Resource.Description.Extra["smp"])
	assert.Contains(t, def.Context, "#cloud-config")
}

func TestParseNode_SchemaErrors(t *testing.T) {
	_, err := ParseNode([]byte("name: worker\n"))
	var serr *SchemaError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, []string{"resource"}, serr.Missing)

	_, err = ParseNode([]byte(`
resource:
  type: cloudsigma
  endpoint: https://example.com
  libdrive_id: abc
  description:
    cpu: 1000
    mem: 1024
`))
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, []string{"vnc_password"}, serr.MissingDesc)
}
