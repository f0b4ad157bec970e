package testing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeBuilder_Immutable(t *testing.T) {
	base := NewNodeBuilder()
	a := base.WithName("a").WithExtra("smp", 2)
	b := base.WithName("b")

	assert.Equal(t, "a", a.Build().Name)
	assert.Equal(t, "b", b.Build().Name)
	assert.Equal(t, "worker", base.Build().Name)
	assert.Nil(t, b.Build().Resource.Description.Extra)
	require.NoError(t, base.Build().Resource.Check())
}

func TestClientFixture_ServerStatuses(t *testing.T) {
	mock := NewClientFixture().ServerStatuses("stopped", "running")
	ctx := context.Background()

	for _, want := range []string{"stopped", "running", "running"} {
		srv, err := mock.GetServer(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, want, srv.Status)
	}
}

func TestClientFixture_NoStatuses(t *testing.T) {
	mock := NewClientFixture().ServerStatuses()

	srv, err := mock.GetServer(context.Background(), "s1")
	require.NoError(t, err)
	assert.Empty(t, srv.Status)
}
