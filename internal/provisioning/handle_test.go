package provisioning

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstanceHandle_Validate(t *testing.T) {
	valid := []string{"", "1", "c2e4d0d4-1f7a-4c77-9c5f-8d3f0c7b2a11"}
	for _, id := range valid {
		assert.NoError(t, InstanceHandle{InstanceID: id}.Validate(), id)
	}

	malformed := []string{"a/b", "../servers", "x?do=stop", "id#frag", "50%", "has space", "tab\t"}
	for _, id := range malformed {
		err := InstanceHandle{InstanceID: id}.Validate()
		assert.ErrorIs(t, err, ErrMalformedHandle, id)
	}
}

func TestInstanceHandle_Empty(t *testing.T) {
	assert.True(t, InstanceHandle{NodeID: "n"}.Empty())
	assert.False(t, InstanceHandle{InstanceID: "1"}.Empty())
}
