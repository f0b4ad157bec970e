package naming

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUniqueVM(t *testing.T) {
	tests := []struct {
		name    string
		infraID string
		node    string
		pattern string
	}{
		{"infra and node", "infra1", "worker", `^occopus-infra1-worker-[0-9a-f]{8}$`},
		{"node only", "", "worker", `^occopus-worker-[0-9a-f]{8}$`},
		{"nothing", "", "", `^occopus-[0-9a-f]{8}$`},
		{"sanitized", "Infra 1", "db_node", `^occopus-infra-1-db-node-[0-9a-f]{8}$`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Regexp(t, regexp.MustCompile(tt.pattern), UniqueVM(tt.infraID, tt.node))
		})
	}
}

func TestUniqueVM_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		n := UniqueVM("infra", "node")
		assert.False(t, seen[n], "duplicate name %s", n)
		seen[n] = true
	}
}
