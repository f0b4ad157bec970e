package config

import (
	"fmt"
	"strings"
)

// ConfigurationError is returned when a handler cannot be constructed from
// its configuration. It is raised before any network activity.
type ConfigurationError struct {
	Endpoint string
	Reason   string
}

func (e *ConfigurationError) Error() string {
	if e.Endpoint == "" {
		return "configuration error: " + e.Reason
	}
	return fmt.Sprintf("configuration error for %q: %s", e.Endpoint, e.Reason)
}

// SchemaError reports a node definition that does not match the resource
// schema.
type SchemaError struct {
	Missing     []string
	MissingDesc []string
	Unknown     []string
}

func (e *SchemaError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "Missing key(s): "+strings.Join(e.Missing, ", "))
	}
	if len(e.MissingDesc) > 0 {
		parts = append(parts, "Missing key(s) in description: "+strings.Join(e.MissingDesc, ", "))
	}
	if len(e.Unknown) > 0 {
		parts = append(parts, "Unknown key(s): "+strings.Join(e.Unknown, ", "))
	}
	if len(parts) == 0 {
		return "schema error"
	}
	return "schema error: " + strings.Join(parts, "; ")
}
