package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadHandlerFile reads and validates a handler configuration from a YAML file.
// SIGMANODE_PASSWORD, when set, replaces the credential secret.
func LoadHandlerFile(path string) (*HandlerConfig, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseHandler(data)
}

// ParseHandler decodes and validates a handler configuration.
func ParseHandler(data []byte) (*HandlerConfig, error) {
	var cfg HandlerConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	if secret := os.Getenv(EnvPassword); secret != "" {
		if cfg.Credentials == nil {
			cfg.Credentials = &Credentials{}
		}
		cfg.Credentials.Secret = secret
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadNodeFile reads a node definition from a YAML file and checks its
// resource section against the schema.
func LoadNodeFile(path string) (*NodeDefinition, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read node definition: %w", err)
	}
	return ParseNode(data)
}

// ParseNode decodes a node definition, running CheckSchema on the raw
// resource section first.
func ParseNode(data []byte) (*NodeDefinition, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}
	resource, ok := raw["resource"].(map[string]any)
	if !ok {
		return nil, &SchemaError{Missing: []string{"resource"}}
	}
	if err := CheckSchema(resource); err != nil {
		return nil, err
	}

	var def NodeDefinition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to decode node definition: %w", err)
	}
	return &def, nil
}
