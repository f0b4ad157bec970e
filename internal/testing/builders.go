package testing

import (
	"maps"

	"github.com/occopus/sigmanode/internal/config"
)

// NodeBuilder provides a fluent interface for constructing node definitions.
// Each method returns a new builder (immutable) for chaining.
type NodeBuilder struct {
	def config.NodeDefinition
}

// NewNodeBuilder creates a new NodeBuilder with a definition that passes
// the schema check.
func NewNodeBuilder() *NodeBuilder {
	return &NodeBuilder{
		def: config.NodeDefinition{
			Name:    "worker",
			NodeID:  "node-1",
			InfraID: "infra-1",
			Resource: config.ResourceSpec{
				Type:       "cloudsigma",
				Endpoint:   "https://zrh.cloudsigma.com/api/2.0",
				LibDriveID: "lib-1",
				Description: config.Description{
					CPU:         2000,
					Mem:         1073741824,
					VNCPassword: "secret",
				},
			},
		},
	}
}

// WithName sets the node name.
func (b *NodeBuilder) WithName(name string) *NodeBuilder {
	nb := b.clone()
	nb.def.Name = name
	return nb
}

// WithNodeID sets the node id.
func (b *NodeBuilder) WithNodeID(id string) *NodeBuilder {
	nb := b.clone()
	nb.def.NodeID = id
	return nb
}

// WithLibDrive sets the library drive to clone.
func (b *NodeBuilder) WithLibDrive(id string) *NodeBuilder {
	nb := b.clone()
	nb.def.Resource.LibDriveID = id
	return nb
}

// WithVNCPassword sets the VNC password of the description.
func (b *NodeBuilder) WithVNCPassword(pw string) *NodeBuilder {
	nb := b.clone()
	nb.def.Resource.Description.VNCPassword = pw
	return nb
}

// WithServerName sets the server name of the description.
func (b *NodeBuilder) WithServerName(name string) *NodeBuilder {
	nb := b.clone()
	nb.def.Resource.Description.Name = name
	return nb
}

// WithContext sets the boot context.
func (b *NodeBuilder) WithContext(ctx string) *NodeBuilder {
	nb := b.clone()
	nb.def.Context = ctx
	return nb
}

// WithExtra adds a pass-through description field.
func (b *NodeBuilder) WithExtra(key string, value any) *NodeBuilder {
	nb := b.clone()
	if nb.def.Resource.Description.Extra == nil {
		nb.def.Resource.Description.Extra = map[string]any{}
	}
	nb.def.Resource.Description.Extra[key] = value
	return nb
}

// Build returns a copy of the definition.
func (b *NodeBuilder) Build() *config.NodeDefinition {
	def := b.clone().def
	return &def
}

func (b *NodeBuilder) clone() *NodeBuilder {
	nb := &NodeBuilder{def: b.def}
	if b.def.Resource.Description.Extra != nil {
		nb.def.Resource.Description.Extra = maps.Clone(b.def.Resource.Description.Extra)
	}
	return nb
}

// HandlerConfig returns a valid handler configuration for endpoint.
func HandlerConfig(endpoint string) *config.HandlerConfig {
	return &config.HandlerConfig{
		Endpoint:    endpoint,
		Name:        "zrh",
		Credentials: &config.Credentials{Principal: "user@example.com", Secret: "secret"},
	}
}
