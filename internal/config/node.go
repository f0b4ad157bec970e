package config

// NodeDefinition is the orchestrator-supplied description of the virtual
// machine to create.
type NodeDefinition struct {
	Name     string       `yaml:"name"`
	NodeID   string       `yaml:"node_id,omitempty"`
	InfraID  string       `yaml:"infra_id,omitempty"`
	Resource ResourceSpec `yaml:"resource"`

	// Context is the boot context (usually cloud-init user data). It is
	// base64-encoded into the server metadata.
	Context string `yaml:"context,omitempty"`
}

// ResourceSpec is the resource section of a node definition.
type ResourceSpec struct {
	Type        string      `yaml:"type"`
	Endpoint    string      `yaml:"endpoint"`
	LibDriveID  string      `yaml:"libdrive_id"`
	Description Description `yaml:"description"`
	Name        string      `yaml:"name,omitempty"`
}

// Description describes the server to create. Fields the handler does not
// interpret are kept in Extra and forwarded to the API unchanged.
type Description struct {
	CPU         int64          `yaml:"cpu"`
	Mem         int64          `yaml:"mem"`
	VNCPassword string         `yaml:"vnc_password,omitempty"`
	Name        string         `yaml:"name,omitempty"`
	Extra       map[string]any `yaml:",inline"`
}

// Schema keys of the resource section.
var (
	RequiredResourceKeys    = []string{"type", "endpoint", "libdrive_id", "description"}
	RequiredDescriptionKeys = []string{"cpu", "mem", "vnc_password"}
	OptionalResourceKeys    = []string{"name"}
)

// Check validates a typed resource section against the schema. Zero values
// count as missing.
func (r *ResourceSpec) Check() error {
	present := map[string]bool{
		"type":        r.Type != "",
		"endpoint":    r.Endpoint != "",
		"libdrive_id": r.LibDriveID != "",
		"description": true,
	}
	descPresent := map[string]bool{
		"cpu":          r.Description.CPU > 0,
		"mem":          r.Description.Mem > 0,
		"vnc_password": r.Description.VNCPassword != "",
	}

	serr := &SchemaError{}
	for _, k := range RequiredResourceKeys {
		if !present[k] {
			serr.Missing = append(serr.Missing, k)
		}
	}
	for _, k := range RequiredDescriptionKeys {
		if !descPresent[k] {
			serr.MissingDesc = append(serr.MissingDesc, k)
		}
	}
	if len(serr.Missing) > 0 || len(serr.MissingDesc) > 0 {
		return serr
	}
	return nil
}
