package compute

import (
	"encoding/base64"
	"fmt"
	"maps"

	"github.com/occopus/sigmanode/internal/config"
	"github.com/occopus/sigmanode/internal/platform/cloudsigma"
	"github.com/occopus/sigmanode/internal/util/naming"
)

// DefaultVNCPassword is used when neither the description nor the node id
// provide one.
const DefaultVNCPassword = "occopus"

// Boot device settings of the cloned drive.
const (
	bootOrder  = 1
	devChannel = "0:0"
	device     = "virtio"
)

// Server metadata keys for the boot context.
const (
	metaBase64Fields = "base64_fields"
	metaUserData     = "cloudinit-user-data"
)

// BuildServerDescriptor assembles the create-server request for def, booting
// from driveID.
func BuildServerDescriptor(def *config.NodeDefinition, driveID string) cloudsigma.ServerDescriptor {
	d := def.Resource.Description

	desc := cloudsigma.ServerDescriptor{
		Name:        d.Name,
		CPU:         d.CPU,
		Mem:         d.Mem,
		VNCPassword: d.VNCPassword,
		Drives: []cloudsigma.DriveAttachment{{
			BootOrder:  bootOrder,
			DevChannel: devChannel,
			Device:     device,
			Drive:      driveID,
		}},
	}

	if len(d.Extra) > 0 {
		desc.Extra = maps.Clone(d.Extra)
		delete(desc.Extra, "drives")
	}

	if desc.VNCPassword == "" {
		desc.VNCPassword = def.NodeID
	}
	if desc.VNCPassword == "" {
		desc.VNCPassword = DefaultVNCPassword
	}

	if desc.Name == "" {
		desc.Name = def.Resource.Name
	}
	if desc.Name == "" {
		desc.Name = naming.UniqueVM(def.InfraID, def.Name)
	}

	if def.Context != "" {
		desc.Meta = userMeta(desc.Extra)
		delete(desc.Extra, "meta")
		desc.Meta[metaBase64Fields] = metaUserData
		desc.Meta[metaUserData] = base64.StdEncoding.EncodeToString([]byte(def.Context))
	}

	return desc
}

// userMeta converts the description's own meta map to server metadata. The
// boot context keys are set on top of it.
func userMeta(extra map[string]any) map[string]string {
	meta := map[string]string{}
	user, _ := extra["meta"].(map[string]any)
	for k, v := range user {
		meta[k] = fmt.Sprint(v)
	}
	return meta
}
