package hcl

import (
	"github.com/hashicorp/hcl/v2"
)

// fileRoot is used to decode all possible top-level blocks from any file.
// Anything else at the top level is rejected by the decoder.
type fileRoot struct {
	Profiles   []*profileBlock    `hcl:"profile,block"`
	Parameters []*parametersBlock `hcl:"parameters,block"`
}

// profileBlock represents a `profile` block: the bounds and images of one
// deployment variant.
type profileBlock struct {
	Name           string        `hcl:"name,label"`
	Description    string        `hcl:"description,optional"`
	ClientLabel    string        `hcl:"client_label,optional"`
	MinClients     *int          `hcl:"min_clients,optional"`
	MaxClients     *int          `hcl:"max_clients,optional"`
	DefaultClients *int          `hcl:"default_clients,optional"`
	OverrideSlots  int           `hcl:"override_slots"`
	DefaultImage   string        `hcl:"default_image,optional"`
	Images         []*imageBlock `hcl:"image,block"`
	DeclRange      hcl.Range     `hcl:",def_range"`
}

// imageBlock represents one selectable OS image inside a profile.
type imageBlock struct {
	URN  string `hcl:"urn,label"`
	Name string `hcl:"name,optional"`
}

// parametersBlock holds free-form parameter assignments. Values are
// type-checked later against the profile's schema.
type parametersBlock struct {
	Body hcl.Body `hcl:",remain"`
}
