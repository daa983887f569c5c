package config

import (
	"github.com/zclconf/go-cty/cty"
)

// Model is the unified, format-agnostic representation of a profile
// definition and the parameter values supplied for one run.
type Model struct {
	Profile *Profile

	// Values holds raw parameter values keyed by parameter name. They are
	// type-checked later by the params package.
	Values map[string]cty.Value

	// ValueOrigins records where each value came from, for diagnostics.
	ValueOrigins map[string]string
}

// NewModel returns an empty model ready for merging.
func NewModel() *Model {
	return &Model{
		Values:       make(map[string]cty.Value),
		ValueOrigins: make(map[string]string),
	}
}

// Profile describes one deployment variant: the bounds and choices that
// parameterize the same topology builder.
type Profile struct {
	Name        string
	Description string

	// ClientLabel is the label shown for the client-count parameter.
	ClientLabel string

	MinClients     int
	MaxClients     int // zero means unbounded
	DefaultClients int

	// OverrideSlots is the number of per-node image override parameters
	// (node1..nodeN) the variant exposes.
	OverrideSlots int

	Images []Image

	// DefaultImage is an index into Images.
	DefaultImage int

	// Origin names the file the profile was read from.
	Origin string
}

// Image is one selectable OS image.
type Image struct {
	URN  string
	Name string
}

// Bounded reports whether the client count has an upper bound.
func (p *Profile) Bounded() bool {
	return p.MaxClients > 0
}
