package config

import "context"

// Source is a single configuration document, either read from disk or
// embedded in the binary.
type Source struct {
	// Filename is used for format detection and diagnostics.
	Filename string
	Data     []byte
}

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Extensions lists the lower-cased file extensions the loader accepts.
	Extensions() []string

	// Load parses the given sources and translates them into the
	// format-agnostic model.
	Load(ctx context.Context, sources ...Source) (*Model, error)
}
