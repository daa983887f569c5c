// Package config defines the format-agnostic configuration model for the
// application, along with the Loader interface implemented by each
// configuration format.
//
// The `config.Model` is the single source of truth for the `params` and
// `topology` packages. Concrete implementations of the Loader, such as for
// HCL and YAML, are provided in separate packages.
package config
