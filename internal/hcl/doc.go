// Package hcl provides the concrete HCL implementation of the config.Loader
// interface. It is responsible for parsing profile and parameter files,
// translating them into the format-agnostic model, and rendering parameter
// templates back to HCL.
package hcl
