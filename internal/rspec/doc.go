// Package rspec models a GENI request RSpec as an in-memory graph of nodes,
// interfaces and links, and serializes it.
//
// Resources are created through the Request methods, which keep naming
// deterministic (interfaces are "<node>:if<n>"). Encode validates the graph
// before writing anything, so a failed encode produces no partial output.
package rspec
