package rspec

import (
	"errors"
	"fmt"
)

// Validate checks that the request is internally consistent: client ids are
// unique, every link interface belongs to a node in the request, and no
// interface is shared between links or attached twice.
func (r *Request) Validate() error {
	var errs []error

	ids := make(map[string]string)
	claim := func(id, kind string) {
		if id == "" {
			errs = append(errs, fmt.Errorf("%s with empty client_id", kind))
			return
		}
		if prev, ok := ids[id]; ok {
			errs = append(errs, fmt.Errorf("duplicate client_id %q (%s and %s)", id, prev, kind))
			return
		}
		ids[id] = kind
	}

	owned := make(map[*Interface]*Node)
	for _, n := range r.Nodes {
		claim(n.ClientID, "node")
		for _, ifc := range n.Interfaces {
			claim(ifc.ClientID, "interface")
			owned[ifc] = n
		}
		if n.SliverType == SliverRawPC && n.DiskImage == "" {
			errs = append(errs, fmt.Errorf("node %q has no disk image", n.ClientID))
		}
	}

	linked := make(map[*Interface]string)
	for _, l := range r.Links {
		claim(l.ClientID, "link")
		for _, ifc := range l.Interfaces {
			if _, ok := owned[ifc]; !ok {
				errs = append(errs, fmt.Errorf("link %q references interface %q that belongs to no node", l.ClientID, ifc.ClientID))
				continue
			}
			if prev, ok := linked[ifc]; ok {
				errs = append(errs, fmt.Errorf("interface %q is attached to both %q and %q", ifc.ClientID, prev, l.ClientID))
				continue
			}
			linked[ifc] = l.ClientID
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("inconsistent request: %w", errors.Join(errs...))
	}
	return nil
}
