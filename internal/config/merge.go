package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/nfsprofile/internal/ctxlog"
	"golang.org/x/exp/slices"
)

// ErrNoProfile is returned when no source defined a profile.
var ErrNoProfile = errors.New("no profile definition found")

// Merge folds other into m. At most one profile may be defined across all
// merged models. Parameter values from later models replace earlier ones.
func (m *Model) Merge(ctx context.Context, other *Model) error {
	logger := ctxlog.FromContext(ctx)
	if other == nil {
		return nil
	}

	if other.Profile != nil {
		if m.Profile != nil {
			return fmt.Errorf("duplicate profile definition %q in %s: already defined as %q in %s",
				other.Profile.Name, other.Profile.Origin, m.Profile.Name, m.Profile.Origin)
		}
		m.Profile = other.Profile
	}

	for _, name := range other.ValueNames() {
		if prev, ok := m.ValueOrigins[name]; ok {
			logger.Debug("Parameter value overridden.", "parameter", name, "previous", prev, "source", other.ValueOrigins[name])
		}
		m.Values[name] = other.Values[name]
		m.ValueOrigins[name] = other.ValueOrigins[name]
	}
	return nil
}

// Validate checks the structural integrity of a merged model.
func (m *Model) Validate() error {
	if m.Profile == nil {
		return ErrNoProfile
	}
	return m.Profile.Validate()
}

// ValueNames returns the names of all supplied values in sorted order.
func (m *Model) ValueNames() []string {
	names := make([]string, 0, len(m.Values))
	for name := range m.Values {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Validate checks that a profile's bounds and image list are coherent.
func (p *Profile) Validate() error {
	var errs []error
	if p.Name == "" {
		errs = append(errs, errors.New("profile name must not be empty"))
	}
	if p.MinClients < 1 {
		errs = append(errs, fmt.Errorf("min_clients must be at least 1, got %d", p.MinClients))
	}
	if p.Bounded() && p.MaxClients < p.MinClients {
		errs = append(errs, fmt.Errorf("max_clients (%d) is lower than min_clients (%d)", p.MaxClients, p.MinClients))
	}
	if p.MaxClients < 0 {
		errs = append(errs, fmt.Errorf("max_clients must not be negative, got %d", p.MaxClients))
	}
	if p.DefaultClients < p.MinClients || (p.Bounded() && p.DefaultClients > p.MaxClients) {
		errs = append(errs, fmt.Errorf("default_clients %d is outside the client range", p.DefaultClients))
	}
	if p.OverrideSlots < 0 {
		errs = append(errs, fmt.Errorf("override_slots must not be negative, got %d", p.OverrideSlots))
	}
	if len(p.Images) == 0 {
		errs = append(errs, errors.New("at least one image must be declared"))
	} else if p.DefaultImage < 0 || p.DefaultImage >= len(p.Images) {
		errs = append(errs, fmt.Errorf("default_image %d is not a valid image index", p.DefaultImage))
	}

	seen := make(map[string]struct{}, len(p.Images))
	for _, img := range p.Images {
		if img.URN == "" {
			errs = append(errs, errors.New("image URN must not be empty"))
			continue
		}
		if _, dup := seen[img.URN]; dup {
			errs = append(errs, fmt.Errorf("image %q declared more than once", img.URN))
		}
		seen[img.URN] = struct{}{}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid profile %q: %w", p.Name, errors.Join(errs...))
	}
	return nil
}

// ImageIndex returns the position of the image with the given URN, or -1.
func (p *Profile) ImageIndex(urn string) int {
	return slices.IndexFunc(p.Images, func(img Image) bool { return img.URN == urn })
}
