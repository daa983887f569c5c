package config

import "fmt"

// ProfileOptions carries the optional profile settings as they were read
// from a file. Nil bounds take their defaults.
type ProfileOptions struct {
	MinClients     *int
	MaxClients     *int
	DefaultClients *int

	// DefaultImage is a URN from the image list; empty selects the first.
	DefaultImage string
}

// UnknownDefaultImageError is returned when a profile's default image is
// not in its image list.
type UnknownDefaultImageError struct {
	Profile string
	URN     string
}

func (e *UnknownDefaultImageError) Error() string {
	return fmt.Sprintf("default_image %q is not one of the images declared in profile %q", e.URN, e.Profile)
}

// BuildProfile applies opts to base, fills image names and validates the
// result. min_clients defaults to 1, max_clients to unbounded and
// default_clients to min_clients.
func BuildProfile(base Profile, opts ProfileOptions) (*Profile, error) {
	p := base
	p.Images = make([]Image, 0, len(base.Images))
	for _, img := range base.Images {
		if img.Name == "" {
			img.Name = img.URN
		}
		p.Images = append(p.Images, img)
	}

	p.MinClients = 1
	if opts.MinClients != nil {
		p.MinClients = *opts.MinClients
	}
	p.MaxClients = 0
	if opts.MaxClients != nil {
		p.MaxClients = *opts.MaxClients
	}
	p.DefaultClients = p.MinClients
	if opts.DefaultClients != nil {
		p.DefaultClients = *opts.DefaultClients
	}

	p.DefaultImage = 0
	if opts.DefaultImage != "" {
		p.DefaultImage = p.ImageIndex(opts.DefaultImage)
		if p.DefaultImage < 0 {
			return nil, &UnknownDefaultImageError{Profile: p.Name, URN: opts.DefaultImage}
		}
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}
