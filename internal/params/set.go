package params

// Set is a validated parameter set. It is never mutated after Bind returns.
type Set struct {
	Profile string

	ClientCount     int
	OSImage         string
	DatasetURN      string
	DatasetReadOnly bool
	PhysType        string
	LocalStorage    int

	// NodeImages holds one entry per override slot; index 0 is node1.
	NodeImages []string
}

// HasDataset reports whether a dataset was requested.
func (s *Set) HasDataset() bool {
	return s.DatasetURN != ""
}

// NodeImage returns the override image for client i (1-based). Clients
// beyond the profile's override slots have no override.
func (s *Set) NodeImage(i int) string {
	if i < 1 || i > len(s.NodeImages) {
		return ""
	}
	return s.NodeImages[i-1]
}

// ImageFor returns the disk image client i should boot.
func (s *Set) ImageFor(i int) string {
	if img := s.NodeImage(i); img != "" {
		return img
	}
	return s.OSImage
}
