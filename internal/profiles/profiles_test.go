package profiles_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/nfsprofile/internal/hcl"
	"github.com/vk/nfsprofile/internal/profiles"
)

func TestNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"nfs-cluster", "nfs-open", "nfs-small"}, profiles.Names())
	assert.Contains(t, profiles.Names(), profiles.Default)
}

func TestSource_Unknown(t *testing.T) {
	t.Parallel()

	_, ok := profiles.Source("nfs-huge")
	assert.False(t, ok)
}

func TestBuiltinsLoad(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name         string
		maxClients   int
		slots        int
		defaultImage string
		label        string
	}{
		{name: "nfs-cluster", maxClients: 10, slots: 10, defaultImage: "UBUNTU 18.04", label: "Number of Compute Nodes (1-10)"},
		{name: "nfs-small", maxClients: 4, slots: 4, defaultImage: "UBUNTU 18.04", label: "Number of Compute Nodes (1-10)"},
		{name: "nfs-open", maxClients: 0, slots: 4, defaultImage: "UBUNTU 16.04", label: "Number of NFS clients"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			src, ok := profiles.Source(tc.name)
			require.True(t, ok)

			model, err := hcl.NewLoader().Load(context.Background(), src)
			require.NoError(t, err)
			require.NoError(t, model.Validate())

			p := model.Profile
			assert.Equal(t, tc.name, p.Name)
			assert.Equal(t, 1, p.MinClients)
			assert.Equal(t, tc.maxClients, p.MaxClients)
			assert.Equal(t, tc.slots, p.OverrideSlots)
			assert.Equal(t, tc.label, p.ClientLabel)
			assert.Equal(t, tc.defaultImage, p.Images[p.DefaultImage].Name)
			assert.Equal(t, "builtin:"+tc.name+".hcl", p.Origin)
			assert.Empty(t, model.Values)
		})
	}
}
