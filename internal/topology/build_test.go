package topology

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/nfsprofile/internal/params"
	"github.com/vk/nfsprofile/internal/rspec"
)

const (
	defaultImage = "urn:publicid:IDN+emulab.net+image+emulab-ops//UBUNTU18-64-STD"
	datasetURN   = "urn:publicid:IDN+emulab.net:myproj+ltdataset+mydataset"
	specialImage = "urn:publicid:IDN+emulab.net+image+myproj//specialimage"
)

func newSet(mutate func(s *params.Set)) *params.Set {
	s := &params.Set{
		Profile:     "test",
		ClientCount: 1,
		OSImage:     defaultImage,
		NodeImages:  make([]string, 10),
	}
	if mutate != nil {
		mutate(s)
	}
	return s
}

func build(t *testing.T, set *params.Set) *rspec.Request {
	t.Helper()
	req, err := Build(context.Background(), set)
	require.NoError(t, err)
	return req
}

func rawPCs(req *rspec.Request) []*rspec.Node {
	var out []*rspec.Node
	for _, n := range req.Nodes {
		if n.SliverType == rspec.SliverRawPC {
			out = append(out, n)
		}
	}
	return out
}

func clientNodes(t *testing.T, req *rspec.Request, count int) []*rspec.Node {
	t.Helper()
	out := make([]*rspec.Node, 0, count)
	for i := 1; i <= count; i++ {
		n, ok := req.Node(ClientName(i))
		require.True(t, ok, "client %d should exist", i)
		out = append(out, n)
	}
	return out
}

func TestBuild_NoDataset(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	set := newSet(func(s *params.Set) { s.ClientCount = 2 })

	// --- Act ---
	req := build(t, set)

	// --- Assert ---
	_, hasServer := req.Node(ServerName)
	_, hasDataset := req.Node(DatasetNodeName)
	_, hasLink := req.LinkNamed(DatasetLinkName)
	assert.False(t, hasServer)
	assert.False(t, hasDataset)
	assert.False(t, hasLink)

	require.Len(t, req.Nodes, 2)
	require.Len(t, req.Links, 1)
	for _, n := range clientNodes(t, req, 2) {
		assert.Equal(t, defaultImage, n.DiskImage)
		assert.Empty(t, n.Services)
		assert.Empty(t, n.Blockstores)
		assert.Empty(t, n.HardwareType)
	}
}

func TestBuild_ReadOnlyDataset(t *testing.T) {
	t.Parallel()

	set := newSet(func(s *params.Set) {
		s.DatasetURN = datasetURN
		s.DatasetReadOnly = true
	})

	req := build(t, set)

	server, ok := req.Node(ServerName)
	require.True(t, ok)
	assert.Equal(t, defaultImage, server.DiskImage)
	assert.Equal(t, []rspec.Execute{ServerService}, server.Services)
	assert.Len(t, server.Interfaces, 2)

	ds, ok := req.Node(DatasetNodeName)
	require.True(t, ok)
	require.Len(t, ds.Blockstores, 1)
	store := ds.Blockstores[0]
	assert.Equal(t, datasetURN, store.Dataset)
	assert.Equal(t, NFSDirectory, store.Mountpoint)
	assert.Equal(t, rspec.BlockstoreRemote, store.Class)
	assert.True(t, store.ReadOnly)

	dslink, ok := req.LinkNamed(DatasetLinkName)
	require.True(t, ok)
	assert.True(t, dslink.BestEffort)
	assert.True(t, dslink.VlanTagging)
	assert.True(t, dslink.LinkMultiplexing)
	assert.Equal(t, 1, dslink.AttachmentCount(ServerName))
	assert.Equal(t, 1, dslink.AttachmentCount(DatasetNodeName))

	assert.Len(t, rawPCs(req), 2, "server plus one client")
	client := clientNodes(t, req, 1)[0]
	assert.Equal(t, []rspec.Execute{ClientService}, client.Services)
}

func TestBuild_NodeOverride(t *testing.T) {
	t.Parallel()

	set := newSet(func(s *params.Set) {
		s.ClientCount = 3
		s.NodeImages[1] = specialImage
	})

	clients := clientNodes(t, build(t, set), 3)
	assert.Equal(t, defaultImage, clients[0].DiskImage)
	assert.Equal(t, specialImage, clients[1].DiskImage)
	assert.Equal(t, defaultImage, clients[2].DiskImage)
}

func TestBuild_DatasetWritable(t *testing.T) {
	t.Parallel()

	req := build(t, newSet(func(s *params.Set) { s.DatasetURN = datasetURN }))
	ds, ok := req.Node(DatasetNodeName)
	require.True(t, ok)
	assert.False(t, ds.Blockstores[0].ReadOnly)
}

func TestBuild_LocalStorage(t *testing.T) {
	t.Parallel()

	req := build(t, newSet(func(s *params.Set) {
		s.ClientCount = 4
		s.LocalStorage = 100
	}))

	for i, n := range clientNodes(t, req, 4) {
		require.Len(t, n.Blockstores, 1, n.ClientID)
		bs := n.Blockstores[0]
		assert.Equal(t, BlockstoreName(i+1), bs.Name)
		assert.Equal(t, "100GB", bs.Size)
		assert.Equal(t, LocalMount, bs.Mountpoint)
		assert.Equal(t, rspec.BlockstoreLocal, bs.Class)
	}
}

func TestBuild_PhysType(t *testing.T) {
	t.Parallel()

	req := build(t, newSet(func(s *params.Set) {
		s.ClientCount = 2
		s.PhysType = "d430"
		s.DatasetURN = datasetURN
	}))

	for _, n := range clientNodes(t, req, 2) {
		assert.Equal(t, "d430", n.HardwareType)
	}
	server, _ := req.Node(ServerName)
	assert.Empty(t, server.HardwareType, "hardware type constrains clients only")
}

func TestBuild_LanAttachment(t *testing.T) {
	t.Parallel()

	req := build(t, newSet(func(s *params.Set) {
		s.ClientCount = 5
		s.DatasetURN = datasetURN
	}))

	lan, ok := req.LinkNamed(LanName)
	require.True(t, ok)
	assert.Equal(t, rspec.LinkTypeLAN, lan.Type)
	assert.True(t, lan.BestEffort)
	assert.True(t, lan.VlanTagging)
	assert.True(t, lan.LinkMultiplexing)
	require.Len(t, lan.Interfaces, 6)

	for _, n := range rawPCs(req) {
		assert.Equal(t, 1, lan.AttachmentCount(n.ClientID), n.ClientID)
	}
	assert.Equal(t, 0, lan.AttachmentCount(DatasetNodeName))
}

// TestBuild_Properties sweeps the parameter space and checks the rules
// that must hold for every valid set.
func TestBuild_Properties(t *testing.T) {
	t.Parallel()

	for clients := 1; clients <= 10; clients++ {
		for _, dataset := range []string{"", datasetURN} {
			for _, storage := range []int{0, 8} {
				for _, readOnly := range []bool{false, true} {
					name := fmt.Sprintf("clients=%d/dataset=%t/storage=%d/ro=%t", clients, dataset != "", storage, readOnly)
					set := newSet(func(s *params.Set) {
						s.ClientCount = clients
						s.DatasetURN = dataset
						s.LocalStorage = storage
						s.DatasetReadOnly = readOnly
						s.NodeImages[clients-1] = specialImage
					})

					req := build(t, set)

					_, hasServer := req.Node(ServerName)
					ds, hasDS := req.Node(DatasetNodeName)
					_, hasLink := req.LinkNamed(DatasetLinkName)
					assert.Equal(t, dataset != "", hasServer, name)
					assert.Equal(t, hasServer, hasDS, name)
					assert.Equal(t, hasServer, hasLink, name)
					if hasDS {
						assert.Equal(t, readOnly, ds.Blockstores[0].ReadOnly, name)
					}

					for i, n := range clientNodes(t, req, clients) {
						slot := i + 1
						if slot == clients {
							assert.Equal(t, specialImage, n.DiskImage, name)
						} else {
							assert.Equal(t, defaultImage, n.DiskImage, name)
						}
						if storage > 0 {
							require.Len(t, n.Blockstores, 1, name)
							assert.Equal(t, BlockstoreName(slot), n.Blockstores[0].Name, name)
						} else {
							assert.Empty(t, n.Blockstores, name)
						}
						if hasServer {
							assert.Equal(t, []rspec.Execute{ClientService}, n.Services, name)
						} else {
							assert.Empty(t, n.Services, name)
						}
					}
				}
			}
		}
	}
}

func TestBuild_Idempotent(t *testing.T) {
	t.Parallel()

	set := newSet(func(s *params.Set) {
		s.ClientCount = 4
		s.DatasetURN = datasetURN
		s.LocalStorage = 16
		s.PhysType = "m510"
		s.NodeImages[2] = specialImage
	})

	first := build(t, set)
	second := build(t, set)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("two builds differ (-first +second):\n%s", diff)
	}

	a, err := rspec.Marshal(first, rspec.FormatXML)
	require.NoError(t, err)
	b, err := rspec.Marshal(second, rspec.FormatXML)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestBuild_ClientsBeyondOverrideSlots(t *testing.T) {
	t.Parallel()

	set := newSet(func(s *params.Set) {
		s.ClientCount = 6
		s.NodeImages = []string{"", "", "", specialImage}
	})

	clients := clientNodes(t, build(t, set), 6)
	assert.Equal(t, specialImage, clients[3].DiskImage)
	assert.Equal(t, defaultImage, clients[4].DiskImage)
	assert.Equal(t, defaultImage, clients[5].DiskImage)
}
