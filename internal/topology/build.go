package topology

import (
	"context"
	"fmt"
	"strconv"

	"github.com/vk/nfsprofile/internal/ctxlog"
	"github.com/vk/nfsprofile/internal/params"
	"github.com/vk/nfsprofile/internal/rspec"
)

// ClientName returns the node name for client i (1-based).
func ClientName(i int) string {
	return clientPrefix + strconv.Itoa(i)
}

// BlockstoreName returns the local blockstore name for client i (1-based).
func BlockstoreName(i int) string {
	return blockstorePrefix + strconv.Itoa(i)
}

// Build constructs the request for the given parameters.
func Build(ctx context.Context, set *params.Set) (*rspec.Request, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Building topology.", "profile", set.Profile, "clients", set.ClientCount)

	req := rspec.NewRequest()
	lan := newSharedLink(req.LAN(LanName))

	hasDataset := buildDataset(ctx, req, lan, set)
	buildClients(ctx, req, lan, set, hasDataset)

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("failed to build topology: %w", err)
	}

	logger.Debug("Topology built.", "nodes", len(req.Nodes), "links", len(req.Links))
	return req, nil
}

// newSharedLink enables the link options the allocator requires for both
// the NFS LAN and blockstore links.
func newSharedLink(l *rspec.Link) *rspec.Link {
	l.BestEffort = true
	l.VlanTagging = true
	l.LinkMultiplexing = true
	return l
}

// buildDataset adds the NFS server, the dataset blockstore and the link
// between them. It does nothing and returns false when no dataset was
// requested.
func buildDataset(ctx context.Context, req *rspec.Request, lan *rspec.Link, set *params.Set) bool {
	logger := ctxlog.FromContext(ctx)
	if !set.HasDataset() {
		logger.Debug("No dataset requested, skipping NFS server.")
		return false
	}

	server := req.RawPC(ServerName)
	server.DiskImage = set.OSImage
	lan.AddInterface(server.AddInterface())
	server.AddService(ServerService)

	ds := req.RemoteBlockstore(DatasetNodeName, NFSDirectory)
	ds.Store.Dataset = set.DatasetURN
	ds.Store.ReadOnly = set.DatasetReadOnly

	dslink := newSharedLink(req.Link(DatasetLinkName))
	dslink.AddInterface(ds.Interface)
	dslink.AddInterface(server.AddInterface())

	logger.Debug("NFS server and dataset added.", "dataset", set.DatasetURN, "readonly", set.DatasetReadOnly)
	return true
}

// buildClients adds node1..nodeN to the LAN.
func buildClients(ctx context.Context, req *rspec.Request, lan *rspec.Link, set *params.Set, hasDataset bool) {
	logger := ctxlog.FromContext(ctx)

	for i := 1; i <= set.ClientCount; i++ {
		node := req.RawPC(ClientName(i))
		node.DiskImage = set.OSImage
		lan.AddInterface(node.AddInterface())

		if hasDataset {
			node.AddService(ClientService)
		}
		if set.PhysType != "" {
			node.HardwareType = set.PhysType
		}
		// A node-specific image always beats the global selection.
		if override := set.NodeImage(i); override != "" {
			node.DiskImage = override
		}
		if set.LocalStorage > 0 {
			bs := node.Blockstore(BlockstoreName(i), LocalMount)
			bs.Size = strconv.Itoa(set.LocalStorage) + "GB"
		}

		logger.Debug("Client added.", "node", node.ClientID, "image", node.DiskImage)
	}
}
