package topology

import "github.com/vk/nfsprofile/internal/rspec"

// Names and paths shared with the provisioning scripts. Changing them
// requires changing nfs-server.sh and nfs-client.sh too.
const (
	ServerName      = "nfs"
	LanName         = "nfsLan"
	DatasetNodeName = "dsnode"
	DatasetLinkName = "dslink"
	NFSDirectory    = "/nfs"
	LocalMount      = "/mydata"

	clientPrefix     = "node"
	blockstorePrefix = "bs"
)

var (
	// ServerService initializes the NFS export on the server.
	ServerService = rspec.Execute{Shell: "sh", Command: "sudo /bin/bash /local/repository/nfs-server.sh"}

	// ClientService mounts the export on a client.
	ClientService = rspec.Execute{Shell: "sh", Command: "sudo /bin/bash /local/repository/nfs-client.sh"}
)
