package rspec

import "fmt"

// SliverType selects what kind of resource a node requests.
type SliverType string

const (
	SliverRawPC      SliverType = "raw-pc"
	SliverBlockstore SliverType = "emulab-blockstore"
)

// LinkType distinguishes shared LANs from point-to-point links.
type LinkType string

const (
	LinkTypeLAN  LinkType = "lan"
	LinkTypeLink LinkType = ""
)

// Blockstore classes.
const (
	BlockstoreLocal  = "local"
	BlockstoreRemote = "remote"
)

// Request is the root of a request document.
type Request struct {
	Nodes []*Node `json:"nodes" yaml:"nodes"`
	Links []*Link `json:"links" yaml:"links"`
}

// Node is a requested machine or a blockstore pseudo-node.
type Node struct {
	ClientID     string        `json:"client_id" yaml:"client_id"`
	SliverType   SliverType    `json:"sliver_type" yaml:"sliver_type"`
	Exclusive    bool          `json:"exclusive" yaml:"exclusive"`
	DiskImage    string        `json:"disk_image,omitempty" yaml:"disk_image,omitempty"`
	HardwareType string        `json:"hardware_type,omitempty" yaml:"hardware_type,omitempty"`
	Services     []Execute     `json:"services,omitempty" yaml:"services,omitempty"`
	Interfaces   []*Interface  `json:"interfaces" yaml:"interfaces"`
	Blockstores  []*Blockstore `json:"blockstores,omitempty" yaml:"blockstores,omitempty"`
}

// Interface is a network interface on a node.
type Interface struct {
	ClientID string `json:"client_id" yaml:"client_id"`
	Node     string `json:"node" yaml:"node"`
}

// Execute is a command the testbed runs on the node after it boots.
type Execute struct {
	Shell   string `json:"shell" yaml:"shell"`
	Command string `json:"command" yaml:"command"`
}

// Blockstore is a block device attached to a node, either local scratch
// space or a remote dataset.
type Blockstore struct {
	Name       string `json:"name" yaml:"name"`
	Mountpoint string `json:"mountpoint" yaml:"mountpoint"`
	Class      string `json:"class" yaml:"class"`
	Placement  string `json:"placement" yaml:"placement"`
	Size       string `json:"size,omitempty" yaml:"size,omitempty"`
	Dataset    string `json:"dataset,omitempty" yaml:"dataset,omitempty"`
	ReadOnly   bool   `json:"readonly" yaml:"readonly"`
}

// Link joins interfaces into a broadcast domain or point-to-point link.
type Link struct {
	ClientID         string       `json:"client_id" yaml:"client_id"`
	Type             LinkType     `json:"type,omitempty" yaml:"type,omitempty"`
	BestEffort       bool         `json:"best_effort" yaml:"best_effort"`
	VlanTagging      bool         `json:"vlan_tagging" yaml:"vlan_tagging"`
	LinkMultiplexing bool         `json:"link_multiplexing" yaml:"link_multiplexing"`
	Interfaces       []*Interface `json:"interfaces" yaml:"interfaces"`
}

// RemoteBlockstore is a dataset-backed blockstore node. Interface is the
// node's only interface, created with it.
type RemoteBlockstore struct {
	Node      *Node
	Store     *Blockstore
	Interface *Interface
}

// NewRequest returns an empty request.
func NewRequest() *Request {
	return &Request{}
}

// RawPC adds an exclusive bare-metal node.
func (r *Request) RawPC(name string) *Node {
	n := &Node{ClientID: name, SliverType: SliverRawPC, Exclusive: true}
	r.Nodes = append(r.Nodes, n)
	return n
}

// LAN adds a shared broadcast link.
func (r *Request) LAN(name string) *Link {
	l := &Link{ClientID: name, Type: LinkTypeLAN}
	r.Links = append(r.Links, l)
	return l
}

// Link adds a point-to-point link.
func (r *Request) Link(name string) *Link {
	l := &Link{ClientID: name, Type: LinkTypeLink}
	r.Links = append(r.Links, l)
	return l
}

// RemoteBlockstore adds a blockstore node mounted at mount on whichever
// node it is linked to.
func (r *Request) RemoteBlockstore(name, mount string) *RemoteBlockstore {
	n := &Node{ClientID: name, SliverType: SliverBlockstore, Exclusive: true}
	store := &Blockstore{
		Name:       name,
		Mountpoint: mount,
		Class:      BlockstoreRemote,
		Placement:  "any",
	}
	n.Blockstores = append(n.Blockstores, store)
	r.Nodes = append(r.Nodes, n)
	return &RemoteBlockstore{Node: n, Store: store, Interface: n.AddInterface()}
}

// Node returns the node with the given client id.
func (r *Request) Node(name string) (*Node, bool) {
	for _, n := range r.Nodes {
		if n.ClientID == name {
			return n, true
		}
	}
	return nil, false
}

// LinkNamed returns the link with the given client id.
func (r *Request) LinkNamed(name string) (*Link, bool) {
	for _, l := range r.Links {
		if l.ClientID == name {
			return l, true
		}
	}
	return nil, false
}

// AddInterface creates the next interface on the node.
func (n *Node) AddInterface() *Interface {
	ifc := &Interface{
		ClientID: fmt.Sprintf("%s:if%d", n.ClientID, len(n.Interfaces)),
		Node:     n.ClientID,
	}
	n.Interfaces = append(n.Interfaces, ifc)
	return ifc
}

// AddService attaches a post-boot command.
func (n *Node) AddService(e Execute) {
	n.Services = append(n.Services, e)
}

// Blockstore attaches local scratch storage to the node.
func (n *Node) Blockstore(name, mount string) *Blockstore {
	bs := &Blockstore{
		Name:       name,
		Mountpoint: mount,
		Class:      BlockstoreLocal,
		Placement:  "any",
	}
	n.Blockstores = append(n.Blockstores, bs)
	return bs
}

// AddInterface attaches an interface to the link.
func (l *Link) AddInterface(ifc *Interface) {
	l.Interfaces = append(l.Interfaces, ifc)
}

// AttachmentCount returns how many of the named node's interfaces are on
// the link.
func (l *Link) AttachmentCount(node string) int {
	count := 0
	for _, ifc := range l.Interfaces {
		if ifc.Node == node {
			count++
		}
	}
	return count
}
