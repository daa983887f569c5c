package rspec

import (
	"encoding/xml"
)

const (
	geniNamespace   = "http://www.geni.net/resources/rspec/3"
	emulabNamespace = "http://www.protogeni.net/resources/rspec/ext/emulab/1"
	xsiNamespace    = "http://www.w3.org/2001/XMLSchema-instance"
	requestSchema   = geniNamespace + " " + geniNamespace + "/request.xsd"
)

type xmlRSpec struct {
	XMLName        xml.Name  `xml:"rspec"`
	Xmlns          string    `xml:"xmlns,attr"`
	XmlnsEmulab    string    `xml:"xmlns:emulab,attr"`
	XmlnsXsi       string    `xml:"xmlns:xsi,attr"`
	SchemaLocation string    `xml:"xsi:schemaLocation,attr"`
	Type           string    `xml:"type,attr"`
	Nodes          []xmlNode `xml:"node"`
	Links          []xmlLink `xml:"link"`
}

type xmlNode struct {
	ClientID     string          `xml:"client_id,attr"`
	Exclusive    bool            `xml:"exclusive,attr"`
	SliverType   xmlSliverType   `xml:"sliver_type"`
	HardwareType *xmlName        `xml:"hardware_type,omitempty"`
	Services     *xmlServices    `xml:"services,omitempty"`
	Interfaces   []xmlInterface  `xml:"interface"`
	Blockstores  []xmlBlockstore `xml:"emulab:blockstore"`
}

type xmlSliverType struct {
	Name       string         `xml:"name,attr"`
	DiskImage  *xmlName       `xml:"disk_image,omitempty"`
	Blockstore *xmlBlockstore `xml:"emulab:blockstore,omitempty"`
}

type xmlName struct {
	Name string `xml:"name,attr"`
}

type xmlServices struct {
	Execute []xmlExecute `xml:"execute"`
}

type xmlExecute struct {
	Shell   string `xml:"shell,attr"`
	Command string `xml:"command,attr"`
}

type xmlInterface struct {
	ClientID string `xml:"client_id,attr"`
}

type xmlBlockstore struct {
	Name       string `xml:"name,attr"`
	Mountpoint string `xml:"mountpoint,attr"`
	Class      string `xml:"class,attr"`
	Placement  string `xml:"placement,attr"`
	Size       string `xml:"size,attr,omitempty"`
	ReadOnly   bool   `xml:"readonly,attr,omitempty"`
	Dataset    string `xml:"dataset,attr,omitempty"`
}

type xmlLink struct {
	ClientID         string         `xml:"client_id,attr"`
	Interfaces       []xmlInterface `xml:"interface_ref"`
	LinkType         *xmlName       `xml:"link_type,omitempty"`
	BestEffort       *xmlEnabled    `xml:"emulab:best_effort,omitempty"`
	VlanTagging      *xmlEnabled    `xml:"emulab:vlan_tagging,omitempty"`
	LinkMultiplexing *xmlEnabled    `xml:"emulab:link_multiplexing,omitempty"`
}

type xmlEnabled struct {
	Enabled bool `xml:"enabled,attr"`
}

func enabled(b bool) *xmlEnabled {
	if !b {
		return nil
	}
	return &xmlEnabled{Enabled: true}
}

func toXMLBlockstore(bs *Blockstore) xmlBlockstore {
	return xmlBlockstore{
		Name:       bs.Name,
		Mountpoint: bs.Mountpoint,
		Class:      bs.Class,
		Placement:  bs.Placement,
		Size:       bs.Size,
		ReadOnly:   bs.ReadOnly,
		Dataset:    bs.Dataset,
	}
}

func toXMLNode(n *Node) xmlNode {
	xn := xmlNode{
		ClientID:   n.ClientID,
		Exclusive:  n.Exclusive,
		SliverType: xmlSliverType{Name: string(n.SliverType)},
	}

	blockstores := n.Blockstores
	if n.SliverType == SliverBlockstore && len(blockstores) > 0 {
		bs := toXMLBlockstore(blockstores[0])
		xn.SliverType.Blockstore = &bs
		blockstores = blockstores[1:]
	}
	if n.DiskImage != "" {
		xn.SliverType.DiskImage = &xmlName{Name: n.DiskImage}
	}
	if n.HardwareType != "" {
		xn.HardwareType = &xmlName{Name: n.HardwareType}
	}
	if len(n.Services) > 0 {
		xn.Services = &xmlServices{}
		for _, svc := range n.Services {
			xn.Services.Execute = append(xn.Services.Execute, xmlExecute{Shell: svc.Shell, Command: svc.Command})
		}
	}
	for _, ifc := range n.Interfaces {
		xn.Interfaces = append(xn.Interfaces, xmlInterface{ClientID: ifc.ClientID})
	}
	for _, bs := range blockstores {
		xn.Blockstores = append(xn.Blockstores, toXMLBlockstore(bs))
	}
	return xn
}

func toXMLLink(l *Link) xmlLink {
	xl := xmlLink{
		ClientID:         l.ClientID,
		BestEffort:       enabled(l.BestEffort),
		VlanTagging:      enabled(l.VlanTagging),
		LinkMultiplexing: enabled(l.LinkMultiplexing),
	}
	if l.Type != LinkTypeLink {
		xl.LinkType = &xmlName{Name: string(l.Type)}
	}
	for _, ifc := range l.Interfaces {
		xl.Interfaces = append(xl.Interfaces, xmlInterface{ClientID: ifc.ClientID})
	}
	return xl
}

func marshalXML(req *Request) ([]byte, error) {
	doc := xmlRSpec{
		Xmlns:          geniNamespace,
		XmlnsEmulab:    emulabNamespace,
		XmlnsXsi:       xsiNamespace,
		SchemaLocation: requestSchema,
		Type:           "request",
	}
	for _, n := range req.Nodes {
		doc.Nodes = append(doc.Nodes, toXMLNode(n))
	}
	for _, l := range req.Links {
		doc.Links = append(doc.Links, toXMLLink(l))
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(xml.Header)+len(body)+1)
	out = append(out, xml.Header...)
	out = append(out, body...)
	return append(out, '\n'), nil
}
