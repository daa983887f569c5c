package rspec

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// sampleRequest builds a small request with one of every resource kind.
func sampleRequest() *Request {
	req := NewRequest()
	lan := req.LAN("lan")
	lan.BestEffort = true
	lan.VlanTagging = true
	lan.LinkMultiplexing = true

	server := req.RawPC("server")
	server.DiskImage = "urn:image"
	lan.AddInterface(server.AddInterface())
	server.AddService(Execute{Shell: "sh", Command: "run-server"})

	ds := req.RemoteBlockstore("ds", "/data")
	ds.Store.Dataset = "urn:dataset"
	ds.Store.ReadOnly = true

	link := req.Link("dslink")
	link.AddInterface(ds.Interface)
	link.AddInterface(server.AddInterface())

	client := req.RawPC("client1")
	client.DiskImage = "urn:image"
	client.HardwareType = "d710"
	lan.AddInterface(client.AddInterface())
	client.Blockstore("bs1", "/scratch").Size = "20GB"

	return req
}

func TestRequest_Naming(t *testing.T) {
	t.Parallel()

	req := sampleRequest()

	server, ok := req.Node("server")
	require.True(t, ok)
	require.Len(t, server.Interfaces, 2)
	assert.Equal(t, "server:if0", server.Interfaces[0].ClientID)
	assert.Equal(t, "server:if1", server.Interfaces[1].ClientID)

	ds, ok := req.Node("ds")
	require.True(t, ok)
	assert.Equal(t, SliverBlockstore, ds.SliverType)
	assert.Equal(t, "ds:if0", ds.Interfaces[0].ClientID)

	lan, ok := req.LinkNamed("lan")
	require.True(t, ok)
	assert.Equal(t, LinkTypeLAN, lan.Type)
	assert.Equal(t, 1, lan.AttachmentCount("server"))
	assert.Equal(t, 1, lan.AttachmentCount("client1"))
	assert.Equal(t, 0, lan.AttachmentCount("ds"))

	_, ok = req.Node("missing")
	assert.False(t, ok)
	_, ok = req.LinkNamed("missing")
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, sampleRequest().Validate())

	t.Run("duplicate client id", func(t *testing.T) {
		t.Parallel()
		req := sampleRequest()
		req.RawPC("server").DiskImage = "urn:image"
		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), `duplicate client_id "server"`)
	})

	t.Run("foreign interface", func(t *testing.T) {
		t.Parallel()
		req := sampleRequest()
		lan, _ := req.LinkNamed("lan")
		lan.AddInterface(&Interface{ClientID: "ghost:if0", Node: "ghost"})
		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "belongs to no node")
	})

	t.Run("shared interface", func(t *testing.T) {
		t.Parallel()
		req := sampleRequest()
		lan, _ := req.LinkNamed("lan")
		dslink, _ := req.LinkNamed("dslink")
		dslink.AddInterface(lan.Interfaces[0])
		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "attached to both")
	})

	t.Run("missing disk image", func(t *testing.T) {
		t.Parallel()
		req := NewRequest()
		req.RawPC("bare")
		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), `node "bare" has no disk image`)
	})
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]Format{
		"":      FormatXML,
		"XML":   FormatXML,
		"rspec": FormatXML,
		"json":  FormatJSON,
		"yml":   FormatYAML,
		"yaml":  FormatYAML,
	} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("toml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestMarshal_XML(t *testing.T) {
	t.Parallel()

	out, err := Marshal(sampleRequest(), FormatXML)
	require.NoError(t, err)
	doc := string(out)

	assert.True(t, strings.HasPrefix(doc, `<?xml version="1.0" encoding="UTF-8"?>`))
	for _, want := range []string{
		`<rspec xmlns="http://www.geni.net/resources/rspec/3" xmlns:emulab="http://www.protogeni.net/resources/rspec/ext/emulab/1"`,
		`type="request"`,
		`<node client_id="server" exclusive="true">`,
		`<sliver_type name="raw-pc">`,
		`<disk_image name="urn:image"></disk_image>`,
		`<execute shell="sh" command="run-server"></execute>`,
		`<interface client_id="server:if0"></interface>`,
		`<sliver_type name="emulab-blockstore">`,
		`<emulab:blockstore name="ds" mountpoint="/data" class="remote" placement="any" readonly="true" dataset="urn:dataset"></emulab:blockstore>`,
		`<hardware_type name="d710"></hardware_type>`,
		`<emulab:blockstore name="bs1" mountpoint="/scratch" class="local" placement="any" size="20GB"></emulab:blockstore>`,
		`<link client_id="lan">`,
		`<interface_ref client_id="client1:if0"></interface_ref>`,
		`<link_type name="lan"></link_type>`,
		`<emulab:best_effort enabled="true"></emulab:best_effort>`,
		`<emulab:vlan_tagging enabled="true"></emulab:vlan_tagging>`,
		`<emulab:link_multiplexing enabled="true"></emulab:link_multiplexing>`,
	} {
		assert.Contains(t, doc, want)
	}

	// The point-to-point link carries no link_type and no flags were set on it.
	dslink := doc[strings.Index(doc, `<link client_id="dslink">`):]
	dslink = dslink[:strings.Index(dslink, "</link>")]
	assert.NotContains(t, dslink, "link_type")
	assert.NotContains(t, dslink, "best_effort")
}

func TestMarshal_JSONAndYAML(t *testing.T) {
	t.Parallel()

	req := sampleRequest()

	jsonOut, err := Marshal(req, FormatJSON)
	require.NoError(t, err)
	var fromJSON Request
	require.NoError(t, json.Unmarshal(jsonOut, &fromJSON))

	yamlOut, err := Marshal(req, FormatYAML)
	require.NoError(t, err)
	var fromYAML Request
	require.NoError(t, yaml.Unmarshal(yamlOut, &fromYAML))

	if diff := cmp.Diff(req, &fromJSON); diff != "" {
		t.Errorf("json round trip mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(req, &fromYAML); diff != "" {
		t.Errorf("yaml round trip mismatch (-want +got):\n%s", diff)
	}
	assert.Contains(t, string(yamlOut), "client_id: server")
}

func TestEncode_NoPartialOutput(t *testing.T) {
	t.Parallel()

	req := NewRequest()
	req.RawPC("bare")

	var buf bytes.Buffer
	err := Encode(&buf, req, FormatXML)
	require.Error(t, err)
	assert.Zero(t, buf.Len(), "nothing should be written when validation fails")

	require.NoError(t, Encode(&buf, sampleRequest(), FormatJSON))
	assert.NotZero(t, buf.Len())
}
