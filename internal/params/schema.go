package params

import (
	"fmt"
	"strconv"

	"github.com/vk/nfsprofile/internal/config"
	"github.com/zclconf/go-cty/cty"
)

// Parameter names as they appear in parameter files and on the command line.
const (
	ClientCount     = "clientCount"
	OSImage         = "osImage"
	DatasetURN      = "datasetURN"
	DatasetReadOnly = "datasetReadOnly"
	PhysType        = "phystype"
	LocalStorage    = "localStorage"

	nodeSlotPrefix = "node"
)

// Values accepted for DatasetReadOnly.
const (
	ReadOnlyFalse = "False"
	ReadOnlyTrue  = "True"
)

// Choice is one allowed value of an enumerated parameter.
type Choice struct {
	Value string
	Label string
}

// Definition describes a single recognized parameter.
type Definition struct {
	Name            string
	Label           string
	LongDescription string
	Type            cty.Type
	Default         cty.Value
	Choices         []Choice

	// Slot is the 1-based override slot for nodeN parameters, 0 otherwise.
	Slot int
}

// NodeSlotName returns the parameter name for override slot i (1-based).
func NodeSlotName(i int) string {
	return nodeSlotPrefix + strconv.Itoa(i)
}

// Schema returns the parameters recognized by the given profile in the
// order the portal presents them.
func Schema(p *config.Profile) []Definition {
	clientLabel := p.ClientLabel
	if clientLabel == "" {
		if p.Bounded() {
			clientLabel = fmt.Sprintf("Number of Compute Nodes (%d-%d)", p.MinClients, p.MaxClients)
		} else {
			clientLabel = "Number of NFS clients"
		}
	}

	images := make([]Choice, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, Choice{Value: img.URN, Label: img.Name})
	}
	defaultImage := cty.StringVal("")
	if p.DefaultImage >= 0 && p.DefaultImage < len(p.Images) {
		defaultImage = cty.StringVal(p.Images[p.DefaultImage].URN)
	}

	defs := []Definition{
		{
			Name:    ClientCount,
			Label:   clientLabel,
			Type:    cty.Number,
			Default: cty.NumberIntVal(int64(p.DefaultClients)),
		},
		{
			Name:    OSImage,
			Label:   "Select OS image",
			Type:    cty.String,
			Default: defaultImage,
			Choices: images,
		},
		{
			Name:            DatasetURN,
			Label:           "Dataset URN",
			LongDescription: "Provide the URN of the Dataset you want to use in this experiment",
			Type:            cty.String,
			Default:         cty.StringVal(""),
		},
		{
			Name:    DatasetReadOnly,
			Label:   "Mount Dataset Readonly",
			Type:    cty.String,
			Default: cty.StringVal(ReadOnlyFalse),
			Choices: []Choice{
				{Value: ReadOnlyFalse, Label: ReadOnlyFalse},
				{Value: ReadOnlyTrue, Label: ReadOnlyTrue},
			},
		},
		{
			Name:  PhysType,
			Label: "Optional physical node type",
			LongDescription: "Specify a physical node type (pc3000,d710,etc) " +
				"instead of letting the resource mapper choose for you.",
			Type:    cty.String,
			Default: cty.StringVal(""),
		},
		{
			Name:    LocalStorage,
			Label:   "Extra local storage in GB",
			Type:    cty.Number,
			Default: cty.NumberIntVal(0),
		},
	}

	for i := 1; i <= p.OverrideSlots; i++ {
		name := NodeSlotName(i)
		defs = append(defs, Definition{
			Name:            name,
			Label:           fmt.Sprintf("Node %d URN", i),
			LongDescription: fmt.Sprintf("Provide the URN of %s, if available", name),
			Type:            cty.String,
			Default:         cty.StringVal(""),
			Slot:            i,
		})
	}
	return defs
}
