// Package yamlconf implements config.Loader for YAML profile and parameter
// files. It accepts the same content as the HCL loader:
//
//	profile:
//	  name: lab
//	  max_clients: 4
//	  override_slots: 4
//	  images:
//	    - urn: urn:publicid:IDN+emulab.net+image+emulab-ops//UBUNTU18-64-STD
//	      name: UBUNTU 18.04
//	parameters:
//	  clientCount: 2
package yamlconf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/vk/nfsprofile/internal/config"
	"github.com/vk/nfsprofile/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

type fileRoot struct {
	Profile    *profileDoc          `yaml:"profile"`
	Parameters map[string]yaml.Node `yaml:"parameters"`
}

type profileDoc struct {
	Name           string     `yaml:"name"`
	Description    string     `yaml:"description"`
	ClientLabel    string     `yaml:"client_label"`
	MinClients     *int       `yaml:"min_clients"`
	MaxClients     *int       `yaml:"max_clients"`
	DefaultClients *int       `yaml:"default_clients"`
	OverrideSlots  int        `yaml:"override_slots"`
	DefaultImage   string     `yaml:"default_image"`
	Images         []imageDoc `yaml:"images"`
}

type imageDoc struct {
	URN  string `yaml:"urn"`
	Name string `yaml:"name"`
}

// Loader is the YAML implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new YAML configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Extensions implements config.Loader.
func (l *Loader) Extensions() []string {
	return []string{".yaml", ".yml"}
}

// Load implements config.Loader.
func (l *Loader) Load(ctx context.Context, sources ...config.Source) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "source_count", len(sources))

	model := config.NewModel()
	for _, src := range sources {
		fileModel, err := l.loadOne(src)
		if err != nil {
			return nil, err
		}
		if err := model.Merge(ctx, fileModel); err != nil {
			return nil, err
		}
	}

	logger.Debug("YAML loading complete.", "has_profile", model.Profile != nil, "values", len(model.Values))
	return model, nil
}

func (l *Loader) loadOne(src config.Source) (*config.Model, error) {
	var root fileRoot
	dec := yaml.NewDecoder(bytes.NewReader(src.Data))
	dec.KnownFields(true)
	if err := dec.Decode(&root); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", src.Filename, err)
	}

	model := config.NewModel()
	if root.Profile != nil {
		p, err := translateProfile(root.Profile, src.Filename)
		if err != nil {
			return nil, fmt.Errorf("invalid profile in %s: %w", src.Filename, err)
		}
		model.Profile = p
	}

	for name, node := range root.Parameters {
		val, err := nodeToCty(&node)
		if err != nil {
			return nil, fmt.Errorf("invalid value for parameter %q in %s:%d: %w", name, src.Filename, node.Line, err)
		}
		model.Values[name] = val
		model.ValueOrigins[name] = fmt.Sprintf("%s:%d", src.Filename, node.Line)
	}
	return model, nil
}

func translateProfile(doc *profileDoc, filename string) (*config.Profile, error) {
	base := config.Profile{
		Name:          doc.Name,
		Description:   doc.Description,
		ClientLabel:   doc.ClientLabel,
		OverrideSlots: doc.OverrideSlots,
		Origin:        filename,
	}
	for _, img := range doc.Images {
		base.Images = append(base.Images, config.Image{URN: img.URN, Name: img.Name})
	}
	return config.BuildProfile(base, config.ProfileOptions{
		MinClients:     doc.MinClients,
		MaxClients:     doc.MaxClients,
		DefaultClients: doc.DefaultClients,
		DefaultImage:   doc.DefaultImage,
	})
}

// nodeToCty converts a scalar YAML node into a cty value. Parameters are
// scalars only.
func nodeToCty(node *yaml.Node) (cty.Value, error) {
	if node.Kind != yaml.ScalarNode {
		return cty.NilVal, errors.New("parameter values must be scalars")
	}

	switch node.ShortTag() {
	case "!!null":
		return cty.NullVal(cty.DynamicPseudoType), nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return cty.NilVal, err
		}
		return cty.BoolVal(b), nil
	case "!!int":
		var i int64
		if err := node.Decode(&i); err != nil {
			return cty.NilVal, err
		}
		return cty.NumberIntVal(i), nil
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return cty.NilVal, err
		}
		return cty.NumberFloatVal(f), nil
	default:
		return cty.StringVal(node.Value), nil
	}
}
