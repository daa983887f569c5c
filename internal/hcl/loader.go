package hcl

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/nfsprofile/internal/config"
	"github.com/vk/nfsprofile/internal/ctxlog"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Extensions implements config.Loader.
func (l *Loader) Extensions() []string {
	return []string{".hcl"}
}

// Load parses every source and merges them into one model. Any file may
// hold a profile block, a parameters block, or both.
func (l *Loader) Load(ctx context.Context, sources ...config.Source) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "source_count", len(sources))

	model := config.NewModel()
	parser := hclparse.NewParser()

	for _, src := range sources {
		hclFile, diags := parser.ParseHCL(src.Data, src.Filename)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", src.Filename, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", src.Filename, diags)
		}

		fileModel, err := l.translateFile(ctx, src.Filename, &root)
		if err != nil {
			return nil, err
		}
		if err := model.Merge(ctx, fileModel); err != nil {
			return nil, err
		}
	}

	logger.Debug("HCL loading complete.", "has_profile", model.Profile != nil, "values", len(model.Values))
	return model, nil
}

// translateFile converts one decoded file into a model.
func (l *Loader) translateFile(ctx context.Context, filename string, root *fileRoot) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	model := config.NewModel()

	block, diags := findUniqueProfile(root.Profiles)
	if diags.HasErrors() {
		return nil, fmt.Errorf("file %s defines %d profiles: %w", filename, len(root.Profiles), diags)
	}
	if block != nil {
		p, diags := translateProfile(block, filename)
		if diags.HasErrors() {
			return nil, fmt.Errorf("invalid profile in %s: %w", filename, diags)
		}
		model.Profile = p
		logger.Debug("Profile definition found.", "profile", p.Name, "file", filename)
	}

	for _, block := range root.Parameters {
		attrs, diags := block.Body.JustAttributes()
		if diags.HasErrors() {
			return nil, fmt.Errorf("invalid parameters block in %s: %w", filename, diags)
		}
		for name, attr := range attrs {
			if _, dup := model.Values[name]; dup {
				return nil, fmt.Errorf("parameter %q assigned more than once in %s", name, filename)
			}
			// Parameter values must be literals, so no evaluation context is given.
			val, diags := attr.Expr.Value(nil)
			if diags.HasErrors() {
				return nil, fmt.Errorf("invalid value for parameter %q in %s: %w", name, filename, diags)
			}
			model.Values[name] = val
			model.ValueOrigins[name] = attr.Range.String()
		}
	}
	return model, nil
}

// findUniqueProfile returns the file's profile block, if any. Every block
// after the first is reported as a duplicate.
func findUniqueProfile(blocks []*profileBlock) (*profileBlock, hcl.Diagnostics) {
	var found *profileBlock
	var diags hcl.Diagnostics

	for _, block := range blocks {
		if found != nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate \"profile\" block",
				Detail:   fmt.Sprintf("Only one \"profile\" block is allowed per file; %q is already defined.", found.Name),
				Subject:  block.DeclRange.Ptr(),
			})
			continue
		}
		found = block
	}
	return found, diags
}

// translateProfile converts a profile block into the agnostic model.
func translateProfile(b *profileBlock, filename string) (*config.Profile, hcl.Diagnostics) {
	base := config.Profile{
		Name:          b.Name,
		Description:   b.Description,
		ClientLabel:   b.ClientLabel,
		OverrideSlots: b.OverrideSlots,
		Origin:        filename,
	}
	for _, img := range b.Images {
		base.Images = append(base.Images, config.Image{URN: img.URN, Name: img.Name})
	}

	p, err := config.BuildProfile(base, config.ProfileOptions{
		MinClients:     b.MinClients,
		MaxClients:     b.MaxClients,
		DefaultClients: b.DefaultClients,
		DefaultImage:   b.DefaultImage,
	})
	if err != nil {
		summary := "Invalid profile"
		var unknown *config.UnknownDefaultImageError
		if errors.As(err, &unknown) {
			summary = "Unknown default image"
		}
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  summary,
			Detail:   err.Error(),
			Subject:  b.DeclRange.Ptr(),
		}}
	}
	return p, nil
}
