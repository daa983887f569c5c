package app

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/vk/nfsprofile/internal/config"
	"github.com/vk/nfsprofile/internal/ctxlog"
	"github.com/vk/nfsprofile/internal/hcl"
	"github.com/vk/nfsprofile/internal/params"
	"github.com/vk/nfsprofile/internal/profiles"
	"github.com/vk/nfsprofile/internal/rspec"
	"github.com/vk/nfsprofile/internal/topology"
)

// Run executes the main application logic based on the app's configuration.
// The document is rendered completely before anything is written.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.ListProfiles {
		return a.listProfiles(ctx)
	}

	model, err := a.loadModel(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if a.config.Describe {
		var buf bytes.Buffer
		if err := hcl.WriteTemplate(&buf, model.Profile, params.Schema(model.Profile)); err != nil {
			return fmt.Errorf("failed to render parameter template: %w", err)
		}
		return a.emit(ctx, buf.Bytes())
	}

	set, err := params.Bind(ctx, model.Profile, model.Values)
	if err != nil {
		return err
	}

	req, err := topology.Build(ctx, set)
	if err != nil {
		return err
	}

	doc, err := rspec.Marshal(req, a.config.Format)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	if err := a.emit(ctx, doc); err != nil {
		return err
	}

	a.logger.Info("Request generated.",
		"profile", set.Profile,
		"clients", set.ClientCount,
		"dataset", set.HasDataset(),
		"format", string(a.config.Format),
	)
	a.logger.Debug("App.Run method finished.")
	return nil
}

// emit writes a finished document to the output file or writer.
func (a *App) emit(ctx context.Context, doc []byte) error {
	logger := ctxlog.FromContext(ctx)
	if a.config.OutputPath != "" {
		if err := os.WriteFile(a.config.OutputPath, doc, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", a.config.OutputPath, err)
		}
		logger.Debug("Document written.", "path", a.config.OutputPath, "bytes", len(doc))
		return nil
	}
	_, err := a.outW.Write(doc)
	return err
}

// listProfiles prints each builtin variant with its client bounds.
func (a *App) listProfiles(ctx context.Context) error {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tCLIENTS\tOVERRIDE SLOTS\tDESCRIPTION")

	for _, name := range profiles.Names() {
		src, _ := profiles.Source(name)
		model := config.NewModel()
		if err := a.loadInto(ctx, model, src); err != nil {
			return fmt.Errorf("builtin profile %s: %w", name, err)
		}
		p := model.Profile
		bounds := fmt.Sprintf("%d-%d", p.MinClients, p.MaxClients)
		if !p.Bounded() {
			bounds = fmt.Sprintf("%d+", p.MinClients)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", p.Name, bounds, p.OverrideSlots, p.Description)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return a.emit(ctx, buf.Bytes())
}
