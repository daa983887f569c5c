package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/nfsprofile/internal/config"
	"github.com/vk/nfsprofile/internal/ctxlog"
	"github.com/vk/nfsprofile/internal/fsutil"
	"github.com/vk/nfsprofile/internal/profiles"
	"github.com/zclconf/go-cty/cty"
	"golang.org/x/exp/slices"
)

// loadModel assembles the model from, in increasing precedence: the
// selected profile, the parameter files, and the command-line overrides.
func (a *App) loadModel(ctx context.Context) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	model := config.NewModel()

	if a.config.Profile != "" {
		src, err := a.profileSource(a.config.Profile)
		if err != nil {
			return nil, err
		}
		if err := a.loadInto(ctx, model, src); err != nil {
			return nil, err
		}
	}

	if len(a.config.ParamPaths) > 0 {
		files, err := fsutil.ExpandPaths(a.config.ParamPaths, a.extensions()...)
		if err != nil {
			return nil, err
		}
		logger.Debug("Discovered parameter files.", "count", len(files))
		for _, f := range files {
			data, err := os.ReadFile(f)
			if err != nil {
				return nil, fmt.Errorf("failed to read %s: %w", f, err)
			}
			if err := a.loadInto(ctx, model, config.Source{Filename: f, Data: data}); err != nil {
				return nil, err
			}
		}
	}

	if model.Profile == nil {
		logger.Debug("No profile selected, using default.", "profile", profiles.Default)
		src, _ := profiles.Source(profiles.Default)
		if err := a.loadInto(ctx, model, src); err != nil {
			return nil, err
		}
	}

	names := make([]string, 0, len(a.config.Overrides))
	for name := range a.config.Overrides {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		override := config.NewModel()
		override.Values[name] = cty.StringVal(a.config.Overrides[name])
		override.ValueOrigins[name] = "command line"
		if err := model.Merge(ctx, override); err != nil {
			return nil, err
		}
	}

	if err := model.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("Configuration loaded.", "profile", model.Profile.Name, "origin", model.Profile.Origin, "values", len(model.Values))
	return model, nil
}

// profileSource resolves a builtin name or a profile file path.
func (a *App) profileSource(ref string) (config.Source, error) {
	if src, ok := profiles.Source(ref); ok {
		return src, nil
	}
	if !a.isConfigFile(ref) {
		return config.Source{}, fmt.Errorf("unknown profile %q: builtin profiles are %s", ref, strings.Join(profiles.Names(), ", "))
	}
	data, err := os.ReadFile(ref)
	if err != nil {
		return config.Source{}, fmt.Errorf("failed to read profile %s: %w", ref, err)
	}
	return config.Source{Filename: ref, Data: data}, nil
}

// loadInto parses a single source with the loader for its extension and
// merges it into model.
func (a *App) loadInto(ctx context.Context, model *config.Model, src config.Source) error {
	loader := a.loaderFor(src.Filename)
	if loader == nil {
		return fmt.Errorf("no loader for %s: supported extensions are %s", src.Filename, strings.Join(a.extensions(), ", "))
	}
	m, err := loader.Load(ctx, src)
	if err != nil {
		return err
	}
	return model.Merge(ctx, m)
}

func (a *App) loaderFor(filename string) config.Loader {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, l := range a.loaders {
		for _, e := range l.Extensions() {
			if e == ext {
				return l
			}
		}
	}
	return nil
}

func (a *App) isConfigFile(path string) bool {
	return a.loaderFor(path) != nil
}

func (a *App) extensions() []string {
	var exts []string
	for _, l := range a.loaders {
		exts = append(exts, l.Extensions()...)
	}
	return exts
}
