package params

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/vk/nfsprofile/internal/config"
	"github.com/vk/nfsprofile/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
	"golang.org/x/exp/slices"
)

var nodeSlotPattern = regexp.MustCompile(`^node([0-9]+)$`)

// Bind validates the supplied values against the profile's schema and
// returns the resulting Set. Missing values take their defaults. Every
// violation is reported, each as an *InvalidParameterError.
func Bind(ctx context.Context, profile *config.Profile, values map[string]cty.Value) (*Set, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Binding parameters.", "profile", profile.Name, "supplied", len(values))

	defs := Schema(profile)
	var errs []error

	known := make(map[string]struct{}, len(defs))
	for _, def := range defs {
		known[def.Name] = struct{}{}
	}
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if _, ok := known[name]; ok {
			continue
		}
		if m := nodeSlotPattern.FindStringSubmatch(name); m != nil {
			errs = append(errs, invalid(name, "", "profile %q exposes %d override slots", profile.Name, profile.OverrideSlots))
			continue
		}
		errs = append(errs, invalid(name, "", "unknown parameter for profile %q", profile.Name))
	}

	set := &Set{
		Profile:    profile.Name,
		NodeImages: make([]string, profile.OverrideSlots),
	}

	for _, def := range defs {
		raw, supplied := values[def.Name]
		if !supplied || raw.IsNull() {
			raw = def.Default
		}
		if err := bindOne(profile, def, raw, set); err != nil {
			errs = append(errs, err)
			continue
		}
		if supplied {
			logger.Debug("Parameter bound.", "parameter", def.Name, "value", display(raw))
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	logger.Debug("Parameters bound successfully.",
		"clients", set.ClientCount,
		"dataset", set.HasDataset(),
		"local_storage_gb", set.LocalStorage,
	)
	return set, nil
}

// bindOne converts a single value and stores it on the set.
func bindOne(profile *config.Profile, def Definition, raw cty.Value, set *Set) error {
	if !raw.IsWhollyKnown() {
		return invalid(def.Name, "", "value must be known")
	}

	if def.Name == DatasetReadOnly && raw.Type() == cty.Bool {
		if raw.True() {
			raw = cty.StringVal(ReadOnlyTrue)
		} else {
			raw = cty.StringVal(ReadOnlyFalse)
		}
	}

	val, err := convert.Convert(raw, def.Type)
	if err != nil {
		return invalid(def.Name, display(raw), "cannot convert %s to %s", raw.Type().FriendlyName(), def.Type.FriendlyName())
	}
	if val.IsNull() {
		return invalid(def.Name, "", "value must not be null")
	}

	switch def.Name {
	case ClientCount:
		n, err := wholeNumber(def.Name, val)
		if err != nil {
			return err
		}
		if n < profile.MinClients {
			return invalid(def.Name, display(val), "must be at least %d", profile.MinClients)
		}
		if profile.Bounded() && n > profile.MaxClients {
			return invalid(def.Name, display(val), "must be at most %d", profile.MaxClients)
		}
		set.ClientCount = n

	case OSImage:
		urn := val.AsString()
		if profile.ImageIndex(urn) < 0 {
			return invalid(def.Name, display(val), "not one of the profile images (%s)", choiceList(def.Choices))
		}
		set.OSImage = urn

	case DatasetURN:
		set.DatasetURN = strings.TrimSpace(val.AsString())

	case DatasetReadOnly:
		switch val.AsString() {
		case ReadOnlyTrue:
			set.DatasetReadOnly = true
		case ReadOnlyFalse:
			set.DatasetReadOnly = false
		default:
			return invalid(def.Name, display(val), "must be one of %s", choiceList(def.Choices))
		}

	case PhysType:
		set.PhysType = strings.TrimSpace(val.AsString())

	case LocalStorage:
		n, err := wholeNumber(def.Name, val)
		if err != nil {
			return err
		}
		if n < 0 {
			return invalid(def.Name, display(val), "must not be negative")
		}
		set.LocalStorage = n

	default:
		if def.Slot == 0 {
			return invalid(def.Name, "", "no binding for parameter")
		}
		set.NodeImages[def.Slot-1] = strings.TrimSpace(val.AsString())
	}
	return nil
}

func wholeNumber(name string, val cty.Value) (int, error) {
	var n int
	if err := gocty.FromCtyValue(val, &n); err != nil {
		return 0, invalid(name, display(val), "must be a whole number")
	}
	return n, nil
}

func choiceList(choices []Choice) string {
	parts := make([]string, 0, len(choices))
	for _, c := range choices {
		parts = append(parts, strconv.Quote(c.Value))
	}
	return strings.Join(parts, ", ")
}

// display renders a value for error messages.
func display(v cty.Value) string {
	switch {
	case v.IsNull():
		return "null"
	case !v.IsKnown():
		return "(unknown)"
	case v.Type() == cty.String:
		return strconv.Quote(v.AsString())
	case v.Type() == cty.Number:
		return v.AsBigFloat().Text('f', -1)
	case v.Type() == cty.Bool:
		return strconv.FormatBool(v.True())
	default:
		return fmt.Sprintf("<%s>", v.Type().FriendlyName())
	}
}
