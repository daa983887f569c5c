// Package profiles embeds the builtin profile variants.
package profiles

import (
	"embed"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/vk/nfsprofile/internal/config"
)

// Default is the variant used when none is selected.
const Default = "nfs-cluster"

//go:embed *.hcl
var files embed.FS

// Names returns the builtin variant names in sorted order.
func Names() []string {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		panic(err) // embedded filesystem is fixed at build time
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	sort.Strings(names)
	return names
}

// Source returns the embedded definition of the named variant.
func Source(name string) (config.Source, bool) {
	filename := name + ".hcl"
	data, err := files.ReadFile(filename)
	if err != nil {
		return config.Source{}, false
	}
	return config.Source{Filename: "builtin:" + filename, Data: data}, true
}
