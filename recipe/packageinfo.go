package recipe

import (
	"encoding/json"
	"sort"
)

// -----------------------------------------------------------------------------

// Component describes one library published by a package: its pkg-config
// name, the libraries to link, dependency edges onto other components of the
// same package, and system libraries required on the final link line.
type Component struct {
	PkgConfigName string   `json:"pkg_config_name"`
	Libs          []string `json:"libs"`
	Requires      []string `json:"requires,omitempty"`
	SystemLibs    []string `json:"system_libs,omitempty"`
}

// PackageInfo is the consumption metadata a recipe publishes after a build.
type PackageInfo struct {
	Name          string                `json:"name,omitempty"`
	License       string                `json:"license,omitempty"`
	Homepage      string                `json:"homepage,omitempty"`
	PkgConfigName string                `json:"pkg_config_name,omitempty"`
	Components    map[string]*Component `json:"components"`
}

// NewPackageInfo returns an empty PackageInfo.
func NewPackageInfo() *PackageInfo {
	return &PackageInfo{Components: make(map[string]*Component)}
}

// Component returns the named component, creating it on first access.
func (p *PackageInfo) Component(name string) *Component {
	c, ok := p.Components[name]
	if !ok {
		c = &Component{}
		p.Components[name] = c
	}
	return c
}

// Libs returns all libraries of all components, dependencies last, so the
// result is usable as a link order.
func (p *PackageInfo) Libs() []string {
	names := make([]string, 0, len(p.Components))
	for name := range p.Components {
		names = append(names, name)
	}
	// Components that others require sort after their dependents.
	sort.Slice(names, func(i, j int) bool {
		if p.requires(names[i], names[j]) {
			return true
		}
		if p.requires(names[j], names[i]) {
			return false
		}
		return names[i] < names[j]
	})
	var libs []string
	for _, name := range names {
		libs = append(libs, p.Components[name].Libs...)
	}
	return libs
}

func (p *PackageInfo) requires(a, b string) bool {
	for _, req := range p.Components[a].Requires {
		if req == b {
			return true
		}
	}
	return false
}

// Marshal renders the metadata as indented JSON.
func (p *PackageInfo) Marshal() ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}
