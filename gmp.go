// Package gmp is the build recipe for the GNU Multiple Precision Arithmetic
// Library. It declares the option surface, resolves platform-specific option
// availability, and drives the library's own autotools build.
//
// GNU MP is a portable library written in C for arbitrary precision
// arithmetic on integers, rational numbers, and floating-point numbers. All
// of that lives in the upstream sources; this package only fetches,
// configures, builds and republishes them.
package gmp

import (
	"github.com/llarhub/gmp/recipe"
)

const (
	// Name is the package name used in workspace layouts and metadata.
	Name = "gmp"

	// License covers GMP 6.0 and later.
	License = "LGPL-3.0 or GPL-2.0"

	Homepage = "https://gmplib.org"
)

// Recipe holds the resolved settings and options for one build variant.
type Recipe struct {
	settings recipe.Settings
	opts     *recipe.OptionSet
}

// New declares the option table and applies platform-specific availability
// for the given settings:
//
//   - Windows has no fPIC notion, the option is removed;
//   - fat binaries only exist on x86 / x86_64, elsewhere the option is removed.
func New(settings recipe.Settings) *Recipe {
	r := &Recipe{settings: settings, opts: recipe.NewOptionSet()}
	declareOptions(r.opts)

	if settings.IsWindows() {
		r.opts.Remove("fPIC")
	}
	if settings.Arch != "x86" && settings.Arch != "x86_64" {
		r.opts.Remove("fat")
	}
	return r
}

// Settings returns the settings this recipe was resolved for.
func (r *Recipe) Settings() recipe.Settings { return r.settings }

// Options returns the live option set.
func (r *Recipe) Options() *recipe.OptionSet { return r.opts }

// Set assigns user-chosen option values.
func (r *Recipe) Set(values map[string]string) error {
	for name, value := range values {
		if err := r.opts.Set(name, value); err != nil {
			return err
		}
	}
	return nil
}

// Resolve prunes options made meaningless by other options:
//
//   - shared libraries are implicitly PIC, so fPIC is dropped;
//   - a fat build chooses its low level routines at runtime, so the
//     assembly toggle is dropped.
//
// Call it after Set and before Validate.
func (r *Recipe) Resolve() {
	if r.opts.Bool("shared") {
		r.opts.Remove("fPIC")
	}
	if r.opts.GetSafe("fat", "false") == "true" {
		r.opts.Remove("assembly")
	}
}

// Validate rejects option combinations that cannot build. It runs before any
// external command.
func (r *Recipe) Validate() error {
	if r.settings.IsMSVC() && r.opts.Bool("shared") {
		return recipe.Invalidf(
			"%s cannot be built as a shared library using Visual Studio: some error occurs at link time", Name)
	}
	return nil
}

// ID returns the variant fingerprint. run_checks is excluded by its
// declaration, so running or skipping the test suite never splits the cache.
func (r *Recipe) ID() string {
	return recipe.ID(r.settings, r.opts)
}

// PackageInfo returns the consumption metadata for the resolved options.
// The gmpxx component and its dependency edge on libgmp exist only when C++
// support is enabled.
func (r *Recipe) PackageInfo() *recipe.PackageInfo {
	info := recipe.NewPackageInfo()
	info.Name = Name
	info.License = License
	info.Homepage = Homepage
	// GMP has no aggregate pkg-config file upstream; publish a name nobody
	// should link against so the per-component names stay authoritative.
	info.PkgConfigName = "gmp-all-do-not-use"

	libgmp := info.Component("libgmp")
	libgmp.PkgConfigName = "gmp"
	libgmp.Libs = []string{"gmp"}

	if r.opts.Bool("cxx") {
		gmpxx := info.Component("gmpxx")
		gmpxx.PkgConfigName = "gmpxx"
		gmpxx.Libs = []string{"gmpxx"}
		gmpxx.Requires = []string{"libgmp"}
		if !r.settings.IsWindows() {
			gmpxx.SystemLibs = []string{"m"}
		}
	}
	return info
}
