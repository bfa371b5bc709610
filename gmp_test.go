package gmp

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/llarhub/gmp/recipe"
)

func linuxSettings() recipe.Settings {
	return recipe.Settings{OS: "linux", Arch: "x86_64", Compiler: "gcc", BuildType: "Release"}
}

func msvcSettings() recipe.Settings {
	return recipe.Settings{OS: "windows", Arch: "x86_64", Compiler: "msvc", CompilerVersion: "193", BuildType: "Release"}
}

func TestValidateSharedMSVC(t *testing.T) {
	r := New(msvcSettings())
	if err := r.Set(map[string]string{"shared": "true"}); err != nil {
		t.Fatal(err)
	}
	r.Resolve()

	err := r.Validate()
	var cfgErr *recipe.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Validate() = %v, want *recipe.ConfigError", err)
	}

	// Static MSVC and shared gcc builds stay valid.
	if err := New(msvcSettings()).Validate(); err != nil {
		t.Errorf("static msvc Validate() = %v", err)
	}
	shared := New(linuxSettings())
	if err := shared.Set(map[string]string{"shared": "true"}); err != nil {
		t.Fatal(err)
	}
	shared.Resolve()
	if err := shared.Validate(); err != nil {
		t.Errorf("shared gcc Validate() = %v", err)
	}
}

func TestRunRejectsInvalidConfigBeforeAnyCommand(t *testing.T) {
	r := New(msvcSettings())
	if err := r.Set(map[string]string{"shared": "true"}); err != nil {
		t.Fatal(err)
	}
	// No workspace, no tools, no network: the configuration error must
	// surface before anything external is touched.
	_, err := r.Run(context.Background(), RunOptions{})
	var cfgErr *recipe.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Run() = %v, want *recipe.ConfigError", err)
	}
}

func TestPlatformOptionAvailability(t *testing.T) {
	tests := []struct {
		name     string
		settings recipe.Settings
		removed  []string
		kept     []string
	}{
		{
			name:     "linux x86_64 keeps everything",
			settings: linuxSettings(),
			kept:     []string{"fPIC", "fat", "assembly"},
		},
		{
			name:     "windows loses fPIC",
			settings: msvcSettings(),
			removed:  []string{"fPIC"},
			kept:     []string{"fat"},
		},
		{
			name:     "arm loses fat",
			settings: recipe.Settings{OS: "linux", Arch: "armv8", Compiler: "gcc", BuildType: "Release"},
			removed:  []string{"fat"},
			kept:     []string{"fPIC"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := New(tc.settings)
			for _, name := range tc.removed {
				if r.Options().Has(name) {
					t.Errorf("option %s still declared", name)
				}
			}
			for _, name := range tc.kept {
				if !r.Options().Has(name) {
					t.Errorf("option %s missing", name)
				}
			}
		})
	}
}

func TestResolvePrunesDependentOptions(t *testing.T) {
	t.Run("shared drops fPIC", func(t *testing.T) {
		r := New(linuxSettings())
		if err := r.Set(map[string]string{"shared": "true"}); err != nil {
			t.Fatal(err)
		}
		r.Resolve()
		if r.Options().Has("fPIC") {
			t.Error("fPIC still declared after shared resolve")
		}
	})
	t.Run("fat drops assembly", func(t *testing.T) {
		r := New(linuxSettings())
		if err := r.Set(map[string]string{"fat": "true"}); err != nil {
			t.Fatal(err)
		}
		r.Resolve()
		if r.Options().Has("assembly") {
			t.Error("assembly still declared after fat resolve")
		}
	})
}

func TestRunChecksDoesNotAffectID(t *testing.T) {
	withChecks := New(linuxSettings())
	if err := withChecks.Set(map[string]string{"run_checks": "true"}); err != nil {
		t.Fatal(err)
	}
	withoutChecks := New(linuxSettings())
	if err := withoutChecks.Set(map[string]string{"run_checks": "false"}); err != nil {
		t.Fatal(err)
	}
	if withChecks.ID() != withoutChecks.ID() {
		t.Errorf("run_checks changed the variant fingerprint:\n%q\n%q",
			withChecks.ID(), withoutChecks.ID())
	}

	// Real options do change it.
	cxx := New(linuxSettings())
	if err := cxx.Set(map[string]string{"cxx": "true"}); err != nil {
		t.Fatal(err)
	}
	if cxx.ID() == withChecks.ID() {
		t.Error("cxx did not change the variant fingerprint")
	}
}

func TestPackageInfoComponents(t *testing.T) {
	t.Run("cxx disabled", func(t *testing.T) {
		info := New(linuxSettings()).PackageInfo()
		if info.Name != Name || info.License != License || info.Homepage != Homepage {
			t.Errorf("package metadata = %q/%q/%q", info.Name, info.License, info.Homepage)
		}
		if _, ok := info.Components["gmpxx"]; ok {
			t.Error("gmpxx published with cxx disabled")
		}
		libgmp := info.Components["libgmp"]
		if libgmp == nil || libgmp.PkgConfigName != "gmp" || !slices.Equal(libgmp.Libs, []string{"gmp"}) {
			t.Errorf("libgmp component = %+v", libgmp)
		}
	})

	t.Run("cxx enabled", func(t *testing.T) {
		r := New(linuxSettings())
		if err := r.Set(map[string]string{"cxx": "true"}); err != nil {
			t.Fatal(err)
		}
		info := r.PackageInfo()
		gmpxx := info.Components["gmpxx"]
		if gmpxx == nil {
			t.Fatal("gmpxx missing with cxx enabled")
		}
		if !slices.Equal(gmpxx.Requires, []string{"libgmp"}) {
			t.Errorf("gmpxx.Requires = %v, want [libgmp]", gmpxx.Requires)
		}
		if !slices.Equal(gmpxx.SystemLibs, []string{"m"}) {
			t.Errorf("gmpxx.SystemLibs = %v, want [m]", gmpxx.SystemLibs)
		}
	})

	t.Run("cxx enabled on windows omits libm", func(t *testing.T) {
		r := New(msvcSettings())
		if err := r.Set(map[string]string{"cxx": "true"}); err != nil {
			t.Fatal(err)
		}
		gmpxx := r.PackageInfo().Components["gmpxx"]
		if gmpxx == nil {
			t.Fatal("gmpxx missing with cxx enabled")
		}
		if len(gmpxx.SystemLibs) != 0 {
			t.Errorf("gmpxx.SystemLibs = %v, want none on windows", gmpxx.SystemLibs)
		}
	})
}

func TestSetUnknownOptionFails(t *testing.T) {
	r := New(msvcSettings())
	// fPIC was removed for windows, setting it must fail.
	if err := r.Set(map[string]string{"fPIC": "true"}); err == nil {
		t.Error("Set(fPIC) succeeded on windows")
	}
}
