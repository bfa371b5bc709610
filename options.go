package gmp

import "github.com/llarhub/gmp/recipe"

// declareOptions declares the full option surface with upstream defaults.
// Descriptions follow the GMP manual; see https://gmplib.org/manual/.
func declareOptions(s *recipe.OptionSet) {
	s.Declare(recipe.Option{
		Name: "shared", Kind: recipe.Bool, Default: "false",
		Description: "Build shared libraries rather than static libraries. " +
			"Some platforms are incompatible with shared linking.",
	})
	s.Declare(recipe.Option{
		Name: "fPIC", Kind: recipe.Bool, Default: "false",
		Description: "Build static libraries with Position Independent Code. " +
			"Implicitly removed when shared is enabled or on platforms where " +
			"all object code is PIC.",
	})
	s.Declare(recipe.Option{
		Name: "assembly", Kind: recipe.Bool, Default: "true",
		Description: "Use assembly-tuned low level routines. Disabling selects " +
			"generic C code: quite slow, but portable, and at least makes it " +
			"possible to get something running if all else fails.",
	})
	s.Declare(recipe.Option{
		Name: "cxx", Kind: recipe.Bool, Default: "false",
		Description: "C++ support: libgmpxx and the gmpxx.h header. libgmpxx " +
			"uses internals of libgmp and only works with libgmp from the same " +
			"GMP version. Off by default because configure cannot detect a " +
			"mismatched C/C++ compiler pair.",
	})
	s.Declare(recipe.Option{
		Name: "fat", Kind: recipe.Bool, Default: "false",
		Description: "Fat binary build on x86 / x86_64: optimized low level " +
			"subroutines are chosen at runtime according to the CPU detected. " +
			"More code, but good performance on all x86 chips. Removed on " +
			"other host architectures.",
	})
	s.Declare(recipe.Option{
		Name: "alloca", Kind: recipe.Enum,
		Values: []string{
			"alloca",
			"malloc-reentrant",
			"malloc-notreentrant",
			"reentrant",
			"notreentrant",
			"debug",
		},
		Default: "reentrant",
		Description: "Method for temporary workspace memory. \"alloca\" is " +
			"reentrant and fast; the malloc methods use the heap (reentrant " +
			"or with global variables); \"reentrant\" and \"notreentrant\" " +
			"pick alloca when available; \"debug\" helps when debugging " +
			"memory related problems.",
	})
	s.Declare(recipe.Option{
		Name: "fft", Kind: recipe.Bool, Default: "true",
		Description: "FFT support for multiplications. The FFT is only used on " +
			"large to very large operands and can be disabled to save code " +
			"size if desired.",
	})
	s.Declare(recipe.Option{
		Name: "old_fft_full", Kind: recipe.Bool, Default: "false",
		Description: "Provide the old mpn_mul_fft_full algorithm.",
	})
	s.Declare(recipe.Option{
		Name: "assertions", Kind: recipe.Bool, Default: "false",
		Description: "Consistency checking within the library.",
	})
	s.Declare(recipe.Option{
		Name: "profiling", Kind: recipe.Enum,
		Values:  []string{"none", "prof", "gprof", "instrument"},
		Default: "none",
		Description: "Detailed profiling support: \"prof\" adds call counting, " +
			"\"gprof\" adds call graph construction, \"instrument\" uses " +
			"-finstrument-functions and needs an external support library. " +
			"On processors other than x86 / x86_64, assembly routines won't " +
			"appear in the call counts.",
	})
	s.Declare(recipe.Option{
		Name: "nails", Kind: recipe.IntRange,
		Values: []string{"true"}, Min: 0, Max: 63, Default: "0",
		Description: "Experimental: number of bits left at the top of " +
			"mp_limb_t, which can significantly improve carry handling on " +
			"some processors. \"true\" lets GMP choose. Must be less than " +
			"GMP_LIMB_BITS. A nail build is not binary compatible with a " +
			"non-nail build at the mpn level.",
	})
	s.Declare(recipe.Option{
		Name: "minithres", Kind: recipe.Bool, Default: "false",
		Description: "Minimal mpn thresholds for testing. Generally " +
			"undocumented upstream.",
	})
	s.Declare(recipe.Option{
		Name: "fake_cpuid", Kind: recipe.Bool, Default: "false",
		Description: "Allow faking cpuid through the GMP_CPU_TYPE environment " +
			"variable. Generally undocumented upstream.",
	})
	s.Declare(recipe.Option{
		Name: "maintainer_mode", Kind: recipe.Bool, Default: "false",
		Description: "Additional make rules and dependencies useful for " +
			"maintainers of the library itself.",
	})
	s.Declare(recipe.Option{
		Name: "with_aix_soname", Kind: recipe.Enum,
		Values:  []string{"aix", "svr4", "both"},
		Default: "aix",
		Description: "Shared library (SONAME) variant to provide on AIX. " +
			"Ignored on other platforms.",
	})
	s.Declare(recipe.Option{
		Name: "with_gnu_ld", Kind: recipe.Bool, Default: "false",
		Description: "Assume the C compiler uses GNU ld.",
	})
	s.Declare(recipe.Option{
		Name: "run_checks", Kind: recipe.Bool, Default: "true",
		ExcludeFromID: true,
		Description: "Run the library's own test suite (make check) after " +
			"building. The GMP readme advises against skipping it. Does not " +
			"affect the variant fingerprint.",
	})
}
