package gmp

import (
	"strconv"
	"strings"
)

// Toolchain is the generated configuration for the external configure step:
// the command line flags and the environment overrides.
type Toolchain struct {
	ConfigureArgs []string
	Env           map[string]string
}

func yesNo(v string) string {
	if v == "true" {
		return "yes"
	}
	return "no"
}

// yasmMachines maps package arch names to yasm -m values.
var yasmMachines = map[string]string{
	"x86":    "x86",
	"x86_64": "amd64",
}

// GenerateToolchain maps the resolved options onto configure flags and, for
// MSVC, onto the compiler/tool environment. buildOS is the OS of the build
// machine (which may differ from the target OS when cross building);
// relSrcDir, when non-empty, is a relative path to the source tree used to
// dodge Windows path issues in the generated makefiles.
func (r *Recipe) GenerateToolchain(buildOS, relSrcDir string) *Toolchain {
	opts := r.opts
	tc := &Toolchain{Env: make(map[string]string)}

	args := []string{
		"--with-pic=" + yesNo(opts.GetSafe("fPIC", "true")),
		"--enable-assembly=" + yesNo(opts.GetSafe("assembly", "false")),
		"--enable-fat=" + yesNo(opts.GetSafe("fat", "false")),
		"--enable-cxx=" + yesNo(opts.GetSafe("cxx", "false")),
		"--enable-alloca=" + opts.GetSafe("alloca", "reentrant"),
		"--enable-fft=" + yesNo(opts.GetSafe("fft", "true")),
		"--enable-old-fft-full=" + yesNo(opts.GetSafe("old_fft_full", "false")),
		"--enable-assert=" + yesNo(opts.GetSafe("assertions", "false")),
		"--enable-minithres=" + yesNo(opts.GetSafe("minithres", "false")),
		"--enable-fake-cpuid=" + yesNo(opts.GetSafe("fake_cpuid", "false")),
		"--enable-maintainer-mode=" + yesNo(opts.GetSafe("maintainer_mode", "false")),
		"--with-gnu-ld=" + yesNo(opts.GetSafe("with_gnu_ld", "false")),
	}
	if opts.Bool("shared") {
		args = append(args, "--enable-shared", "--disable-static")
	} else {
		args = append(args, "--disable-shared", "--enable-static")
	}
	if v := opts.GetSafe("profiling", "none"); v != "none" {
		args = append(args, "--enable-profiling="+v)
	}
	switch nails := opts.GetSafe("nails", "0"); nails {
	case "0":
		// default limb layout, no flag
	case "true":
		args = append(args, "--enable-nails")
	default:
		args = append(args, "--enable-nails="+nails)
	}
	if r.settings.OS == "aix" {
		args = append(args, "--with-aix-soname="+opts.GetSafe("with_aix_soname", "aix"))
	}

	// Use a relative srcdir to avoid issues with
	// #include "$srcdir/gmp-h.in" on Windows.
	if buildOS == "windows" && relSrcDir != "" {
		args = append(args, "--srcdir="+relSrcDir)
	}

	if r.settings.IsMSVC() {
		args = append(args,
			"ac_cv_c_restrict=restrict",
			"gmp_cv_asm_label_suffix=:",
			// needed to get further in a shared MSVC build, which still
			// fails later at link time (see Validate)
			"lt_cv_sys_global_symbol_pipe=cat",
		)
		r.msvcEnv(tc)
	}

	tc.ConfigureArgs = args
	return tc
}

// msvcEnv points the autotools machinery at the Visual Studio toolchain.
func (r *Recipe) msvcEnv(tc *Toolchain) {
	cxxflags := []string{"-EHsc"}
	var cflags []string
	if msvcAtLeast(r.settings.Compiler, r.settings.CompilerVersion) {
		cflags = append(cflags, "-FS")
		cxxflags = append(cxxflags, "-FS")
	}
	if len(cflags) > 0 {
		tc.Env["CFLAGS"] = strings.Join(cflags, " ")
	}
	tc.Env["CXXFLAGS"] = strings.Join(cxxflags, " ")

	tc.Env["CC"] = "cl -nologo"
	tc.Env["CXX"] = "cl -nologo"
	tc.Env["LD"] = "link -nologo"
	tc.Env["AR"] = "lib -nologo"
	tc.Env["NM"] = "dumpbin -symbols"
	if machine, ok := yasmMachines[r.settings.Arch]; ok {
		tc.Env["CCAS"] = "yasm -a x86 -m " + machine + " -p gas -r raw -f win32 -g null -X gnu"
	}
}

// msvcAtLeast reports whether the compiler supports the -FS flag:
// msvc >= 180, or Visual Studio >= 12.
func msvcAtLeast(compiler, version string) bool {
	major, _, _ := strings.Cut(version, ".")
	n, err := strconv.Atoi(major)
	if err != nil {
		return false
	}
	if compiler == "Visual Studio" {
		return n >= 12
	}
	return n >= 180
}
