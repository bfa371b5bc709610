package recipe

import "runtime"

// Settings describes the host configuration a recipe builds for.
// Values follow the package-manager convention (x86_64, not amd64).
type Settings struct {
	OS              string // linux, darwin, windows, ...
	Arch            string // x86, x86_64, armv8, ...
	Compiler        string // gcc, clang, apple-clang, msvc
	CompilerVersion string
	BuildType       string // Release, Debug, RelWithDebInfo
}

// archNames maps GOARCH values to package-manager arch names.
var archNames = map[string]string{
	"386":   "x86",
	"amd64": "x86_64",
	"arm":   "armv7",
	"arm64": "armv8",
}

// HostSettings returns settings detected from the running host.
// Compiler is left to the caller; the default build type is Release.
func HostSettings() Settings {
	arch := runtime.GOARCH
	if name, ok := archNames[arch]; ok {
		arch = name
	}
	s := Settings{
		OS:        runtime.GOOS,
		Arch:      arch,
		BuildType: "Release",
	}
	switch runtime.GOOS {
	case "darwin":
		s.Compiler = "apple-clang"
	case "windows":
		s.Compiler = "msvc"
	default:
		s.Compiler = "gcc"
	}
	return s
}

// IsMSVC reports whether the configured compiler is Visual Studio.
func (s Settings) IsMSVC() bool {
	return s.Compiler == "msvc" || s.Compiler == "Visual Studio"
}

// IsApple reports whether the target OS is an Apple platform.
func (s Settings) IsApple() bool {
	switch s.OS {
	case "darwin", "ios", "tvos", "watchos":
		return true
	}
	return false
}

// IsWindows reports whether the target OS is Windows.
func (s Settings) IsWindows() bool {
	return s.OS == "windows"
}
