package gmp

import (
	"fmt"
	"os/exec"
	"strings"
)

// Preflight verifies the external tools the build will invoke are reachable
// before anything is fetched or configured. buildOS is the OS of the build
// machine.
func (r *Recipe) Preflight(buildOS string) error {
	tools := []string{"make", "m4"}

	switch {
	case r.settings.IsMSVC():
		// yasm determines the 32-bit word size, lib wraps archive creation.
		tools = append(tools, "cl", "yasm", "lib")
	case r.settings.Compiler == "clang" || r.settings.Compiler == "apple-clang":
		tools = append(tools, "clang")
	default:
		tools = append(tools, "gcc")
	}
	if buildOS == "windows" {
		// configure is a shell script; on Windows an msys2-style bash
		// has to drive it.
		tools = append(tools, "bash")
	}

	var missing []string
	for _, tool := range tools {
		if _, err := exec.LookPath(tool); err != nil {
			missing = append(missing, tool)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required build tools: %s", strings.Join(missing, ", "))
	}
	return nil
}
