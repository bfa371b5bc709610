package gmp

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

var nowFunc = time.Now

// licenseFiles are republished alongside the built artifacts. GMP is dual
// licensed since 6.0.
var licenseFiles = []string{"COPYINGv2", "COPYING.LESSERv3"}

// packageArtifacts turns a raw make-install tree into the published package:
// licenses are copied in, the pkgconfig and share directories and libtool
// archives are dropped, and on Apple platforms shared library install names
// are rewritten to @rpath.
func (r *Recipe) packageArtifacts(ctx context.Context, srcDir, installDir string) error {
	licenseDir := filepath.Join(installDir, "licenses")
	if err := os.MkdirAll(licenseDir, 0o755); err != nil {
		return err
	}
	for _, name := range licenseFiles {
		if err := copyFile(filepath.Join(srcDir, name), filepath.Join(licenseDir, name)); err != nil {
			return fmt.Errorf("copy license %s: %w", name, err)
		}
	}

	// Downstream consumers get their pkg-config data from the published
	// metadata, not from upstream's files.
	if err := os.RemoveAll(filepath.Join(installDir, "lib", "pkgconfig")); err != nil {
		return err
	}
	if err := os.RemoveAll(filepath.Join(installDir, "share")); err != nil {
		return err
	}
	laFiles, err := filepath.Glob(filepath.Join(installDir, "lib", "*.la"))
	if err != nil {
		return err
	}
	for _, la := range laFiles {
		if err := os.Remove(la); err != nil {
			return err
		}
	}

	if r.settings.IsApple() && r.opts.Bool("shared") {
		if err := fixAppleInstallNames(ctx, filepath.Join(installDir, "lib")); err != nil {
			return err
		}
	}
	return nil
}

// fixAppleInstallNames rewrites each dylib's install name to an @rpath
// reference so consumers can relocate the package.
func fixAppleInstallNames(ctx context.Context, libDir string) error {
	dylibs, err := filepath.Glob(filepath.Join(libDir, "*.dylib"))
	if err != nil {
		return err
	}
	for _, dylib := range dylibs {
		// Skip the version symlinks, rewrite real files only.
		info, err := os.Lstat(dylib)
		if err != nil {
			return err
		}
		if info.Mode()&os.ModeSymlink != 0 {
			continue
		}
		cmd := exec.CommandContext(ctx, "install_name_tool", "-id", "@rpath/"+filepath.Base(dylib), dylib)
		if out, err := cmd.CombinedOutput(); err != nil {
			return fmt.Errorf("install_name_tool %s: %v: %s", dylib, err, out)
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	info, err := in.Stat()
	if err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
