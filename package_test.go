package gmp

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func seedInstallTree(t *testing.T) (srcDir, installDir string) {
	t.Helper()
	tmp := t.TempDir()
	srcDir = filepath.Join(tmp, "src")
	installDir = filepath.Join(tmp, "install")

	for _, dir := range []string{
		srcDir,
		filepath.Join(installDir, "lib", "pkgconfig"),
		filepath.Join(installDir, "include"),
		filepath.Join(installDir, "share", "doc"),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	files := []struct {
		path, content string
	}{
		{filepath.Join(srcDir, "COPYINGv2"), "GPLv2\n"},
		{filepath.Join(srcDir, "COPYING.LESSERv3"), "LGPLv3\n"},
		{filepath.Join(installDir, "lib", "libgmp.a"), "lib"},
		{filepath.Join(installDir, "lib", "libgmp.la"), "libtool"},
		{filepath.Join(installDir, "lib", "pkgconfig", "gmp.pc"), "pc"},
		{filepath.Join(installDir, "include", "gmp.h"), "header"},
		{filepath.Join(installDir, "share", "doc", "gmp.info"), "info"},
	}
	for _, f := range files {
		if err := os.WriteFile(f.path, []byte(f.content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return srcDir, installDir
}

func TestPackageArtifacts(t *testing.T) {
	srcDir, installDir := seedInstallTree(t)

	r := New(linuxSettings())
	if err := r.packageArtifacts(context.Background(), srcDir, installDir); err != nil {
		t.Fatalf("packageArtifacts() = %v", err)
	}

	for _, path := range []string{
		filepath.Join(installDir, "licenses", "COPYINGv2"),
		filepath.Join(installDir, "licenses", "COPYING.LESSERv3"),
		filepath.Join(installDir, "lib", "libgmp.a"),
		filepath.Join(installDir, "include", "gmp.h"),
	} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("missing %s: %v", path, err)
		}
	}
	for _, path := range []string{
		filepath.Join(installDir, "lib", "pkgconfig"),
		filepath.Join(installDir, "share"),
		filepath.Join(installDir, "lib", "libgmp.la"),
	} {
		if _, err := os.Stat(path); err == nil {
			t.Errorf("%s should have been removed", path)
		}
	}
}

func TestPackageArtifactsMissingLicense(t *testing.T) {
	srcDir, installDir := seedInstallTree(t)
	if err := os.Remove(filepath.Join(srcDir, "COPYINGv2")); err != nil {
		t.Fatal(err)
	}
	r := New(linuxSettings())
	if err := r.packageArtifacts(context.Background(), srcDir, installDir); err == nil {
		t.Error("packageArtifacts succeeded without the license file")
	}
}
