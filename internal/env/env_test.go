package env

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWorkDirOverride(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("GMPBUILD_HOME", filepath.Join(tempDir, "home"))

	dir, err := WorkDir()
	if err != nil {
		t.Fatalf("WorkDir() returned error: %v", err)
	}
	if want := filepath.Join(tempDir, "home"); dir != want {
		t.Errorf("WorkDir() = %q, want %q", dir, want)
	}
	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("directory was not created: %v", err)
	}
	if !info.IsDir() {
		t.Error("WorkDir() created a file instead of a directory")
	}
}

func TestSubDirs(t *testing.T) {
	t.Setenv("GMPBUILD_HOME", t.TempDir())

	workDir, err := WorkDir()
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		fn   func() (string, error)
		want string
	}{
		{"sources", SourceDir, filepath.Join(workDir, "sources")},
		{"builds", BuildDir, filepath.Join(workDir, "builds")},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir, err := tc.fn()
			if err != nil {
				t.Fatalf("returned error: %v", err)
			}
			if dir != tc.want {
				t.Errorf("got %q, want %q", dir, tc.want)
			}
			if _, err := os.Stat(dir); err != nil {
				t.Errorf("directory not accessible: %v", err)
			}
		})
	}
}

func TestWorkDirIdempotent(t *testing.T) {
	t.Setenv("GMPBUILD_HOME", t.TempDir())

	dir1, err := WorkDir()
	if err != nil {
		t.Fatalf("first WorkDir() call failed: %v", err)
	}
	dir2, err := WorkDir()
	if err != nil {
		t.Fatalf("second WorkDir() call failed: %v", err)
	}
	if dir1 != dir2 {
		t.Errorf("WorkDir() not idempotent: %q vs %q", dir1, dir2)
	}
}
