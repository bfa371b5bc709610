package env

import (
	"os"
	"path/filepath"
)

// WorkDir returns the root workspace directory, <UserCacheDir>/.gmpbuild,
// creating it with 0700 permissions if it doesn't exist.
// The GMPBUILD_HOME environment variable overrides the default location.
func WorkDir() (string, error) {
	if dir := os.Getenv("GMPBUILD_HOME"); dir != "" {
		return ensure(dir)
	}
	userCacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return ensure(filepath.Join(userCacheDir, ".gmpbuild"))
}

// SourceDir returns the directory where fetched source trees are stored.
func SourceDir() (string, error) {
	workDir, err := WorkDir()
	if err != nil {
		return "", err
	}
	return ensure(filepath.Join(workDir, "sources"))
}

// BuildDir returns the directory where build variants are stored.
func BuildDir() (string, error) {
	workDir, err := WorkDir()
	if err != nil {
		return "", err
	}
	return ensure(filepath.Join(workDir, "builds"))
}

func ensure(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	return dir, nil
}
