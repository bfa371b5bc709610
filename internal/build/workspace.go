// Package build manages the on-disk workspace for build variants.
package build

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/llarhub/gmp/internal/env"
)

// Workspace directory layout:
//
//	sources/
//	  <name>-<version>/               # extracted source tree
//	builds/
//	  .cache.json                     # maps "version-id" to a cache entry
//	  <name>@<version>-<id>/          # install dir of one built variant
//	    include/
//	    lib/
//	    licenses/
type Workspace struct {
	buildRoot  string
	sourceRoot string
}

// Open returns the workspace under the user cache directory.
func Open() (*Workspace, error) {
	buildRoot, err := env.BuildDir()
	if err != nil {
		return nil, err
	}
	sourceRoot, err := env.SourceDir()
	if err != nil {
		return nil, err
	}
	return &Workspace{buildRoot: buildRoot, sourceRoot: sourceRoot}, nil
}

// OpenAt returns a workspace rooted at explicit directories. Used for
// one-shot builds that must not pollute the cache.
func OpenAt(buildRoot, sourceRoot string) (*Workspace, error) {
	for _, dir := range []string{buildRoot, sourceRoot} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return &Workspace{buildRoot: buildRoot, sourceRoot: sourceRoot}, nil
}

// SourceDir returns the directory holding the extracted source tree.
func (w *Workspace) SourceDir(name, version string) string {
	return filepath.Join(w.sourceRoot, name+"-"+version)
}

// InstallDir returns the install directory of one variant:
// builds/<name>@<version>-<id>.
func (w *Workspace) InstallDir(name, version, id string) string {
	return filepath.Join(w.buildRoot, fmt.Sprintf("%s@%s-%s", name, version, id))
}

// BuildDir returns a scratch directory for the out-of-tree build of one
// variant. It lives next to the install dir and is removed after a
// successful build.
func (w *Workspace) BuildDir(name, version, id string) string {
	return w.InstallDir(name, version, id) + ".build"
}

// Lock takes an exclusive lock on a variant so concurrent invocations do not
// build into the same directory. The returned func releases the lock.
func (w *Workspace) Lock(ctx context.Context, name, version, id string) (unlock func(), err error) {
	lockFile := w.InstallDir(name, version, id) + ".lock"
	for {
		f, err := os.OpenFile(lockFile, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
		if err == nil {
			f.Close()
			return func() { os.Remove(lockFile) }, nil
		}
		if !os.IsExist(err) {
			return nil, err
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for lock %s: %w", lockFile, ctx.Err())
		case <-time.After(200 * time.Millisecond):
		}
	}
}
