// Package autotools wraps the classic configure/make/make-install workflow.
package autotools

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/llarhub/gmp/pkgs/buildsys"
)

// AutoTools drives Autotools-style builds. Every command runs inside the
// build directory; the source tree is never written to (out-of-tree build).
type AutoTools struct {
	sourceDir  string
	buildDir   string
	installDir string
	env        map[string]string

	// Stdout and Stderr receive subprocess output. They default to the
	// process streams; a quiet caller points them at io.Discard.
	Stdout io.Writer
	Stderr io.Writer
}

var _ buildsys.BuildSystem = (*AutoTools)(nil)

// New returns a ready-to-use AutoTools.
func New(sourceDir, buildDir, installDir string) *AutoTools {
	return &AutoTools{
		sourceDir:  sourceDir,
		buildDir:   buildDir,
		installDir: installDir,
		env:        make(map[string]string),
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
	}
}

// Source overrides the source directory.
func (a *AutoTools) Source(dir string) { a.sourceDir = dir }

// Env sets key=value for every command spawned later.
func (a *AutoTools) Env(key, value string) {
	a.env[key] = value
}

// Configure runs <sourceDir>/configure inside buildDir.
// --prefix is prepended automatically when installDir is set.
func (a *AutoTools) Configure(ctx context.Context, args ...string) error {
	dir := a.workDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	exe := filepath.Join(a.sourceDir, "configure")
	if dir == "." {
		exe = "./configure"
	}
	flags := make([]string, 0, 1+len(args))
	if a.installDir != "" {
		flags = append(flags, "--prefix="+a.installDir)
	}
	return a.run(ctx, exe, append(flags, args...))
}

// Build runs "make" with optional extra arguments.
func (a *AutoTools) Build(ctx context.Context, args ...string) error {
	return a.run(ctx, "make", args)
}

// Check runs the library's own test suite via "make check".
func (a *AutoTools) Check(ctx context.Context, args ...string) error {
	return a.run(ctx, "make", append([]string{"check"}, args...))
}

// Install runs "make install" with optional extra arguments appended.
func (a *AutoTools) Install(ctx context.Context, args ...string) error {
	return a.run(ctx, "make", append([]string{"install"}, args...))
}

// OutputDir returns installDir if set, otherwise buildDir.
func (a *AutoTools) OutputDir() string {
	if a.installDir != "" {
		return a.installDir
	}
	return a.buildDir
}

func (a *AutoTools) workDir() string {
	if a.buildDir == "" {
		return "."
	}
	return a.buildDir
}

func (a *AutoTools) run(ctx context.Context, name string, args []string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = a.workDir()
	cmd.Stdout = a.Stdout
	cmd.Stderr = a.Stderr
	if len(a.env) > 0 {
		cmd.Env = mergeEnv(os.Environ(), a.env)
	}
	return cmd.Run()
}

// mergeEnv returns base with every key in overrides replaced or appended,
// in deterministic order.
func mergeEnv(base []string, overrides map[string]string) []string {
	idx := make(map[string]int, len(base))
	for i, kv := range base {
		if k, _, ok := strings.Cut(kv, "="); ok {
			idx[k] = i
		}
	}
	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if i, ok := idx[k]; ok {
			base[i] = k + "=" + overrides[k]
		} else {
			base = append(base, k+"="+overrides[k])
		}
	}
	return base
}
