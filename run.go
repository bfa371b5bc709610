package gmp

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/llarhub/gmp/internal/build"
	"github.com/llarhub/gmp/internal/fetch"
	"github.com/llarhub/gmp/logger"
	"github.com/llarhub/gmp/pkgs/buildsys/autotools"
	"github.com/llarhub/gmp/recipe"
)

// RunOptions configures one pipeline run.
type RunOptions struct {
	Version   string // empty selects the latest known release
	Verbose   bool   // stream subprocess output
	Force     bool   // rebuild even when the variant is cached
	BuildOS   string // OS of the build machine; defaults to runtime.GOOS
	Workspace *build.Workspace
}

// Result describes a finished (or cache-served) build.
type Result struct {
	Version    string
	ID         string
	ShortID    string
	InstallDir string
	Info       *recipe.PackageInfo
	Cached     bool
}

// Run executes the full pipeline for the resolved recipe: validate, fetch,
// generate, configure, make, optionally make check, install, package, and
// publish metadata. Failures of the external tools propagate unmodified; the
// only error produced before any external command is the configuration check.
func (r *Recipe) Run(ctx context.Context, opts RunOptions) (*Result, error) {
	log := logger.Logger()

	r.Resolve()
	if err := r.Validate(); err != nil {
		return nil, err
	}

	buildOS := opts.BuildOS
	if buildOS == "" {
		buildOS = runtime.GOOS
	}
	if err := r.Preflight(buildOS); err != nil {
		return nil, err
	}

	src, version, err := SourceFor(opts.Version)
	if err != nil {
		return nil, err
	}

	ws := opts.Workspace
	if ws == nil {
		if ws, err = build.Open(); err != nil {
			return nil, err
		}
	}

	id := r.ID()
	shortID := recipe.ShortID(id)
	log.Info().Str("version", version).Str("variant", shortID).Msg("building gmp")
	log.Debug().Str("id", id).Msg("variant fingerprint")

	unlock, err := ws.Lock(ctx, Name, version, shortID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	info := r.PackageInfo()
	installDir := ws.InstallDir(Name, version, shortID)

	// Serve from cache when this exact variant was already built.
	cache, err := ws.LoadCache()
	if err != nil {
		return nil, err
	}
	if entry, ok := cache.Get(version, shortID); ok && !opts.Force {
		if _, err := os.Stat(installDir); err == nil {
			log.Info().Str("dir", installDir).Msg("cache hit")
			return &Result{
				Version: version, ID: entry.ID, ShortID: shortID,
				InstallDir: installDir, Info: info, Cached: true,
			}, nil
		}
	}

	srcDir := ws.SourceDir(Name, version)
	if err := r.source(ctx, src, srcDir); err != nil {
		return nil, err
	}
	if err := r.patchSources(srcDir); err != nil {
		return nil, err
	}

	relSrcDir := ""
	buildDir := ws.BuildDir(Name, version, shortID)
	if buildOS == "windows" {
		if rel, err := filepath.Rel(buildDir, srcDir); err == nil {
			relSrcDir = filepath.ToSlash(rel)
		}
	}
	tc := r.GenerateToolchain(buildOS, relSrcDir)

	if err := os.RemoveAll(buildDir); err != nil {
		return nil, err
	}
	at := autotools.New(srcDir, buildDir, installDir)
	if !opts.Verbose {
		at.Stdout = io.Discard
		at.Stderr = io.Discard
	}
	for k, v := range tc.Env {
		at.Env(k, v)
	}

	log.Debug().Strs("args", tc.ConfigureArgs).Msg("configure")
	if err := at.Configure(ctx, tc.ConfigureArgs...); err != nil {
		return nil, fmt.Errorf("configure: %w", err)
	}
	jobs := "-j" + strconv.Itoa(runtime.NumCPU())
	if err := at.Build(ctx, jobs); err != nil {
		return nil, fmt.Errorf("make: %w", err)
	}
	// The gmp readme advises running the test suite after every build; the
	// option exists because checks take long on emulated CI machines.
	if r.opts.Bool("run_checks") {
		log.Info().Msg("running make check")
		if err := at.Check(ctx, jobs); err != nil {
			return nil, fmt.Errorf("make check: %w", err)
		}
	}

	if err := os.RemoveAll(installDir); err != nil {
		return nil, err
	}
	if err := at.Install(ctx); err != nil {
		return nil, fmt.Errorf("make install: %w", err)
	}
	if err := r.packageArtifacts(ctx, srcDir, installDir); err != nil {
		return nil, err
	}
	os.RemoveAll(buildDir)

	metadata, err := publishInfo(info, installDir)
	if err != nil {
		return nil, err
	}
	cache.Set(version, shortID, &build.Entry{ID: id, Metadata: metadata, BuildTime: nowFunc()})
	if err := ws.SaveCache(cache); err != nil {
		return nil, err
	}

	log.Info().Str("dir", installDir).Msg("build finished")
	return &Result{
		Version: version, ID: id, ShortID: shortID,
		InstallDir: installDir, Info: info,
	}, nil
}

// source fetches and extracts the release tarball unless the source tree is
// already present.
func (r *Recipe) source(ctx context.Context, src fetch.Source, srcDir string) error {
	log := logger.Logger()
	if _, err := os.Stat(filepath.Join(srcDir, "configure")); err == nil {
		log.Debug().Str("dir", srcDir).Msg("source tree already present")
		return nil
	}
	log.Info().Str("url", src.URLs[0]).Msg("fetching source")
	return fetch.Get(ctx, src, srcDir)
}

// patchSources fixes up the fetched tree before configure runs. On Apple
// platforms the extracted configure script can lose its exec bit.
func (r *Recipe) patchSources(srcDir string) error {
	if !r.settings.IsApple() {
		return nil
	}
	configure := filepath.Join(srcDir, "configure")
	info, err := os.Stat(configure)
	if err != nil {
		return err
	}
	return os.Chmod(configure, info.Mode()|0o100)
}

// publishInfo writes the consumption metadata into the install dir and
// returns it as a string for the build cache.
func publishInfo(info *recipe.PackageInfo, installDir string) (string, error) {
	data, err := info.Marshal()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(installDir, "gmpbuild-info.json"), data, 0o644); err != nil {
		return "", err
	}
	return string(data), nil
}
