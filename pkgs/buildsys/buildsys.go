// Package buildsys defines the common surface of external build helpers.
package buildsys

import "context"

// BuildSystem captures the shared lifecycle of external build drivers
// (Autotools today; the shape leaves room for CMake-style helpers).
// Implementations run the real tools; errors propagate from them unmodified.
type BuildSystem interface {
	// Env sets key=value for every command spawned later.
	Env(key, val string)

	// Lifecycle.
	Configure(ctx context.Context, args ...string) error
	Build(ctx context.Context, args ...string) error
	Install(ctx context.Context, args ...string) error

	// Where artifacts land.
	OutputDir() string
}
