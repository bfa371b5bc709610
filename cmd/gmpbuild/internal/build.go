package internal

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/llarhub/gmp"
	"github.com/llarhub/gmp/internal/build"
)

var (
	buildForce  bool
	buildOutput string
)

var buildCmd = &cobra.Command{
	Use:   "build [version]",
	Short: "Build and package a gmp release",
	Long: `Build fetches the requested gmp release (the latest known one when no
version is given), configures and compiles it with the selected options, and
packages the artifacts with consumption metadata.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().BoolVar(&buildForce, "force", false, "Rebuild even when the variant is cached")
	buildCmd.Flags().StringVar(&buildOutput, "output", "", "Build into this directory instead of the workspace cache")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	r, err := recipeFromFlags()
	if err != nil {
		return err
	}

	opts := gmp.RunOptions{
		Verbose: flagVerbose,
		Force:   buildForce,
	}
	if len(args) == 1 {
		opts.Version = args[0]
	}

	// --output builds into a private workspace so the shared cache stays
	// untouched.
	if buildOutput != "" {
		abs, err := filepath.Abs(buildOutput)
		if err != nil {
			return err
		}
		ws, err := build.OpenAt(abs, filepath.Join(abs, ".sources"))
		if err != nil {
			return err
		}
		opts.Workspace = ws
		opts.Force = true
	}

	res, err := r.Run(cmd.Context(), opts)
	if err != nil {
		return err
	}

	fmt.Printf("gmp %s (%s)\n", res.Version, res.ShortID)
	fmt.Printf("  install dir: %s\n", res.InstallDir)
	if res.Cached {
		fmt.Println("  served from cache")
	}
	data, err := res.Info.Marshal()
	if err != nil {
		return err
	}
	os.Stdout.Write(append(data, '\n'))
	return nil
}
