package internal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/llarhub/gmp"
	"github.com/llarhub/gmp/internal/build"
	"github.com/llarhub/gmp/internal/fetch"
)

var sourceCmd = &cobra.Command{
	Use:   "source [version]",
	Short: "Fetch and extract a gmp source release",
	Long:  `Source downloads the release tarball, verifies its checksum and extracts it into the workspace.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSource,
}

func init() {
	rootCmd.AddCommand(sourceCmd)
}

func runSource(cmd *cobra.Command, args []string) error {
	version := ""
	if len(args) == 1 {
		version = args[0]
	}
	src, version, err := gmp.SourceFor(version)
	if err != nil {
		return err
	}

	ws, err := build.Open()
	if err != nil {
		return err
	}
	srcDir := ws.SourceDir(gmp.Name, version)
	if err := fetch.Get(cmd.Context(), src, srcDir); err != nil {
		return err
	}
	fmt.Println(srcDir)
	return nil
}
