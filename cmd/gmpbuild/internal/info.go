package internal

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the consumption metadata for a configuration",
	Long: `Info prints the package metadata (components, libraries, dependency edges
and system libraries) the selected options would publish, without building.`,
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	r, err := recipeFromFlags()
	if err != nil {
		return err
	}
	r.Resolve()
	if err := r.Validate(); err != nil {
		return err
	}

	data, err := r.PackageInfo().Marshal()
	if err != nil {
		return err
	}
	os.Stdout.Write(append(data, '\n'))
	fmt.Fprintln(os.Stderr, "variant:", r.ID())
	return nil
}
