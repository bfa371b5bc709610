package internal

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/llarhub/gmp/recipe"
)

var (
	matrixSettings []string
	matrixOptions  []string
	matrixCount    bool
)

var matrixCmd = &cobra.Command{
	Use:   "matrix",
	Short: "Enumerate build variant combinations",
	Long: `Matrix expands setting and option value sets into the full list of build
variant combinations, one per line. Useful for driving CI jobs.

Example:
  gmpbuild matrix --set os=linux,darwin --set arch=x86_64,armv8 --opt cxx=true,false`,
	RunE: runMatrix,
}

func init() {
	matrixCmd.Flags().StringArrayVar(&matrixSettings, "set", nil, "Setting axis (name=v1,v2,...)")
	matrixCmd.Flags().StringArrayVar(&matrixOptions, "opt", nil, "Option axis (name=v1,v2,...)")
	matrixCmd.Flags().BoolVar(&matrixCount, "count", false, "Print only the number of combinations")
	rootCmd.AddCommand(matrixCmd)
}

func runMatrix(cmd *cobra.Command, args []string) error {
	m := recipe.Matrix{}

	var err error
	if m.Settings, err = parseAxes(matrixSettings, false); err != nil {
		return err
	}
	if m.Options, err = parseAxes(matrixOptions, true); err != nil {
		return err
	}
	if len(m.Settings) == 0 && len(m.Options) == 0 {
		host := settingsFromFlags()
		m.Settings = map[string][]string{
			"os":   {host.OS},
			"arch": {host.Arch},
		}
	}

	if matrixCount {
		fmt.Println(m.CombinationCount())
		return nil
	}
	for _, combo := range m.Combinations() {
		fmt.Println(combo)
	}
	return nil
}

// parseAxes turns "name=v1,v2" flags into matrix axes. Option axes keep the
// name in each value so combinations read as assignments.
func parseAxes(axes []string, keepName bool) (map[string][]string, error) {
	if len(axes) == 0 {
		return nil, nil
	}
	out := make(map[string][]string, len(axes))
	for _, axis := range axes {
		name, list, ok := strings.Cut(axis, "=")
		if !ok {
			return nil, fmt.Errorf("invalid axis %q, want name=v1,v2", axis)
		}
		values := strings.Split(list, ",")
		if keepName {
			for i, v := range values {
				values[i] = name + "=" + v
			}
		}
		out[name] = values
	}
	return out, nil
}
