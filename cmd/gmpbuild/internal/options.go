package internal

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/llarhub/gmp/recipe"
)

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "Show the option table for the target platform",
	Long: `Options prints every build option available on the selected platform with
its allowed values, current value and description. Options a platform does
not support are omitted.`,
	RunE: runOptions,
}

func init() {
	rootCmd.AddCommand(optionsCmd)
}

func runOptions(cmd *cobra.Command, args []string) error {
	r, err := recipeFromFlags()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "OPTION\tVALUE\tALLOWED\tDESCRIPTION")
	for _, o := range r.Options().Options() {
		value, _ := r.Options().Get(o.Name)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", o.Name, value, allowed(o), oneLine(o.Description))
	}
	return w.Flush()
}

func allowed(o recipe.Option) string {
	switch o.Kind {
	case recipe.Bool:
		return "true, false"
	case recipe.IntRange:
		s := fmt.Sprintf("%d..%d", o.Min, o.Max)
		if len(o.Values) > 0 {
			s += ", " + strings.Join(o.Values, ", ")
		}
		return s
	default:
		return strings.Join(o.Values, ", ")
	}
}

func oneLine(s string) string {
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return s[:i+1]
	}
	return s
}
