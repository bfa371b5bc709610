package internal

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/llarhub/gmp"
	"github.com/llarhub/gmp/logger"
	"github.com/llarhub/gmp/recipe"
)

var (
	flagVerbose         bool
	flagOS              string
	flagArch            string
	flagCompiler        string
	flagCompilerVersion string
	flagBuildType       string
	flagOptions         []string
)

var rootCmd = &cobra.Command{
	Use:   "gmpbuild",
	Short: "gmpbuild builds and packages the GNU MP library",
	Long: `gmpbuild is the build recipe for the GNU Multiple Precision Arithmetic
Library: it fetches an upstream release, drives its autotools build with the
configured options, and publishes the artifacts with consumption metadata.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetVerbose(flagVerbose)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Enable verbose output")
	pf.StringVar(&flagOS, "os", "", "Target OS (default: host)")
	pf.StringVar(&flagArch, "arch", "", "Target architecture (default: host)")
	pf.StringVar(&flagCompiler, "compiler", "", "Compiler (gcc, clang, apple-clang, msvc)")
	pf.StringVar(&flagCompilerVersion, "compiler-version", "", "Compiler version")
	pf.StringVar(&flagBuildType, "build-type", "", "Build type (Release, Debug)")
	pf.StringArrayVarP(&flagOptions, "option", "o", nil, "Set a build option (name=value, repeatable)")
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log := logger.Logger()
		log.Fatal().Err(err).Msg("gmpbuild failed")
	}
}

// settingsFromFlags returns host settings with flag overrides applied.
func settingsFromFlags() recipe.Settings {
	s := recipe.HostSettings()
	if flagOS != "" {
		s.OS = flagOS
	}
	if flagArch != "" {
		s.Arch = flagArch
	}
	if flagCompiler != "" {
		s.Compiler = flagCompiler
	}
	if flagCompilerVersion != "" {
		s.CompilerVersion = flagCompilerVersion
	}
	if flagBuildType != "" {
		s.BuildType = flagBuildType
	}
	return s
}

// recipeFromFlags resolves the recipe for the flag-selected platform and
// applies -o overrides.
func recipeFromFlags() (*gmp.Recipe, error) {
	r := gmp.New(settingsFromFlags())
	values := make(map[string]string, len(flagOptions))
	for _, kv := range flagOptions {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("invalid option %q, want name=value", kv)
		}
		values[name] = value
	}
	if err := r.Set(values); err != nil {
		return nil, err
	}
	return r, nil
}
