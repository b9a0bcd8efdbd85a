package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var strategyFlag string
var routeFlags []string
var verifyFlag bool
var dryRunFlag bool

const generateLongDescription = `Pre-render the site's routes into the build directory.

Every route in the list (default: every route of the site) is rendered and
written to <dist>/<route>/index.html, with the root route going to
<dist>/index.html. Preconditions are checked before the first route runs and
the run stops at the first failing route.

With --dry-run nothing is written; a unified diff against the existing
output is printed instead.`

// generateCmd represents the generate command.
var generateCmd = newGenerateCmd()

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Pre-render the site into static HTML",
		Long:  generateLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			args := generateArgs()
			args.DryRun = dryRunFlag

			_, err := generator.Generate(cmd.Context(), args)

			return err
		},
	}

	configureGenerateFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func configureGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&strategyFlag, strategyFlagName, "s", viper.GetString(strategyConfigKey), "generation strategy: template or headless")
	bindFlagToConfig(cmd.Flags().Lookup(strategyFlagName), strategyConfigKey)

	cmd.Flags().StringArrayVarP(&routeFlags, routeFlagName, "r", viper.GetStringSlice(routesConfigKey), "route to generate (can be repeated, default: every route)")
	bindFlagToConfig(cmd.Flags().Lookup(routeFlagName), routesConfigKey)

	cmd.Flags().BoolVar(&verifyFlag, verifyFlagName, viper.GetBool(verifyConfigKey), "fail unless every written page hydrates instead of rendering from scratch")
	bindFlagToConfig(cmd.Flags().Lookup(verifyFlagName), verifyConfigKey)

	cmd.Flags().BoolVar(&dryRunFlag, dryRunFlagName, false, "print a diff against the existing output and write nothing")
}
