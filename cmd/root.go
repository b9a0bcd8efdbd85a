// Package cmd provides the root command and CLI setup for sitegen.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"smashers.dev/pkg/sitegen/internal/adapter"
	"smashers.dev/pkg/sitegen/internal/api"
	"smashers.dev/pkg/sitegen/internal/controller"
	"smashers.dev/pkg/sitegen/internal/domain"
	m "smashers.dev/pkg/sitegen/internal/model"
)

var fsAdapter adapter.SiteFSAdapter
var manifestStore adapter.ManifestStore
var ui controller.UI
var renderEntry domain.EntryFactory
var generator domain.Generator
var newStaticServer adapter.StaticServerFactory

// newSnapshotter builds the snapshotter once the API settings are known.
var newSnapshotter = func(baseURL string, timeout time.Duration) domain.Snapshotter {
	return domain.NewSnapshotter(fsAdapter, api.NewClient(baseURL, timeout))
}

// distFlag is the build output directory shared by every command.
var distFlag string

// dataFlag is the snapshot data file read by the renderer and written by snapshot.
var dataFlag string

// configFlag points at an alternative config file.
var configFlag string

// verboseFlag switches the log file to debug level.
var verboseFlag bool

// logFileFlag overrides the log file path.
var logFileFlag string

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSiteFSAdapter()
	manifestStore = adapter.NewLocalManifestStore()
	newStaticServer = adapter.LocalStaticServerFactory
	renderEntry = domain.NewSiteRenderEntry(fsAdapter)
	generator = domain.NewGenerator(
		fsAdapter,
		manifestStore,
		ui,
		domain.NewTemplateStrategy(fsAdapter, renderEntry),
		domain.NewHeadlessStrategy(fsAdapter, adapter.NewRodLauncher(), newStaticServer),
	)
}

const rootLongDescription = `Sitegen pre-renders every public route of the Smashers club site into
static HTML after the client bundle has been built, so crawlers and the
first paint see real content before the client hydrates it.

Two strategies are available:
  - template   renders pages in-process and splices them into dist/index.html
  - headless   serves dist/ locally and snapshots each route in headless Chromium`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "sitegen",
		Short:        "Static pre-renderer for the Smashers club site",
		Long:         rootLongDescription,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if configFlag != "" {
				viper.SetConfigFile(configFlag)
				if err := viper.ReadInConfig(); err != nil {
					return fmt.Errorf("failed to read config file %s: %w", configFlag, err)
				}
			}

			configureLogger(logFileFlag, verboseFlag || viper.GetBool(logVerboseKey))

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&distFlag, distFlagName, "d", viper.GetString(distConfigKey), "build output directory produced by the client build")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(distFlagName), distConfigKey)

	cmd.PersistentFlags().StringVar(&dataFlag, dataFlagName, viper.GetString(dataConfigKey), "snapshot data file with live pricing")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(dataFlagName), dataConfigKey)

	cmd.PersistentFlags().StringVar(&configFlag, configFlagName, "", "config file (default ./"+configFileName+")")

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", false, "log at debug level")

	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, "", "log file path (default "+defaultLogFilename+")")
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// generateArgs assembles the run arguments from flags and config.
func generateArgs() domain.GenerateArgs {
	return domain.GenerateArgs{
		Strategy: m.StrategyKind(viper.GetString(strategyConfigKey)),
		Routes:   viper.GetStringSlice(routesConfigKey),
		OutDir:   m.Path(viper.GetString(distConfigKey)),
		Template: m.Path(viper.GetString(templateConfigKey)),
		MountID:  viper.GetString(mountIDConfigKey),
		PagesDir: m.Path(viper.GetString(pagesDirConfigKey)),
		DataFile: m.Path(viper.GetString(dataConfigKey)),
		Manifest: m.Path(viper.GetString(manifestConfigKey)),
		Verify:   viper.GetBool(verifyConfigKey),
		Headless: headlessArgs(),
	}
}
