package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var forceInitFlag bool

// initCmd represents the init command.
var initCmd = newInitCmd()

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a " + configFileName + " with the current sitegen settings",
		Long: `Write ` + configFileName + ` to the current directory with every sitegen setting at
its current value: the build directory (dist), the compiled shell (template)
and its mount id (mount_id), the route list (routes), the strategy, the
headless browser settings (headless.*), the snapshot data file (data) with its
API settings (api.*), the preview port (serve.port), the build manifest path
(manifest) and the log settings (log.*). Values passed as flags or SITEGEN_*
environment variables are written as well.

An existing file is kept unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			targetPath := filepath.Join(configFolderPath, configFileName)

			write := viper.SafeWriteConfigAs
			if forceInitFlag {
				write = viper.WriteConfigAs
			}

			if err := write(targetPath); err != nil {
				var exists viper.ConfigFileAlreadyExistsError
				if errors.As(err, &exists) {
					return fmt.Errorf("%s already exists, pass --force to overwrite it", targetPath)
				}

				return fmt.Errorf("failed to write config file: %w", err)
			}

			cmd.Printf("Wrote %s\n", targetPath)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&forceInitFlag, "force", "f", false, "overwrite an existing config file")

	return cmd
}

func init() {
	rootCmd.AddCommand(initCmd)
}
