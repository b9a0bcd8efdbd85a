package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"smashers.dev/pkg/sitegen/internal/domain"
	m "smashers.dev/pkg/sitegen/internal/model"
)

var apiBaseURLFlag string

// snapshotDateFlag selects the schedule day captured by the snapshot.
var snapshotDateFlag string

// snapshotCmd represents the snapshot command.
var snapshotCmd = newSnapshotCmd()

func newSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Capture live pricing and schedule into a data file",
		Long: `Fetch the membership catalogue, the day's sessions and the hall list from
the club API and write them to the data file (--data). Later render and
generate runs read the file as static state, so rendering never touches the
network. When the single session membership cannot be fetched its default
price is used; without sessions or halls the static schedule stays.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			output := m.Path(viper.GetString(dataConfigKey))
			if output == "" {
				return fmt.Errorf("no data file configured: pass --%s or set %q", dataFlagName, dataConfigKey)
			}

			s := newSnapshotter(viper.GetString(apiBaseURLKey), viper.GetDuration(apiTimeoutKey))

			snap, err := s.Snapshot(cmd.Context(), domain.SnapshotArgs{
				Output:        output,
				SingleVisitID: viper.GetInt(apiSingleVisitIDKey),
				Date:          snapshotDateFlag,
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Saved %d memberships, %d sessions and %d locations to %s\n",
				len(snap.Memberships), len(snap.Sessions), len(snap.Locations), output)

			return err
		},
	}

	cmd.Flags().StringVar(&apiBaseURLFlag, apiFlagName, viper.GetString(apiBaseURLKey), "base URL of the club API")
	bindFlagToConfig(cmd.Flags().Lookup(apiFlagName), apiBaseURLKey)

	cmd.Flags().StringVar(&snapshotDateFlag, dateFlagName, "", "schedule day to capture as YYYY-MM-DD (default today)")

	return cmd
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
}
