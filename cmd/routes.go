package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"smashers.dev/pkg/sitegen/internal/controller"
	"smashers.dev/pkg/sitegen/internal/domain"
	m "smashers.dev/pkg/sitegen/internal/model"
	"smashers.dev/pkg/sitegen/internal/site"
)

// routesCmd represents the routes command.
var routesCmd = newRoutesCmd()

func newRoutesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the site's routes and their output files",
		Long: `List every route of the site with the page it renders and the file it is
written to. When a manifest from a previous run exists, the recorded
SHA-256 of each file is shown as well.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			outDir := m.Path(viper.GetString(distConfigKey))
			manifestPath := m.Path(viper.GetString(manifestConfigKey))

			manifest, err := manifestStore.LoadManifest(cmd.Context(), manifestPath)
			if err != nil {
				slog.Debug("No manifest loaded", "path", manifestPath, "error", err)
			}

			infos, err := routeInfos(site.DefaultTable(), outDir, manifest)
			if err != nil {
				return err
			}

			ui.DisplayRoutes(cmd.Context(), infos)

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(routesCmd)
}

func routeInfos(table *site.Table, outDir m.Path, manifest m.Manifest) ([]controller.RouteInfo, error) {
	routes := table.Routes()
	infos := make([]controller.RouteInfo, 0, len(routes))

	for _, r := range routes {
		file, err := domain.OutputPath(outDir, r.Path)
		if err != nil {
			return nil, err
		}

		info := controller.RouteInfo{Path: r.Path, Page: r.Page.Name, File: file}
		if recorded, ok := manifest.Lookup(r.Path); ok {
			info.Hash = recorded.Hash
		}

		infos = append(infos, info)
	}

	return infos, nil
}
