package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// renderCmd represents the render command.
var renderCmd = newRenderCmd()

func newRenderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render <url>",
		Short: "Print the server-rendered mount point markup for a URL",
		Long: `Render a single URL through the in-process render entry and print the markup
that would be placed inside the mount point. Query strings and fragments are
ignored and unknown paths render the not-found page.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := renderEntry(cmd.Context(), generateArgs())
			if err != nil {
				return err
			}

			markup, err := entry.RenderForPath(args[0])
			if err != nil {
				return fmt.Errorf("failed to render %s: %w", args[0], err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), markup)

			return err
		},
	}
}

func init() {
	rootCmd.AddCommand(renderCmd)
}
