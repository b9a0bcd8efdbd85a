package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"smashers.dev/pkg/sitegen/internal/adapter"
	m "smashers.dev/pkg/sitegen/internal/model"
)

var servePortFlag int

// serveCmd represents the serve command.
var serveCmd = newServeCmd()

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Preview the generated site locally",
		Long: `Serve the build directory on the loopback interface. Directories resolve to
their index.html so pre-rendered routes are served as written; any other
missing path falls back to the root index.html. Stops on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cmd, m.Path(viper.GetString(distConfigKey)), viper.GetInt(servePortKey))
		},
	}

	cmd.Flags().IntVarP(&servePortFlag, portFlagName, "p", viper.GetInt(servePortKey), "port to listen on (0 picks a free port)")
	bindFlagToConfig(cmd.Flags().Lookup(portFlagName), servePortKey)

	return cmd
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// serve runs the preview server until ctx is done.
func serve(ctx context.Context, cmd *cobra.Command, root m.Path, port int) error {
	server := newStaticServer(adapter.StaticServerOptions{
		Root:     root,
		Addr:     net.JoinHostPort("127.0.0.1", strconv.Itoa(port)),
		DirIndex: true,
	})

	baseURL, err := server.Start(ctx)
	if err != nil {
		slog.Error("Failed to start preview server", "root", root, "port", port, "error", err)
		return fmt.Errorf("failed to start preview server: %w", err)
	}

	slog.Info("Serving build directory", "root", root, "url", baseURL)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Serving %s at %s\n", root, baseURL)

	<-ctx.Done()

	return server.Close(context.WithoutCancel(ctx))
}
