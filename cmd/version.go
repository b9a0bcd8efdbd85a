package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

const develVersion = "(devel)"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the sitegen build",
		Long: `Print the sitegen release, its module path, the Go toolchain it was built
with and, for builds from a checkout, the commit it was built from.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			info, ok := debug.ReadBuildInfo()
			if !ok {
				cmd.Println("sitegen: build information unavailable")
				return
			}

			for _, line := range buildLines(info) {
				cmd.Println(line)
			}
		},
	}
}

// buildLines formats the build information of a sitegen binary.
func buildLines(info *debug.BuildInfo) []string {
	version := info.Main.Version
	if version == "" {
		version = develVersion
	}

	lines := []string{"sitegen " + version}
	if info.Main.Path != "" {
		lines = append(lines, fmt.Sprintf("%-8s%s", "module", info.Main.Path))
	}

	lines = append(lines, fmt.Sprintf("%-8s%s", "go", info.GoVersion))

	var revision, modified string
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			modified = setting.Value
		}
	}

	if revision != "" {
		if modified == "true" {
			revision += " (modified)"
		}

		lines = append(lines, fmt.Sprintf("%-8s%s", "commit", revision))
	}

	return lines
}

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}
