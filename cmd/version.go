package cmd

import (
	"github.com/flarenetwork/bindgen/version"
	"github.com/spf13/cobra"
)

// versionCmd represents the version command that displays build information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and build information",
	Long: `Print detailed version and build information for bindgen.

This includes the semantic version, git commit hash, build timestamp,
and Go version used to compile the binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		info := version.GetInfo()
		_, _ = cmd.OutOrStdout().Write([]byte(info.String()))
	},
}

func init() {
	rootCmd.Version = version.GetInfo().Short()
	rootCmd.AddCommand(versionCmd)
}
