package cmd

import (
	"fmt"

	"github.com/flarenetwork/bindgen/config"
	"github.com/spf13/cobra"
)

// addSingleFlags adds the various flags for the single command
func addSingleFlags() error {
	// Get the default project config and throw an error if we cant
	defaultConfig, err := config.GetDefaultProjectConfig(DefaultGeneratorPlatform)
	if err != nil {
		return err
	}

	// Prevent alphabetical sorting of usage message
	singleCmd.Flags().SortFlags = false

	addArtifactFlags(singleCmd, defaultConfig)

	// Network
	singleCmd.Flags().String("network", "",
		fmt.Sprintf("network to generate bindings for (unless a config file is provided, default is %q)", defaultConfig.Output.SingleNetwork))

	// Output file
	singleCmd.Flags().String("out", "",
		"file generated bindings are written to (unless a config file is provided, default is \"generated\" with the generator's source extension)")
	return nil
}

// updateProjectConfigWithSingleFlags will update the given projectConfig with any CLI arguments that were provided to
// the single command
func updateProjectConfigWithSingleFlags(cmd *cobra.Command, projectConfig *config.ProjectConfig) error {
	err := updateProjectConfigWithArtifactFlags(cmd, projectConfig)
	if err != nil {
		return err
	}

	// Update the network
	if cmd.Flags().Changed("network") {
		projectConfig.Output.SingleNetwork, err = cmd.Flags().GetString("network")
		if err != nil {
			return err
		}
	}

	// Update the output file
	if cmd.Flags().Changed("out") {
		projectConfig.Output.SingleOutputPath, err = cmd.Flags().GetString("out")
		if err != nil {
			return err
		}
	}
	return nil
}
