package cmd

import (
	"fmt"

	"github.com/flarenetwork/bindgen/config"
	"github.com/spf13/cobra"
)

// addGenerateFlags adds the various flags for the generate command
func addGenerateFlags() error {
	// Get the default project config and throw an error if we cant
	defaultConfig, err := config.GetDefaultProjectConfig(DefaultGeneratorPlatform)
	if err != nil {
		return err
	}

	// Prevent alphabetical sorting of usage message
	generateCmd.Flags().SortFlags = false

	addArtifactFlags(generateCmd, defaultConfig)

	// Networks
	generateCmd.Flags().StringSlice("networks", []string{},
		fmt.Sprintf("networks to generate bindings for, in order (unless a config file is provided, default is %v)", defaultConfig.Artifacts.Networks))

	// Output directory
	generateCmd.Flags().String("out-dir", "",
		fmt.Sprintf("directory generated files are written to (unless a config file is provided, default is %q)", defaultConfig.Output.Directory))
	return nil
}

// updateProjectConfigWithGenerateFlags will update the given projectConfig with any CLI arguments that were provided to
// the generate command
func updateProjectConfigWithGenerateFlags(cmd *cobra.Command, projectConfig *config.ProjectConfig) error {
	err := updateProjectConfigWithArtifactFlags(cmd, projectConfig)
	if err != nil {
		return err
	}

	// Update networks
	if cmd.Flags().Changed("networks") {
		projectConfig.Artifacts.Networks, err = cmd.Flags().GetStringSlice("networks")
		if err != nil {
			return err
		}
	}

	// Update the output directory
	if cmd.Flags().Changed("out-dir") {
		projectConfig.Output.Directory, err = cmd.Flags().GetString("out-dir")
		if err != nil {
			return err
		}
	}
	return nil
}
