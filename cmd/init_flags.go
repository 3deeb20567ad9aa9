package cmd

import (
	"github.com/flarenetwork/bindgen/config"
	"github.com/flarenetwork/bindgen/generation/platforms"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// addInitFlags adds the various flags for the init command
func addInitFlags() error {
	// Output path for configuration
	initCmd.Flags().String("out", "", "output path for the new project configuration file")

	// Overwrite without prompting
	initCmd.Flags().Bool("force", false, "overwrite an existing project configuration file without prompting")

	// Import path of the generated Go bindings
	initCmd.Flags().String("import-path", "", "Go import path of the output directory (abigen platform only)")

	return nil
}

// updateProjectConfigWithInitFlags will update the given projectConfig with any CLI arguments that were provided to the init command
func updateProjectConfigWithInitFlags(cmd *cobra.Command, projectConfig *config.ProjectConfig) error {
	// Update the import path if necessary
	if cmd.Flags().Changed("import-path") {
		importPath, err := cmd.Flags().GetString("import-path")
		if err != nil {
			return err
		}

		platformConfig, err := projectConfig.Generator.GetPlatformConfig()
		if err != nil {
			return err
		}
		abigenConfig, ok := platformConfig.(*platforms.AbigenGeneratorConfig)
		if !ok {
			return errors.Errorf("--import-path is not supported by the '%s' platform", platformConfig.Platform())
		}
		abigenConfig.ImportPath = importPath

		err = projectConfig.Generator.SetPlatformConfig(abigenConfig)
		if err != nil {
			return err
		}
	}

	return nil
}
