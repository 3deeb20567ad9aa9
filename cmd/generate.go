package cmd

import (
	"fmt"

	"github.com/flarenetwork/bindgen/config"
	"github.com/flarenetwork/bindgen/generation"
	"github.com/flarenetwork/bindgen/pipeline"
	"github.com/spf13/cobra"
)

// generateCmd represents the command provider for multi-network generation
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generates bindings for every contract of every configured network",
	Long: `Generates bindings for every contract of every configured network, followed by an index file per network
and a top-level index file aggregating each network under its own namespace`,
	Args:              cmdValidateGenerateArgs,
	ValidArgsFunction: cmdValidFlags,
	RunE:              cmdRunGenerate,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	// Add all the flags allowed for the generate command
	err := addGenerateFlags()
	if err != nil {
		cmdLogger.Panic("Failed to initialize the generate command", err)
	}

	// Add the generate command and its associated flags to the root command
	rootCmd.AddCommand(generateCmd)
}

// cmdValidateGenerateArgs makes sure that there are no positional arguments provided to the generate command
func cmdValidateGenerateArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		err = fmt.Errorf("generate does not accept any positional arguments, only flags and their associated values")
		cmdLogger.Error("Failed to validate args to the generate command", err)
		return err
	}
	return nil
}

// cmdRunGenerate executes the CLI generate command
func cmdRunGenerate(cmd *cobra.Command, args []string) error {
	projectConfig, err := loadProjectConfig(cmd)
	if err != nil {
		cmdLogger.Error("Failed to run the generate command", err)
		return err
	}

	// Update the project configuration given whatever flags were set using the CLI
	err = updateProjectConfigWithGenerateFlags(cmd, projectConfig)
	if err != nil {
		cmdLogger.Error("Failed to run the generate command", err)
		return err
	}

	return runWithProjectConfig("generate", projectConfig, func(projectConfig *config.ProjectConfig) (*generation.Report, error) {
		p, err := pipeline.NewPipeline(projectConfig)
		if err != nil {
			return nil, err
		}
		return p.Run(), nil
	})
}
