package cmd

import (
	"fmt"

	"github.com/flarenetwork/bindgen/config"
	"github.com/flarenetwork/bindgen/generation"
	"github.com/flarenetwork/bindgen/pipeline"
	"github.com/spf13/cobra"
)

// singleCmd represents the command provider for single-network generation
var singleCmd = &cobra.Command{
	Use:   "single",
	Short: "Generates bindings for every contract of one network into a single file",
	Long: `Generates bindings for every contract of one network with a single generator invocation, writing them all
into one output file. No index files are written`,
	Args:              cmdValidateSingleArgs,
	ValidArgsFunction: cmdValidFlags,
	RunE:              cmdRunSingle,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	// Add all the flags allowed for the single command
	err := addSingleFlags()
	if err != nil {
		cmdLogger.Panic("Failed to initialize the single command", err)
	}

	// Add the single command and its associated flags to the root command
	rootCmd.AddCommand(singleCmd)
}

// cmdValidateSingleArgs makes sure that there are no positional arguments provided to the single command
func cmdValidateSingleArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		err = fmt.Errorf("single does not accept any positional arguments, only flags and their associated values")
		cmdLogger.Error("Failed to validate args to the single command", err)
		return err
	}
	return nil
}

// cmdRunSingle executes the CLI single command
func cmdRunSingle(cmd *cobra.Command, args []string) error {
	projectConfig, err := loadProjectConfig(cmd)
	if err != nil {
		cmdLogger.Error("Failed to run the single command", err)
		return err
	}

	// Update the project configuration given whatever flags were set using the CLI
	err = updateProjectConfigWithSingleFlags(cmd, projectConfig)
	if err != nil {
		cmdLogger.Error("Failed to run the single command", err)
		return err
	}

	return runWithProjectConfig("single", projectConfig, func(projectConfig *config.ProjectConfig) (*generation.Report, error) {
		p, err := pipeline.NewPipeline(projectConfig)
		if err != nil {
			return nil, err
		}
		return p.RunSingle(), nil
	})
}
