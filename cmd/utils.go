package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/flarenetwork/bindgen/cmd/exitcodes"
	"github.com/flarenetwork/bindgen/config"
	"github.com/flarenetwork/bindgen/generation"
	"github.com/flarenetwork/bindgen/logging"
	"github.com/flarenetwork/bindgen/logging/colors"
	"github.com/flarenetwork/bindgen/utils"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// cmdValidFlags returns the flags that have not been used yet, for dynamic completion of commands that accept no
// positional arguments.
func cmdValidFlags(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var unusedFlags []string
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		if !flag.Changed {
			unusedFlags = append(unusedFlags, "--"+flag.Name)
		}
	})
	return unusedFlags, cobra.ShellCompDirectiveNoFileComp
}

// loadProjectConfig resolves the project configuration for a command and changes the working directory to the
// directory containing it, so relative paths in the config resolve against it:
// #1: If a custom config file was provided (--config was used) or bindgen.json exists in the working directory, read
// it. If we can't read it, throw an error.
// #2: If a custom file was provided and we can't find it, throw an error.
// #3: If bindgen.json can't be found, use the default project configuration.
func loadProjectConfig(cmd *cobra.Command) (*config.ProjectConfig, error) {
	configFlagUsed := cmd.Flags().Changed("config")
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	if !configFlagUsed {
		workingDirectory, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		configPath = filepath.Join(workingDirectory, DefaultProjectConfigFilename)
	}

	var projectConfig *config.ProjectConfig
	_, existenceError := os.Stat(configPath)
	switch {
	case existenceError == nil:
		cmdLogger.Info("Reading the configuration file at: ", colors.Bold, configPath, colors.Reset)
		projectConfig, err = config.ReadProjectConfigFromFile(configPath, DefaultGeneratorPlatform)
		if err != nil {
			return nil, err
		}
	case configFlagUsed:
		return nil, existenceError
	default:
		cmdLogger.Warn(fmt.Sprintf("Unable to find the config file at %v, will use the default project configuration for the "+
			"%v generator platform instead", configPath, DefaultGeneratorPlatform))
		projectConfig, err = config.GetDefaultProjectConfig(DefaultGeneratorPlatform)
		if err != nil {
			return nil, err
		}
	}

	if err = os.Chdir(filepath.Dir(configPath)); err != nil {
		return nil, err
	}
	return projectConfig, nil
}

// setupGlobalLogger replaces the GlobalLogger with one configured by the project config, writing to stdout and, if
// a log directory is configured, to a structured log file. Returns a function closing the log file, if any.
func setupGlobalLogger(projectConfig *config.ProjectConfig) (func(), error) {
	if projectConfig.Logging.NoColor {
		colors.DisableColor()
	}

	logging.GlobalLogger = logging.NewLogger(projectConfig.Logging.Level)
	logging.GlobalLogger.AddWriter(os.Stdout, logging.UNSTRUCTURED, !projectConfig.Logging.NoColor)

	if projectConfig.Logging.LogDirectory == "" {
		return func() {}, nil
	}

	// Filename will be the "log-current_unix_timestamp.log"
	filename := "log-" + strconv.FormatInt(time.Now().Unix(), 10) + ".log"
	file, err := utils.CreateFile(projectConfig.Logging.LogDirectory, filename)
	if err != nil {
		return nil, err
	}
	logging.GlobalLogger.AddWriter(file, logging.STRUCTURED, false)
	return func() {
		logging.GlobalLogger.RemoveWriter(file, logging.STRUCTURED, false)
		_ = file.Close()
	}, nil
}

// updateProjectConfigWithArtifactFlags updates the artifact and output configuration shared by the generate and
// single commands with any flags that were provided.
func updateProjectConfigWithArtifactFlags(cmd *cobra.Command, projectConfig *config.ProjectConfig) error {
	var err error

	// Update the bundle directory
	if cmd.Flags().Changed("bundle-dir") {
		projectConfig.Artifacts.BundleDirectory, err = cmd.Flags().GetString("bundle-dir")
		if err != nil {
			return err
		}
	}

	// Update fail on error
	if cmd.Flags().Changed("fail-on-error") {
		projectConfig.Output.FailOnError, err = cmd.Flags().GetBool("fail-on-error")
		if err != nil {
			return err
		}
	}

	// Update the log level
	if cmd.Flags().Changed("log-level") {
		level, err := cmd.Flags().GetString("log-level")
		if err != nil {
			return err
		}
		projectConfig.Logging.Level, err = zerolog.ParseLevel(level)
		if err != nil {
			return err
		}
	}

	// Update colors
	if cmd.Flags().Changed("no-color") {
		projectConfig.Logging.NoColor, err = cmd.Flags().GetBool("no-color")
		if err != nil {
			return err
		}
	}
	return nil
}

// addArtifactFlags adds the flags shared by the generate and single commands.
func addArtifactFlags(cmd *cobra.Command, defaultConfig *config.ProjectConfig) {
	cmd.Flags().String("config", "", "path to config file")

	cmd.Flags().String("bundle-dir", "",
		fmt.Sprintf("root directory of the artifact bundle (unless a config file is provided, default is %q)", defaultConfig.Artifacts.BundleDirectory))

	cmd.Flags().Bool("fail-on-error", false,
		fmt.Sprintf("exit with a failure exit code if any item fails (unless a config file is provided, default is %t)", defaultConfig.Output.FailOnError))

	cmd.Flags().String("log-level", "",
		fmt.Sprintf("minimum level of emitted logs (unless a config file is provided, default is %q)", defaultConfig.Logging.Level))

	cmd.Flags().Bool("no-color", false,
		fmt.Sprintf("disable colored console output (unless a config file is provided, default is %t)", defaultConfig.Logging.NoColor))
}

// runWithProjectConfig validates the project config, sets up logging and invokes run with it. The returned report
// determines the exit code: a report with failures results in ExitCodeGenerationFailed if the config fails on errors.
func runWithProjectConfig(commandName string, projectConfig *config.ProjectConfig, run func(*config.ProjectConfig) (*generation.Report, error)) error {
	closeLog, err := setupGlobalLogger(projectConfig)
	if err != nil {
		cmdLogger.Error(fmt.Sprintf("Failed to run the %s command", commandName), err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeHandledError)
	}
	defer closeLog()

	report, err := run(projectConfig)
	if err != nil {
		cmdLogger.Error(fmt.Sprintf("Failed to run the %s command", commandName), err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeHandledError)
	}

	if report.HasFailures() && projectConfig.Output.FailOnError {
		return exitcodes.NewErrorWithExitCode(report.Err(), exitcodes.ExitCodeGenerationFailed)
	}
	return nil
}

// writeLine writes a line to the command's output stream.
func writeLine(w io.Writer, line string) {
	_, _ = fmt.Fprintln(w, line)
}
