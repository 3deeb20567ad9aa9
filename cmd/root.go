package cmd

import (
	"os"

	"github.com/flarenetwork/bindgen/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// rootCmd represents the root CLI command object which all other commands stem from.
var rootCmd = &cobra.Command{
	Use:   "bindgen",
	Short: "Generates typed contract bindings from contract artifact bundles",
	Long: "bindgen scans per-network contract artifact bundles, extracts each contract's ABI, generates typed " +
		"bindings for it with an external generator, and writes per-network and top-level index files. Invoked " +
		"without a subcommand, it runs generate with its defaults",
	Args:          cobra.NoArgs,
	RunE:          cmdRunRoot,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// cmdRunRoot runs the generate command with its default flags
func cmdRunRoot(cmd *cobra.Command, args []string) error {
	return cmdRunGenerate(generateCmd, args)
}

// cmdLogger is the logger that will be used for the cmd package
var cmdLogger = logging.NewLogger(zerolog.InfoLevel)

func init() {
	cmdLogger.AddWriter(os.Stdout, logging.UNSTRUCTURED, true)
}

// Execute provides an exportable function to invoke the CLI. Returns an error if one was encountered.
func Execute() error {
	return rootCmd.Execute()
}
