// Package cli provides the extractview command line.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/extractview/internal/logger"
)

var (
	// version is set at build time.
	version = "dev"

	verbose   bool
	configDir string
	noConfig  bool
)

var rootCmd = &cobra.Command{
	Use:   "extractview",
	Short: "Show extracted spans linked to their source document",
	Long: `extractview shows a document next to the values extracted from it.

Every extracted span is highlighted in the document and listed in an outline
grouped by category. Pointing at a span in either view highlights it in both.

Without a file argument the input.path setting is used, and without that a
built-in sample e-mail is shown.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug output to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default ~/.extractview)")
	rootCmd.PersistentFlags().BoolVar(&noConfig, "no-config", false, "ignore the config file and use defaults")
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
