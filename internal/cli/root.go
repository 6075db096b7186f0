// Package cli wires the cobra commands of the sepagen tool.
package cli

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// cfgFile holds the path to the configuration file, overridable with --config
var cfgFile string

// verbose enables debug-level logging
var verbose bool

// logger is shared by all commands; initialized before any command runs
var logger *zap.Logger

var rootCmd = &cobra.Command{
	Use:   "sepagen",
	Short: "Generate SEPA Direct Debit collection files for shared-housing charges",
	Long: `sepagen generates ISO 20022 pain.008.001.02 direct debit collection files
for the recurring charges of a shared house (rent, rental expenses, current
expenses), collected from the configured roommates on behalf of one creditor.

Each run derives its transaction numbers from the collection history of the
current month, builds one payment batch per expense nature, and records every
emitted transaction so future runs keep numbering consistent.`,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; real deployments set variables directly
		_ = godotenv.Load()

		var err error
		if verbose {
			logger, err = zap.NewDevelopment()
		} else {
			logger, err = zap.NewProduction()
		}
		return err
	},

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "sepagen.yaml", "path to the configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
