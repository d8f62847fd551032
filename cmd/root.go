package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "wikiicp",
	Short: "Knowledge-base search and AI assist service",
	Long: `wikiicp serves the knowledge-base REST API: full-text and taxonomy
search over help topics and tutorial videos, plus an AI assist endpoint that
grounds a completion provider on the matching content.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
