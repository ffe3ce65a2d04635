package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "reciperadar",
	Short:        "reciperadar plans meals and tracks groceries from your terminal",
	Long:         "reciperadar is a local-first meal planning and grocery tracking CLI with optional cloud sync and coach/client sharing. Without an account everything stays on this machine; sign in to keep your data in the cloud.",
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
