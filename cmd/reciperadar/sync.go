package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Upload local guest data to your cloud account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, app *App) error {
			if err := app.Store.MigrateLocalToCloud(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Local data uploaded")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
