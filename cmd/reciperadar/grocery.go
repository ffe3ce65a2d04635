package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/reciperadar/reciperadar/internal/models"
	"github.com/reciperadar/reciperadar/internal/repository/local"
)

var groceryCmd = &cobra.Command{
	Use:   "grocery",
	Short: "Track grocery inventory and expirations",
}

var (
	groceryName     string
	groceryQuantity float64
	groceryUnit     string
	groceryCategory string
	groceryExpires  string
	groceryYes      bool
	groceryDays     int
)

func expirationLabel(item models.GroceryItem, today time.Time) string {
	status, days := item.Expiration(today)
	switch status {
	case models.ExpirationNone:
		return "no expiry"
	case models.ExpirationExpired:
		return "EXPIRED"
	default:
		switch days {
		case 0:
			return "expires today"
		case 1:
			return "expires tomorrow"
		default:
			return fmt.Sprintf("expires in %d days", days)
		}
	}
}

var groceryAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an item to your inventory",
	RunE: func(cmd *cobra.Command, args []string) error {
		if groceryExpires != "" {
			if _, err := time.Parse(models.DateLayout, groceryExpires); err != nil {
				return fmt.Errorf("invalid --expires %q: expected YYYY-MM-DD", groceryExpires)
			}
		}
		return withApp(func(ctx context.Context, app *App) error {
			item := &models.GroceryItem{
				ID:             local.GenerateID(),
				Name:           groceryName,
				Quantity:       groceryQuantity,
				Unit:           groceryUnit,
				Category:       groceryCategory,
				ExpirationDate: groceryExpires,
				CreatedAt:      time.Now().Format(time.RFC3339),
			}
			saved, err := app.Store.AddGroceryItem(ctx, item)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", saved.Name, saved.ID)
			return nil
		})
	},
}

var groceryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List inventory with expiration status",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, app *App) error {
			today := time.Now()
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tNAME\tQTY\tUNIT\tCATEGORY\tSTATUS")
			for _, item := range app.Store.GroceryItems() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%.2f\t%s\t%s\t%s\n",
					item.ID, item.Name, item.Quantity, item.Unit, item.Category,
					expirationLabel(item, today))
			}
			return nil
		})
	},
}

var groceryUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, app *App) error {
			var current *models.GroceryItem
			for _, item := range app.Store.GroceryItems() {
				if item.ID == args[0] {
					i := item
					current = &i
					break
				}
			}
			if current == nil {
				return fmt.Errorf("no grocery item with id %s", args[0])
			}

			if cmd.Flags().Changed("name") {
				current.Name = groceryName
			}
			if cmd.Flags().Changed("quantity") {
				current.Quantity = groceryQuantity
			}
			if cmd.Flags().Changed("unit") {
				current.Unit = groceryUnit
			}
			if cmd.Flags().Changed("category") {
				current.Category = groceryCategory
			}
			if cmd.Flags().Changed("expires") {
				current.ExpirationDate = groceryExpires
			}

			updated, err := app.Store.UpdateGroceryItem(ctx, current)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", updated.Name)
			return nil
		})
	},
}

var groceryDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirm(fmt.Sprintf("Delete grocery item %s?", args[0]), groceryYes) {
			return nil
		}
		return withApp(func(ctx context.Context, app *App) error {
			if err := app.Store.DeleteGroceryItem(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		})
	},
}

var groceryExpiringCmd = &cobra.Command{
	Use:   "expiring",
	Short: "List items expiring soon",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, app *App) error {
			items, err := app.Store.ExpiringItems(ctx, groceryDays)
			if err != nil {
				return err
			}
			today := time.Now()
			for _, item := range items {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", item.Name, expirationLabel(item, today))
			}
			return nil
		})
	},
}

func init() {
	groceryAddCmd.Flags().StringVar(&groceryName, "name", "", "Item name")
	groceryAddCmd.Flags().Float64Var(&groceryQuantity, "quantity", 1, "Quantity")
	groceryAddCmd.Flags().StringVar(&groceryUnit, "unit", "piece", "Unit (piece, kg, g, ...)")
	groceryAddCmd.Flags().StringVar(&groceryCategory, "category", "Other", "Category (Dairy, Meat, ...)")
	groceryAddCmd.Flags().StringVar(&groceryExpires, "expires", "", "Expiration date (YYYY-MM-DD)")
	_ = groceryAddCmd.MarkFlagRequired("name")

	groceryUpdateCmd.Flags().StringVar(&groceryName, "name", "", "Item name")
	groceryUpdateCmd.Flags().Float64Var(&groceryQuantity, "quantity", 1, "Quantity")
	groceryUpdateCmd.Flags().StringVar(&groceryUnit, "unit", "", "Unit")
	groceryUpdateCmd.Flags().StringVar(&groceryCategory, "category", "", "Category")
	groceryUpdateCmd.Flags().StringVar(&groceryExpires, "expires", "", "Expiration date (YYYY-MM-DD)")

	groceryDeleteCmd.Flags().BoolVar(&groceryYes, "yes", false, "Skip confirmation")

	groceryExpiringCmd.Flags().IntVar(&groceryDays, "days", 7, "Window in days")

	groceryCmd.AddCommand(groceryAddCmd, groceryListCmd, groceryUpdateCmd, groceryDeleteCmd, groceryExpiringCmd)
	rootCmd.AddCommand(groceryCmd)
}
