package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/reciperadar/reciperadar/internal/models"
	"github.com/reciperadar/reciperadar/internal/repository/local"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Manage your weekly meal plan",
}

var (
	planDate   string
	planDay    string
	planSlot   string
	planRecipe string
	planNotes  string
	planYes    bool
)

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

func resolvePlanDate() (string, error) {
	if planDate != "" {
		if _, err := time.Parse(models.DateLayout, planDate); err != nil {
			return "", fmt.Errorf("invalid --date %q: expected YYYY-MM-DD", planDate)
		}
		return planDate, nil
	}
	if planDay != "" {
		weekday, ok := weekdays[strings.ToLower(planDay)]
		if !ok {
			return "", fmt.Errorf("invalid --day %q", planDay)
		}
		return models.NextDateFor(time.Now(), weekday).Format(models.DateLayout), nil
	}
	return time.Now().Format(models.DateLayout), nil
}

var planAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Schedule a meal",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := resolvePlanDate()
		if err != nil {
			return err
		}
		return withApp(func(ctx context.Context, app *App) error {
			meal := &models.Meal{
				ID:        local.GenerateID(),
				Date:      date,
				MealType:  models.MealType(planSlot),
				RecipeID:  planRecipe,
				Notes:     planNotes,
				CreatedAt: time.Now().Format(time.RFC3339),
			}
			// Cache the recipe title for display; stale-tolerant.
			if planRecipe != "" {
				for _, r := range app.Store.Recipes() {
					if r.ID == planRecipe {
						meal.RecipeName = r.Title
						break
					}
				}
			}
			saved, err := app.Store.AddMeal(ctx, meal)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Planned %s on %s (%s)\n", saved.MealType, saved.Date, saved.ID)
			return nil
		})
	},
}

var planListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all planned meals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, app *App) error {
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tDATE\tSLOT\tRECIPE\tNOTES")
			for _, m := range app.Store.Meals() {
				name := m.RecipeName
				if name == "" {
					name = "-"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\t%s\n", m.ID, m.Date, m.MealType, name, m.Notes)
			}
			return nil
		})
	},
}

var planWeekCmd = &cobra.Command{
	Use:   "week",
	Short: "Show this week's plan by day and slot",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, app *App) error {
			meals, err := app.Store.WeekMeals(ctx, time.Now())
			if err != nil {
				return err
			}

			start := models.WeekStart(time.Now())
			for i := 0; i < 7; i++ {
				day := start.AddDate(0, 0, i)
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", day.Weekday(), day.Format(models.DateLayout))
				for _, slot := range models.MealTypes {
					planned := models.MealsOn(meals, day.Weekday(), slot)
					if len(planned) == 0 {
						continue
					}
					names := make([]string, 0, len(planned))
					for _, m := range planned {
						name := m.RecipeName
						if name == "" {
							name = m.Notes
						}
						names = append(names, name)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "  %-10s %s\n", slot, strings.Join(names, "; "))
				}
			}
			return nil
		})
	},
}

var planDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a planned meal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirm(fmt.Sprintf("Remove meal %s from the plan?", args[0]), planYes) {
			return nil
		}
		return withApp(func(ctx context.Context, app *App) error {
			if err := app.Store.DeleteMeal(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed meal %s\n", args[0])
			return nil
		})
	},
}

func init() {
	planAddCmd.Flags().StringVar(&planDate, "date", "", "Calendar date (YYYY-MM-DD)")
	planAddCmd.Flags().StringVar(&planDay, "day", "", "Weekday name; resolves to the next occurrence")
	planAddCmd.Flags().StringVar(&planSlot, "slot", string(models.MealDinner), "Breakfast, Lunch, Dinner or Snack")
	planAddCmd.Flags().StringVar(&planRecipe, "recipe", "", "Recipe id to schedule")
	planAddCmd.Flags().StringVar(&planNotes, "notes", "", "Freeform notes")

	planDeleteCmd.Flags().BoolVar(&planYes, "yes", false, "Skip confirmation")

	planCmd.AddCommand(planAddCmd, planListCmd, planWeekCmd, planDeleteCmd)
	rootCmd.AddCommand(planCmd)
}
