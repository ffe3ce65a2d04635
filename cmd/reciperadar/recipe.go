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

var recipeCmd = &cobra.Command{
	Use:   "recipe",
	Short: "Manage your recipe library",
}

var (
	recipeTitle        string
	recipeDescription  string
	recipeIngredients  []string
	recipeInstructions string
	recipePrep         int
	recipeCook         int
	recipeServings     int
	recipeDifficulty   string
	recipeTags         []string
	recipeImageURL     string
	recipeYes          bool
	recipePrompt       string
	recipeDietary      string
	recipeSave         bool
)

var recipeAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a recipe",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, app *App) error {
			recipe := &models.Recipe{
				ID:           local.GenerateID(),
				Title:        recipeTitle,
				Description:  recipeDescription,
				Ingredients:  recipeIngredients,
				Instructions: recipeInstructions,
				PrepTime:     recipePrep,
				CookTime:     recipeCook,
				Servings:     recipeServings,
				Difficulty:   models.NormalizeDifficulty(recipeDifficulty),
				Tags:         recipeTags,
				ImageURL:     recipeImageURL,
				CreatedAt:    time.Now().Format(time.RFC3339),
			}
			saved, err := app.Store.AddRecipe(ctx, recipe)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created recipe %s (%s)\n", saved.Title, saved.ID)
			return nil
		})
	},
}

var recipeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recipes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, app *App) error {
			recipes := app.Store.Recipes()
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tTITLE\tPREP\tCOOK\tSERVINGS\tDIFFICULTY\tTAGS")
			for _, r := range recipes {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%dm\t%dm\t%d\t%s\t%s\n",
					r.ID, r.Title, r.PrepTime, r.CookTime, r.Servings, r.Difficulty,
					strings.Join(r.Tags, ","))
			}
			return nil
		})
	},
}

var recipeDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a recipe",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirm(fmt.Sprintf("Delete recipe %s?", args[0]), recipeYes) {
			return nil
		}
		return withApp(func(ctx context.Context, app *App) error {
			if err := app.Store.DeleteRecipe(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted recipe %s\n", args[0])
			return nil
		})
	},
}

var recipeGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a recipe with AI (requires sign-in)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, app *App) error {
			recipe, err := app.Store.GenerateRecipe(ctx, recipePrompt, recipeDietary)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n%s\n\nIngredients:\n", recipe.Title, recipe.Description)
			for _, ing := range recipe.Ingredients {
				fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", ing)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", recipe.Instructions)

			if recipeSave {
				recipe.ID = local.GenerateID()
				recipe.CreatedAt = time.Now().Format(time.RFC3339)
				saved, err := app.Store.AddRecipe(ctx, recipe)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "\nSaved as %s\n", saved.ID)
			}
			return nil
		})
	},
}

func init() {
	recipeAddCmd.Flags().StringVar(&recipeTitle, "title", "", "Recipe title")
	recipeAddCmd.Flags().StringVar(&recipeDescription, "description", "", "Short description")
	recipeAddCmd.Flags().StringArrayVar(&recipeIngredients, "ingredient", nil, "Ingredient name (repeatable)")
	recipeAddCmd.Flags().StringVar(&recipeInstructions, "instructions", "", "Preparation instructions")
	recipeAddCmd.Flags().IntVar(&recipePrep, "prep", 0, "Prep time in minutes")
	recipeAddCmd.Flags().IntVar(&recipeCook, "cook", 0, "Cook time in minutes")
	recipeAddCmd.Flags().IntVar(&recipeServings, "servings", 1, "Number of servings")
	recipeAddCmd.Flags().StringVar(&recipeDifficulty, "difficulty", "Easy", "Easy, Medium or Hard")
	recipeAddCmd.Flags().StringArrayVar(&recipeTags, "tag", nil, "Free-text tag (repeatable)")
	recipeAddCmd.Flags().StringVar(&recipeImageURL, "image", "", "Image URL")
	_ = recipeAddCmd.MarkFlagRequired("title")

	recipeDeleteCmd.Flags().BoolVar(&recipeYes, "yes", false, "Skip confirmation")

	recipeGenerateCmd.Flags().StringVar(&recipePrompt, "prompt", "", "What to cook")
	recipeGenerateCmd.Flags().StringVar(&recipeDietary, "dietary", "", "Dietary restrictions")
	recipeGenerateCmd.Flags().BoolVar(&recipeSave, "save", false, "Save the generated recipe")
	_ = recipeGenerateCmd.MarkFlagRequired("prompt")

	recipeCmd.AddCommand(recipeAddCmd, recipeListCmd, recipeDeleteCmd, recipeGenerateCmd)
	rootCmd.AddCommand(recipeCmd)
}
