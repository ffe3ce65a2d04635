package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func parseClientID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid client id %q", arg)
	}
	return id, nil
}

var coachCmd = &cobra.Command{
	Use:   "coach",
	Short: "Coach and client linkage (requires sign-in)",
}

var (
	coachClientEmail string
	coachClientCode  string
)

var coachLinkCmd = &cobra.Command{
	Use:   "link",
	Short: "Link a client by email and linkage code",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, app *App) error {
			msg, err := app.Store.LinkClient(ctx, coachClientEmail, coachClientCode)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		})
	},
}

var coachUnlinkCmd = &cobra.Command{
	Use:   "unlink <client-id>",
	Short: "Unlink a client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		clientID, err := parseClientID(args[0])
		if err != nil {
			return err
		}
		return withApp(func(ctx context.Context, app *App) error {
			msg, err := app.Store.UnlinkClient(ctx, clientID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		})
	},
}

var coachClientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "List your linked clients",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, app *App) error {
			clients, err := app.Store.Clients(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tUSERNAME\tEMAIL\tFULL NAME")
			for _, c := range clients {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\n", c.ID, c.Username, c.Email, c.FullName)
			}
			return nil
		})
	},
}

var coachMealsCmd = &cobra.Command{
	Use:   "meals <client-id>",
	Short: "Show a client's planned meals",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		clientID, err := parseClientID(args[0])
		if err != nil {
			return err
		}
		return withApp(func(ctx context.Context, app *App) error {
			meals, err := app.Store.ClientMeals(ctx, clientID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "DATE\tSLOT\tRECIPE\tNOTES")
			for _, m := range meals {
				name := m.RecipeName
				if name == "" {
					name = "-"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", m.Date, m.MealType, name, m.Notes)
			}
			return nil
		})
	},
}

var coachRecipesCmd = &cobra.Command{
	Use:   "recipes <client-id>",
	Short: "Show a client's recipes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		clientID, err := parseClientID(args[0])
		if err != nil {
			return err
		}
		return withApp(func(ctx context.Context, app *App) error {
			recipes, err := app.Store.ClientRecipes(ctx, clientID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "TITLE\tPREP\tCOOK\tDIFFICULTY\tTAGS")
			for _, r := range recipes {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%dm\t%dm\t%s\t%s\n",
					r.Title, r.PrepTime, r.CookTime, r.Difficulty, strings.Join(r.Tags, ","))
			}
			return nil
		})
	},
}

var coachMyCoachCmd = &cobra.Command{
	Use:   "my-coach",
	Short: "Show your coach, if linked",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, app *App) error {
			coach, err := app.Store.MyCoach(ctx)
			if err != nil {
				return err
			}
			if coach == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No coach linked")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", coach.Username, coach.Email)
			return nil
		})
	},
}

func init() {
	coachLinkCmd.Flags().StringVar(&coachClientEmail, "email", "", "Client's account email")
	coachLinkCmd.Flags().StringVar(&coachClientCode, "code", "", "Client's linkage code")
	_ = coachLinkCmd.MarkFlagRequired("email")
	_ = coachLinkCmd.MarkFlagRequired("code")

	coachCmd.AddCommand(coachLinkCmd, coachUnlinkCmd, coachClientsCmd, coachMealsCmd, coachRecipesCmd, coachMyCoachCmd)
	rootCmd.AddCommand(coachCmd)
}
