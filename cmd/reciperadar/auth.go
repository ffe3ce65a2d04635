package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reciperadar/reciperadar/internal/api"
	"github.com/reciperadar/reciperadar/internal/models"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage your account and session",
}

var (
	authEmail    string
	authPassword string
	authUsername string
	authFullName string
	authCoach    bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and load your cloud data",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, app *App) error {
			if app.Store.IsAuthenticated() {
				fmt.Fprintln(cmd.OutOrStdout(), "Already signed in; run 'reciperadar auth logout' first")
				return nil
			}
			if err := app.Store.Login(ctx, authEmail, authPassword); err != nil {
				return err
			}
			user := app.Store.User()
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s)\n", user.Username, user.Role)
			return nil
		})
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and move local data to the cloud",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, app *App) error {
			role := models.RoleClient
			if authCoach {
				role = models.RoleCoach
			}
			user, err := app.Store.Register(ctx, api.RegisterInput{
				Email:    authEmail,
				Username: authUsername,
				Password: authPassword,
				FullName: authFullName,
				Role:     role,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s (%s)\n", user.Username, user.Role)
			if user.ClientCode != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Your linkage code: %s\n", user.ClientCode)
			}
			return nil
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out (cloud data stays in the cloud)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, app *App) error {
			app.Store.Logout()
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		})
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, app *App) error {
			user := app.Store.User()
			if user == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Guest mode (data stays on this machine)")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> role=%s\n", user.Username, user.Email, user.Role)
			if user.ClientCode != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Linkage code: %s\n", user.ClientCode)
			}
			return nil
		})
	},
}

func init() {
	loginCmd.Flags().StringVar(&authEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&authPassword, "password", "", "Account password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")

	registerCmd.Flags().StringVar(&authEmail, "email", "", "Account email")
	registerCmd.Flags().StringVar(&authUsername, "username", "", "Account username")
	registerCmd.Flags().StringVar(&authPassword, "password", "", "Account password (min 8 chars)")
	registerCmd.Flags().StringVar(&authFullName, "full-name", "", "Full name")
	registerCmd.Flags().BoolVar(&authCoach, "coach", false, "Register as a coach")
	_ = registerCmd.MarkFlagRequired("email")
	_ = registerCmd.MarkFlagRequired("username")
	_ = registerCmd.MarkFlagRequired("password")

	authCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)
	rootCmd.AddCommand(authCmd)
}
