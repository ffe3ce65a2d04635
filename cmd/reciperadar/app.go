package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/reciperadar/reciperadar/internal/api"
	"github.com/reciperadar/reciperadar/internal/config"
	"github.com/reciperadar/reciperadar/internal/repository/local"
	"github.com/reciperadar/reciperadar/internal/repository/remote"
	"github.com/reciperadar/reciperadar/internal/store"
	"github.com/reciperadar/reciperadar/pkg/logger"
)

// App bundles the wired application for one command invocation.
type App struct {
	Config *config.Config
	Logger *logrus.Logger
	Local  *local.Store
	Client *api.Client
	Store  *store.Store
}

// withApp wires config, storage, api client and store, restores a stored
// session when one exists (falling back to guest data), and runs fn.
func withApp(fn func(ctx context.Context, app *App) error) error {
	// A .env file is optional.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel)

	ls, err := local.Open(cfg.DBPath, log)
	if err != nil {
		return err
	}
	defer ls.Close()

	client := api.NewClient(cfg.APIBaseURL, ls, log)
	st := store.New(client, ls, local.NewSet(ls), remote.NewSet(client), log)

	ctx := context.Background()
	if _, err := st.RestoreSession(ctx); err != nil {
		log.Debugf("Session restore failed: %v", err)
	}
	if !st.IsAuthenticated() {
		if err := st.LoadLocal(ctx); err != nil {
			return err
		}
	}

	return fn(ctx, &App{Config: cfg, Logger: log, Local: ls, Client: client, Store: st})
}

// confirm prompts for a destructive action unless --yes was given.
func confirm(prompt string, yes bool) bool {
	if yes {
		return true
	}
	fmt.Fprintf(os.Stderr, "%s [y/N] ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
