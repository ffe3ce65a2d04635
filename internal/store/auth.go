package store

import (
	"context"

	"github.com/reciperadar/reciperadar/internal/api"
	"github.com/reciperadar/reciperadar/internal/models"
)

// Login authenticates against the backend and replaces the in-memory
// collections wholesale with a fresh cloud fetch. On any failure the
// store remains signed out and its collections untouched.
func (s *Store) Login(ctx context.Context, email, password string) error {
	if err := s.client.Login(ctx, email, password); err != nil {
		return err
	}

	user, err := s.client.Me(ctx)
	if err != nil {
		return err
	}

	recipes, meals, groceries, err := s.fetchAll(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.user = user
	s.recipes = recipes
	s.meals = meals
	s.groceries = groceries
	s.mu.Unlock()
	s.authenticated.Store(true)

	s.logger.Infof("Signed in as %s", user.Username)
	return nil
}

// Register creates an account, signs in, and migrates guest data to the
// cloud. Migration happens exactly once, here.
func (s *Store) Register(ctx context.Context, in api.RegisterInput) (*models.User, error) {
	created, err := s.client.Register(ctx, in)
	if err != nil {
		return nil, err
	}
	s.logger.Infof("Registered account %s", created.Username)

	if err := s.Login(ctx, in.Email, in.Password); err != nil {
		return nil, err
	}
	if err := s.MigrateLocalToCloud(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

// Logout clears the credential and resets all session state. Nothing
// authenticated survives: user, collections, and token are all dropped.
func (s *Store) Logout() {
	if err := s.tokens.ClearToken(); err != nil {
		s.logger.Warnf("Failed to clear stored token: %v", err)
	}
	s.reset()
	s.logger.Info("Signed out")
}

// RestoreSession re-enters the signed-in state from a stored credential.
// It reports false when no credential is stored. A credential the backend
// no longer accepts is purged, leaving the store signed out.
func (s *Store) RestoreSession(ctx context.Context) (bool, error) {
	token, err := s.tokens.Token()
	if err != nil {
		return false, err
	}
	if token == "" {
		return false, nil
	}

	user, err := s.client.Me(ctx)
	var (
		recipes   []models.Recipe
		meals     []models.Meal
		groceries []models.GroceryItem
	)
	if err == nil {
		recipes, meals, groceries, err = s.fetchAll(ctx)
	}
	if err != nil {
		// A 401 already purged the token inside the client; clearing
		// again is harmless.
		if clearErr := s.tokens.ClearToken(); clearErr != nil {
			s.logger.Warnf("Failed to clear stored token: %v", clearErr)
		}
		s.reset()
		return false, err
	}

	s.mu.Lock()
	s.user = user
	s.recipes = recipes
	s.meals = meals
	s.groceries = groceries
	s.mu.Unlock()
	s.authenticated.Store(true)
	return true, nil
}

func (s *Store) reset() {
	s.authenticated.Store(false)
	s.mu.Lock()
	s.user = nil
	s.recipes = nil
	s.meals = nil
	s.groceries = nil
	s.mu.Unlock()
}

// handleSessionExpired is invoked by the api client on any 401. The token
// is already purged; this resets the in-memory session.
func (s *Store) handleSessionExpired() {
	if !s.authenticated.Load() {
		return
	}
	s.logger.Warn("Session expired, signing out")
	s.reset()
}
