package store

import (
	"context"
	"errors"

	"github.com/reciperadar/reciperadar/internal/models"
)

// ErrNotAuthenticated guards operations that have no guest equivalent.
var ErrNotAuthenticated = errors.New("not signed in")

// LinkClient links a client to the calling coach.
func (s *Store) LinkClient(ctx context.Context, clientEmail, clientCode string) (string, error) {
	if !s.authenticated.Load() {
		return "", ErrNotAuthenticated
	}
	return s.client.LinkClient(ctx, clientEmail, clientCode)
}

// UnlinkClient removes a coach/client relationship.
func (s *Store) UnlinkClient(ctx context.Context, clientID int64) (string, error) {
	if !s.authenticated.Load() {
		return "", ErrNotAuthenticated
	}
	return s.client.UnlinkClient(ctx, clientID)
}

// Clients lists the caller's linked clients.
func (s *Store) Clients(ctx context.Context) ([]models.ClientSummary, error) {
	if !s.authenticated.Load() {
		return nil, ErrNotAuthenticated
	}
	return s.client.Clients(ctx)
}

// ClientMeals fetches a linked client's meal plan.
func (s *Store) ClientMeals(ctx context.Context, clientID int64) ([]models.Meal, error) {
	if !s.authenticated.Load() {
		return nil, ErrNotAuthenticated
	}
	return s.client.ClientMeals(ctx, clientID)
}

// ClientRecipes fetches a linked client's recipe library.
func (s *Store) ClientRecipes(ctx context.Context, clientID int64) ([]models.Recipe, error) {
	if !s.authenticated.Load() {
		return nil, ErrNotAuthenticated
	}
	return s.client.ClientRecipes(ctx, clientID)
}

// MyCoach fetches the caller's coach.
func (s *Store) MyCoach(ctx context.Context) (*models.CoachSummary, error) {
	if !s.authenticated.Load() {
		return nil, ErrNotAuthenticated
	}
	return s.client.MyCoach(ctx)
}
