// Package store holds the single authoritative in-memory snapshot of
// session and domain data. Every mutation goes through its methods, which
// delegate persistence to the local or remote repository set depending on
// whether a user is signed in.
package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"

	"github.com/reciperadar/reciperadar/internal/api"
	"github.com/reciperadar/reciperadar/internal/models"
	"github.com/reciperadar/reciperadar/internal/repository"
)

// Store mediates every mutation of the three entity collections. When
// authenticated the backend is the source of truth; otherwise local
// persistence is. There is no reconciliation between the two beyond the
// one-time migration at sign-up.
type Store struct {
	logger *logrus.Logger
	client *api.Client
	tokens api.TokenStore
	local  repository.Set
	remote repository.Set

	authenticated *atomic.Bool

	mu        sync.RWMutex
	user      *models.User
	recipes   []models.Recipe
	meals     []models.Meal
	groceries []models.GroceryItem
}

// New wires the store and registers the session-expired handler so any
// 401 anywhere produces one consistent sign-out transition.
func New(client *api.Client, tokens api.TokenStore, localSet, remoteSet repository.Set, logger *logrus.Logger) *Store {
	s := &Store{
		logger:        logger,
		client:        client,
		tokens:        tokens,
		local:         localSet,
		remote:        remoteSet,
		authenticated: atomic.NewBool(false),
	}
	client.OnSessionExpired(s.handleSessionExpired)
	return s
}

// IsAuthenticated reports whether a user is signed in.
func (s *Store) IsAuthenticated() bool {
	return s.authenticated.Load()
}

// User returns the signed-in user, or nil.
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Recipes returns a copy of the in-memory recipe collection.
func (s *Store) Recipes() []models.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Recipe, len(s.recipes))
	copy(out, s.recipes)
	return out
}

// Meals returns a copy of the in-memory meal collection.
func (s *Store) Meals() []models.Meal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Meal, len(s.meals))
	copy(out, s.meals)
	return out
}

// GroceryItems returns a copy of the in-memory grocery collection.
func (s *Store) GroceryItems() []models.GroceryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.GroceryItem, len(s.groceries))
	copy(out, s.groceries)
	return out
}

// repos selects the persistence strategy for the current session state.
func (s *Store) repos() repository.Set {
	if s.authenticated.Load() {
		return s.remote
	}
	return s.local
}

// LoadLocal replaces the in-memory collections from guest storage. No-op
// when signed in; cloud data is authoritative then.
func (s *Store) LoadLocal(ctx context.Context) error {
	if s.authenticated.Load() {
		return nil
	}

	recipes, err := s.local.Recipes.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load local recipes: %w", err)
	}
	meals, err := s.local.Meals.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load local meals: %w", err)
	}
	groceries, err := s.local.Groceries.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load local groceries: %w", err)
	}

	s.mu.Lock()
	s.recipes = recipes
	s.meals = meals
	s.groceries = groceries
	s.mu.Unlock()
	return nil
}

// fetchAll runs the three collection fetches concurrently. If any fetch
// fails, no result is returned: commits are all-or-nothing.
func (s *Store) fetchAll(ctx context.Context) ([]models.Recipe, []models.Meal, []models.GroceryItem, error) {
	var (
		recipes   []models.Recipe
		meals     []models.Meal
		groceries []models.GroceryItem

		wg   sync.WaitGroup
		mu   sync.Mutex
		errs *multierror.Error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		got, err := s.remote.Recipes.GetAll(ctx)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("recipes: %w", err))
			return
		}
		recipes = got
	}()
	go func() {
		defer wg.Done()
		got, err := s.remote.Meals.GetAll(ctx)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("meals: %w", err))
			return
		}
		meals = got
	}()
	go func() {
		defer wg.Done()
		got, err := s.remote.Groceries.GetAll(ctx)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("groceries: %w", err))
			return
		}
		groceries = got
	}()
	wg.Wait()

	if err := errs.ErrorOrNil(); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to fetch collections: %w", err)
	}
	return recipes, meals, groceries, nil
}
