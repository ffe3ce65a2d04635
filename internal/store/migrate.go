package store

import (
	"context"
	"fmt"
)

// MigrateLocalToCloud uploads guest recipes and grocery items to the
// backend, then refreshes the collections so server-assigned ids replace
// local ones. Meals are not migrated: their recipe references point at
// local ids the backend does not know. Local storage is left intact; the
// cloud is authoritative from here on.
func (s *Store) MigrateLocalToCloud(ctx context.Context) error {
	if !s.authenticated.Load() {
		return ErrNotAuthenticated
	}

	recipes, err := s.local.Recipes.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to read local recipes: %w", err)
	}
	for i := range recipes {
		if _, err := s.remote.Recipes.Create(ctx, &recipes[i]); err != nil {
			return fmt.Errorf("failed to migrate recipe %q: %w", recipes[i].Title, err)
		}
	}

	groceries, err := s.local.Groceries.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to read local groceries: %w", err)
	}
	for i := range groceries {
		if _, err := s.remote.Groceries.Create(ctx, &groceries[i]); err != nil {
			return fmt.Errorf("failed to migrate grocery item %q: %w", groceries[i].Name, err)
		}
	}

	if len(recipes) > 0 || len(groceries) > 0 {
		s.logger.Infof("Migrated %d recipes and %d grocery items to the cloud", len(recipes), len(groceries))
	}

	fetchedRecipes, meals, fetchedGroceries, err := s.fetchAll(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.recipes = fetchedRecipes
	s.meals = meals
	s.groceries = fetchedGroceries
	s.mu.Unlock()
	return nil
}
