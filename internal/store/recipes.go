package store

import (
	"context"
	"fmt"

	"github.com/reciperadar/reciperadar/internal/models"
)

// AddRecipe persists the recipe (cloud when signed in, guest storage
// otherwise) and appends the stored projection to the in-memory
// collection. The collection is untouched when persistence fails.
func (s *Store) AddRecipe(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	saved, err := s.repos().Recipes.Create(ctx, recipe)
	if err != nil {
		return nil, fmt.Errorf("failed to save recipe: %w", err)
	}

	s.mu.Lock()
	s.recipes = append(s.recipes, *saved)
	s.mu.Unlock()
	return saved, nil
}

// UpdateRecipe persists the full recipe and commits the stored projection
// in place of the entry with the same id.
func (s *Store) UpdateRecipe(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	updated, err := s.repos().Recipes.Update(ctx, recipe)
	if err != nil {
		return nil, fmt.Errorf("failed to update recipe: %w", err)
	}

	s.mu.Lock()
	for i := range s.recipes {
		if s.recipes[i].ID == updated.ID {
			s.recipes[i] = *updated
			break
		}
	}
	s.mu.Unlock()
	return updated, nil
}

// DeleteRecipe removes the recipe from persistence, then from memory.
func (s *Store) DeleteRecipe(ctx context.Context, id string) error {
	if err := s.repos().Recipes.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}

	s.mu.Lock()
	kept := s.recipes[:0]
	for _, recipe := range s.recipes {
		if recipe.ID != id {
			kept = append(kept, recipe)
		}
	}
	s.recipes = kept
	s.mu.Unlock()
	return nil
}

// GenerateRecipe asks the backend's AI endpoint for a recipe. The result
// is returned unsaved; callers decide whether to AddRecipe it.
func (s *Store) GenerateRecipe(ctx context.Context, prompt, dietaryRestrictions string) (*models.Recipe, error) {
	if !s.authenticated.Load() {
		return nil, ErrNotAuthenticated
	}
	return s.client.GenerateRecipe(ctx, prompt, dietaryRestrictions)
}
