package local

import (
	"context"
	"encoding/json"

	"github.com/reciperadar/reciperadar/internal/models"
	"github.com/reciperadar/reciperadar/internal/repository"
)

type recipeRepository struct {
	store *Store
}

// NewRecipeRepository creates the guest-mode recipe repository.
func NewRecipeRepository(store *Store) repository.RecipeRepository {
	return &recipeRepository{store: store}
}

func (r *recipeRepository) GetAll(ctx context.Context) ([]models.Recipe, error) {
	raw, ok, err := r.store.get(ctx, recipesKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []models.Recipe{}, nil
	}

	var recipes []models.Recipe
	if err := json.Unmarshal([]byte(raw), &recipes); err != nil {
		// Corrupt local data is treated as empty, never surfaced.
		r.store.logger.Warnf("Discarding unparseable local data for %q: %v", recipesKey, err)
		return []models.Recipe{}, nil
	}
	return recipes, nil
}

func (r *recipeRepository) Create(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	if err := r.save(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

func (r *recipeRepository) Update(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	if err := r.save(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

// save upserts by id: the first entity with a matching id is replaced,
// otherwise the recipe is appended. The full sequence is persisted back.
func (r *recipeRepository) save(ctx context.Context, recipe *models.Recipe) error {
	recipes, err := r.GetAll(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i := range recipes {
		if recipes[i].ID == recipe.ID {
			recipes[i] = *recipe
			replaced = true
			break
		}
	}
	if !replaced {
		recipes = append(recipes, *recipe)
	}

	return r.store.put(ctx, recipesKey, recipes)
}

func (r *recipeRepository) Delete(ctx context.Context, id string) error {
	recipes, err := r.GetAll(ctx)
	if err != nil {
		return err
	}

	kept := recipes[:0]
	for _, recipe := range recipes {
		if recipe.ID != id {
			kept = append(kept, recipe)
		}
	}

	return r.store.put(ctx, recipesKey, kept)
}
