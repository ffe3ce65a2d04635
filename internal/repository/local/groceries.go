package local

import (
	"context"
	"encoding/json"

	"github.com/reciperadar/reciperadar/internal/models"
	"github.com/reciperadar/reciperadar/internal/repository"
)

type groceryRepository struct {
	store *Store
}

// NewGroceryRepository creates the guest-mode grocery repository.
func NewGroceryRepository(store *Store) repository.GroceryRepository {
	return &groceryRepository{store: store}
}

func (r *groceryRepository) GetAll(ctx context.Context) ([]models.GroceryItem, error) {
	raw, ok, err := r.store.get(ctx, groceriesKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []models.GroceryItem{}, nil
	}

	var items []models.GroceryItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		r.store.logger.Warnf("Discarding unparseable local data for %q: %v", groceriesKey, err)
		return []models.GroceryItem{}, nil
	}
	return items, nil
}

func (r *groceryRepository) Create(ctx context.Context, item *models.GroceryItem) (*models.GroceryItem, error) {
	if err := r.save(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (r *groceryRepository) Update(ctx context.Context, item *models.GroceryItem) (*models.GroceryItem, error) {
	if err := r.save(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (r *groceryRepository) save(ctx context.Context, item *models.GroceryItem) error {
	items, err := r.GetAll(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i := range items {
		if items[i].ID == item.ID {
			items[i] = *item
			replaced = true
			break
		}
	}
	if !replaced {
		items = append(items, *item)
	}

	return r.store.put(ctx, groceriesKey, items)
}

func (r *groceryRepository) Delete(ctx context.Context, id string) error {
	items, err := r.GetAll(ctx)
	if err != nil {
		return err
	}

	kept := items[:0]
	for _, item := range items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}

	return r.store.put(ctx, groceriesKey, kept)
}
