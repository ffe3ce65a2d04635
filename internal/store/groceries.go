package store

import (
	"context"
	"fmt"
	"time"

	"github.com/reciperadar/reciperadar/internal/models"
)

// AddGroceryItem persists the item and appends the stored projection to
// the in-memory collection.
func (s *Store) AddGroceryItem(ctx context.Context, item *models.GroceryItem) (*models.GroceryItem, error) {
	saved, err := s.repos().Groceries.Create(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("failed to save grocery item: %w", err)
	}

	s.mu.Lock()
	s.groceries = append(s.groceries, *saved)
	s.mu.Unlock()
	return saved, nil
}

// UpdateGroceryItem persists the full item and commits the stored
// projection in place of the entry with the same id.
func (s *Store) UpdateGroceryItem(ctx context.Context, item *models.GroceryItem) (*models.GroceryItem, error) {
	updated, err := s.repos().Groceries.Update(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("failed to update grocery item: %w", err)
	}

	s.mu.Lock()
	for i := range s.groceries {
		if s.groceries[i].ID == updated.ID {
			s.groceries[i] = *updated
			break
		}
	}
	s.mu.Unlock()
	return updated, nil
}

// DeleteGroceryItem removes the item from persistence, then from memory.
func (s *Store) DeleteGroceryItem(ctx context.Context, id string) error {
	if err := s.repos().Groceries.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete grocery item: %w", err)
	}

	s.mu.Lock()
	kept := s.groceries[:0]
	for _, item := range s.groceries {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	s.groceries = kept
	s.mu.Unlock()
	return nil
}

// ExpiringItems returns unexpired items expiring within the given number
// of days. Signed in, the backend filters; guest mode buckets the
// in-memory collection.
func (s *Store) ExpiringItems(ctx context.Context, days int) ([]models.GroceryItem, error) {
	if s.authenticated.Load() {
		return s.client.GetExpiringSoon(ctx, days)
	}

	today := time.Now()
	var out []models.GroceryItem
	for _, item := range s.GroceryItems() {
		status, d := item.Expiration(today)
		if status == models.ExpirationNone || status == models.ExpirationExpired {
			continue
		}
		if d <= days {
			out = append(out, item)
		}
	}
	return out, nil
}
