package models

import (
	"math"
	"time"
)

// ExpirationStatus buckets a grocery item's days-to-expiration for
// display: expired, urgent (red), soon (orange), fresh (green).
type ExpirationStatus string

const (
	ExpirationNone    ExpirationStatus = "none"
	ExpirationExpired ExpirationStatus = "expired"
	ExpirationUrgent  ExpirationStatus = "urgent"
	ExpirationSoon    ExpirationStatus = "soon"
	ExpirationFresh   ExpirationStatus = "fresh"
)

// KnownUnits and KnownCategories are the recognized option sets offered
// by the UI. Free text is still accepted everywhere.
var (
	KnownUnits = []string{"piece", "kg", "g", "lb", "oz", "L", "mL", "cup", "tbsp", "tsp"}

	KnownCategories = []string{
		"Dairy", "Meat", "Vegetables", "Fruits", "Grains",
		"Spices", "Condiments", "Beverages", "Other",
	}
)

// GroceryItem represents a tracked inventory item. Expiration is a
// derived display concept, not a lifecycle event; items are never removed
// automatically.
type GroceryItem struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Quantity       float64 `json:"quantity"`
	Unit           string  `json:"unit"`
	Category       string  `json:"category"`
	ExpirationDate string  `json:"expirationDate,omitempty"` // YYYY-MM-DD
	CreatedAt      string  `json:"createdAt"`
}

// Expiration buckets the item relative to today on whole calendar days:
// days < 0 expired, 0-3 urgent, 4-6 soon, > 6 fresh. Items without an
// expiration date (or with an unparseable one) bucket as none.
func (g GroceryItem) Expiration(today time.Time) (ExpirationStatus, int) {
	if g.ExpirationDate == "" {
		return ExpirationNone, 0
	}
	exp, err := time.ParseInLocation(DateLayout, g.ExpirationDate, today.Location())
	if err != nil {
		return ExpirationNone, 0
	}
	midnight := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	// Rounding keeps the count on calendar days across DST transitions,
	// where a day in the span is 23 or 25 hours long.
	days := int(math.Round(exp.Sub(midnight).Hours() / 24))
	switch {
	case days < 0:
		return ExpirationExpired, days
	case days <= 3:
		return ExpirationUrgent, days
	case days <= 6:
		return ExpirationSoon, days
	default:
		return ExpirationFresh, days
	}
}
