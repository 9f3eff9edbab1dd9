package database

import (
	"fmt"
	"time"

	"github.com/alhaannn/wordwings-prototype/pkg/models"
)

// InventoryRepository handles database operations for purchased items
type InventoryRepository struct{}

// NewInventoryRepository creates a new repository instance
func NewInventoryRepository() *InventoryRepository {
	return &InventoryRepository{}
}

// Insert records a purchased item. The same item may be purchased any number
// of times; each purchase gets its own row.
func (r *InventoryRepository) Insert(userID, itemID string, purchasedAt time.Time) error {
	query := rebind("INSERT INTO inventory (user_id, item_id, purchased_at) VALUES (?, ?, ?)")
	if _, err := DB.Exec(query, userID, itemID, purchasedAt); err != nil {
		return fmt.Errorf("failed to insert inventory entry: %v", err)
	}
	return nil
}

// List returns all items the user owns, oldest purchase first
func (r *InventoryRepository) List(userID string) ([]models.InventoryEntry, error) {
	var entries []models.InventoryEntry
	query := rebind("SELECT id, user_id, item_id, purchased_at FROM inventory WHERE user_id = ? ORDER BY purchased_at")
	if err := DB.Select(&entries, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list inventory: %v", err)
	}
	return entries, nil
}
