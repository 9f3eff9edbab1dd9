package models

import "time"

// ItemCategory groups market items on the market screen
type ItemCategory string

const (
	// CategoryFood is for consumable items
	CategoryFood ItemCategory = "food"
	// CategoryTool is for useful items
	CategoryTool ItemCategory = "tool"
	// CategoryTrinket is for decorative items
	CategoryTrinket ItemCategory = "trinket"
)

// MarketItem is a static catalog entry purchasable with WordCoins
type MarketItem struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Price       int          `json:"price"`
	Icon        string       `json:"icon"`
	Category    ItemCategory `json:"category"`
}

// InventoryEntry is a purchased copy of a market item. The same item may be
// owned multiple times.
type InventoryEntry struct {
	ID          int64     `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	ItemID      string    `json:"item_id" db:"item_id"`
	PurchasedAt time.Time `json:"purchased_at" db:"purchased_at"`
}
