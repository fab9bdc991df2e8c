package item

import "time"

// User item statuses. converted and shipped are terminal.
const (
	StatusAcquired  = "acquired"
	StatusKept      = "kept"
	StatusConverted = "converted"
	StatusShipped   = "shipped"
)

type UserItem struct {
	ID          string     `db:"id" json:"id"`
	UserID      int        `db:"user_id" json:"user_id"`
	ItemID      string     `db:"item_id" json:"item_id"`
	GachaID     string     `db:"gacha_id" json:"gacha_id"`
	Status      string     `db:"status" json:"status"`
	AcquiredAt  time.Time  `db:"acquired_at" json:"acquired_at"`
	ConvertedAt *time.Time `db:"converted_at" json:"converted_at,omitempty"`
}

// InventoryItem is a user item joined with its prize data for listing.
type InventoryItem struct {
	UserItem
	ItemName       string  `db:"item_name" json:"item_name"`
	Rarity         *string `db:"rarity" json:"rarity"`
	ImageURL       *string `db:"image_url" json:"image_url,omitempty"`
	ConversionRate int     `db:"conversion_rate" json:"conversion_rate"`
}
