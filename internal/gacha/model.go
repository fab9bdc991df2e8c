package gacha

import "time"

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type Gacha struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Description  *string   `db:"description" json:"description"`
	ThumbnailURL *string   `db:"thumbnail_url" json:"thumbnail_url"`
	Price        int       `db:"price" json:"price"`
	CurrentStock int       `db:"current_stock" json:"current_stock"`
	TotalStock   int       `db:"total_stock" json:"total_stock"`
	Category     *string   `db:"category" json:"category"`
	Status       string    `db:"status" json:"status"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Item is a catalog prize, immutable once created.
type Item struct {
	ID                         string    `db:"id" json:"id"`
	Name                       string    `db:"name" json:"name"`
	Rarity                     *string   `db:"rarity" json:"rarity"`
	ImageURL                   *string   `db:"image_url" json:"image_url"`
	DefaultPointConversionRate int       `db:"default_point_conversion_rate" json:"default_point_conversion_rate"`
	CreatedAt                  time.Time `db:"created_at" json:"created_at"`
}

// PoolEntry ties a prize to a listing with a draw weight and the number of
// copies still sealed in the box.
type PoolEntry struct {
	ID       string `db:"id" json:"id"`
	GachaID  string `db:"gacha_id" json:"gacha_id"`
	ItemID   string `db:"item_id" json:"item_id"`
	Weight   int    `db:"weight" json:"weight"`
	Quantity int    `db:"quantity" json:"quantity"`
}

// PoolEntryWithItem is what the detail page renders: pool data joined with
// the prize's display fields.
type PoolEntryWithItem struct {
	PoolEntry
	ItemName string  `db:"item_name" json:"item_name"`
	Rarity   *string `db:"rarity" json:"rarity"`
	ImageURL *string `db:"image_url" json:"image_url"`
}

type GachaDetail struct {
	Gacha
	Items []PoolEntryWithItem `json:"items"`
}

type CreateGachaRequest struct {
	Name         string  `json:"name" binding:"required"`
	Description  *string `json:"description"`
	ThumbnailURL *string `json:"thumbnail_url"`
	Price        int     `json:"price" binding:"required,min=1"`
	TotalStock   int     `json:"total_stock" binding:"required,min=1"`
	Category     *string `json:"category"`
}

type CreateItemRequest struct {
	Name                       string  `json:"name" binding:"required"`
	Rarity                     *string `json:"rarity"`
	ImageURL                   *string `json:"image_url"`
	DefaultPointConversionRate int     `json:"default_point_conversion_rate" binding:"min=0"`
}

type AddPoolEntryRequest struct {
	ItemID   string `json:"item_id" binding:"required,uuid"`
	Weight   int    `json:"weight" binding:"required,min=1"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}
