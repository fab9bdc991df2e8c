package draw

import "time"

// Candidate is a pool entry still holding sealed copies, as seen inside the
// draw transaction.
type Candidate struct {
	PoolEntryID string `db:"id"`
	ItemID      string `db:"item_id"`
	Weight      int    `db:"weight"`
	Quantity    int    `db:"quantity"`
}

// DrawnItem is the minted user item joined with its prize display data.
type DrawnItem struct {
	UserItemID     string    `json:"user_item_id"`
	ItemID         string    `json:"item_id"`
	Name           string    `json:"name"`
	Rarity         *string   `json:"rarity"`
	ImageURL       *string   `json:"image_url"`
	ConversionRate int       `json:"conversion_rate"`
	AcquiredAt     time.Time `json:"acquired_at"`
}

type Result struct {
	Item           DrawnItem `json:"item"`
	RemainingStock int       `json:"remaining_stock"`
	NewBalance     int       `json:"new_balance"`
}
