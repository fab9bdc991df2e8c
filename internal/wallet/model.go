package wallet

import "time"

// Balance — ユーザーのポイント残高。
type Balance struct {
	UserID        int       `db:"user_id" json:"user_id"`
	CurrentPoints int       `db:"current_points" json:"current_points"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

type Transaction struct {
	ID           string    `db:"id" json:"id"`
	UserID       int       `db:"user_id" json:"user_id"`
	Amount       int       `db:"amount" json:"amount"`
	Type         string    `db:"type" json:"type"` // charge, draw_payment, item_conversion
	BalanceAfter int       `db:"balance_after" json:"balance_after"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type ChargeRequest struct {
	Amount int `json:"amount" binding:"required"`
}
