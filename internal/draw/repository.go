package draw

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var (
	ErrGachaNotFound      = errors.New("gacha not found")
	ErrGachaInactive      = errors.New("gacha is not active")
	ErrOutOfStock         = errors.New("gacha is out of stock")
	ErrInsufficientPoints = errors.New("insufficient points")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(database *sqlx.DB) Repository {
	return &repository{db: database}
}

// ExecuteDraw settles one draw. The FOR UPDATE on the gacha row is the
// serialization point: concurrent draws on the same listing queue up behind
// it, so stock and pool quantities never go negative.
func (r *repository) ExecuteDraw(ctx context.Context, userID int, gachaID string, selector Selector) (*Result, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var g struct {
		Price        int    `db:"price"`
		CurrentStock int    `db:"current_stock"`
		Status       string `db:"status"`
	}
	err = tx.GetContext(ctx, &g,
		`SELECT price, current_stock, status FROM gachas WHERE id = $1 FOR UPDATE`,
		gachaID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGachaNotFound
		}
		return nil, err
	}

	if g.Status != "active" {
		return nil, ErrGachaInactive
	}
	if g.CurrentStock <= 0 {
		return nil, ErrOutOfStock
	}

	var balance int
	err = tx.GetContext(ctx, &balance,
		`SELECT current_points FROM user_balances WHERE user_id = $1 FOR UPDATE`,
		userID,
	)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if balance < g.Price {
		return nil, ErrInsufficientPoints
	}

	var candidates []Candidate
	err = tx.SelectContext(ctx, &candidates, `
		SELECT id, item_id, weight, quantity
		FROM gacha_items
		WHERE gacha_id = $1 AND quantity > 0
		ORDER BY id
	`, gachaID)
	if err != nil {
		return nil, err
	}

	idx, err := selector.Pick(candidates)
	if err != nil {
		return nil, err
	}
	won := candidates[idx]

	_, err = tx.ExecContext(ctx,
		`UPDATE gacha_items SET quantity = quantity - 1 WHERE id = $1`,
		won.PoolEntryID,
	)
	if err != nil {
		return nil, err
	}

	var remaining int
	err = tx.QueryRowxContext(ctx,
		`UPDATE gachas SET current_stock = current_stock - 1 WHERE id = $1 RETURNING current_stock`,
		gachaID,
	).Scan(&remaining)
	if err != nil {
		return nil, err
	}

	var newBalance int
	err = tx.QueryRowxContext(ctx,
		`UPDATE user_balances SET current_points = current_points - $1, updated_at = NOW()
		 WHERE user_id = $2 RETURNING current_points`,
		g.Price, userID,
	).Scan(&newBalance)
	if err != nil {
		return nil, err
	}

	var minted struct {
		ID         string       `db:"id"`
		AcquiredAt sql.NullTime `db:"acquired_at"`
	}
	err = tx.GetContext(ctx, &minted, `
		INSERT INTO user_items (user_id, item_id, gacha_id, status)
		VALUES ($1, $2, $3, 'acquired')
		RETURNING id, acquired_at
	`, userID, won.ItemID, gachaID)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO point_transactions (user_id, amount, type, balance_after)
		VALUES ($1, $2, 'draw_payment', $3)
	`, userID, -g.Price, newBalance)
	if err != nil {
		return nil, err
	}

	var prize struct {
		Name           string  `db:"name"`
		Rarity         *string `db:"rarity"`
		ImageURL       *string `db:"image_url"`
		ConversionRate int     `db:"default_point_conversion_rate"`
	}
	err = tx.GetContext(ctx, &prize, `
		SELECT name, rarity, image_url, default_point_conversion_rate
		FROM items WHERE id = $1
	`, won.ItemID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &Result{
		Item: DrawnItem{
			UserItemID:     minted.ID,
			ItemID:         won.ItemID,
			Name:           prize.Name,
			Rarity:         prize.Rarity,
			ImageURL:       prize.ImageURL,
			ConversionRate: prize.ConversionRate,
			AcquiredAt:     minted.AcquiredAt.Time,
		},
		RemainingStock: remaining,
		NewBalance:     newBalance,
	}, nil
}
