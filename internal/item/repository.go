package item

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/tunagu-ab/tunagatya-app/internal/db"
)

var (
	ErrItemNotFound   = errors.New("item not found")
	ErrNotOwned       = errors.New("item does not belong to this user")
	ErrNotConvertible = errors.New("item is not in a convertible status")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(database *sqlx.DB) Repository {
	return &repository{db: database}
}

func (r *repository) ListByUser(ctx context.Context, userID int) ([]InventoryItem, error) {
	var items []InventoryItem
	err := db.ReadWithRetry(ctx, func(ctx context.Context) error {
		return r.db.SelectContext(ctx, &items, `
			SELECT ui.id, ui.user_id, ui.item_id, ui.gacha_id, ui.status,
			       ui.acquired_at, ui.converted_at,
			       i.name AS item_name, i.rarity,
			       i.image_url, i.default_point_conversion_rate AS conversion_rate
			FROM user_items ui
			JOIN items i ON i.id = ui.item_id
			WHERE ui.user_id = $1
			ORDER BY ui.acquired_at DESC
		`, userID)
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// ConvertToPoints flips a user item to converted and credits its conversion
// rate, all in one transaction. The row lock on the user item makes a second
// concurrent conversion of the same item wait and then fail the status check.
func (r *repository) ConvertToPoints(ctx context.Context, userID int, userItemID string) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var row struct {
		OwnerID int    `db:"user_id"`
		Status  string `db:"status"`
		Rate    int    `db:"conversion_rate"`
	}
	err = tx.GetContext(ctx, &row, `
		SELECT ui.user_id, ui.status, i.default_point_conversion_rate AS conversion_rate
		FROM user_items ui
		JOIN items i ON i.id = ui.item_id
		WHERE ui.id = $1
		FOR UPDATE OF ui
	`, userItemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrItemNotFound
		}
		return 0, err
	}

	if row.OwnerID != userID {
		return 0, ErrNotOwned
	}
	if row.Status != StatusAcquired && row.Status != StatusKept {
		return 0, ErrNotConvertible
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE user_items SET status = $1, converted_at = NOW() WHERE id = $2
	`, StatusConverted, userItemID)
	if err != nil {
		return 0, err
	}

	var newBalance int
	err = tx.QueryRowxContext(ctx, `
		INSERT INTO user_balances (user_id, current_points)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE
		SET current_points = user_balances.current_points + EXCLUDED.current_points,
		    updated_at = NOW()
		RETURNING current_points
	`, userID, row.Rate).Scan(&newBalance)
	if err != nil {
		return 0, err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO point_transactions (user_id, amount, type, balance_after)
		VALUES ($1, $2, 'item_conversion', $3)
	`, userID, row.Rate, newBalance)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return row.Rate, nil
}
