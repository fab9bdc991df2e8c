package wallet

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

var (
	ErrInsufficientPoints = errors.New("insufficient points")
	ErrInvalidAmount      = errors.New("amount must be positive")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetBalance(ctx context.Context, userID int) (*Balance, error) {
	var b Balance
	err := r.db.GetContext(ctx, &b,
		`SELECT user_id, current_points, updated_at FROM user_balances WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// No row means the wallet has never been touched: balance 0.
			return &Balance{UserID: userID, CurrentPoints: 0, UpdatedAt: time.Now()}, nil
		}
		return nil, err
	}
	return &b, nil
}

// Charge adds points as a single atomic upsert-increment. Two concurrent
// charges for the same user both land: there is no read-compute-write window
// for one of them to get lost in.
func (r *repository) Charge(ctx context.Context, userID, amount int) (int, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var newBalance int
	err = tx.QueryRowxContext(ctx,
		`INSERT INTO user_balances (user_id, current_points)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE
		 SET current_points = user_balances.current_points + EXCLUDED.current_points,
		     updated_at = NOW()
		 RETURNING current_points`,
		userID, amount,
	).Scan(&newBalance)
	if err != nil {
		return 0, err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO point_transactions (user_id, amount, type, balance_after)
		 VALUES ($1, $2, 'charge', $3)`,
		userID, amount, newBalance,
	)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return newBalance, nil
}

func (r *repository) GetTransactions(ctx context.Context, userID, limit, offset int) ([]Transaction, error) {
	if limit <= 0 {
		limit = 50
	}

	var txs []Transaction
	err := r.db.SelectContext(ctx, &txs, `
		SELECT id, user_id, amount, type, balance_after, created_at
		FROM point_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	return txs, nil
}
