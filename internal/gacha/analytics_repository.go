package gacha

import (
	"context"
	"time"
)

type DrawStatsByDay struct {
	Bucket         string `db:"bucket" json:"bucket"`
	DrawsCompleted int    `db:"draws_completed" json:"draws_completed"`
	ItemsConverted int    `db:"items_converted" json:"items_converted"`
}

type DrawStatsByGacha struct {
	GachaID        string `db:"gacha_id" json:"gacha_id"`
	GachaName      string `db:"gacha_name" json:"gacha_name"`
	DrawsCompleted int    `db:"draws_completed" json:"draws_completed"`
	StockRemaining int    `db:"stock_remaining" json:"stock_remaining"`
}

func (r *repository) GetDrawStatsByDay(ctx context.Context, from, to time.Time) ([]DrawStatsByDay, error) {
	query := `
SELECT
  DATE(acquired_at)::text AS bucket,
  COUNT(*)                                        AS draws_completed,
  COUNT(*) FILTER (WHERE status = 'converted')    AS items_converted
FROM user_items
WHERE acquired_at BETWEEN $1 AND $2
GROUP BY DATE(acquired_at)
ORDER BY bucket;
`
	var stats []DrawStatsByDay
	if err := r.db.SelectContext(ctx, &stats, query, from, to); err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *repository) GetDrawStatsByGacha(ctx context.Context, from, to time.Time) ([]DrawStatsByGacha, error) {
	query := `
SELECT
  g.id            AS gacha_id,
  g.name          AS gacha_name,
  COUNT(ui.*)     AS draws_completed,
  g.current_stock AS stock_remaining
FROM gachas g
LEFT JOIN user_items ui ON ui.gacha_id = g.id AND ui.acquired_at BETWEEN $1 AND $2
GROUP BY g.id, g.name, g.current_stock
ORDER BY g.id;
`
	var stats []DrawStatsByGacha
	if err := r.db.SelectContext(ctx, &stats, query, from, to); err != nil {
		return nil, err
	}
	return stats, nil
}
