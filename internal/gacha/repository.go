package gacha

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tunagu-ab/tunagatya-app/internal/db"
)

var ErrGachaNotFound = errors.New("gacha not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(database *sqlx.DB) Repository {
	return &repository{db: database}
}

func (r *repository) ListActive(ctx context.Context) ([]Gacha, error) {
	query := `
		SELECT id, name, description, thumbnail_url, price, current_stock, total_stock, category, status, created_at
		FROM gachas
		WHERE status = 'active'
		ORDER BY created_at DESC
	`

	var gachas []Gacha
	err := db.ReadWithRetry(ctx, func(ctx context.Context) error {
		return r.db.SelectContext(ctx, &gachas, query)
	})
	if err != nil {
		return nil, err
	}

	return gachas, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Gacha, error) {
	query := `
		SELECT id, name, description, thumbnail_url, price, current_stock, total_stock, category, status, created_at
		FROM gachas
		WHERE id = $1
	`

	var gacha Gacha
	err := db.ReadWithRetry(ctx, func(ctx context.Context) error {
		return r.db.GetContext(ctx, &gacha, query, id)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGachaNotFound
		}
		return nil, err
	}

	return &gacha, nil
}

func (r *repository) ListPool(ctx context.Context, gachaID string) ([]PoolEntryWithItem, error) {
	query := `
		SELECT
			gi.id,
			gi.gacha_id,
			gi.item_id,
			gi.weight,
			gi.quantity,
			i.name AS item_name,
			i.rarity,
			i.image_url
		FROM gacha_items gi
		JOIN items i ON gi.item_id = i.id
		WHERE gi.gacha_id = $1
		ORDER BY gi.weight ASC, i.name ASC
	`

	var entries []PoolEntryWithItem
	err := db.ReadWithRetry(ctx, func(ctx context.Context) error {
		return r.db.SelectContext(ctx, &entries, query, gachaID)
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *repository) CreateGacha(ctx context.Context, req CreateGachaRequest) (*Gacha, error) {
	query := `
		INSERT INTO gachas (id, name, description, thumbnail_url, price, current_stock, total_stock, category, status)
		VALUES ($1, $2, $3, $4, $5, $6, $6, $7, 'active')
		RETURNING id, name, description, thumbnail_url, price, current_stock, total_stock, category, status, created_at
	`

	var gacha Gacha
	err := r.db.GetContext(ctx, &gacha, query,
		uuid.NewString(), req.Name, req.Description, req.ThumbnailURL, req.Price, req.TotalStock, req.Category)
	if err != nil {
		return nil, err
	}

	return &gacha, nil
}

func (r *repository) CreateItem(ctx context.Context, req CreateItemRequest) (*Item, error) {
	query := `
		INSERT INTO items (id, name, rarity, image_url, default_point_conversion_rate)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, rarity, image_url, default_point_conversion_rate, created_at
	`

	var item Item
	err := r.db.GetContext(ctx, &item, query,
		uuid.NewString(), req.Name, req.Rarity, req.ImageURL, req.DefaultPointConversionRate)
	if err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *repository) AddPoolEntry(ctx context.Context, gachaID string, req AddPoolEntryRequest) (*PoolEntry, error) {
	query := `
		INSERT INTO gacha_items (id, gacha_id, item_id, weight, quantity)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, gacha_id, item_id, weight, quantity
	`

	var entry PoolEntry
	err := r.db.GetContext(ctx, &entry, query, uuid.NewString(), gachaID, req.ItemID, req.Weight, req.Quantity)
	if err != nil {
		return nil, err
	}

	return &entry, nil
}
