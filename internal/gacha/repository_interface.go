package gacha

import (
	"context"
	"time"
)

type Repository interface {
	ListActive(ctx context.Context) ([]Gacha, error)
	GetByID(ctx context.Context, id string) (*Gacha, error)
	ListPool(ctx context.Context, gachaID string) ([]PoolEntryWithItem, error)
	CreateGacha(ctx context.Context, req CreateGachaRequest) (*Gacha, error)
	CreateItem(ctx context.Context, req CreateItemRequest) (*Item, error)
	AddPoolEntry(ctx context.Context, gachaID string, req AddPoolEntryRequest) (*PoolEntry, error)
	GetDrawStatsByDay(ctx context.Context, from, to time.Time) ([]DrawStatsByDay, error)
	GetDrawStatsByGacha(ctx context.Context, from, to time.Time) ([]DrawStatsByGacha, error)
}
