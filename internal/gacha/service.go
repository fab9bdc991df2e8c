package gacha

import (
	"context"
	"errors"
	"time"
)

var ErrInvalidPoolEntry = errors.New("invalid prize pool entry")

type Service interface {
	ListActive(ctx context.Context) ([]Gacha, error)
	GetDetail(ctx context.Context, id string) (*GachaDetail, error)
	CreateGacha(ctx context.Context, req CreateGachaRequest) (*Gacha, error)
	CreateItem(ctx context.Context, req CreateItemRequest) (*Item, error)
	AddPoolEntry(ctx context.Context, gachaID string, req AddPoolEntryRequest) (*PoolEntry, error)
	GetDrawStatsByDay(ctx context.Context, from, to time.Time) ([]DrawStatsByDay, error)
	GetDrawStatsByGacha(ctx context.Context, from, to time.Time) ([]DrawStatsByGacha, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListActive(ctx context.Context) ([]Gacha, error) {
	return s.repo.ListActive(ctx)
}

func (s *service) GetDetail(ctx context.Context, id string) (*GachaDetail, error) {
	gacha, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.ListPool(ctx, id)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []PoolEntryWithItem{}
	}

	return &GachaDetail{Gacha: *gacha, Items: items}, nil
}

func (s *service) CreateGacha(ctx context.Context, req CreateGachaRequest) (*Gacha, error) {
	return s.repo.CreateGacha(ctx, req)
}

func (s *service) CreateItem(ctx context.Context, req CreateItemRequest) (*Item, error) {
	return s.repo.CreateItem(ctx, req)
}

func (s *service) AddPoolEntry(ctx context.Context, gachaID string, req AddPoolEntryRequest) (*PoolEntry, error) {
	gacha, err := s.repo.GetByID(ctx, gachaID)
	if err != nil {
		return nil, err
	}

	// The pool must never promise more copies than the box holds.
	pool, err := s.repo.ListPool(ctx, gachaID)
	if err != nil {
		return nil, err
	}
	pooled := 0
	for _, e := range pool {
		pooled += e.Quantity
	}
	if pooled+req.Quantity > gacha.TotalStock {
		return nil, ErrInvalidPoolEntry
	}

	return s.repo.AddPoolEntry(ctx, gachaID, req)
}

func (s *service) GetDrawStatsByDay(ctx context.Context, from, to time.Time) ([]DrawStatsByDay, error) {
	return s.repo.GetDrawStatsByDay(ctx, from, to)
}

func (s *service) GetDrawStatsByGacha(ctx context.Context, from, to time.Time) ([]DrawStatsByGacha, error) {
	return s.repo.GetDrawStatsByGacha(ctx, from, to)
}
