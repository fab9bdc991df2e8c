package item

import "context"

type Repository interface {
	ListByUser(ctx context.Context, userID int) ([]InventoryItem, error)
	ConvertToPoints(ctx context.Context, userID int, userItemID string) (int, error)
}
