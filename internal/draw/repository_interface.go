package draw

import "context"

type Repository interface {
	// ExecuteDraw runs the whole draw settlement in one transaction, using
	// selector to pick the prize from the live pool.
	ExecuteDraw(ctx context.Context, userID int, gachaID string, selector Selector) (*Result, error)
}
