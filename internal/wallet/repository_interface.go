package wallet

import "context"

type Repository interface {
	GetBalance(ctx context.Context, userID int) (*Balance, error)
	Charge(ctx context.Context, userID, amount int) (int, error)
	GetTransactions(ctx context.Context, userID, limit, offset int) ([]Transaction, error)
}
