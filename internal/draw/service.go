package draw

import (
	"context"

	"github.com/tunagu-ab/tunagatya-app/internal/logger"
	"github.com/tunagu-ab/tunagatya-app/internal/metrics"
)

// Notifier queues a post-draw confirmation email. Delivery is best effort.
type Notifier interface {
	SendDrawConfirmation(ctx context.Context, email, itemName string) error
}

type Service interface {
	Draw(ctx context.Context, userID int, userEmail, gachaID string) (*Result, error)
}

type service struct {
	repo     Repository
	selector Selector
	notifier Notifier
}

func NewService(repo Repository, selector Selector, notifier Notifier) Service {
	return &service{repo: repo, selector: selector, notifier: notifier}
}

func (s *service) Draw(ctx context.Context, userID int, userEmail, gachaID string) (*Result, error) {
	res, err := s.repo.ExecuteDraw(ctx, userID, gachaID, s.selector)
	if err != nil {
		return nil, err
	}

	metrics.SetGachaStock(gachaID, res.RemainingStock)

	if s.notifier != nil && userEmail != "" {
		if err := s.notifier.SendDrawConfirmation(ctx, userEmail, res.Item.Name); err != nil {
			logger.Errorf("Failed to queue draw confirmation for %s: %v", userEmail, err)
		}
	}

	return res, nil
}
