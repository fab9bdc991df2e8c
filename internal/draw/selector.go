package draw

import (
	"errors"
	"math/rand"
	"sync"
	"time"
)

var ErrEmptyPool = errors.New("prize pool is empty")

// Selector picks one candidate index from a non-empty pool.
type Selector interface {
	Pick(candidates []Candidate) (int, error)
}

// weightedSelector draws proportionally to weight * quantity, so each sealed
// copy is one ticket and rare prizes thin out as they are won.
type weightedSelector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewWeightedSelector() Selector {
	return &weightedSelector{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *weightedSelector) Pick(candidates []Candidate) (int, error) {
	total := 0
	for _, c := range candidates {
		if c.Quantity <= 0 || c.Weight <= 0 {
			continue
		}
		total += c.Weight * c.Quantity
	}
	if total <= 0 {
		return 0, ErrEmptyPool
	}

	s.mu.Lock()
	roll := s.rng.Intn(total)
	s.mu.Unlock()

	cumulative := 0
	for i, c := range candidates {
		if c.Quantity <= 0 || c.Weight <= 0 {
			continue
		}
		cumulative += c.Weight * c.Quantity
		if roll < cumulative {
			return i, nil
		}
	}

	// Unreachable when total > 0.
	return 0, ErrEmptyPool
}
