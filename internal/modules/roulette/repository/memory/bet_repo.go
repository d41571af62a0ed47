package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/yuuhLKT/roulette-api/internal/modules/roulette/domain"
)

// BetRepository implements domain.BetRepository in memory.
// Per-round slices keep placement order, which is the order FindByRound
// must return.
type BetRepository struct {
	mu      sync.Mutex
	byRound map[int64][]*domain.Bet
	byID    map[int64]*domain.Bet
}

// NewBetRepository creates a new memory bet repository
func NewBetRepository() *BetRepository {
	return &BetRepository{
		byRound: make(map[int64][]*domain.Bet),
		byID:    make(map[int64]*domain.Bet),
	}
}

func (r *BetRepository) Create(ctx context.Context, bet *domain.Bet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *bet
	r.byRound[bet.RoundID] = append(r.byRound[bet.RoundID], &clone)
	r.byID[bet.ID] = &clone
	return nil
}

func (r *BetRepository) Update(ctx context.Context, bet *domain.Bet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[bet.ID]
	if !ok {
		return fmt.Errorf("bet %d not found", bet.ID)
	}
	*stored = *bet
	return nil
}

func (r *BetRepository) FindByRound(ctx context.Context, roundID int64) ([]*domain.Bet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bets := make([]*domain.Bet, 0, len(r.byRound[roundID]))
	for _, bet := range r.byRound[roundID] {
		clone := *bet
		bets = append(bets, &clone)
	}
	return bets, nil
}

func (r *BetRepository) FindByUser(ctx context.Context, userID int64) ([]*domain.Bet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var bets []*domain.Bet
	for roundID := range r.byRound {
		for _, bet := range r.byRound[roundID] {
			if bet.UserID == userID {
				clone := *bet
				bets = append(bets, &clone)
			}
		}
	}
	return bets, nil
}

func (r *BetRepository) DeleteByUser(ctx context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for roundID, bets := range r.byRound {
		kept := bets[:0]
		for _, bet := range bets {
			if bet.UserID == userID {
				delete(r.byID, bet.ID)
				continue
			}
			kept = append(kept, bet)
		}
		r.byRound[roundID] = kept
	}
	return nil
}
