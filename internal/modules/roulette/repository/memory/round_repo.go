package memory

import (
	"context"
	"sync"

	"github.com/yuuhLKT/roulette-api/internal/modules/roulette/domain"
)

// RoundRepository implements domain.RoundRepository in memory
type RoundRepository struct {
	mu     sync.Mutex
	rounds map[int64]*domain.Round
	nextID int64
}

// NewRoundRepository creates a new memory round repository
func NewRoundRepository() *RoundRepository {
	return &RoundRepository{rounds: make(map[int64]*domain.Round)}
}

func (r *RoundRepository) Create(ctx context.Context, round *domain.Round) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	round.ID = r.nextID
	clone := *round
	r.rounds[round.ID] = &clone
	return nil
}

func (r *RoundRepository) Update(ctx context.Context, round *domain.Round) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rounds[round.ID]; !ok {
		return domain.ErrRoundNotFound
	}
	clone := *round
	r.rounds[round.ID] = &clone
	return nil
}

func (r *RoundRepository) GetByID(ctx context.Context, roundID int64) (*domain.Round, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	round, ok := r.rounds[roundID]
	if !ok {
		return nil, domain.ErrRoundNotFound
	}
	clone := *round
	return &clone, nil
}

func (r *RoundRepository) GetAll(ctx context.Context) ([]*domain.Round, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rounds := make([]*domain.Round, 0, len(r.rounds))
	for id := int64(1); id <= r.nextID; id++ {
		if round, ok := r.rounds[id]; ok {
			clone := *round
			rounds = append(rounds, &clone)
		}
	}
	return rounds, nil
}
