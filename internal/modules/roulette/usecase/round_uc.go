package usecase

import (
	"context"

	"github.com/yuuhLKT/roulette-api/internal/modules/roulette/domain"
	"github.com/yuuhLKT/roulette-api/internal/modules/roulette/machine"
)

// RoundUseCase handles round queries
type RoundUseCase struct {
	rounds domain.RoundRepository
	bets   domain.BetRepository
}

// NewRoundUseCase creates a new round use case
func NewRoundUseCase(rounds domain.RoundRepository, bets domain.BetRepository) *RoundUseCase {
	return &RoundUseCase{rounds: rounds, bets: bets}
}

// GetRound returns the round projection with its bets
func (uc *RoundUseCase) GetRound(ctx context.Context, roundID int64) (*domain.RoundSnapshot, error) {
	round, err := uc.rounds.GetByID(ctx, roundID)
	if err != nil {
		return nil, err
	}
	bets, err := uc.bets.FindByRound(ctx, roundID)
	if err != nil {
		return nil, err
	}
	return machine.BuildSnapshot(round, bets, nil), nil
}

// GetAllRounds lists every round, oldest first
func (uc *RoundUseCase) GetAllRounds(ctx context.Context) ([]*domain.Round, error) {
	return uc.rounds.GetAll(ctx)
}
