package db

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/yuuhLKT/roulette-api/internal/modules/roulette/domain"
)

// BetRepository handles bet persistence
type BetRepository struct {
	db *gorm.DB
}

// NewBetRepository creates a new bet repository
func NewBetRepository(db *gorm.DB) *BetRepository {
	return &BetRepository{db: db}
}

// Create persists a new bet
func (r *BetRepository) Create(ctx context.Context, bet *domain.Bet) error {
	if err := r.db.WithContext(ctx).Create(bet).Error; err != nil {
		return fmt.Errorf("failed to create bet: %w", err)
	}
	return nil
}

// Update persists a bet's settlement result
func (r *BetRepository) Update(ctx context.Context, bet *domain.Bet) error {
	if err := r.db.WithContext(ctx).Save(bet).Error; err != nil {
		return fmt.Errorf("failed to update bet: %w", err)
	}
	return nil
}

// FindByRound returns the round's bets in placement order
func (r *BetRepository) FindByRound(ctx context.Context, roundID int64) ([]*domain.Bet, error) {
	var bets []*domain.Bet
	err := r.db.WithContext(ctx).
		Where("round_id = ?", roundID).
		Order("placed_at, id").
		Find(&bets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find bets by round: %w", err)
	}
	return bets, nil
}

// FindByUser returns all bets ever placed by the user
func (r *BetRepository) FindByUser(ctx context.Context, userID int64) ([]*domain.Bet, error) {
	var bets []*domain.Bet
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("placed_at, id").
		Find(&bets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find bets by user: %w", err)
	}
	return bets, nil
}

// DeleteByUser removes all bets of a user (used when the user is deleted)
func (r *BetRepository) DeleteByUser(ctx context.Context, userID int64) error {
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.Bet{}).Error; err != nil {
		return fmt.Errorf("failed to delete bets by user: %w", err)
	}
	return nil
}
