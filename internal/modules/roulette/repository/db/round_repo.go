package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yuuhLKT/roulette-api/internal/modules/roulette/domain"
)

// RoundRepository handles round persistence
type RoundRepository struct {
	db *gorm.DB
}

// NewRoundRepository creates a new round repository
func NewRoundRepository(db *gorm.DB) *RoundRepository {
	return &RoundRepository{db: db}
}

// Create persists a new round and assigns its id
func (r *RoundRepository) Create(ctx context.Context, round *domain.Round) error {
	if err := r.db.WithContext(ctx).Create(round).Error; err != nil {
		return fmt.Errorf("failed to create round: %w", err)
	}
	return nil
}

// Update persists the round's current state
func (r *RoundRepository) Update(ctx context.Context, round *domain.Round) error {
	if err := r.db.WithContext(ctx).Save(round).Error; err != nil {
		return fmt.Errorf("failed to update round: %w", err)
	}
	return nil
}

// GetByID retrieves a round by id
func (r *RoundRepository) GetByID(ctx context.Context, roundID int64) (*domain.Round, error) {
	var round domain.Round
	if err := r.db.WithContext(ctx).First(&round, roundID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRoundNotFound
		}
		return nil, fmt.Errorf("failed to get round: %w", err)
	}
	return &round, nil
}

// GetAll retrieves all rounds, oldest first
func (r *RoundRepository) GetAll(ctx context.Context) ([]*domain.Round, error) {
	var rounds []*domain.Round
	if err := r.db.WithContext(ctx).Order("id").Find(&rounds).Error; err != nil {
		return nil, fmt.Errorf("failed to list rounds: %w", err)
	}
	return rounds, nil
}
