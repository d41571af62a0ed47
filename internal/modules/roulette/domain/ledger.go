package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// UserRepository handles user persistence and balance bookkeeping.
// AdjustBalance must apply the delta atomically: two concurrent adjustments
// on the same user must never interleave their read-modify-write.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, userID int64) (*User, error)
	GetAll(ctx context.Context) ([]*User, error)
	AdjustBalance(ctx context.Context, userID int64, delta decimal.Decimal) (*User, error)
	Delete(ctx context.Context, userID int64) error
}

// RoundRepository handles round persistence. Create assigns the round id.
type RoundRepository interface {
	Create(ctx context.Context, round *Round) error
	Update(ctx context.Context, round *Round) error
	GetByID(ctx context.Context, roundID int64) (*Round, error)
	GetAll(ctx context.Context) ([]*Round, error)
}

// BetRepository handles bet persistence.
// FindByRound returns bets in placement order (arrival order of the round).
type BetRepository interface {
	Create(ctx context.Context, bet *Bet) error
	Update(ctx context.Context, bet *Bet) error
	FindByRound(ctx context.Context, roundID int64) ([]*Bet, error)
	FindByUser(ctx context.Context, userID int64) ([]*Bet, error)
	DeleteByUser(ctx context.Context, userID int64) error
}
