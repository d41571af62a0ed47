package machine

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yuuhLKT/roulette-api/internal/metrics"
	"github.com/yuuhLKT/roulette-api/internal/modules/roulette/domain"
	"github.com/yuuhLKT/roulette-api/pkg/logger"
)

var (
	payoutColor = decimal.NewFromInt(2)
	payoutGreen = decimal.NewFromInt(14)
)

// Settler resolves the bets of a finished round against the winning color and
// applies each payout to the owning user's balance.
type Settler struct {
	users domain.UserRepository
	bets  domain.BetRepository
}

// NewSettler creates a settler backed by the given ledger repositories
func NewSettler(users domain.UserRepository, bets domain.BetRepository) *Settler {
	return &Settler{users: users, bets: bets}
}

// Resolve settles every PENDING bet of the round exactly once. Bet order is
// irrelevant to correctness since each bet only touches its own user's
// balance. Persistence failures are fatal for that bet only: the failure is
// logged per bet and the rest of the round still settles.
func (s *Settler) Resolve(ctx context.Context, bets []*domain.Bet, winning domain.Color) {
	started := time.Now()
	settled := 0

	for _, bet := range bets {
		if bet.Status != domain.BetStatusPending {
			// Already resolved, never settle twice.
			continue
		}

		status, winnings := outcome(bet, winning)

		// The stake was already debited at placement, so losers get no
		// balance adjustment; their negative winnings are bookkeeping only.
		if winnings.IsPositive() {
			if _, err := s.users.AdjustBalance(ctx, bet.UserID, winnings); err != nil {
				logger.Error(ctx).Err(err).
					Int64("bet_id", bet.ID).
					Int64("user_id", bet.UserID).
					Str("winnings", winnings.String()).
					Msg("settlement: payout failed, bet left unresolved")
				continue
			}
		}

		bet.Status = status
		bet.Winnings = decimal.NewNullDecimal(winnings)
		if err := s.bets.Update(ctx, bet); err != nil {
			logger.Error(ctx).Err(err).
				Int64("bet_id", bet.ID).
				Int64("user_id", bet.UserID).
				Str("status", string(status)).
				Msg("settlement: failed to persist resolved bet")
			continue
		}
		settled++
	}

	metrics.RecordSettlement(string(winning), settled, started)
}

// outcome computes a bet's resolution: winners on RED/BLACK net 2x the stake,
// winners on GREEN net 14x, losers forfeit the stake.
func outcome(bet *domain.Bet, winning domain.Color) (domain.BetStatus, decimal.Decimal) {
	if bet.Color != winning {
		return domain.BetStatusLost, bet.Amount.Neg()
	}
	if winning == domain.ColorGreen {
		return domain.BetStatusWon, bet.Amount.Mul(payoutGreen)
	}
	return domain.BetStatusWon, bet.Amount.Mul(payoutColor)
}
