package machine

import (
	"github.com/yuuhLKT/roulette-api/internal/modules/roulette/domain"
)

// BuildSnapshot assembles the read-only round+bets projection pushed to
// viewers. Bets keep their arrival order.
func BuildSnapshot(round *domain.Round, bets []*domain.Bet, timeRemaining *int64) *domain.RoundSnapshot {
	views := make([]domain.BetSnapshot, 0, len(bets))
	for _, bet := range bets {
		views = append(views, toBetSnapshot(bet))
	}

	return &domain.RoundSnapshot{
		RoundID:       round.ID,
		Status:        round.Status,
		WinningColor:  round.WinningColor,
		Bets:          views,
		TimeRemaining: timeRemaining,
	}
}

func toBetSnapshot(bet *domain.Bet) domain.BetSnapshot {
	view := domain.BetSnapshot{
		ID:        bet.ID,
		UserID:    bet.UserID,
		Amount:    bet.Amount,
		Color:     bet.Color,
		Status:    bet.Status,
		Timestamp: bet.PlacedAt,
		RoundID:   bet.RoundID,
	}
	if bet.Winnings.Valid {
		w := bet.Winnings.Decimal
		view.Winnings = &w
	}
	return view
}
