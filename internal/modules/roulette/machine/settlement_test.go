package machine

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuuhLKT/roulette-api/internal/modules/roulette/domain"
	"github.com/yuuhLKT/roulette-api/internal/modules/roulette/repository/memory"
	"github.com/yuuhLKT/roulette-api/pkg/logger"
)

func init() {
	logger.Init(logger.Config{Level: "error"})
}

func newSettlerFixture(t *testing.T, balance int64) (*Settler, *memory.UserRepository, *memory.BetRepository, *domain.User) {
	t.Helper()

	users := memory.NewUserRepository()
	bets := memory.NewBetRepository()
	user := &domain.User{Username: "alice", Balance: decimal.NewFromInt(balance)}
	require.NoError(t, users.Create(context.Background(), user))

	return NewSettler(users, bets), users, bets, user
}

// placeStaked records a PENDING bet and debits the stake, the same way bet
// placement does.
func placeStaked(t *testing.T, users *memory.UserRepository, bets *memory.BetRepository, userID int64, color domain.Color, amount int64) *domain.Bet {
	t.Helper()

	stake := decimal.NewFromInt(amount)
	_, err := users.AdjustBalance(context.Background(), userID, stake.Neg())
	require.NoError(t, err)

	bet := domain.NewBet(1, userID, color, stake)
	require.NoError(t, bets.Create(context.Background(), bet))
	return bet
}

func TestResolveColorWin(t *testing.T) {
	settler, users, bets, user := newSettlerFixture(t, 100)
	bet := placeStaked(t, users, bets, user.ID, domain.ColorRed, 50)

	settler.Resolve(context.Background(), []*domain.Bet{bet}, domain.ColorRed)

	assert.Equal(t, domain.BetStatusWon, bet.Status)
	require.True(t, bet.Winnings.Valid)
	assert.True(t, bet.Winnings.Decimal.Equal(decimal.NewFromInt(100)))

	after, err := users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, after.Balance.Equal(decimal.NewFromInt(150)), "got %s", after.Balance)
}

func TestResolveLoss(t *testing.T) {
	settler, users, bets, user := newSettlerFixture(t, 100)
	bet := placeStaked(t, users, bets, user.ID, domain.ColorBlack, 50)

	settler.Resolve(context.Background(), []*domain.Bet{bet}, domain.ColorGreen)

	assert.Equal(t, domain.BetStatusLost, bet.Status)
	require.True(t, bet.Winnings.Valid)
	assert.True(t, bet.Winnings.Decimal.Equal(decimal.NewFromInt(-50)))

	// The stake was already gone at placement; losing must not debit again.
	after, err := users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, after.Balance.Equal(decimal.NewFromInt(50)), "got %s", after.Balance)
}

func TestResolveGreenWin(t *testing.T) {
	settler, users, bets, user := newSettlerFixture(t, 100)
	bet := placeStaked(t, users, bets, user.ID, domain.ColorGreen, 50)

	settler.Resolve(context.Background(), []*domain.Bet{bet}, domain.ColorGreen)

	assert.Equal(t, domain.BetStatusWon, bet.Status)
	assert.True(t, bet.Winnings.Decimal.Equal(decimal.NewFromInt(700)))

	after, err := users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, after.Balance.Equal(decimal.NewFromInt(750)), "got %s", after.Balance)
}

func TestResolveSkipsAlreadySettled(t *testing.T) {
	settler, users, bets, user := newSettlerFixture(t, 100)
	bet := placeStaked(t, users, bets, user.ID, domain.ColorRed, 50)

	settler.Resolve(context.Background(), []*domain.Bet{bet}, domain.ColorRed)
	balanceAfterFirst, err := users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)

	// A second pass over the same bets must be a no-op.
	settler.Resolve(context.Background(), []*domain.Bet{bet}, domain.ColorRed)

	after, err := users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, after.Balance.Equal(balanceAfterFirst.Balance))
}

func TestResolveMixedBets(t *testing.T) {
	users := memory.NewUserRepository()
	bets := memory.NewBetRepository()
	settler := NewSettler(users, bets)

	winner := &domain.User{Username: "winner", Balance: decimal.NewFromInt(100)}
	loser := &domain.User{Username: "loser", Balance: decimal.NewFromInt(100)}
	require.NoError(t, users.Create(context.Background(), winner))
	require.NoError(t, users.Create(context.Background(), loser))

	winBet := placeStaked(t, users, bets, winner.ID, domain.ColorRed, 30)
	loseBet := placeStaked(t, users, bets, loser.ID, domain.ColorBlack, 40)

	settler.Resolve(context.Background(), []*domain.Bet{winBet, loseBet}, domain.ColorRed)

	w, err := users.GetByID(context.Background(), winner.ID)
	require.NoError(t, err)
	assert.True(t, w.Balance.Equal(decimal.NewFromInt(130)), "got %s", w.Balance)

	l, err := users.GetByID(context.Background(), loser.ID)
	require.NoError(t, err)
	assert.True(t, l.Balance.Equal(decimal.NewFromInt(60)), "got %s", l.Balance)
}
