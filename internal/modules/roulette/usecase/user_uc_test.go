package usecase

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

func newUserFixture() (*UserUseCase, *memory.UserRepository, *memory.BetRepository) {
	users := memory.NewUserRepository()
	bets := memory.NewBetRepository()
	return NewUserUseCase(users, bets), users, bets
}

func TestCreateUser(t *testing.T) {
	uc, _, _ := newUserFixture()
	ctx := context.Background()

	user, err := uc.CreateUser(ctx, "alice", decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.True(t, user.Balance.Equal(decimal.NewFromInt(100)))
}

func TestCreateUserValidation(t *testing.T) {
	uc, _, _ := newUserFixture()
	ctx := context.Background()

	_, err := uc.CreateUser(ctx, "", decimal.NewFromInt(100))
	assert.Error(t, err)

	_, err = uc.CreateUser(ctx, "alice", decimal.NewFromInt(-1))
	assert.Error(t, err)

	// Zero balance is allowed.
	_, err = uc.CreateUser(ctx, "broke", decimal.Zero)
	assert.NoError(t, err)
}

func TestAddBalance(t *testing.T) {
	uc, _, _ := newUserFixture()
	ctx := context.Background()

	user, err := uc.CreateUser(ctx, "alice", decimal.NewFromInt(100))
	require.NoError(t, err)

	updated, err := uc.AddBalance(ctx, user.ID, decimal.NewFromInt(50))
	require.NoError(t, err)
	assert.True(t, updated.Balance.Equal(decimal.NewFromInt(150)))

	_, err = uc.AddBalance(ctx, user.ID, decimal.Zero)
	assert.Error(t, err)

	_, err = uc.AddBalance(ctx, user.ID, decimal.NewFromInt(-10))
	assert.Error(t, err)

	_, err = uc.AddBalance(ctx, 999, decimal.NewFromInt(10))
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestGetUserBets(t *testing.T) {
	uc, _, bets := newUserFixture()
	ctx := context.Background()

	user, err := uc.CreateUser(ctx, "alice", decimal.NewFromInt(100))
	require.NoError(t, err)

	require.NoError(t, bets.Create(ctx, domain.NewBet(1, user.ID, domain.ColorRed, decimal.NewFromInt(10))))
	require.NoError(t, bets.Create(ctx, domain.NewBet(2, user.ID, domain.ColorBlack, decimal.NewFromInt(20))))

	got, err := uc.GetUserBets(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = uc.GetUserBets(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestDeleteUserRemovesBets(t *testing.T) {
	uc, users, bets := newUserFixture()
	ctx := context.Background()

	user, err := uc.CreateUser(ctx, "alice", decimal.NewFromInt(100))
	require.NoError(t, err)
	require.NoError(t, bets.Create(ctx, domain.NewBet(1, user.ID, domain.ColorRed, decimal.NewFromInt(10))))

	require.NoError(t, uc.DeleteUser(ctx, user.ID))

	_, err = users.GetByID(ctx, user.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	orphans, err := bets.FindByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, orphans)

	assert.ErrorIs(t, uc.DeleteUser(ctx, 999), domain.ErrUserNotFound)
}

func TestRoundUseCaseQueries(t *testing.T) {
	rounds := memory.NewRoundRepository()
	bets := memory.NewBetRepository()
	uc := NewRoundUseCase(rounds, bets)
	ctx := context.Background()

	round := domain.NewRound()
	require.NoError(t, rounds.Create(ctx, round))
	require.NoError(t, bets.Create(ctx, domain.NewBet(round.ID, 7, domain.ColorRed, decimal.NewFromInt(10))))

	snapshot, err := uc.GetRound(ctx, round.ID)
	require.NoError(t, err)
	assert.Equal(t, round.ID, snapshot.RoundID)
	assert.Equal(t, domain.RoundStatusWaiting, snapshot.Status)
	assert.Nil(t, snapshot.WinningColor)
	require.Len(t, snapshot.Bets, 1)
	assert.Equal(t, int64(7), snapshot.Bets[0].UserID)
	assert.Nil(t, snapshot.Bets[0].Winnings)

	_, err = uc.GetRound(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrRoundNotFound)

	all, err := uc.GetAllRounds(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
